package bheader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"rsgame-bundler/bundle/lbytes"
)

func TestEncode(t *testing.T) {
	bs := Encode(CreateHeader(2))
	assert.Equal(
		t,
		[]byte{
			'a', 's', 's', 'e',
			2, 0, 0, 0,
			24, 0, 0, 0,
		},
		bs,
	)
}

func TestEncodeEntry(t *testing.T) {
	bs, err := EncodeEntry(Entry{Offset: 60, Size: 12, Name: "flat.frag"})
	require.NoError(t, err)
	require.Len(t, bs, DefaultEntrySize)
	assert.Equal(t, []byte{60, 0, 0, 0, 12, 0, 0, 0}, bs[:8])
	assert.Equal(t, []byte("flat.frag"), bs[8:17])
	assert.Equal(t, lbytes.CreateZeroBytes(7), bs[17:])

	_, err = EncodeEntry(Entry{Name: "a-name-over-16-bytes"})
	var overflow lbytes.ErrSlotOverflow
	assert.ErrorAs(t, err, &overflow)
}

func TestEncodeDecodeBlock(t *testing.T) {
	entries := []Entry{
		{Offset: 60, Size: 12, Name: "flat.frag"},
		{Offset: 72, Size: 20, Name: "0123456789abcdef"},
	}
	bs, err := EncodeBlock(entries)
	require.NoError(t, err)
	assert.Len(t, bs, CalculateBlockSize(2))

	decoded, err := DecodeBlock(lbytes.NewBytesReader(bs), 2)
	require.NoError(t, err)
	assert.Equal(t, entries, decoded)

	_, err = DecodeBlock(lbytes.NewBytesReader(bs[:30]), 2)
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	header, err := Decode(lbytes.NewBytesReader(Encode(CreateHeader(5))))
	require.NoError(t, err)
	assert.Equal(t, uint32(5), header.EntryCount)
	assert.Equal(t, uint32(DefaultEntrySize), header.EntryRecordSize)

	wrongMagic := append([]byte("ASSE"), Encode(CreateHeader(0))[4:]...)
	_, err = Decode(lbytes.NewBytesReader(wrongMagic))
	var mismatch lbytes.ErrMagicNumberMismatch
	assert.ErrorAs(t, err, &mismatch)

	wrongSize := Encode(Header{MagicNumber: MagicNumberBytes, EntryCount: 1, EntryRecordSize: 32})
	_, err = Decode(lbytes.NewBytesReader(wrongSize))
	var sizeMismatch ErrRecordSizeMismatch
	require.ErrorAs(t, err, &sizeMismatch)
	assert.Equal(t, uint32(32), sizeMismatch.Actual)
}

func TestCalculateBodyOffset(t *testing.T) {
	assert.Equal(t, 12, CalculateBodyOffset(0))
	assert.Equal(t, 60, CalculateBodyOffset(2))
}
