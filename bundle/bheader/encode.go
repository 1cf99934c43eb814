package bheader

import (
	"github.com/pkg/errors"
	"rsgame-bundler/bundle/lbytes"
)

func Encode(header Header) []byte {
	bs := make([]byte, 0, DefaultHeaderSize)
	bs = append(bs, header.MagicNumber...)
	bs = append(bs, lbytes.EncodeUint32(header.EntryCount)...)
	bs = append(bs, lbytes.EncodeUint32(header.EntryRecordSize)...)
	return bs
}

func CreateHeader(numEntries int) Header {
	return Header{
		MagicNumber:     MagicNumberBytes,
		EntryCount:      uint32(numEntries),
		EntryRecordSize: DefaultEntrySize,
	}
}

func EncodeEntry(entry Entry) ([]byte, error) {
	nameBytes, err := lbytes.EncodeFixedString(entry.Name, MaxNameLength)
	if err != nil {
		return nil, errors.Wrap(err, "EncodeEntry error")
	}
	bs := make([]byte, 0, DefaultEntrySize)
	bs = append(bs, lbytes.EncodeUint32(entry.Offset)...)
	bs = append(bs, lbytes.EncodeUint32(entry.Size)...)
	bs = append(bs, nameBytes...)
	return bs, nil
}

func EncodeBlock(entries []Entry) ([]byte, error) {
	bs := make([]byte, 0, CalculateBlockSize(len(entries)))
	for _, entry := range entries {
		entryBytes, err := EncodeEntry(entry)
		if err != nil {
			return nil, err
		}
		bs = append(bs, entryBytes...)
	}
	return bs, nil
}

func CalculateBlockSize(numEntries int) int {
	return numEntries * DefaultEntrySize
}

// CalculateBodyOffset is the absolute offset of the first body byte.
func CalculateBodyOffset(numEntries int) int {
	return DefaultHeaderSize + CalculateBlockSize(numEntries)
}
