package bheader

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	"rsgame-bundler/bundle/lbytes"
)

type (
	ErrRecordSizeMismatch struct {
		Expected uint32
		Actual   uint32
	}
)

func (r ErrRecordSizeMismatch) Error() string {
	return fmt.Sprintf("invalid entry record size: expected %d, got %d", r.Expected, r.Actual)
}

func IsValidMagicNumber(bs []byte) bool {
	return bytes.Equal(bs, MagicNumberBytes)
}

func Decode(reader *lbytes.Reader) (*Header, error) {
	readMagicNumber := lbytes.CreateMagicNumberReadFunction(reader, MagicNumberBytes)
	readUint32 := lbytes.CreateUint32ReadFunction(reader)

	headerInstructions := []lbytes.Instruction{
		{Key: "magic_number", ReadFunction: readMagicNumber},
		{Key: "entry_count", ReadFunction: readUint32},
		{Key: "entry_record_size", ReadFunction: readUint32},
	}
	header, err := lbytes.ExecuteInstructions[Header](headerInstructions)
	if err != nil {
		return nil, errors.Wrap(err, "Decode error")
	}
	if header.EntryRecordSize != DefaultEntrySize {
		return nil, ErrRecordSizeMismatch{
			Expected: DefaultEntrySize,
			Actual:   header.EntryRecordSize,
		}
	}

	return header, nil
}

func DecodeEntry(reader *lbytes.Reader) (*Entry, error) {
	readUint32 := lbytes.CreateUint32ReadFunction(reader)
	readName := lbytes.CreateFixedStringReadFunction(reader, MaxNameLength)

	entryInstructions := []lbytes.Instruction{
		{Key: "offset", ReadFunction: readUint32},
		{Key: "size", ReadFunction: readUint32},
		{Key: "name", ReadFunction: readName},
	}
	entry, err := lbytes.ExecuteInstructions[Entry](entryInstructions)
	if err != nil {
		return nil, errors.Wrap(err, "DecodeEntry error")
	}

	return entry, nil
}

func DecodeBlock(reader *lbytes.Reader, numEntries int) ([]Entry, error) {
	entries := make([]Entry, 0, numEntries)
	for i := 0; i < numEntries; i++ {
		entry, err := DecodeEntry(reader)
		if err != nil {
			return nil, errors.Wrapf(err, "DecodeBlock error at entry %d", i)
		}
		entries = append(entries, *entry)
	}

	return entries, nil
}
