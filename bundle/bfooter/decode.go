package bfooter

import (
	"bytes"

	"github.com/pkg/errors"
	"rsgame-bundler/bundle/lbytes"
)

func IsValidMagicNumber(bs []byte) bool {
	return bytes.Equal(bs, MagicNumberBytes)
}

func DecodeFooter(reader *lbytes.Reader) (*Footer, error) {
	readMagicNumber := lbytes.CreateMagicNumberReadFunction(reader, MagicNumberBytes)
	readUint32 := lbytes.CreateUint32ReadFunction(reader)

	footerInstructions := []lbytes.Instruction{
		{Key: "magic_number", ReadFunction: readMagicNumber},
		{Key: "directory_length", ReadFunction: readUint32},
		{Key: "body_length", ReadFunction: readUint32},
	}
	footer, err := lbytes.ExecuteInstructions[Footer](footerInstructions)
	if err != nil {
		return nil, errors.Wrap(err, "DecodeFooter error")
	}

	return footer, nil
}

// DecodeTrailingFooter reads the footer from the last DefaultFooterSize
// bytes of bs. Anything before the bundle (a host executable, say) is
// ignored.
func DecodeTrailingFooter(bs []byte) (*Footer, error) {
	if len(bs) < DefaultFooterSize {
		return nil, lbytes.ErrOutOfBounds{
			Caller: "DecodeTrailingFooter",
			Need:   DefaultFooterSize,
			Have:   len(bs),
		}
	}
	return DecodeFooter(lbytes.NewBytesReader(bs[len(bs)-DefaultFooterSize:]))
}

// Locate returns where the directory and the body start inside a file of
// totalLength bytes that ends with footer.
func Locate(totalLength int, footer Footer) (directoryStart int, bodyStart int, err error) {
	need := DefaultFooterSize + int(footer.BodyLength) + int(footer.DirectoryLength)
	if need > totalLength {
		return 0, 0, lbytes.ErrOutOfBounds{
			Caller: "Locate",
			Need:   need,
			Have:   totalLength,
		}
	}
	bodyStart = totalLength - DefaultFooterSize - int(footer.BodyLength)
	directoryStart = bodyStart - int(footer.DirectoryLength)
	return directoryStart, bodyStart, nil
}

func DecodeEntry(reader *lbytes.Reader) (*Entry, error) {
	readName := lbytes.CreateFixedStringReadFunction(reader, MaxNameLength)
	readUint32 := lbytes.CreateUint32ReadFunction(reader)

	entryInstructions := []lbytes.Instruction{
		{Key: "name", ReadFunction: readName},
		{Key: "offset", ReadFunction: readUint32},
		{Key: "size", ReadFunction: readUint32},
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

// CountEntries converts the footer's directory length to a record count.
func CountEntries(footer Footer) (int, error) {
	if footer.DirectoryLength%DefaultEntrySize != 0 {
		return 0, errors.Errorf(
			"directory length %d is not a multiple of %d",
			footer.DirectoryLength, DefaultEntrySize,
		)
	}
	return int(footer.DirectoryLength / DefaultEntrySize), nil
}
