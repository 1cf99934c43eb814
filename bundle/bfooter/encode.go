package bfooter

import (
	"github.com/pkg/errors"
	"rsgame-bundler/bundle/lbytes"
)

func EncodeEntry(entry Entry) ([]byte, error) {
	nameBytes, err := lbytes.EncodeFixedString(entry.Name, MaxNameLength)
	if err != nil {
		return nil, errors.Wrap(err, "EncodeEntry error")
	}
	bs := make([]byte, 0, DefaultEntrySize)
	bs = append(bs, nameBytes...)
	bs = append(bs, lbytes.EncodeUint32(entry.Offset)...)
	bs = append(bs, lbytes.EncodeUint32(entry.Size)...)
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

func EncodeFooter(footer Footer) []byte {
	bs := make([]byte, 0, DefaultFooterSize)
	bs = append(bs, footer.MagicNumber...)
	bs = append(bs, lbytes.EncodeUint32(footer.DirectoryLength)...)
	bs = append(bs, lbytes.EncodeUint32(footer.BodyLength)...)
	return bs
}

func CreateFooter(numEntries int, bodyLength uint32) Footer {
	return Footer{
		MagicNumber:     MagicNumberBytes,
		DirectoryLength: uint32(CalculateBlockSize(numEntries)),
		BodyLength:      bodyLength,
	}
}
