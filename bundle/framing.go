package bundle

import (
	"math"

	"github.com/samber/lo"
	"rsgame-bundler/bundle/bfooter"
	"rsgame-bundler/bundle/bheader"
)

type (
	// framing is everything that differs between schemas. The packing core in
	// Build never looks at the schema directly.
	framing struct {
		maxNameLength int
		// bodyBase is the value of the first entry's offset.
		bodyBase func(numEntries int) uint64
		compose  func(entries []Entry, body []byte) ([]byte, error)
	}
)

var framings = map[Schema]framing{
	SchemaFooterV0: {
		maxNameLength: bfooter.MaxNameLength,
		bodyBase:      func(int) uint64 { return 0 },
		compose:       composeFooterV0,
	},
	SchemaHeaderV1: {
		maxNameLength: bheader.MaxNameLength,
		bodyBase: func(numEntries int) uint64 {
			return uint64(bheader.DefaultHeaderSize) + uint64(numEntries)*bheader.DefaultEntrySize
		},
		compose: composeHeaderV1,
	},
}

func lookupFraming(schema Schema) (framing, error) {
	f, ok := framings[schema]
	if !ok {
		return framing{}, ErrUnknownSchema{Schema: string(schema)}
	}
	return f, nil
}

// composeFooterV0 lays out directory, body, footer.
func composeFooterV0(entries []Entry, body []byte) ([]byte, error) {
	directoryLength := uint64(bfooter.CalculateBlockSize(len(entries)))
	if directoryLength > math.MaxUint32 {
		return nil, ErrSizeOverflow{Caller: "directory length", Size: directoryLength}
	}
	directory, err := bfooter.EncodeBlock(
		lo.Map(
			entries,
			func(entry Entry, _ int) bfooter.Entry {
				return bfooter.Entry{
					Name:   entry.Name,
					Offset: entry.Offset,
					Size:   entry.Size,
				}
			},
		),
	)
	if err != nil {
		return nil, err
	}
	footer := bfooter.EncodeFooter(bfooter.CreateFooter(len(entries), uint32(len(body))))

	bs := make([]byte, 0, len(directory)+len(body)+len(footer))
	bs = append(bs, directory...)
	bs = append(bs, body...)
	bs = append(bs, footer...)
	return bs, nil
}

// composeHeaderV1 lays out header, directory, body.
func composeHeaderV1(entries []Entry, body []byte) ([]byte, error) {
	header := bheader.Encode(bheader.CreateHeader(len(entries)))
	directory, err := bheader.EncodeBlock(
		lo.Map(
			entries,
			func(entry Entry, _ int) bheader.Entry {
				return bheader.Entry{
					Offset: entry.Offset,
					Size:   entry.Size,
					Name:   entry.Name,
				}
			},
		),
	)
	if err != nil {
		return nil, err
	}

	bs := make([]byte, 0, len(header)+len(directory)+len(body))
	bs = append(bs, header...)
	bs = append(bs, directory...)
	bs = append(bs, body...)
	return bs, nil
}
