package bundle

import (
	"fmt"
	"os"
	"sort"

	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"rsgame-bundler/bundle/bfooter"
	"rsgame-bundler/bundle/bheader"
	"rsgame-bundler/bundle/lbytes"
)

type (
	// Archive is a decoded bundle. Entries keep their on-disk offsets; use
	// ReadFile to get at the content.
	Archive struct {
		schema  Schema
		entries []Entry
		// base is subtracted from an entry offset to index into body.
		base   int
		body   []byte
		index  map[string]int
		digest digest.Digest
	}
)

// Detect guesses the schema of bs. When bs carries both a footer-v0 footer
// and a header-v1 header, both layouts are decoded and only one of them may
// hold together; a footer-v0 bundle whose first name starts with "asse", or
// a header-v1 bundle whose last asset ends in "assets00", is told apart this
// way.
func Detect(bs []byte) (Schema, error) {
	archive, err := decodeDetected(bs)
	if err != nil {
		return "", err
	}
	return archive.schema, nil
}

// Decode parses bs as a bundle of schema, or detects the schema when it is
// empty. footer-v0 bundles are decoded from the end of bs, so bytes ahead of
// the bundle are allowed.
func Decode(bs []byte, schema Schema) (*Archive, error) {
	if schema == "" {
		return decodeDetected(bs)
	}
	return decodeAs(bs, schema)
}

// candidateSchemas lists the schemas whose magic numbers bs carries.
func candidateSchemas(bs []byte) []Schema {
	candidates := make([]Schema, 0, len(Schemas))
	if _, err := bfooter.DecodeTrailingFooter(bs); err == nil {
		candidates = append(candidates, SchemaFooterV0)
	}
	if _, err := bheader.Decode(lbytes.NewBytesReader(bs)); err == nil {
		candidates = append(candidates, SchemaHeaderV1)
	}
	return candidates
}

func decodeDetected(bs []byte) (*Archive, error) {
	candidates := candidateSchemas(bs)
	switch len(candidates) {
	case 0:
		return nil, ErrCorruptBundle{Reason: "no known magic number"}
	case 1:
		return decodeAs(bs, candidates[0])
	}

	archives := make([]*Archive, 0, len(candidates))
	var firstErr error
	for _, schema := range candidates {
		archive, err := decodeAs(bs, schema)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		archives = append(archives, archive)
	}
	switch len(archives) {
	case 0:
		return nil, firstErr
	case 1:
		return archives[0], nil
	}
	return nil, ErrCorruptBundle{
		Reason: fmt.Sprintf(
			"ambiguous schema: valid as both %s and %s, pass the schema explicitly",
			archives[0].schema, archives[1].schema,
		),
	}
}

func decodeAs(bs []byte, schema Schema) (*Archive, error) {
	var (
		archive *Archive
		err     error
	)
	switch schema {
	case SchemaFooterV0:
		archive, err = decodeFooterV0(bs)
	case SchemaHeaderV1:
		archive, err = decodeHeaderV1(bs)
	default:
		return nil, ErrUnknownSchema{Schema: string(schema)}
	}
	if err != nil {
		return nil, err
	}

	if err := archive.checkTiling(); err != nil {
		return nil, err
	}
	archive.index = make(map[string]int, len(archive.entries))
	for i, entry := range archive.entries {
		if _, ok := archive.index[entry.Name]; !ok {
			archive.index[entry.Name] = i
		}
	}
	archive.digest = digest.FromBytes(bs)
	return archive, nil
}

// Open reads and decodes the bundle at path.
func Open(path string, schema Schema) (*Archive, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, `Open error reading "%s"`, path)
	}
	return Decode(bs, schema)
}

func decodeFooterV0(bs []byte) (*Archive, error) {
	corrupt := func(reason string, err error) error {
		return ErrCorruptBundle{Schema: SchemaFooterV0, Reason: reason, Err: err}
	}

	footer, err := bfooter.DecodeTrailingFooter(bs)
	if err != nil {
		return nil, corrupt("footer", err)
	}
	directoryStart, bodyStart, err := bfooter.Locate(len(bs), *footer)
	if err != nil {
		return nil, corrupt("footer lengths", err)
	}
	numEntries, err := bfooter.CountEntries(*footer)
	if err != nil {
		return nil, corrupt("directory", err)
	}
	block, err := bfooter.DecodeBlock(
		lbytes.NewBytesReader(bs[directoryStart:bodyStart]),
		numEntries,
	)
	if err != nil {
		return nil, corrupt("directory", err)
	}

	return &Archive{
		schema: SchemaFooterV0,
		entries: lo.Map(
			block,
			func(entry bfooter.Entry, _ int) Entry {
				return Entry{Name: entry.Name, Offset: entry.Offset, Size: entry.Size}
			},
		),
		base: 0,
		body: bs[bodyStart : bodyStart+int(footer.BodyLength)],
	}, nil
}

func decodeHeaderV1(bs []byte) (*Archive, error) {
	corrupt := func(reason string, err error) error {
		return ErrCorruptBundle{Schema: SchemaHeaderV1, Reason: reason, Err: err}
	}

	reader := lbytes.NewBytesReader(bs)
	header, err := bheader.Decode(reader)
	if err != nil {
		return nil, corrupt("header", err)
	}
	bodyStart := uint64(bheader.DefaultHeaderSize) + uint64(header.EntryCount)*bheader.DefaultEntrySize
	if bodyStart > uint64(len(bs)) {
		return nil, corrupt(
			"directory",
			lbytes.ErrOutOfBounds{Caller: "decodeHeaderV1", Need: int(bodyStart), Have: len(bs)},
		)
	}
	block, err := bheader.DecodeBlock(reader, int(header.EntryCount))
	if err != nil {
		return nil, corrupt("directory", err)
	}

	return &Archive{
		schema: SchemaHeaderV1,
		entries: lo.Map(
			block,
			func(entry bheader.Entry, _ int) Entry {
				return Entry{Name: entry.Name, Offset: entry.Offset, Size: entry.Size}
			},
		),
		base: int(bodyStart),
		body: bs[bodyStart:],
	}, nil
}

// checkTiling verifies that the entries cover the body exactly, in order.
func (a *Archive) checkTiling() error {
	expected := uint64(a.base)
	for i, entry := range a.entries {
		if uint64(entry.Offset) != expected {
			return ErrCorruptBundle{
				Schema: a.schema,
				Reason: fmt.Sprintf(
					`entry %d "%s" starts at %d, expected %d`,
					i, entry.Name, entry.Offset, expected,
				),
			}
		}
		expected += uint64(entry.Size)
	}
	if covered := expected - uint64(a.base); covered != uint64(len(a.body)) {
		return ErrCorruptBundle{
			Schema: a.schema,
			Reason: fmt.Sprintf(
				"entries cover %d body bytes, body has %d",
				covered, len(a.body),
			),
		}
	}
	return nil
}

func (a *Archive) Schema() Schema {
	return a.schema
}

// Entries returns the directory in on-disk order.
func (a *Archive) Entries() []Entry {
	entries := make([]Entry, len(a.entries))
	copy(entries, a.entries)
	return entries
}

// Names returns every entry name, sorted.
func (a *Archive) Names() []string {
	names := lo.Map(a.entries, func(entry Entry, _ int) string { return entry.Name })
	sort.Strings(names)
	return names
}

func (a *Archive) BodyLength() int {
	return len(a.body)
}

// Digest is the sha256 digest of everything Decode was given, host bytes
// included.
func (a *Archive) Digest() digest.Digest {
	return a.digest
}

func (a *Archive) Lookup(name string) (Entry, bool) {
	i, ok := a.index[name]
	if !ok {
		return Entry{}, false
	}
	return a.entries[i], true
}

// ReadFile returns a copy of the content of the entry called name.
func (a *Archive) ReadFile(name string) ([]byte, error) {
	entry, ok := a.Lookup(name)
	if !ok {
		return nil, ErrEntryNotFound{Name: name}
	}
	start := int(entry.Offset) - a.base
	content := make([]byte, entry.Size)
	copy(content, a.body[start:start+int(entry.Size)])
	return content, nil
}
