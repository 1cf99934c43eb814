package bundle

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	Name    string
	Content []byte
}

func writeFixtures(t *testing.T, fixtures []fixture) []Source {
	t.Helper()
	dir := t.TempDir()
	sources := make([]Source, 0, len(fixtures))
	for i, f := range fixtures {
		path := filepath.Join(dir, strings.Repeat("f", i+1)+".bin")
		require.NoError(t, os.WriteFile(path, f.Content, 0o644))
		sources = append(sources, Source{Name: f.Name, Path: path})
	}
	return sources
}

func TestBuild_HeaderV1Scenario(t *testing.T) {
	frag := []byte("0123456789ab")
	vert := []byte("abcdefghijklmnopqrst")
	sources := writeFixtures(t, []fixture{{"flat.frag", frag}, {"flat.vert", vert}})

	b, err := Build(sources, SchemaHeaderV1)
	require.NoError(t, err)
	bs := b.Bytes()

	require.Equal(t, 92, len(bs))
	assert.Equal(t, []byte("asse"), bs[0:4])
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(bs[4:8]))
	assert.Equal(t, uint32(24), binary.LittleEndian.Uint32(bs[8:12]))

	assert.Equal(t, uint32(60), binary.LittleEndian.Uint32(bs[12:16]))
	assert.Equal(t, uint32(12), binary.LittleEndian.Uint32(bs[16:20]))
	assert.Equal(t, append([]byte("flat.frag"), make([]byte, 7)...), bs[20:36])

	assert.Equal(t, uint32(72), binary.LittleEndian.Uint32(bs[36:40]))
	assert.Equal(t, uint32(20), binary.LittleEndian.Uint32(bs[40:44]))
	assert.Equal(t, append([]byte("flat.vert"), make([]byte, 7)...), bs[44:60])

	assert.Equal(t, frag, bs[60:72])
	assert.Equal(t, vert, bs[72:92])

	assert.Equal(
		t,
		[]Entry{
			{Name: "flat.frag", Offset: 60, Size: 12},
			{Name: "flat.vert", Offset: 72, Size: 20},
		},
		b.Entries,
	)
	assert.Equal(t, 32, b.BodyLength)
}

func TestBuild_FooterV0Layout(t *testing.T) {
	frag := []byte("0123456789ab")
	vert := []byte("abcdefghijklmnopqrst")
	sources := writeFixtures(t, []fixture{{"assets/flat.frag", frag}, {"assets/flat.vert", vert}})

	b, err := Build(sources, SchemaFooterV0)
	require.NoError(t, err)
	bs := b.Bytes()

	require.Equal(t, 2*264+32+16, len(bs))
	assert.Equal(t, append([]byte("assets/flat.frag"), make([]byte, 240)...), bs[0:256])
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(bs[256:260]))
	assert.Equal(t, uint32(12), binary.LittleEndian.Uint32(bs[260:264]))
	assert.Equal(t, uint32(12), binary.LittleEndian.Uint32(bs[264+256:264+260]))
	assert.Equal(t, uint32(20), binary.LittleEndian.Uint32(bs[264+260:264+264]))

	body := bs[528 : 528+32]
	assert.Equal(t, append(frag, vert...), body)

	footer := bs[len(bs)-16:]
	assert.Equal(t, []byte("assets00"), footer[:8])
	assert.Equal(t, uint32(528), binary.LittleEndian.Uint32(footer[8:12]))
	assert.Equal(t, uint32(32), binary.LittleEndian.Uint32(footer[12:16]))
}

func TestBuild_Empty(t *testing.T) {
	b, err := Build(nil, SchemaHeaderV1)
	require.NoError(t, err)
	assert.Equal(t, []byte{'a', 's', 's', 'e', 0, 0, 0, 0, 24, 0, 0, 0}, b.Bytes())
	assert.Empty(t, b.Entries)
	assert.Equal(t, 0, b.BodyLength)

	b, err = Build([]Source{}, SchemaFooterV0)
	require.NoError(t, err)
	assert.Equal(t, append([]byte("assets00"), make([]byte, 8)...), b.Bytes())
}

func TestBuild_NameWidthBoundary(t *testing.T) {
	for _, schema := range Schemas {
		t.Run(string(schema), func(t *testing.T) {
			width := schema.MaxNameLength()
			exact := strings.Repeat("x", width)
			sources := writeFixtures(t, []fixture{{exact, []byte("data")}})

			b, err := Build(sources, schema)
			require.NoError(t, err)
			assert.Equal(t, exact, b.Entries[0].Name)

			sources[0].Name = exact + "y"
			_, err = Build(sources, schema)
			var tooLong ErrNameTooLong
			require.ErrorAs(t, err, &tooLong)
			assert.Equal(t, exact+"y", tooLong.Name)
			assert.Equal(t, width, tooLong.MaxLength)
		})
	}
}

func TestBuild_NameLengthCountsBytes(t *testing.T) {
	// 8 two-byte runes fill a 16-byte slot exactly
	name := strings.Repeat("é", 8)
	sources := writeFixtures(t, []fixture{{name, []byte("x")}})
	_, err := Build(sources, SchemaHeaderV1)
	require.NoError(t, err)

	sources[0].Name = name + "a"
	_, err = Build(sources, SchemaHeaderV1)
	assert.ErrorAs(t, err, &ErrNameTooLong{})
}

func TestBuild_InvalidNames(t *testing.T) {
	sources := writeFixtures(t, []fixture{{"a\x00b", []byte("x")}})
	_, err := Build(sources, SchemaFooterV0)
	assert.ErrorAs(t, err, &ErrInvalidName{})

	sources[0].Name = "\xff\xfe"
	_, err = Build(sources, SchemaFooterV0)
	assert.ErrorAs(t, err, &ErrInvalidName{})
}

func TestBuild_DuplicateName(t *testing.T) {
	sources := writeFixtures(t, []fixture{{"a", []byte("1")}, {"b", []byte("2")}, {"a", []byte("3")}})
	_, err := Build(sources, SchemaFooterV0)
	var duplicate ErrDuplicateName
	require.ErrorAs(t, err, &duplicate)
	assert.Equal(t, "a", duplicate.Name)
	assert.Equal(t, 0, duplicate.FirstIndex)
	assert.Equal(t, 2, duplicate.SecondIndex)
}

func TestBuild_SourceReadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Build([]Source{{Name: "missing", Path: filepath.Join(dir, "missing.png")}}, SchemaFooterV0)
	var readErr ErrSourceRead
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, "missing", readErr.Name)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Build([]Source{{Name: "dir", Path: dir}}, SchemaFooterV0)
	assert.ErrorAs(t, err, &ErrSourceRead{})
}

func TestBuild_ReadErrorWinsOverLaterEntries(t *testing.T) {
	sources := writeFixtures(t, []fixture{{"ok", []byte("1")}})
	sources = append(sources, Source{Name: strings.Repeat("x", 300), Path: "/nonexistent/file"})
	_, err := Build(sources, SchemaFooterV0)
	assert.ErrorAs(t, err, &ErrSourceRead{})
}

func TestNextOffset(t *testing.T) {
	// 12 + 24*178956970 leaves three bytes of u32 address space for the body.
	headerBase := framings[SchemaHeaderV1].bodyBase(178956970)
	require.Equal(t, uint64(math.MaxUint32-3), headerBase)

	tests := []struct {
		name       string
		base       uint64
		bodyLength uint64
		size       uint64
		offset     uint32
		overflow   bool
	}{
		{name: "ends on the last addressable byte", bodyLength: math.MaxUint32 - 10, size: 10, offset: math.MaxUint32 - 10},
		{name: "ends one byte past", bodyLength: math.MaxUint32 - 10, size: 11, overflow: true},
		{name: "size alone too large", size: math.MaxUint32 + 1, overflow: true},
		{name: "header directory leaves room", base: headerBase, size: 3, offset: math.MaxUint32 - 3},
		{name: "header directory pushes entry past", base: headerBase, size: 4, overflow: true},
		{name: "header directory plus body", base: headerBase, bodyLength: 2, size: 2, overflow: true},
		{name: "empty entry at the limit", base: math.MaxUint32, offset: math.MaxUint32},
		{name: "empty entry past the limit", base: math.MaxUint32 + 1, overflow: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			offset, err := nextOffset("asset", test.base, test.bodyLength, test.size)
			if test.overflow {
				var overflow ErrSizeOverflow
				require.ErrorAs(t, err, &overflow)
				assert.Equal(t, test.base+test.bodyLength+test.size, overflow.Size)
				assert.Contains(t, overflow.Caller, `"asset"`)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.offset, offset)
		})
	}
}

func TestBuild_UnknownSchema(t *testing.T) {
	_, err := Build(nil, Schema("assets01"))
	var unknown ErrUnknownSchema
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "assets01", unknown.Schema)
}

func TestBuild_Deterministic(t *testing.T) {
	sources := writeFixtures(
		t,
		[]fixture{
			{"terrain.png", []byte{0x89, 'P', 'N', 'G', 0, 1, 2}},
			{"terrain.vert", []byte("void main() {}")},
			{"empty", []byte{}},
		},
	)
	for _, schema := range Schemas {
		first, err := Build(sources, schema)
		require.NoError(t, err)
		second, err := Build(sources, schema)
		require.NoError(t, err)
		assert.Equal(t, first.Bytes(), second.Bytes())
		assert.Equal(t, first.Digest(), second.Digest())
	}
}

func TestParseSchema(t *testing.T) {
	schema, err := ParseSchema("header-v1")
	require.NoError(t, err)
	assert.Equal(t, SchemaHeaderV1, schema)

	_, err = ParseSchema("v2")
	assert.ErrorAs(t, err, &ErrUnknownSchema{})

	assert.Equal(t, 256, SchemaFooterV0.MaxNameLength())
	assert.Equal(t, 16, SchemaHeaderV1.MaxNameLength())
	assert.Equal(t, 0, Schema("nope").MaxNameLength())
}
