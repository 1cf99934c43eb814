package bundle

import (
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Build reads every source in order and composes a bundle of the given
// schema. Entry order, and so every offset, follows the order of sources;
// the same sources always produce byte-identical output.
//
// Any unreadable source or unusable name aborts the whole build. Names are
// never truncated to fit their slot.
func Build(sources []Source, schema Schema) (*Bundle, error) {
	f, err := lookupFraming(schema)
	if err != nil {
		return nil, err
	}

	base := f.bodyBase(len(sources))
	seen := make(map[string]int, len(sources))
	entries := make([]Entry, 0, len(sources))
	body := make([]byte, 0)
	for i, source := range sources {
		content, err := ReadSource(source)
		if err != nil {
			return nil, err
		}
		if err := validateName(source.Name, schema, f.maxNameLength); err != nil {
			return nil, err
		}
		if first, ok := seen[source.Name]; ok {
			return nil, ErrDuplicateName{
				Name:        source.Name,
				FirstIndex:  first,
				SecondIndex: i,
			}
		}
		seen[source.Name] = i

		offset, err := nextOffset(source.Name, base, uint64(len(body)), uint64(len(content)))
		if err != nil {
			return nil, err
		}
		entries = append(
			entries,
			Entry{
				Name:   source.Name,
				Offset: offset,
				Size:   uint32(len(content)),
			},
		)
		body = append(body, content...)
	}

	bs, err := f.compose(entries, body)
	if err != nil {
		return nil, errors.Wrapf(err, "Build error composing %s bundle", schema)
	}

	return &Bundle{
		Schema:     schema,
		Entries:    entries,
		BodyLength: len(body),
		bs:         bs,
	}, nil
}

// nextOffset places an entry of size after bodyLength bytes of body that
// start at base. The whole entry, not only its offset, has to stay
// addressable with u32.
func nextOffset(name string, base, bodyLength, size uint64) (uint32, error) {
	offset := base + bodyLength
	end := offset + size
	if end > math.MaxUint32 {
		return 0, ErrSizeOverflow{Caller: `end of entry "` + name + `"`, Size: end}
	}
	return uint32(offset), nil
}

// ReadSource reads the whole file behind source. The handle is closed before
// returning.
func ReadSource(source Source) ([]byte, error) {
	wrap := func(err error) error {
		return ErrSourceRead{Name: source.Name, Path: source.Path, Err: err}
	}

	file, err := os.Open(source.Path)
	if err != nil {
		return nil, wrap(err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, wrap(err)
	}
	if info.IsDir() {
		return nil, wrap(errors.New("is a directory"))
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, wrap(err)
	}
	if info.Mode().IsRegular() && int64(len(content)) != info.Size() {
		return nil, wrap(
			errors.Wrapf(
				io.ErrUnexpectedEOF,
				"read %d of %d bytes", len(content), info.Size(),
			),
		)
	}

	return content, nil
}

func validateName(name string, schema Schema, maxLength int) error {
	if len(name) > maxLength {
		return ErrNameTooLong{
			Name:      name,
			Schema:    schema,
			MaxLength: maxLength,
		}
	}
	if strings.ContainsRune(name, 0) {
		return ErrInvalidName{Name: name, Reason: "contains a NUL byte"}
	}
	if !utf8.ValidString(name) {
		return ErrInvalidName{Name: name, Reason: "not valid UTF-8"}
	}
	return nil
}
