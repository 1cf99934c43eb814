// Package bundle packs an ordered list of named files into a single
// container: a fixed-record directory plus the raw bytes of every file laid
// back to back, so a runtime can open one file and reach any asset by name.
//
// Two container schemas are supported. SchemaFooterV0 writes the directory,
// then the body, then a 16-byte footer that is found by seeking from the end
// of the file. SchemaHeaderV1 writes a 12-byte header, then the directory
// with absolute offsets, then the body. Both share the same read, append and
// layout core; the schema only selects the framing.
package bundle

import (
	_ "crypto/sha256"
	"io"

	"github.com/opencontainers/go-digest"
)

type (
	Schema string
	// Source is one asset to pack: the name a runtime looks it up by and the
	// path its bytes are read from.
	Source struct {
		Name string `json:"name" yaml:"name"`
		Path string `json:"path" yaml:"path"`
	}
	// Entry is one directory record. For SchemaFooterV0 Offset counts from the
	// start of the body; for SchemaHeaderV1 it counts from the start of the
	// bundle.
	Entry struct {
		Name   string `json:"name"`
		Offset uint32 `json:"offset"`
		Size   uint32 `json:"size"`
	}
	// Bundle is the composed container, ready to be written out. It is not
	// modified after Build returns.
	Bundle struct {
		Schema     Schema
		Entries    []Entry
		BodyLength int
		bs         []byte
	}
)

const (
	SchemaFooterV0 = Schema("footer-v0")
	SchemaHeaderV1 = Schema("header-v1")
	DefaultSchema  = SchemaFooterV0
)

var Schemas = []Schema{SchemaFooterV0, SchemaHeaderV1}

func ParseSchema(s string) (Schema, error) {
	for _, schema := range Schemas {
		if string(schema) == s {
			return schema, nil
		}
	}
	return "", ErrUnknownSchema{Schema: s}
}

// MaxNameLength is the width of the name slot of schema, in bytes.
func (s Schema) MaxNameLength() int {
	f, ok := framings[s]
	if !ok {
		return 0
	}
	return f.maxNameLength
}

func (b *Bundle) Bytes() []byte {
	return b.bs
}

func (b *Bundle) Len() int {
	return len(b.bs)
}

// Digest is the sha256 content digest of the composed bundle. Packing the
// same files in the same order always gives the same digest.
func (b *Bundle) Digest() digest.Digest {
	return digest.FromBytes(b.bs)
}

func (b *Bundle) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.bs)
	return int64(n), err
}
