// Package bheader encodes and decodes the header-addressed bundle layout: a
// 12-byte header, fixed 24-byte directory records with absolute offsets,
// then the body.
package bheader

type (
	Header struct {
		MagicNumber     []byte `json:"magic_number"`
		EntryCount      uint32 `json:"entry_count"`
		EntryRecordSize uint32 `json:"entry_record_size"`
	}
	Entry struct {
		Offset uint32 `json:"offset"`
		Size   uint32 `json:"size"`
		Name   string `json:"name"`
	}
)

const (
	MaxNameLength     = 16
	DefaultEntrySize  = 4 + 4 + MaxNameLength
	DefaultHeaderSize = 12
)

var (
	MagicNumberBytes = []byte("asse")
)
