// Package bfooter encodes and decodes the footer-addressed bundle layout:
// fixed 264-byte directory records, the body, then a 16-byte footer that
// lets a reader find everything by seeking from the end of the file.
package bfooter

type (
	Entry struct {
		Name   string `json:"name"`
		Offset uint32 `json:"offset"`
		Size   uint32 `json:"size"`
	}
	Footer struct {
		MagicNumber     []byte `json:"magic_number"`
		DirectoryLength uint32 `json:"directory_length"`
		BodyLength      uint32 `json:"body_length"`
	}
)

const (
	MaxNameLength     = 256
	DefaultEntrySize  = MaxNameLength + 4 + 4
	DefaultFooterSize = 16
)

var (
	MagicNumberBytes = []byte("assets00")
)
