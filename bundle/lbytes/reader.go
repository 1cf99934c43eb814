package lbytes

import (
	"bytes"
	"encoding/binary"
	"io"
	"strings"

	"github.com/pkg/errors"
)

func NewBytesReader(bs []byte) *Reader {
	return &Reader{
		Reader: *bytes.NewReader(bs),
	}
}

func (b *Reader) ReadUint32() (uint32, error) {
	bs, err := b.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(bs), nil
}

// ReadBytes fails with io.ErrUnexpectedEOF when fewer than n bytes remain.
func (b *Reader) ReadBytes(n int) ([]byte, error) {
	bs := make([]byte, n)
	// a zero-length read at the end of the input is not an error
	if n == 0 {
		return bs, nil
	}
	if _, err := io.ReadFull(b, bs); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, errors.Wrapf(err, "ReadBytes error reading %d bytes", n)
	}
	return bs, nil
}

// ReadFixedString reads an n-byte slot and drops its zero padding.
func (b *Reader) ReadFixedString(n int) (string, error) {
	bs, err := b.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(bs), "\u0000"), nil
}
