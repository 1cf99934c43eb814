package lbytes

import (
	"encoding/binary"
)

func EncodeUint32(value uint32) []byte {
	bs := make([]byte, 4)
	binary.LittleEndian.PutUint32(bs, value)
	return bs
}

func CreateZeroBytes(n int) []byte {
	return make([]byte, n)
}

// EncodeFixedString lays s out in a slot of width bytes, padding with zero
// bytes. Callers validate the length first; an oversized s is an error here
// rather than a silent cut.
func EncodeFixedString(s string, width int) ([]byte, error) {
	if len(s) > width {
		return nil, ErrSlotOverflow{Value: s, Width: width}
	}
	bs := make([]byte, width)
	copy(bs, s)
	return bs, nil
}
