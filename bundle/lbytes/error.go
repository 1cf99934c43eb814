package lbytes

import (
	"fmt"
)

type (
	ErrSlotOverflow struct {
		Value string
		Width int
	}
)

func (r ErrSlotOverflow) Error() string {
	return fmt.Sprintf(`value "%s" is %d bytes, slot holds %d`, r.Value, len(r.Value), r.Width)
}

type (
	ErrMagicNumberMismatch struct {
		Expected []byte
		Actual   []byte
	}
)

func (r ErrMagicNumberMismatch) Error() string {
	return fmt.Sprintf(`invalid magic number: expected "%s", got "%s"`, r.Expected, r.Actual)
}

type (
	ErrOutOfBounds struct {
		Caller string
		Need   int
		Have   int
	}
)

func (r ErrOutOfBounds) Error() string {
	return fmt.Sprintf("%s: need %d bytes, have %d", r.Caller, r.Need, r.Have)
}
