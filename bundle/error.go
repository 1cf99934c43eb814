package bundle

import (
	"fmt"
)

type (
	ErrSourceRead struct {
		Name string
		Path string
		Err  error
	}
	ErrNameTooLong struct {
		Name      string
		Schema    Schema
		MaxLength int
	}
	ErrInvalidName struct {
		Name   string
		Reason string
	}
	ErrDuplicateName struct {
		Name        string
		FirstIndex  int
		SecondIndex int
	}
	ErrSizeOverflow struct {
		Caller string
		Size   uint64
	}
	ErrUnknownSchema struct {
		Schema string
	}
	ErrAttachUnsupported struct {
		Schema Schema
	}
	ErrDestinationWrite struct {
		Path string
		Err  error
	}
	ErrCorruptBundle struct {
		Schema Schema
		Reason string
		Err    error
	}
	ErrEntryNotFound struct {
		Name string
	}
)

func (r ErrSourceRead) Error() string {
	return fmt.Sprintf(`cannot read source "%s" for entry "%s": %v`, r.Path, r.Name, r.Err)
}

func (r ErrSourceRead) Unwrap() error {
	return r.Err
}

func (r ErrNameTooLong) Error() string {
	return fmt.Sprintf(
		`name "%s" is %d bytes, %s allows at most %d`,
		r.Name, len(r.Name), r.Schema, r.MaxLength,
	)
}

func (r ErrInvalidName) Error() string {
	return fmt.Sprintf(`invalid name %q: %s`, r.Name, r.Reason)
}

func (r ErrDuplicateName) Error() string {
	return fmt.Sprintf(
		`name "%s" used by entries %d and %d`,
		r.Name, r.FirstIndex, r.SecondIndex,
	)
}

func (r ErrSizeOverflow) Error() string {
	return fmt.Sprintf("%s: %d does not fit in 32 bits", r.Caller, r.Size)
}

func (r ErrUnknownSchema) Error() string {
	return fmt.Sprintf(`unknown schema "%s": expected one of %v`, r.Schema, Schemas)
}

func (r ErrAttachUnsupported) Error() string {
	return fmt.Sprintf("%s uses absolute offsets and cannot be attached to another file", r.Schema)
}

func (r ErrDestinationWrite) Error() string {
	return fmt.Sprintf(`cannot write bundle to "%s": %v`, r.Path, r.Err)
}

func (r ErrDestinationWrite) Unwrap() error {
	return r.Err
}

func (r ErrCorruptBundle) Error() string {
	msg := "corrupt bundle"
	if r.Schema != "" {
		msg = fmt.Sprintf("corrupt %s bundle", r.Schema)
	}
	if r.Err != nil {
		return fmt.Sprintf("%s: %s: %v", msg, r.Reason, r.Err)
	}
	return fmt.Sprintf("%s: %s", msg, r.Reason)
}

func (r ErrCorruptBundle) Unwrap() error {
	return r.Err
}

func (r ErrEntryNotFound) Error() string {
	return fmt.Sprintf(`no entry named "%s"`, r.Name)
}
