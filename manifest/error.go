package manifest

import (
	"fmt"
)

type (
	ErrUnknownFormat struct {
		Path string
	}
	ErrUnknownField struct {
		Field string
	}
	ErrInvalidValue struct {
		Field    string
		Expected string
		Actual   any
	}
)

func (r ErrUnknownFormat) Error() string {
	return fmt.Sprintf(`cannot tell manifest format of "%s": use .json, .yaml or .yml`, r.Path)
}

func (r ErrUnknownField) Error() string {
	return fmt.Sprintf(`unknown manifest field "%s"`, r.Field)
}

func (r ErrInvalidValue) Error() string {
	return fmt.Sprintf(`manifest field "%s" must be %s, got %T`, r.Field, r.Expected, r.Actual)
}
