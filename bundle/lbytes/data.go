// Package lbytes reads and writes the little-endian, fixed-width fields that
// bundle directories are made of.
package lbytes

import (
	"bytes"
)

type (
	Reader struct {
		bytes.Reader
	}
	Instruction struct {
		Key          string
		ReadFunction ReadFunction
	}
	ReadFunction func() (any, error)
)
