package codec

import (
	"fmt"

	"github.com/ultimate-research/prc-rs/ir"
)

// DecodeError reports malformed binary input and the byte offset where it was
// found.
type DecodeError struct {
	Offset int
	Msg    string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed param data at %#x: %s", e.Offset, e.Msg)
}

func (e *DecodeError) Unwrap() error {
	return ir.ErrMalformedInput
}

func errAt(off int, format string, args ...any) error {
	return &DecodeError{Offset: off, Msg: fmt.Sprintf(format, args...)}
}
