package gomap

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("param not found")
	ErrLength   = errors.New("wrong list length")
	ErrTarget   = errors.New("invalid target")
	ErrRange    = errors.New("value out of range")
)

// Error reports a failure to read the param at Path.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("gomap: %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func errAt(path string, err error) error {
	var ge *Error
	if errors.As(err, &ge) {
		return err
	}
	return &Error{Path: path, Err: err}
}
