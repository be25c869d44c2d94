package ir

import (
	"errors"
)

var (
	// ErrMalformedInput is matched by every binary decoding failure.
	ErrMalformedInput = errors.New("malformed input")
	// ErrMalformedText is matched by every text parsing failure.
	ErrMalformedText = errors.New("malformed text")

	ErrType  = errors.New("type mismatch")
	ErrOwned = errors.New("node already has a parent")
	ErrCycle = errors.New("node is an ancestor of its new parent")
	ErrIndex = errors.New("index out of range")
	ErrPath  = errors.New("bad path")
)
