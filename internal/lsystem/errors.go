package lsystem

import "errors"

var (
	// ErrInvalidAlphabet indicates the axiom or rules use symbols outside the
	// declared alphabet, or the alphabet itself is inconsistent.
	ErrInvalidAlphabet = errors.New("lsystem: invalid alphabet")
	// ErrInvalidConfig indicates a negative step budget or step interval.
	ErrInvalidConfig = errors.New("lsystem: invalid configuration")
)
