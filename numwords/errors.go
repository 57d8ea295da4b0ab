package numwords

import "errors"

var (
	// ErrNegative is returned for numbers below zero.
	ErrNegative = errors.New("negative numbers are not supported")

	// ErrOverflow is returned when a number needs more groups than the scale table names.
	ErrOverflow = errors.New("number too large")

	// ErrMalformed is returned when a textual number or amount cannot be parsed.
	ErrMalformed = errors.New("malformed number")

	// ErrGroupOutOfRange is returned by DisassembleGroup for values outside 0..999.
	ErrGroupOutOfRange = errors.New("group out of range")

	// ErrEmptyGroup is returned by GenerateWordsForGroup for an empty element list.
	ErrEmptyGroup = errors.New("empty group")

	// ErrUnknownElement means a lookup key has no base word. Decomposition never
	// produces such keys, so seeing it points to a caller-built element list.
	ErrUnknownElement = errors.New("unknown group element")
)
