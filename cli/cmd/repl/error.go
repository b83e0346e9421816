package repl

import "errors"

// Sentinel errors.
var (
	ErrOutOfBounds    = errors.New("index out of range")
	ErrBadOutcome     = errors.New("outcome is not an integer")
	ErrUnknownCommand = errors.New("unknown command")
)
