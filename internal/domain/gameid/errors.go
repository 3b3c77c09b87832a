package gameid

import "errors"

// Sentinel kinds for identifier errors.
var (
	ErrInvalidSequence = errors.New("game number out of range")
	ErrInvalidKind     = errors.New("unknown game kind")
)
