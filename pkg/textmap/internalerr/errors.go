package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrNotFitted       = errors.New("not fitted")
)
