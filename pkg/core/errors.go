package core

import "errors"

// Common errors.
var (
	ErrReadOnly     = errors.New("repository is in read-only mode")
	ErrNotFound     = errors.New("slot not found")
	ErrUnknownAxis  = errors.New("unknown axis")
	ErrInvalidSound = errors.New("invalid sound definition")
	ErrBuiltinSound = errors.New("sound id is reserved by the built-in catalog")

	ErrMalformedSnapshot = errors.New("malformed snapshot")
)
