package models

import "errors"

// Validation errors surfaced to callers before any simulation work.
var (
	ErrInvalidFilter   = errors.New("invalid match filter")
	ErrInvalidStrategy = errors.New("invalid strategy definition")
	ErrMatchNotFound   = errors.New("match not found")
)
