package app

import "errors"

// Sentinel errors for common application errors
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrEmptyDocument   = errors.New("document has no content to export")
)
