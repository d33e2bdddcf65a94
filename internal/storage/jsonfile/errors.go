package jsonfile

import "errors"

// Common store errors.
var (
	// ErrNotFound is returned when the backing file does not exist.
	ErrNotFound = errors.New("document file not found")
)

// IsNotFound reports whether err means the backing file is absent.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
