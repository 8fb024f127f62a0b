package repository

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist,
	// or exists but is hidden from the caller by an ownership filter.
	ErrNotFound = errors.New("record not found")
)
