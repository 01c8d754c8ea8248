package ports

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrWorldUnavailable = errors.New("world unavailable")
)
