package session

import "errors"

var (
	// ErrLoadState is returned when the persisted flag cannot be read.
	ErrLoadState = errors.New("session: failed to load state")
	// ErrSaveState is returned when the persisted flag cannot be written.
	ErrSaveState = errors.New("session: failed to save state")
)
