package ports

import "errors"

// Adapters make their errors match these with errors.Is so callers can map
// them without importing the adapter.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)
