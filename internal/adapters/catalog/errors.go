package catalog

import "errors"

// Sentinel kinds for catalog client errors.
var (
	ErrNotFound    = errors.New("catalog record not found")
	ErrUnavailable = errors.New("catalog service unavailable")
)
