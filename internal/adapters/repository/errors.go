package repository

import "errors"

// Sentinel kinds for profile store errors.
var (
	ErrNotFound     = errors.New("user not found")
	ErrCorruptStore = errors.New("profile store file is corrupt")
	ErrInvalidAge   = errors.New("age must be an integer")
	ErrFlush        = errors.New("store flush failed")
)
