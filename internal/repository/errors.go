package repository

import "errors"

var (
	// ErrInvalidImageRef indicates an invalid image reference
	ErrInvalidImageRef = errors.New("invalid image reference")

	// ErrImageNotFound indicates the image was not found
	ErrImageNotFound = errors.New("image not found")

	// ErrHistoryUnavailable indicates the history database is unavailable
	ErrHistoryUnavailable = errors.New("history database unavailable")
)
