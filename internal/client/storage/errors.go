package storage

import "errors"

// Common client storage errors
var (
	// ErrRecordNotFound indicates that no record exists for a logical ID
	ErrRecordNotFound = errors.New("record not found")

	// ErrSessionNotFound indicates that no login session is stored
	ErrSessionNotFound = errors.New("session not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
