package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrRecordNotFound indicates that a record was not found
	ErrRecordNotFound = errors.New("record not found")

	// ErrDeviceNotFound indicates that a device was never registered
	ErrDeviceNotFound = errors.New("device not found")
)
