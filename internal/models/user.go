package models

import "time"

// User is an authenticated actor. Sync calls stamp created_by with the
// acting user's ID on records they create.
type User struct {
	CreatedAt    time.Time `json:"created_at"`
	ID           string    `json:"id"` // UUID
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // bcrypt hash, never serialized
}

// Device is one client installation. Tracked server-side so the status
// endpoint can report a real last-sync time per device.
type Device struct {
	LastPullAt *time.Time `json:"last_pull_at,omitempty"`
	ID         string     `json:"id"` // client-generated UUID, persisted for the install's lifetime
	UserID     string     `json:"user_id"`
}
