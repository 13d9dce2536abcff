package domain

import "time"

// Account is a locally managed credential, used when the server is its own
// identity provider instead of Firebase Auth.
type Account struct {
	UID          string
	Email        string
	PasswordHash string
	Admin        bool
	CreatedAt    time.Time
}
