package domain

import (
	"errors"
	"time"
)

// Account is a login identity. The plaintext password is never stored;
// only the salted bcrypt digest is persisted.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Authentication domain errors. The handler layer maps these to the exact
// client-facing messages; the distinction between ErrUserNotFound and
// ErrInvalidPassword is intentional and mirrored in the API responses.
var (
	ErrMissingField    = errors.New("email and password are required")
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
)
