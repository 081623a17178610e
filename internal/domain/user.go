package domain

import (
	"errors"
	"time"
)

var (
	// ErrUserNotFound indicates that no user matches the requested id.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when a write would duplicate another user's email.
	ErrEmailTaken = errors.New("email already registered")
)

// User represents a stored user record. PasswordHash is never the plaintext.
type User struct {
	ID           string
	Nombre       string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser carries the fields supplied when registering a user.
type NewUser struct {
	Nombre   string
	Email    string
	Password string
}

// UserPatch describes a partial update. Nil fields are left untouched.
type UserPatch struct {
	Nombre   *string
	Email    *string
	Password *string
}

// UserChanges is the persistence-level counterpart of UserPatch, with the
// password already hashed.
type UserChanges struct {
	Nombre       *string
	Email        *string
	PasswordHash *string
}

// Empty reports whether the change set touches no column.
func (c UserChanges) Empty() bool {
	return c.Nombre == nil && c.Email == nil && c.PasswordHash == nil
}
