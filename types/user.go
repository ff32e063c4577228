package types

import "time"

// User represents an account in the system.
type User struct {
	// ID is the unique identifier of the user, assigned by the store.
	ID int `json:"id" db:"id"`

	// Name is the user's display name.
	Name string `json:"name" db:"name"`

	// Email is the user's email address. Uniqueness is enforced by the
	// registration flow, not by a database constraint.
	Email string `json:"email" db:"email"`

	// PasswordHash stores the hashed representation of the user's password.
	// The plaintext password is never persisted.
	PasswordHash string `json:"-" db:"password_hash"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
