package services

import "errors"

var (
	// ErrEmailExists is returned when registering with an email that is
	// already taken.
	ErrEmailExists = errors.New("email already registered")

	// ErrNoSuchEmail is returned when authenticating with an unknown email.
	ErrNoSuchEmail = errors.New("no user with that email")

	// ErrBadPassword is returned when the password does not match the
	// stored hash.
	ErrBadPassword = errors.New("password mismatch")
)
