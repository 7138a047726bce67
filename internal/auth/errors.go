package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the base class for rejected registration input.
	ErrValidation = errors.New("invalid input")

	// ErrMissingFields wraps ErrValidation for blank form fields.
	ErrMissingFields = fmt.Errorf("%w: all fields are required", ErrValidation)

	// ErrPasswordMismatch wraps ErrValidation for a confirmation that does
	// not match the password.
	ErrPasswordMismatch = fmt.Errorf("%w: passwords must match", ErrValidation)

	// ErrBadCredentials covers both an unknown username and a wrong
	// password. Callers must not tell the two apart in anything shown to
	// the user.
	ErrBadCredentials = errors.New("username or password incorrect")

	// ErrUnknownUser wraps ErrBadCredentials when no user row matched.
	ErrUnknownUser = fmt.Errorf("%w: unknown user", ErrBadCredentials)
)
