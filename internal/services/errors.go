package services

import "errors"

var (
	// ErrInvalidCredentials is returned on any login failure. It is
	// deliberately the same for an unknown email and a wrong password so
	// the endpoint cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken means the credential is missing, malformed or fails
	// signature verification.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidID means an identifier is not syntactically valid; distinct
	// from a well-formed id that simply does not exist.
	ErrInvalidID = errors.New("invalid id")
)
