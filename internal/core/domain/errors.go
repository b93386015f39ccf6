package domain

import "errors"

// Input and lookup errors.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrContactNotFound = errors.New("contact not found")
	ErrClientNotFound  = errors.New("client not found")
)

// Invitation sub-flow errors. ErrWrongCredential means the operator typed a
// bad password and should be re-prompted; ErrVerifierUnavailable means the
// credential check itself could not run.
var (
	ErrWrongCredential     = errors.New("wrong credential")
	ErrVerifierUnavailable = errors.New("credential verifier unavailable")
	ErrInviteFailed        = errors.New("invitation failed")
)

// Account errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrForbidden          = errors.New("access forbidden")
)
