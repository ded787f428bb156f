package auth

import (
	"errors"
	"fmt"
)

var (
	ErrValidation       = errors.New("auth: invalid input")
	ErrPasswordMismatch = fmt.Errorf("%w: passwords do not match", ErrValidation)

	ErrConflict   = errors.New("auth: account already exists")
	ErrEmailTaken = fmt.Errorf("%w: email is already registered", ErrConflict)
	ErrNameTaken  = fmt.Errorf("%w: name is already in use", ErrConflict)

	ErrAccountNotFound    = errors.New("auth: account not found")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrUnverified         = errors.New("auth: email is not verified")
	ErrAlreadyVerified    = errors.New("auth: account is already verified")

	ErrTokenNotFound = errors.New("auth: verification token not found")
	ErrTokenExpired  = errors.New("auth: verification token expired")

	ErrDispatchFailed = errors.New("auth: failed to send verification email")
	ErrInvalidSession = errors.New("auth: invalid session token")

	ErrProviderFailed  = errors.New("auth: identity provider exchange failed")
	ErrNoProviderEmail = errors.New("auth: identity provider returned no email")

	ErrIllegalTransition = errors.New("auth: illegal account state transition")
)

// ErrorKind returns a stable, low-cardinality label for err. It is used for
// metrics and maps one-to-one onto the HTTP error responses.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrTokenNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrUnverified):
		return "unverified"
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrAlreadyVerified):
		return "already_verified"
	case errors.Is(err, ErrDispatchFailed):
		return "dispatch_failed"
	case errors.Is(err, ErrInvalidSession):
		return "invalid_session"
	case errors.Is(err, ErrProviderFailed), errors.Is(err, ErrNoProviderEmail):
		return "provider"
	default:
		return "error"
	}
}
