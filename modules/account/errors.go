package account

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/anihub/handler"
	"github.com/dmitrymomot/anihub/svc/auth"
)

var (
	ErrMissingState = errors.New("account: oauth state cookie missing")
	ErrInvalidState = errors.New("account: oauth state mismatch")
)

// messages are shown to end users, keyed by auth.ErrorKind.
var messages = map[string]string{
	"validation":          "Some of the submitted details are invalid",
	"conflict":            "An account with these details already exists",
	"not_found":           "No account found for the given details",
	"invalid_credentials": "Invalid email or password",
	"unverified":          "Your email is not verified yet. Check your inbox for the verification link",
	"expired":             "The verification link has expired. Request a new one",
	"already_verified":    "This account is already verified",
	"dispatch_failed":     "We could not send the verification email. Try again later",
	"invalid_session":     "Your session is invalid or has expired",
	"provider":            "Sign-in with the identity provider failed",
}

// ClassifyError maps auth errors onto HTTP responses. It is registered
// with handler.NewErrorHandler.
func ClassifyError(err error) (handler.ErrorInfo, bool) {
	switch {
	case errors.Is(err, auth.ErrPasswordMismatch):
		return badRequest("Passwords do not match"), true
	case errors.Is(err, auth.ErrEmailTaken):
		return badRequest("This email is already registered"), true
	case errors.Is(err, auth.ErrNameTaken):
		return badRequest("This name is already in use"), true
	case errors.Is(err, auth.ErrTokenNotFound):
		return badRequest("The verification link is invalid or was already used"), true
	case errors.Is(err, auth.ErrNoProviderEmail):
		return badRequest("The identity provider did not share an email address"), true
	case errors.Is(err, ErrMissingState), errors.Is(err, ErrInvalidState):
		return badRequest("The sign-in request is invalid or has expired. Start again"), true
	}

	kind := auth.ErrorKind(err)
	msg, ok := messages[kind]
	if !ok {
		return handler.ErrorInfo{}, false
	}

	switch kind {
	case "dispatch_failed":
		return handler.ErrorInfo{StatusCode: http.StatusInternalServerError, Message: msg}, true
	case "invalid_session":
		return handler.ErrorInfo{StatusCode: http.StatusUnauthorized, Message: msg}, true
	case "provider":
		return handler.ErrorInfo{StatusCode: http.StatusBadGateway, Message: msg}, true
	}
	return badRequest(msg), true
}

func badRequest(msg string) handler.ErrorInfo {
	return handler.ErrorInfo{StatusCode: http.StatusBadRequest, Message: msg}
}
