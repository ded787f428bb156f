package account_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/anihub/modules/account"
	"github.com/dmitrymomot/anihub/svc/auth"
)

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"password mismatch", auth.ErrPasswordMismatch, http.StatusBadRequest, "Passwords do not match"},
		{"bare validation", auth.ErrValidation, http.StatusBadRequest, "Some of the submitted details are invalid"},
		{"email taken", auth.ErrEmailTaken, http.StatusBadRequest, "This email is already registered"},
		{"name taken", auth.ErrNameTaken, http.StatusBadRequest, "This name is already in use"},
		{"bare conflict", auth.ErrConflict, http.StatusBadRequest, "An account with these details already exists"},
		{"wrapped conflict", fmt.Errorf("insert account: %w", auth.ErrConflict), http.StatusBadRequest, "An account with these details already exists"},
		{"token not found", auth.ErrTokenNotFound, http.StatusBadRequest, "The verification link is invalid or was already used"},
		{"dispatch failed", auth.ErrDispatchFailed, http.StatusInternalServerError, "We could not send the verification email. Try again later"},
		{"invalid session", auth.ErrInvalidSession, http.StatusUnauthorized, "Your session is invalid or has expired"},
		{"provider failed", auth.ErrProviderFailed, http.StatusBadGateway, "Sign-in with the identity provider failed"},
		{"invalid state", account.ErrInvalidState, http.StatusBadRequest, "The sign-in request is invalid or has expired. Start again"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			info, ok := account.ClassifyError(tt.err)
			assert.True(t, ok)
			assert.Equal(t, tt.code, info.StatusCode)
			assert.Equal(t, tt.message, info.Message)
		})
	}

	t.Run("unknown error is left to the default handler", func(t *testing.T) {
		t.Parallel()
		_, ok := account.ClassifyError(errors.New("boom"))
		assert.False(t, ok)
	})
}
