package binder_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/anihub/pkg/binder"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func jsonRequest(body, contentType string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("valid body", func(t *testing.T) {
		t.Parallel()
		var got loginRequest
		err := binder.JSON()(jsonRequest(`{"email":"a@b.co","password":"Secret1!"}`, "application/json; charset=utf-8"), &got)
		require.NoError(t, err)
		assert.Equal(t, loginRequest{Email: "a@b.co", Password: "Secret1!"}, got)
	})

	tests := []struct {
		name        string
		body        string
		contentType string
		want        error
	}{
		{name: "missing content type", body: `{}`, want: binder.ErrMissingContentType},
		{name: "wrong media type", body: `{}`, contentType: "text/plain", want: binder.ErrUnsupportedMediaType},
		{name: "empty body", body: ``, contentType: "application/json", want: binder.ErrFailedToParseJSON},
		{name: "malformed", body: `{"email":`, contentType: "application/json", want: binder.ErrFailedToParseJSON},
		{name: "unknown field", body: `{"role":"admin"}`, contentType: "application/json", want: binder.ErrFailedToParseJSON},
		{name: "trailing data", body: `{"email":"a@b.co"}{}`, contentType: "application/json", want: binder.ErrFailedToParseJSON},
		{name: "type mismatch", body: `{"email":42}`, contentType: "application/json", want: binder.ErrFailedToParseJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got loginRequest
			err := binder.JSON()(jsonRequest(tt.body, tt.contentType), &got)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("body too large", func(t *testing.T) {
		t.Parallel()
		body := `{"email":"` + strings.Repeat("a", binder.DefaultMaxJSONSize) + `"}`
		var got loginRequest
		err := binder.JSON()(jsonRequest(body, "application/json"), &got)
		assert.ErrorIs(t, err, binder.ErrFailedToParseJSON)
	})
}

func TestQuery(t *testing.T) {
	t.Parallel()

	type verifyRequest struct {
		Token    string   `query:"token"`
		Scopes   []string `query:"scope"`
		Page     int      `query:"page"`
		Internal string   `query:"-"`
	}

	t.Run("binds values", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/auth/verify-email?token=abc&scope=email,profile&page=2&Internal=x", nil)
		var got verifyRequest
		require.NoError(t, binder.Query()(req, &got))
		assert.Equal(t, "abc", got.Token)
		assert.Equal(t, []string{"email", "profile"}, got.Scopes)
		assert.Equal(t, 2, got.Page)
		assert.Empty(t, got.Internal)
	})

	t.Run("invalid int", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/?page=two", nil)
		var got verifyRequest
		assert.ErrorIs(t, binder.Query()(req, &got), binder.ErrFailedToParseQuery)
	})

	t.Run("non pointer target", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.ErrorIs(t, binder.Query()(req, verifyRequest{}), binder.ErrFailedToParseQuery)
	})

	t.Run("repeated slice values and untagged fields", func(t *testing.T) {
		t.Parallel()
		type request struct {
			Scopes []string `query:"scope"`
			State  string
		}
		req := httptest.NewRequest(http.MethodGet, "/?scope=email&scope=openid,+profile&State=x", nil)
		var got request
		require.NoError(t, binder.Query()(req, &got))
		assert.Equal(t, []string{"email", "openid", "profile"}, got.Scopes)
		assert.Empty(t, got.State)
	})

	t.Run("unsupported kind", func(t *testing.T) {
		t.Parallel()
		type request struct {
			Remember bool `query:"remember"`
		}
		req := httptest.NewRequest(http.MethodGet, "/?remember=true", nil)
		var got request
		assert.ErrorIs(t, binder.Query()(req, &got), binder.ErrFailedToParseQuery)
	})
}

func TestPath(t *testing.T) {
	t.Parallel()

	type accountRequest struct {
		ID      string `path:"id"`
		Version int    `path:"version"`
	}

	params := map[string]string{"id": "acc-1", "version": "3"}
	extractor := func(_ *http.Request, name string) string { return params[name] }

	t.Run("binds values", func(t *testing.T) {
		t.Parallel()
		var got accountRequest
		require.NoError(t, binder.Path(extractor)(httptest.NewRequest(http.MethodGet, "/", nil), &got))
		assert.Equal(t, accountRequest{ID: "acc-1", Version: 3}, got)
	})

	t.Run("nil extractor", func(t *testing.T) {
		t.Parallel()
		var got accountRequest
		err := binder.Path(nil)(httptest.NewRequest(http.MethodGet, "/", nil), &got)
		assert.ErrorIs(t, err, binder.ErrFailedToParsePath)
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Parallel()
		bad := func(_ *http.Request, name string) string {
			if name == "version" {
				return "v3"
			}
			return ""
		}
		var got accountRequest
		err := binder.Path(bad)(httptest.NewRequest(http.MethodGet, "/", nil), &got)
		assert.ErrorIs(t, err, binder.ErrFailedToParsePath)
	})
}
