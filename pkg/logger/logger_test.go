package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/anihub/pkg/logger"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("production writes json with service tag", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment("prod", "anihub"), logger.WithOutput(buf))

		log.Debug("hidden")
		assert.Empty(t, buf.String())

		log.Info("hello")
		entry := decode(t, buf)
		assert.Equal(t, "anihub", entry["service"])
		assert.Equal(t, "production", entry["env"])
	})

	t.Run("development writes text at debug", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment("", "anihub"), logger.WithOutput(buf))

		log.Debug("details")
		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), "env=development")
	})

	t.Run("level name overrides environment default", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		opts := logger.FromConfig(logger.Config{Env: "production", Service: "anihub", Level: "warn"})
		log := logger.New(append(opts, logger.WithOutput(buf))...)

		log.Info("dropped")
		assert.Empty(t, buf.String())
		log.Warn("kept")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("invalid format panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
	})
}

func TestContextExtractors(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithContextExtractors(nil, logger.RequestIDExtractor()),
	)

	var handled bool
	h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handled = true
		log.InfoContext(r.Context(), "in request")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.True(t, handled)

	entry := decode(t, buf)
	assert.NotEmpty(t, entry["request_id"])

	buf.Reset()
	log.InfoContext(context.Background(), "outside")
	_, ok := decode(t, buf)["request_id"]
	assert.False(t, ok)
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")
	assert.Equal(t, err, logger.Error(err).Value.Any())
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.True(t, logger.AccountID(nil).Equal(slog.Attr{}))
	assert.Equal(t, "account_id", logger.AccountID("a1").Key)
	assert.Equal(t, "signup", logger.Operation("signup").Value.String())
}
