package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/anihub/pkg/binder"
	"github.com/dmitrymomot/anihub/pkg/logger"
	"github.com/dmitrymomot/anihub/pkg/validator"
)

// ErrorInfo is the classified form of an error.
type ErrorInfo struct {
	StatusCode int
	Message    string
	Details    map[string][]string
}

// Classifier maps domain errors onto ErrorInfo. It reports false for
// errors it does not recognize.
type Classifier func(err error) (ErrorInfo, bool)

func isClientError(statusCode int) bool {
	return statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError
}

func determineLogLevel(statusCode int) slog.Level {
	if isClientError(statusCode) {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// classifyError tries classifiers first, then the package's own error types.
func classifyError(err error, classifiers []Classifier) ErrorInfo {
	for _, classify := range classifiers {
		if info, ok := classify(err); ok {
			return info
		}
	}

	if ve := validator.ExtractValidationErrors(err); ve != nil {
		return ErrorInfo{
			StatusCode: http.StatusBadRequest,
			Message:    "validation failed",
			Details:    ve.Map(),
		}
	}

	switch {
	case errors.Is(err, binder.ErrMissingContentType), errors.Is(err, binder.ErrUnsupportedMediaType):
		return ErrorInfo{StatusCode: http.StatusUnsupportedMediaType, Message: "expected application/json"}
	case errors.Is(err, binder.ErrFailedToParseJSON),
		errors.Is(err, binder.ErrFailedToParseQuery),
		errors.Is(err, binder.ErrFailedToParsePath):
		return ErrorInfo{StatusCode: http.StatusBadRequest, Message: "malformed request"}
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return ErrorInfo{StatusCode: httpErr.Code, Message: http.StatusText(httpErr.Code)}
	}

	return ErrorInfo{StatusCode: http.StatusInternalServerError, Message: "internal server error"}
}

func writeError(w http.ResponseWriter, info ErrorInfo) {
	_ = writeJSON(w, info.StatusCode, ErrorBody{Message: info.Message, Errors: info.Details})
}

// NewErrorHandler returns an ErrorHandler that classifies err, logs it with
// the request's method and path, and writes an ErrorBody.
// Configure it once at startup and share it between routes.
func NewErrorHandler(log *slog.Logger, classifiers ...Classifier) ErrorHandler[Context] {
	if log == nil {
		log = logger.Discard()
	}

	return func(ctx Context, err error) {
		info := classifyError(err, classifiers)
		r := ctx.Request()

		log.LogAttrs(r.Context(), determineLogLevel(info.StatusCode), "request error",
			logger.Error(err),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		writeError(ctx.ResponseWriter(), info)
	}
}
