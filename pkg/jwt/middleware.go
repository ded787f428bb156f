package jwt

import (
	"context"
	"net/http"
	"strings"
)

// TokenExtractorFunc pulls the raw token out of a request.
type TokenExtractorFunc func(r *http.Request) (string, error)

// VerifyFunc turns a raw token into the claims value stored in the request
// context.
type VerifyFunc func(ctx context.Context, token string) (any, error)

// ErrorHandlerFunc writes the response for a rejected request.
type ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)

type MiddlewareConfig struct {
	// Service is used with MapClaims when Verify is nil.
	Service      *Service
	Verify       VerifyFunc
	Extractor    TokenExtractorFunc
	Skip         func(r *http.Request) bool
	ErrorHandler ErrorHandlerFunc
}

// Middleware authenticates bearer tokens with svc.
func Middleware(svc *Service) func(next http.Handler) http.Handler {
	return MiddlewareWithConfig(MiddlewareConfig{Service: svc})
}

// MiddlewareWithConfig panics when neither Service nor Verify is set.
func MiddlewareWithConfig(cfg MiddlewareConfig) func(next http.Handler) http.Handler {
	if cfg.Extractor == nil {
		cfg.Extractor = BearerTokenExtractor
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
		}
	}
	if cfg.Verify == nil {
		if cfg.Service == nil {
			panic("jwt: middleware requires a Service or a Verify func")
		}
		svc := cfg.Service
		cfg.Verify = func(_ context.Context, token string) (any, error) {
			claims := MapClaims{}
			if err := svc.Parse(token, claims); err != nil {
				return nil, err
			}
			return claims, nil
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			token, err := cfg.Extractor(r)
			if err != nil {
				cfg.ErrorHandler(w, r, err)
				return
			}

			claims, err := cfg.Verify(r.Context(), token)
			if err != nil {
				cfg.ErrorHandler(w, r, err)
				return
			}

			ctx := SetToken(r.Context(), token)
			ctx = SetClaims(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func BearerTokenExtractor(r *http.Request) (string, error) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || scheme != "Bearer" || token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

func CookieTokenExtractor(name string) TokenExtractorFunc {
	return func(r *http.Request) (string, error) {
		c, err := r.Cookie(name)
		if err != nil || c.Value == "" {
			return "", ErrMissingToken
		}
		return c.Value, nil
	}
}
