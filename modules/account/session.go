package account

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrymomot/anihub/handler"
	"github.com/dmitrymomot/anihub/pkg/cookie"
	"github.com/dmitrymomot/anihub/pkg/jwt"
	"github.com/dmitrymomot/anihub/svc/auth"
)

// Sessions moves session tokens in and out of the session cookie.
type Sessions struct {
	cfg     Config
	cookies *cookie.Manager
}

// NewSessions uses cookies for attributes and cfg for the cookie name and
// max age. Pass a Manager built with cookie.ForBaseURL(cfg.AppURL).
func NewSessions(cfg Config, cookies *cookie.Manager) *Sessions {
	if cookies == nil {
		cookies = cookie.New(cookie.ForBaseURL(cfg.AppURL))
	}
	return &Sessions{cfg: cfg, cookies: cookies}
}

// Start writes the session cookie.
func (s *Sessions) Start(w http.ResponseWriter, sess auth.Session) {
	s.cookies.Set(w, s.cfg.SessionCookie, sess.Token, cookie.WithMaxAge(int(s.cfg.SessionMaxAge.Seconds())))
}

// End clears the session cookie. The token itself stays valid until it expires.
func (s *Sessions) End(w http.ResponseWriter) {
	s.cookies.Delete(w, s.cfg.SessionCookie)
}

// Guard rejects requests without a valid session cookie and stores the
// auth.Claims in the request context.
func (s *Sessions) Guard(verifier SessionVerifier, errorHandler handler.ErrorHandler[handler.Context]) func(http.Handler) http.Handler {
	return jwt.MiddlewareWithConfig(jwt.MiddlewareConfig{
		Extractor: jwt.CookieTokenExtractor(s.cfg.SessionCookie),
		Verify: func(ctx context.Context, token string) (any, error) {
			return verifier.Authenticate(ctx, token)
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			if !errors.Is(err, auth.ErrInvalidSession) {
				err = errors.Join(auth.ErrInvalidSession, err)
			}
			errorHandler(handler.NewContext(w, r), err)
		},
	})
}

// ClaimsFromContext returns the claims stored by Guard.
func ClaimsFromContext(ctx context.Context) (auth.Claims, bool) {
	return jwt.GetClaims[auth.Claims](ctx)
}
