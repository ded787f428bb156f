package account

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/anihub/handler"
	"github.com/dmitrymomot/anihub/pkg/binder"
	"github.com/dmitrymomot/anihub/pkg/cookie"
	"github.com/dmitrymomot/anihub/pkg/logger"
	"github.com/dmitrymomot/anihub/pkg/token"
	"github.com/dmitrymomot/anihub/svc/auth"
)

type statePayload struct {
	Nonce string `json:"n"`
}

// OAuthService runs the redirect flow for one identity provider. The state
// parameter is a signed, expiring token that must match the state cookie.
type OAuthService struct {
	cfg          Config
	provider     IdentityProvider
	auth         OAuthAuthenticator
	sessions     *Sessions
	cookies      *cookie.Manager
	errorHandler handler.ErrorHandler[handler.Context]
	logger       *slog.Logger
	now          func() time.Time
}

type OAuthOption func(*OAuthService)

func WithOAuthLogger(l *slog.Logger) OAuthOption {
	return func(s *OAuthService) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithOAuthClock(now func() time.Time) OAuthOption {
	return func(s *OAuthService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewOAuthService(
	cfg Config,
	provider IdentityProvider,
	authenticator OAuthAuthenticator,
	sessions *Sessions,
	cookies *cookie.Manager,
	errorHandler handler.ErrorHandler[handler.Context],
	opts ...OAuthOption,
) *OAuthService {
	s := &OAuthService{
		cfg:          cfg,
		provider:     provider,
		auth:         authenticator,
		sessions:     sessions,
		cookies:      cookies,
		errorHandler: errorHandler,
		logger:       logger.Discard(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Provider returns the provider name, used as the mount path.
func (s *OAuthService) Provider() string {
	return s.provider.Name()
}

func (s *OAuthService) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", handler.Wrap(s.start,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	r.Get("/callback", handler.Wrap(s.callback,
		handler.WithBinder[handler.Context, CallbackRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, CallbackRequest](s.errorHandler),
	))

	return r
}

func (s *OAuthService) start(ctx handler.Context, _ struct{}) handler.Response {
	state, err := s.newState()
	if err != nil {
		return handler.Fail(err)
	}
	s.cookies.Set(ctx.ResponseWriter(), s.cfg.StateCookie, state, cookie.WithMaxAge(int(s.cfg.StateTTL.Seconds())))
	return handler.RedirectWithCode(s.provider.AuthURL(state), http.StatusFound)
}

func (s *OAuthService) callback(ctx handler.Context, req CallbackRequest) handler.Response {
	expected, err := s.cookies.Get(ctx.Request(), s.cfg.StateCookie)
	if err != nil {
		return handler.Fail(ErrMissingState)
	}
	s.cookies.Delete(ctx.ResponseWriter(), s.cfg.StateCookie)

	if err := s.checkState(req.State, expected); err != nil {
		return handler.Fail(err)
	}

	if req.Error != "" {
		return handler.Fail(fmt.Errorf("%w: %s", auth.ErrProviderFailed, req.Error))
	}

	profile, err := s.provider.Exchange(ctx, req.Code)
	if err != nil {
		return handler.Fail(err)
	}

	sess, err := s.auth.OAuthLogin(ctx, profile)
	if err != nil {
		return handler.Fail(err)
	}

	s.logger.InfoContext(ctx, "oauth sign-in",
		logger.Provider(s.provider.Name()),
		logger.AccountID(sess.Account.ID),
	)

	s.sessions.Start(ctx.ResponseWriter(), sess)
	return handler.RedirectWithCode(s.cfg.homeURL(), http.StatusFound)
}

func (s *OAuthService) newState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate oauth state: %w", err)
	}
	return token.Generate(statePayload{Nonce: hex.EncodeToString(b)}, s.cfg.StateSecret, s.now().Add(s.cfg.StateTTL))
}

func (s *OAuthService) checkState(got, expected string) error {
	if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
		return ErrInvalidState
	}
	if _, err := token.Parse[statePayload](got, s.cfg.StateSecret, s.now()); err != nil {
		return errors.Join(ErrInvalidState, err)
	}
	return nil
}
