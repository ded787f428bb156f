package account_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/anihub/handler"
	"github.com/dmitrymomot/anihub/modules/account"
	"github.com/dmitrymomot/anihub/pkg/cookie"
	"github.com/dmitrymomot/anihub/svc/auth"
	"github.com/dmitrymomot/anihub/svc/auth/memory"
)

const testPassword = "Passw0rd!"

type outbox struct {
	mu     sync.Mutex
	tokens []string
	err    error
}

func (o *outbox) SendVerification(_ context.Context, _ auth.Account, raw string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return o.err
	}
	o.tokens = append(o.tokens, raw)
	return nil
}

func (o *outbox) last(t *testing.T) string {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.tokens, "no verification link was sent")
	return o.tokens[len(o.tokens)-1]
}

func (o *outbox) fail(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.err = err
}

type fakeProvider struct {
	profile auth.Profile
	err     error
	codes   []string
}

func (p *fakeProvider) Name() string { return "google" }

func (p *fakeProvider) AuthURL(state string) string {
	return "https://accounts.example.com/o/oauth2/auth?state=" + url.QueryEscape(state)
}

func (p *fakeProvider) Exchange(_ context.Context, code string) (auth.Profile, error) {
	p.codes = append(p.codes, code)
	return p.profile, p.err
}

type fixture struct {
	cfg      account.Config
	svc      *auth.Service
	accounts *memory.AccountStore
	outbox   *outbox
	provider *fakeProvider
	router   http.Handler
}

type fixtureOption func(*fixtureOptions)

type fixtureOptions struct {
	appURL string
	now    func() time.Time
}

func withAppURL(u string) fixtureOption {
	return func(o *fixtureOptions) { o.appURL = u }
}

func withStateClock(now func() time.Time) fixtureOption {
	return func(o *fixtureOptions) { o.now = now }
}

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()

	o := fixtureOptions{appURL: "http://localhost:5173", now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := account.DefaultConfig()
	cfg.AppURL = o.appURL
	cfg.StateSecret = "state-secret"

	f := &fixture{
		cfg:      cfg,
		accounts: memory.NewAccountStore(),
		outbox:   &outbox{},
		provider: &fakeProvider{},
	}

	issuer, err := auth.NewJWTIssuer("test-signing-secret")
	require.NoError(t, err)

	f.svc = auth.NewService(
		f.accounts,
		auth.NewVerificationTokens(memory.NewTokenStore()),
		issuer,
		f.outbox,
		auth.WithHasher(auth.NewBcryptHasher(bcrypt.MinCost)),
	)

	cookies := cookie.New(cookie.ForBaseURL(cfg.AppURL))
	sessions := account.NewSessions(cfg, cookies)
	errHandler := handler.NewErrorHandler(nil, account.ClassifyError)

	f.router = account.Router(account.RouterOptions{
		Password: account.NewPasswordService(cfg, f.svc, sessions, errHandler),
		OAuth: []*account.OAuthService{
			account.NewOAuthService(cfg, f.provider, f.svc, sessions, cookies, errHandler, account.WithOAuthClock(o.now)),
		},
		Users: account.NewUsersService(f.svc, sessions, errHandler),
	})

	return f
}

func (f *fixture) do(t *testing.T, method, target string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, target, strings.NewReader(string(raw)))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) register(t *testing.T, name, email string) {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/auth/register", registerBody(name, email))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

// signIn registers and verifies an account and returns its session cookie.
func (f *fixture) signIn(t *testing.T, name, email string) *http.Cookie {
	t.Helper()
	f.register(t, name, email)
	rec := f.do(t, http.MethodGet, "/auth/verify-email?token="+url.QueryEscape(f.outbox.last(t)), nil)
	require.Equal(t, http.StatusFound, rec.Code, rec.Body.String())
	c := findCookie(rec, "jwt")
	require.NotNil(t, c)
	return c
}

func registerBody(name, email string) map[string]any {
	return map[string]any{
		"name":            name,
		"email":           email,
		"password":        testPassword,
		"confirmPassword": testPassword,
		"terms":           true,
	}
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

var errSMTPDown = errors.New("smtp: connection refused")
