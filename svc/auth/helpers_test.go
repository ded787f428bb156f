package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/anihub/svc/auth"
	"github.com/dmitrymomot/anihub/svc/auth/memory"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type sentLink struct {
	Account auth.Account
	Token   string
}

// outbox records verification links instead of sending them.
type outbox struct {
	mu   sync.Mutex
	sent []sentLink
	err  error
}

func (o *outbox) SendVerification(_ context.Context, acc auth.Account, raw string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return o.err
	}
	o.sent = append(o.sent, sentLink{Account: acc, Token: raw})
	return nil
}

func (o *outbox) Last(t *testing.T) sentLink {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.sent, "no verification link was sent")
	return o.sent[len(o.sent)-1]
}

func (o *outbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.sent)
}

type fixture struct {
	svc      *auth.Service
	accounts *memory.AccountStore
	tokens   *memory.TokenStore
	outbox   *outbox
	clock    *clock
	issuer   *auth.JWTIssuer
}

func newFixture(t *testing.T, opts ...auth.ServiceOption) *fixture {
	t.Helper()

	f := &fixture{
		accounts: memory.NewAccountStore(),
		tokens:   memory.NewTokenStore(),
		outbox:   &outbox{},
		clock:    newClock(),
	}

	issuer, err := auth.NewJWTIssuer("test-signing-secret", auth.WithIssuerClock(f.clock.Now))
	require.NoError(t, err)
	f.issuer = issuer

	verification := auth.NewVerificationTokens(f.tokens, auth.WithVerificationClock(f.clock.Now))
	opts = append([]auth.ServiceOption{
		auth.WithClock(f.clock.Now),
		auth.WithHasher(auth.NewBcryptHasher(bcrypt.MinCost)),
	}, opts...)

	f.svc = auth.NewService(f.accounts, verification, issuer, f.outbox, opts...)
	return f
}

func (f *fixture) register(t *testing.T, name, email, password string) auth.Account {
	t.Helper()
	require.NoError(t, f.svc.Register(context.Background(), auth.RegisterInput{
		Name:            name,
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
	}))
	acc, err := f.accounts.FindByEmail(context.Background(), email)
	require.NoError(t, err)
	return acc
}
