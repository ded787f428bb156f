package auth

import (
	"errors"
	"time"

	"github.com/dmitrymomot/anihub/pkg/jwt"
)

// DefaultSessionTTL is the lifetime of a session token.
const DefaultSessionTTL = 7 * 24 * time.Hour

// TokenIssuer signs and verifies session tokens.
type TokenIssuer interface {
	Issue(c Claims) (token string, expiresAt time.Time, err error)
	Verify(token string) (Claims, error)
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// JWTIssuer issues HS256 session tokens with a fixed lifetime.
type JWTIssuer struct {
	jwt *jwt.Service
	ttl time.Duration
	now func() time.Time
}

// IssuerOption configures a JWTIssuer.
type IssuerOption func(*JWTIssuer)

// WithSessionTTL sets the session lifetime. Non-positive values keep
// DefaultSessionTTL.
func WithSessionTTL(ttl time.Duration) IssuerOption {
	return func(i *JWTIssuer) {
		if ttl > 0 {
			i.ttl = ttl
		}
	}
}

// WithIssuerClock replaces time.Now for issuing and validating tokens.
func WithIssuerClock(now func() time.Time) IssuerOption {
	return func(i *JWTIssuer) {
		if now != nil {
			i.now = now
		}
	}
}

// NewJWTIssuer creates an issuer signing with secret. It fails when the
// secret is empty.
func NewJWTIssuer(secret string, opts ...IssuerOption) (*JWTIssuer, error) {
	i := &JWTIssuer{ttl: DefaultSessionTTL, now: time.Now}
	for _, opt := range opts {
		opt(i)
	}

	svc, err := jwt.NewFromString(secret, jwt.WithClock(func() time.Time { return i.now() }))
	if err != nil {
		return nil, err
	}
	i.jwt = svc
	return i, nil
}

func (i *JWTIssuer) Issue(c Claims) (string, time.Time, error) {
	now := i.now()
	exp := now.Add(i.ttl)

	token, err := i.jwt.Generate(sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Email: c.Email,
	})
	if err != nil {
		return "", time.Time{}, err
	}
	return token, exp, nil
}

func (i *JWTIssuer) Verify(token string) (Claims, error) {
	var sc sessionClaims
	if err := i.jwt.Parse(token, &sc); err != nil {
		return Claims{}, errors.Join(ErrInvalidSession, err)
	}
	if sc.Subject == "" {
		return Claims{}, ErrInvalidSession
	}

	c := Claims{Subject: sc.Subject, Email: sc.Email}
	if sc.ExpiresAt != nil {
		c.ExpiresAt = sc.ExpiresAt.Time
	}
	return c, nil
}
