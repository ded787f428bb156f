package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Re-exported so callers do not need to import the underlying library.
type (
	Claims           = gojwt.Claims
	RegisteredClaims = gojwt.RegisteredClaims
	MapClaims        = gojwt.MapClaims
	NumericDate      = gojwt.NumericDate
)

// NewNumericDate truncates t to whole seconds.
func NewNumericDate(t time.Time) *NumericDate {
	return gojwt.NewNumericDate(t)
}

// Service signs and verifies HS256 tokens with a single key.
type Service struct {
	signingKey []byte
	now        func() time.Time
	leeway     time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLeeway tolerates small clock skew on exp and nbf.
func WithLeeway(d time.Duration) Option {
	return func(s *Service) { s.leeway = d }
}

func New(signingKey []byte, opts ...Option) (*Service, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}
	s := &Service{signingKey: signingKey, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func NewFromString(signingKey string, opts ...Option) (*Service, error) {
	return New([]byte(signingKey), opts...)
}

// Generate signs claims. Callers are responsible for setting exp.
func (s *Service) Generate(claims Claims) (string, error) {
	if claims == nil {
		return "", ErrMissingClaims
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}
	return token, nil
}

// Parse verifies the signature and time-based claims of token and decodes it
// into claims, which must be a pointer.
func (s *Service) Parse(token string, claims Claims) error {
	if claims == nil {
		return ErrMissingClaims
	}
	if token == "" {
		return ErrMissingToken
	}

	parsed, err := gojwt.ParseWithClaims(token, claims, s.keyFunc,
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithTimeFunc(s.now),
		gojwt.WithLeeway(s.leeway),
		gojwt.WithIssuedAt(),
	)
	switch {
	case err == nil && parsed.Valid:
		return nil
	case errors.Is(err, gojwt.ErrTokenExpired):
		return ErrExpiredToken
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
		return ErrInvalidSignature
	case err != nil:
		return errors.Join(ErrInvalidToken, err)
	default:
		return ErrInvalidToken
	}
}

func (s *Service) keyFunc(*gojwt.Token) (any, error) {
	return s.signingKey, nil
}
