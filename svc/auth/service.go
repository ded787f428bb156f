package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/anihub/pkg/logger"
	"github.com/dmitrymomot/anihub/pkg/validator"
)

// MetricsRecorder receives the outcome of every operation.
type MetricsRecorder interface {
	ObserveOperation(operation, result string)
	ObserveDispatchFailure()
}

type noopMetrics struct{}

func (noopMetrics) ObserveOperation(string, string) {}
func (noopMetrics) ObserveDispatchFailure()         {}

// Service sequences the registration, verification and sign-in flows.
// It holds no session state; the stores are the consistency boundary.
type Service struct {
	accounts   AccountRepository
	tokens     VerificationStore
	issuer     TokenIssuer
	dispatcher Dispatcher
	hasher     Hasher
	reconciler *Reconciler
	logger     *slog.Logger
	metrics    MetricsRecorder
	now        func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records the outcome of every operation and each failed
// verification email.
func WithMetrics(m MetricsRecorder) ServiceOption {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithClock replaces time.Now for account timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithHasher replaces the bcrypt hasher at DefaultBcryptCost.
func WithHasher(h Hasher) ServiceOption {
	return func(s *Service) {
		if h != nil {
			s.hasher = h
		}
	}
}

// WithReconciler replaces the reconciler used by OAuthLogin. By default one
// is built over the account repository with the service logger.
func WithReconciler(r *Reconciler) ServiceOption {
	return func(s *Service) {
		s.reconciler = r
	}
}

// NewService creates the auth orchestrator. Nil options are ignored.
func NewService(accounts AccountRepository, tokens VerificationStore, issuer TokenIssuer, dispatcher Dispatcher, opts ...ServiceOption) *Service {
	s := &Service{
		accounts:   accounts,
		tokens:     tokens,
		issuer:     issuer,
		dispatcher: dispatcher,
		hasher:     NewBcryptHasher(DefaultBcryptCost),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics:    noopMetrics{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.reconciler == nil {
		s.reconciler = NewReconciler(accounts, WithReconcilerLogger(s.logger))
	}
	return s
}

// Register creates a pending account and sends it a verification link.
//
// If the link cannot be delivered the account and its token are kept and
// ErrDispatchFailed is returned; ResendVerification recovers from that.
func (s *Service) Register(ctx context.Context, in RegisterInput) (err error) {
	defer s.observe("register", &err)

	if in.Password != in.ConfirmPassword {
		return ErrPasswordMismatch
	}
	email := validator.NormalizeEmail(in.Email)
	name := validator.NormalizeName(in.Name)
	if email == "" || name == "" || in.Password == "" {
		return ErrValidation
	}

	existing, err := s.accounts.FindByEmailOrName(ctx, email, name)
	switch {
	case err == nil:
		if existing.Email == email {
			return ErrEmailTaken
		}
		return ErrNameTaken
	case !errors.Is(err, ErrAccountNotFound):
		return fmt.Errorf("check existing account: %w", err)
	}

	if _, err := Transition(StateOf(nil), EventRegister); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	acc, err := s.accounts.Create(ctx, Account{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "account registered",
		logger.AccountID(acc.ID),
		logger.Component("auth"),
	)

	return s.sendVerification(ctx, acc)
}

// Login checks the password of a verified account and opens a session.
func (s *Service) Login(ctx context.Context, email, password string) (sess Session, err error) {
	defer s.observe("login", &err)

	acc, err := s.accounts.FindByEmail(ctx, validator.NormalizeEmail(email))
	if err != nil {
		return Session{}, err
	}
	if _, err := Transition(StateOf(&acc), EventLogin); err != nil {
		return Session{}, err
	}
	// an account without a password never matches
	if !s.hasher.Verify(password, acc.PasswordHash) {
		return Session{}, ErrInvalidCredentials
	}

	return s.newSession(acc)
}

// ResendVerification replaces the account's verification token and sends it again.
func (s *Service) ResendVerification(ctx context.Context, email string) (err error) {
	defer s.observe("resend_verification", &err)

	acc, err := s.accounts.FindByEmail(ctx, validator.NormalizeEmail(email))
	if err != nil {
		return err
	}
	if _, err := Transition(StateOf(&acc), EventResend); err != nil {
		return err
	}

	return s.sendVerification(ctx, acc)
}

// VerifyEmail consumes a verification token, marks its account verified and
// opens a session for it.
func (s *Service) VerifyEmail(ctx context.Context, rawToken string) (sess Session, err error) {
	defer s.observe("verify_email", &err)

	id, err := s.tokens.Consume(ctx, rawToken)
	if err != nil {
		return Session{}, err
	}

	acc, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if _, err := Transition(StateOf(&acc), EventVerify); err != nil {
		return Session{}, err
	}

	if !acc.Verified {
		if err := s.accounts.SetVerified(ctx, acc.ID); err != nil {
			return Session{}, fmt.Errorf("mark account verified: %w", err)
		}
		acc.Verified = true
		s.logger.InfoContext(ctx, "email verified",
			logger.AccountID(acc.ID),
			logger.Component("auth"),
		)
	}

	return s.newSession(acc)
}

// OAuthLogin reconciles a provider profile with a local account and opens a
// session for it without any further check.
func (s *Service) OAuthLogin(ctx context.Context, p Profile) (sess Session, err error) {
	defer s.observe("oauth_login", &err)

	acc, err := s.reconciler.Reconcile(ctx, p)
	if err != nil {
		return Session{}, err
	}
	if !acc.Verified {
		return Session{}, ErrIllegalTransition
	}

	s.logger.InfoContext(ctx, "provider sign-in",
		logger.AccountID(acc.ID),
		logger.Provider(p.Provider),
		logger.Component("auth"),
	)

	return s.newSession(acc)
}

// Authenticate verifies a session token and returns its claims.
func (s *Service) Authenticate(_ context.Context, token string) (Claims, error) {
	return s.issuer.Verify(token)
}

// Account returns the account with the given id.
func (s *Service) Account(ctx context.Context, id uuid.UUID) (Account, error) {
	return s.accounts.FindByID(ctx, id)
}

func (s *Service) sendVerification(ctx context.Context, acc Account) error {
	raw, _, err := s.tokens.IssueFor(ctx, acc.ID)
	if err != nil {
		return fmt.Errorf("issue verification token: %w", err)
	}

	if err := s.dispatcher.SendVerification(ctx, acc, raw); err != nil {
		s.metrics.ObserveDispatchFailure()
		s.logger.ErrorContext(ctx, "verification email not delivered",
			logger.AccountID(acc.ID),
			logger.Error(err),
			logger.Component("auth"),
		)
		if !errors.Is(err, ErrDispatchFailed) {
			err = fmt.Errorf("%w: %w", ErrDispatchFailed, err)
		}
		return err
	}
	return nil
}

func (s *Service) newSession(acc Account) (Session, error) {
	token, exp, err := s.issuer.Issue(Claims{Subject: acc.ID.String(), Email: acc.Email})
	if err != nil {
		return Session{}, fmt.Errorf("issue session token: %w", err)
	}
	return Session{Token: token, ExpiresAt: exp, Account: acc}, nil
}

func (s *Service) observe(operation string, err *error) {
	s.metrics.ObserveOperation(operation, ErrorKind(*err))
}
