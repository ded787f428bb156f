package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/dmitrymomot/anihub/pkg/logger"
	"github.com/dmitrymomot/anihub/pkg/validator"
)

const (
	// MaxNameLength is the display-name limit in characters.
	MaxNameLength = 20

	defaultNameAttempts = 5
	nameSuffixDigits    = 4
)

// Reconciler maps a provider profile onto a local account. The email address
// is the only join key.
type Reconciler struct {
	accounts     AccountRepository
	logger       *slog.Logger
	nameAttempts int
	suffix       func() string
}

// ReconcilerOption configures a Reconciler.
type ReconcilerOption func(*Reconciler)

// WithReconcilerLogger sets the logger that reports reuse of password
// accounts. The default discards everything.
func WithReconcilerLogger(l *slog.Logger) ReconcilerOption {
	return func(r *Reconciler) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithNameAttempts bounds how many display names are tried for a new account.
func WithNameAttempts(n int) ReconcilerOption {
	return func(r *Reconciler) {
		if n > 0 {
			r.nameAttempts = n
		}
	}
}

// WithNameSuffix replaces the generator of collision suffixes.
func WithNameSuffix(fn func() string) ReconcilerOption {
	return func(r *Reconciler) {
		if fn != nil {
			r.suffix = fn
		}
	}
}

// NewReconciler creates a Reconciler over accounts.
func NewReconciler(accounts AccountRepository, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		accounts:     accounts,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		nameAttempts: defaultNameAttempts,
		suffix:       randomDigits,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile returns the account owning p.Email, creating a verified,
// passwordless one if none exists. An existing unverified account is marked
// verified.
func (r *Reconciler) Reconcile(ctx context.Context, p Profile) (Account, error) {
	email := validator.NormalizeEmail(p.Email)
	if email == "" {
		return Account{}, ErrNoProviderEmail
	}

	acc, err := r.accounts.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return r.reuse(ctx, acc, p)
	case !errors.Is(err, ErrAccountNotFound):
		return Account{}, fmt.Errorf("find account by email: %w", err)
	}

	base := displayName(p.Name, email)
	name := base
	for attempt := 1; ; attempt++ {
		acc, err = r.accounts.UpsertOAuth(ctx, OAuthAccount{
			Email:     email,
			Name:      name,
			AvatarURL: p.AvatarURL,
		})
		if err == nil {
			return acc, nil
		}
		if !errors.Is(err, ErrNameTaken) || attempt >= r.nameAttempts {
			return Account{}, err
		}
		name = withSuffix(base, r.suffix())
	}
}

func (r *Reconciler) reuse(ctx context.Context, acc Account, p Profile) (Account, error) {
	if acc.HasPassword() {
		r.logger.WarnContext(ctx, "provider sign-in reused a password account",
			logger.AccountID(acc.ID),
			logger.Provider(p.Provider),
			logger.Component("auth"),
		)
	}
	if acc.Verified {
		return acc, nil
	}
	if err := r.accounts.SetVerified(ctx, acc.ID); err != nil {
		return Account{}, fmt.Errorf("mark account verified: %w", err)
	}
	acc.Verified = true
	return acc, nil
}

func displayName(name, email string) string {
	name = validator.NormalizeName(name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	return truncate(name, MaxNameLength)
}

func withSuffix(base, suffix string) string {
	return truncate(base, MaxNameLength-len(suffix)-1) + "_" + suffix
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func randomDigits() string {
	return fmt.Sprintf("%0*d", nameSuffixDigits, rand.IntN(10000))
}
