package auth

import (
	"time"

	"github.com/google/uuid"
)

// Account is a local identity.
//
// Email is stored as entered and compared case-sensitively. An empty
// PasswordHash marks an account that can only sign in through a provider;
// such accounts are always verified.
type Account struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	AvatarURL    string
	Verified     bool
	CreatedAt    time.Time
}

func (a Account) HasPassword() bool {
	return a.PasswordHash != ""
}

// OAuthAccount carries the fields used to create an account from a provider profile.
type OAuthAccount struct {
	Email     string
	Name      string
	AvatarURL string
}

// Profile is the identity asserted by a third-party provider.
type Profile struct {
	Provider       string
	ProviderUserID string
	Email          string
	EmailVerified  bool
	Name           string
	AvatarURL      string
}

// Session is the outcome of a successful sign-in. It is never persisted.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Account   Account
}

// Claims are carried by a session token.
type Claims struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
}

// AccountID parses Subject.
func (c Claims) AccountID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidSession
	}
	return id, nil
}

// RegisterInput is the payload of a password registration.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}
