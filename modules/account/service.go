package account

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/anihub/handler"
	"github.com/dmitrymomot/anihub/svc/auth"
)

// PasswordAuthenticator is the part of auth.Service used by the password routes.
type PasswordAuthenticator interface {
	Register(ctx context.Context, in auth.RegisterInput) error
	Login(ctx context.Context, email, password string) (auth.Session, error)
	ResendVerification(ctx context.Context, email string) error
	VerifyEmail(ctx context.Context, token string) (auth.Session, error)
}

// OAuthAuthenticator signs in identities asserted by a provider.
type OAuthAuthenticator interface {
	OAuthLogin(ctx context.Context, p auth.Profile) (auth.Session, error)
}

// SessionVerifier checks session tokens.
type SessionVerifier interface {
	Authenticate(ctx context.Context, token string) (auth.Claims, error)
}

// AccountReader backs the /users routes.
type AccountReader interface {
	SessionVerifier
	Account(ctx context.Context, id uuid.UUID) (auth.Account, error)
}

// IdentityProvider is satisfied by svc/auth/google.Provider.
type IdentityProvider interface {
	Name() string
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (auth.Profile, error)
}

var (
	_ PasswordAuthenticator = (*auth.Service)(nil)
	_ OAuthAuthenticator    = (*auth.Service)(nil)
	_ AccountReader         = (*auth.Service)(nil)
)

type validatable interface {
	Validate() error
}

// validated runs the request's Validate before the handler.
func validated[R validatable]() handler.Decorator[handler.Context, R] {
	return func(next handler.HandlerFunc[handler.Context, R]) handler.HandlerFunc[handler.Context, R] {
		return func(ctx handler.Context, req R) handler.Response {
			if err := req.Validate(); err != nil {
				return handler.Fail(err)
			}
			return next(ctx, req)
		}
	}
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
}

func newUserResponse(acc auth.Account) UserResponse {
	return UserResponse{
		ID:        acc.ID.String(),
		Name:      acc.Name,
		Email:     acc.Email,
		AvatarURL: acc.AvatarURL,
		Verified:  acc.Verified,
		CreatedAt: acc.CreatedAt,
	}
}

type LoginResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}
