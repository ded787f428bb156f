// Package google resolves Google sign-ins into auth.Profile values.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/dmitrymomot/anihub/svc/auth"
)

const (
	ProviderName = "google"

	defaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// Config holds the Google OAuth client settings.
type Config struct {
	ClientID     string `env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	// CallbackURL defaults to {API_URL}/auth/google/callback when empty.
	CallbackURL string   `env:"GOOGLE_CALLBACK_URL"`
	Scopes      []string `env:"GOOGLE_SCOPES" envSeparator:"," envDefault:"email,profile"`
}

// Enabled reports whether client credentials are configured.
func (c Config) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

type Provider struct {
	conf        *oauth2.Config
	httpClient  *http.Client
	userInfoURL string
}

type Option func(*Provider)

func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) {
		if c != nil {
			p.httpClient = c
		}
	}
}

// WithEndpoint overrides the Google authorization and token endpoints.
func WithEndpoint(e oauth2.Endpoint) Option {
	return func(p *Provider) { p.conf.Endpoint = e }
}

func WithUserInfoURL(u string) Option {
	return func(p *Provider) { p.userInfoURL = u }
}

// New returns a Provider. apiURL is used to build the default callback URL.
func New(cfg Config, apiURL string, opts ...Option) *Provider {
	callback := cfg.CallbackURL
	if callback == "" {
		callback = strings.TrimRight(apiURL, "/") + "/auth/google/callback"
	}

	p := &Provider{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  callback,
			Scopes:       cfg.Scopes,
			Endpoint:     google.Endpoint,
		},
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		userInfoURL: defaultUserInfoURL,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) Name() string {
	return ProviderName
}

// AuthURL builds the consent page URL carrying state.
func (p *Provider) AuthURL(state string) string {
	return p.conf.AuthCodeURL(state)
}

// Exchange trades an authorization code for the user's profile.
func (p *Provider) Exchange(ctx context.Context, code string) (auth.Profile, error) {
	if code == "" {
		return auth.Profile{}, fmt.Errorf("%w: missing authorization code", auth.ErrProviderFailed)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	tok, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return auth.Profile{}, fmt.Errorf("%w: exchange code: %w", auth.ErrProviderFailed, err)
	}

	u, err := p.fetchUser(ctx, tok.AccessToken)
	if err != nil {
		return auth.Profile{}, fmt.Errorf("%w: fetch user: %w", auth.ErrProviderFailed, err)
	}
	if u.Email == "" {
		return auth.Profile{}, auth.ErrNoProviderEmail
	}

	return auth.Profile{
		Provider:       ProviderName,
		ProviderUserID: u.ID,
		Email:          u.Email,
		EmailVerified:  u.VerifiedEmail,
		Name:           u.displayName(),
		AvatarURL:      u.Picture,
	}, nil
}

func (p *Provider) fetchUser(ctx context.Context, accessToken string) (*googleUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google api returned status %d", resp.StatusCode)
	}

	var u googleUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

type googleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

// displayName joins the given and family names, falling back to the full name.
func (u googleUser) displayName() string {
	if n := strings.TrimSpace(u.GivenName + " " + u.FamilyName); n != "" {
		return n
	}
	return u.Name
}
