package account

import (
	"strings"
	"time"
)

type Config struct {
	// AppURL is the web client's base URL. Successful sign-ins redirect to
	// AppURL + HomePath.
	AppURL   string `env:"APP_URL" envDefault:"http://localhost:5173"`
	HomePath string `env:"ACCOUNT_HOME_PATH" envDefault:"/home"`

	SessionCookie string        `env:"ACCOUNT_SESSION_COOKIE" envDefault:"jwt"`
	SessionMaxAge time.Duration `env:"ACCOUNT_SESSION_MAX_AGE" envDefault:"168h"`

	StateCookie string        `env:"ACCOUNT_OAUTH_STATE_COOKIE" envDefault:"oauth_state"`
	StateTTL    time.Duration `env:"ACCOUNT_OAUTH_STATE_TTL" envDefault:"10m"`
	// StateSecret signs the OAuth state. Falls back to JWT_SECRET when empty.
	StateSecret string `env:"OAUTH_STATE_SECRET"`
}

// DefaultConfig matches the envDefault values above.
func DefaultConfig() Config {
	return Config{
		AppURL:        "http://localhost:5173",
		HomePath:      "/home",
		SessionCookie: "jwt",
		SessionMaxAge: 7 * 24 * time.Hour,
		StateCookie:   "oauth_state",
		StateTTL:      10 * time.Minute,
	}
}

func (c Config) homeURL() string {
	return strings.TrimRight(c.AppURL, "/") + c.HomePath
}
