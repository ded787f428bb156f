package auth

import "time"

type Config struct {
	JWTSecret string `env:"JWT_SECRET,required"`
	AppName   string `env:"APP_NAME" envDefault:"AniHub"`
	// APIURL is the public base URL of this service, used in email links.
	APIURL string `env:"API_URL" envDefault:"http://localhost:3000"`
	// AppURL is the public base URL of the web client.
	AppURL string `env:"APP_URL" envDefault:"http://localhost:5173"`

	SessionTTL      time.Duration `env:"AUTH_SESSION_TTL" envDefault:"168h"`
	VerificationTTL time.Duration `env:"AUTH_VERIFICATION_TTL" envDefault:"1h"`
	BcryptCost      int           `env:"AUTH_BCRYPT_COST" envDefault:"10"`
}
