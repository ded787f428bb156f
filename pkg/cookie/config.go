package cookie

// Config holds cookie defaults read from the environment.
type Config struct {
	Path   string `env:"COOKIE_PATH" envDefault:"/"`
	Domain string `env:"COOKIE_DOMAIN" envDefault:""`
}

// NewFromConfig builds a Manager whose transport attributes follow baseURL.
func NewFromConfig(cfg Config, baseURL string, opts ...Option) *Manager {
	base := []Option{ForBaseURL(baseURL)}
	if cfg.Path != "" {
		base = append(base, WithPath(cfg.Path))
	}
	if cfg.Domain != "" {
		base = append(base, WithDomain(cfg.Domain))
	}
	return New(append(base, opts...)...)
}
