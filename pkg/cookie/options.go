package cookie

import (
	"net/http"
	"strings"
)

type Options struct {
	Path     string
	Domain   string
	MaxAge   int
	Secure   bool
	HttpOnly bool
	SameSite http.SameSite
}

type Option func(*Options)

func WithPath(path string) Option {
	return func(o *Options) { o.Path = path }
}

func WithDomain(domain string) Option {
	return func(o *Options) { o.Domain = domain }
}

// WithMaxAge sets the lifetime in seconds.
func WithMaxAge(seconds int) Option {
	return func(o *Options) { o.MaxAge = seconds }
}

func WithSecure(secure bool) Option {
	return func(o *Options) { o.Secure = secure }
}

func WithHTTPOnly(httpOnly bool) Option {
	return func(o *Options) { o.HttpOnly = httpOnly }
}

func WithSameSite(sameSite http.SameSite) Option {
	return func(o *Options) { o.SameSite = sameSite }
}

// ForBaseURL sets Secure and SameSite=None for https URLs, SameSite=Lax otherwise.
func ForBaseURL(baseURL string) Option {
	return func(o *Options) {
		if strings.HasPrefix(strings.ToLower(baseURL), "https://") {
			o.Secure = true
			o.SameSite = http.SameSiteNoneMode
			return
		}
		o.Secure = false
		o.SameSite = http.SameSiteLaxMode
	}
}

func applyOptions(base Options, opts []Option) Options {
	for _, opt := range opts {
		opt(&base)
	}
	return base
}
