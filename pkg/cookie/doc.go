// Package cookie writes, reads and clears HTTP cookies with shared defaults.
//
// A Manager carries default attributes (path, domain, max age, HttpOnly,
// Secure, SameSite) that every Set call starts from. Per-call options override
// them:
//
//	m := cookie.New(cookie.ForBaseURL(cfg.AppURL), cookie.WithMaxAge(7*24*60*60))
//	m.Set(w, "jwt", token)
//	m.Delete(w, "jwt")
//
// ForBaseURL derives transport attributes from the public URL of the
// application: https deployments get Secure with SameSite=None so the cookie
// survives cross-site redirects from identity providers, plain http falls back
// to SameSite=Lax.
package cookie
