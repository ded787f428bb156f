// Package jwt signs and verifies HS256 JSON Web Tokens and provides HTTP
// middleware that authenticates requests carrying them.
//
// Signing and parsing are delegated to github.com/golang-jwt/jwt/v5. The
// package narrows that API to a single algorithm, maps library errors onto
// its own sentinels and adds request plumbing:
//
//	svc, err := jwt.NewFromString(cfg.Secret)
//	token, err := svc.Generate(jwt.RegisteredClaims{Subject: id, ExpiresAt: jwt.NewNumericDate(exp)})
//
//	r.Use(jwt.MiddlewareWithConfig(jwt.MiddlewareConfig{
//		Service:   svc,
//		Extractor: jwt.CookieTokenExtractor("jwt"),
//	}))
package jwt
