// Package token produces compact, signed, expiring tokens for small JSON
// payloads such as OAuth state values.
//
// A token has the form base64url(envelope) "." base64url(HMAC-SHA256), where
// the envelope holds the payload and its expiry. Tokens are tamper-evident,
// not encrypted: never put secrets in the payload.
//
//	state, err := token.Generate(oauthState{Nonce: n}, secret, time.Now().Add(10*time.Minute))
//	st, err := token.Parse[oauthState](state, secret, time.Now())
package token
