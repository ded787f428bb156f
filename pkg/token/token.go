package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

type envelope[T any] struct {
	Payload   T     `json:"p"`
	ExpiresAt int64 `json:"e"`
}

// Generate signs payload and stamps it with expiresAt.
func Generate[T any](payload T, secret string, expiresAt time.Time) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	data, err := json.Marshal(envelope[T]{Payload: payload, ExpiresAt: expiresAt.Unix()})
	if err != nil {
		return "", err
	}

	return encode(data) + "." + encode(sign(data, secret)), nil
}

// Parse verifies the signature before decoding and rejects tokens whose
// expiry is not after now.
func Parse[T any](token, secret string, now time.Time) (T, error) {
	var zero T
	if secret == "" {
		return zero, ErrMissingSecret
	}

	payloadPart, sigPart, ok := strings.Cut(token, ".")
	if !ok || payloadPart == "" || sigPart == "" {
		return zero, ErrInvalidToken
	}

	data, err := base64.RawURLEncoding.DecodeString(payloadPart)
	if err != nil {
		return zero, errors.Join(ErrInvalidToken, err)
	}
	sig, err := base64.RawURLEncoding.DecodeString(sigPart)
	if err != nil {
		return zero, errors.Join(ErrInvalidToken, err)
	}
	if !hmac.Equal(sig, sign(data, secret)) {
		return zero, ErrSignatureInvalid
	}

	var env envelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		return zero, errors.Join(ErrInvalidToken, err)
	}
	if !now.Before(time.Unix(env.ExpiresAt, 0)) {
		return zero, ErrExpired
	}

	return env.Payload, nil
}

func sign(data []byte, secret string) []byte {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(data)
	return h.Sum(nil)
}

func encode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}
