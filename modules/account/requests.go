package account

import (
	"github.com/dmitrymomot/anihub/pkg/validator"
	"github.com/dmitrymomot/anihub/svc/auth"
)

const (
	minPasswordLength = 8
	// minPasswordEntropy is measured in bits.
	minPasswordEntropy = 40
)

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Terms           bool   `json:"terms"`
}

func (r RegisterRequest) Validate() error {
	name := validator.NormalizeName(r.Name)
	return validator.Apply(
		validator.Required("name", name),
		validator.MaxChars("name", name, auth.MaxNameLength),
		validator.ValidEmail("email", validator.NormalizeEmail(r.Email)),
		validator.MinChars("password", r.Password, minPasswordLength),
		validator.PasswordUppercase("password", r.Password),
		validator.PasswordDigit("password", r.Password),
		validator.PasswordSymbol("password", r.Password),
		validator.PasswordEntropy("password", r.Password, minPasswordEntropy),
		validator.MinChars("confirmPassword", r.ConfirmPassword, minPasswordLength),
		validator.IsTrue("terms", r.Terms, "you must accept the terms and conditions"),
	)
}

func (r RegisterRequest) input() auth.RegisterInput {
	return auth.RegisterInput{
		Name:            validator.NormalizeName(r.Name),
		Email:           validator.NormalizeEmail(r.Email),
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validator.Apply(
		validator.ValidEmail("email", validator.NormalizeEmail(r.Email)),
		validator.MinChars("password", r.Password, minPasswordLength),
	)
}

type ResendRequest struct {
	Email string `json:"email"`
}

func (r ResendRequest) Validate() error {
	return validator.Apply(validator.Required("email", r.Email))
}

type VerifyRequest struct {
	Token string `query:"token"`
}

func (r VerifyRequest) Validate() error {
	return validator.Apply(validator.Required("token", r.Token))
}

type CallbackRequest struct {
	Code  string `query:"code"`
	State string `query:"state"`
	// Error is set by the provider when the user denies consent.
	Error string `query:"error"`
}

type AccountRequest struct {
	ID string `path:"id"`
}
