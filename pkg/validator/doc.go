// Package validator provides explicit, rule-based input validation.
//
// A Rule pairs a check with the error reported when the check fails. Apply
// runs every rule and collects the failures into ValidationErrors, which
// implements error and groups messages by field:
//
//	err := validator.Apply(
//		validator.Required("email", req.Email),
//		validator.ValidEmail("email", req.Email),
//		validator.MaxChars("name", req.Name, 20),
//	)
//
// Password rules check character classes and estimated entropy, the latter
// through github.com/wagslane/go-password-validator.
package validator
