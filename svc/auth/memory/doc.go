// Package memory provides in-process implementations of auth.AccountRepository
// and auth.TokenStorage. They honour the same uniqueness and atomicity rules as
// the database-backed stores and are used for local development and tests.
package memory
