// Package account is the HTTP surface of the auth service.
//
// It mounts password registration and login, email verification, logout,
// provider sign-in under /auth and the signed-in user's profile under
// /users. Sessions travel in an HttpOnly cookie whose Secure and SameSite
// attributes follow the web client's URL.
package account
