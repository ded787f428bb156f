// Package auth implements account access: password registration and login,
// email verification and sign-in through third-party identity providers.
//
// Service orchestrates the flows. It depends only on the interfaces declared
// in this package, so storage, mail delivery and token signing are supplied
// by the caller:
//
//	accounts := postgres.NewAccountRepository(pool)
//	tokens := auth.NewVerificationTokens(postgres.NewTokenStorage(pool))
//	issuer, _ := auth.NewJWTIssuer(cfg.JWTSecret)
//	dispatcher := auth.NewEmailDispatcher(sender, cfg)
//	svc := auth.NewService(accounts, tokens, issuer, dispatcher, auth.WithLogger(log))
//
// An account moves through three conceptual states, derived from its fields
// and never stored: Unregistered, PendingVerification and Verified. Password
// registration enters PendingVerification and consuming a verification token
// moves to Verified. OAuth sign-in goes straight to Verified. There is no way
// back from Verified.
//
// Session tokens are stateless JWTs valid for seven days. Logging out only
// clears the client cookie; issued tokens stay valid until they expire.
package auth
