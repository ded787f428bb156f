// Package logger builds *slog.Logger instances for the service.
//
// New applies functional options on top of production defaults (JSON, INFO,
// stdout) and wraps the resulting handler with a decorator that pulls
// request-scoped attributes, such as the chi request id, out of the context on
// every log call.
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "anihub"),
//		logger.WithContextExtractors(logger.RequestIDExtractor()),
//	)
//	log.InfoContext(ctx, "account registered", logger.AccountID(acc.ID))
//
// Attribute helpers keep key names consistent across packages.
package logger
