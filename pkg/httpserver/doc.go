// Package httpserver runs an http.Server until its context is canceled and
// then shuts it down gracefully.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil { ... }
//
// HealthCheckHandler turns a list of probes into a readiness endpoint.
package httpserver
