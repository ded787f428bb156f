// Package metrics exposes Prometheus instrumentation for the service: a
// registry with runtime collectors, counters for authentication outcomes and
// an HTTP middleware recording request latency per chi route pattern.
package metrics
