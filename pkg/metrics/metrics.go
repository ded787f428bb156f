package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "anihub"

// NewRegistry returns a registry preloaded with Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// Auth counts authentication operations by outcome.
type Auth struct {
	operations       *prometheus.CounterVec
	dispatchFailures prometheus.Counter
}

func NewAuth(reg prometheus.Registerer) *Auth {
	m := &Auth{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "operations_total",
			Help:      "Authentication operations by operation and result",
		}, []string{"operation", "result"}),
		dispatchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "email_dispatch_failures_total",
			Help:      "Verification emails that could not be handed to the mail transport",
		}),
	}
	reg.MustRegister(m.operations, m.dispatchFailures)
	return m
}

func (m *Auth) ObserveOperation(operation, result string) {
	m.operations.WithLabelValues(operation, result).Inc()
}

func (m *Auth) ObserveDispatchFailure() {
	m.dispatchFailures.Inc()
}
