// Package metrics counts the host-level side effects of credentialed
// fetches in a private Prometheus registry.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/sadopc/credfetch/internal/host"
)

const defaultNamespace = "credfetch"

// Option configures a Metrics.
type Option func(*Metrics)

// WithNamespace overrides the metric namespace.
func WithNamespace(namespace string) Option {
	return func(m *Metrics) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// Metrics holds the counters and the registry they live in.
type Metrics struct {
	namespace string
	registry  *prometheus.Registry

	unauthorized prometheus.Counter
	reloads      prometheus.Counter
}

// New creates the counters in a fresh registry.
func New(opts ...Option) *Metrics {
	m := &Metrics{
		namespace: defaultNamespace,
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.unauthorized = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "unauthorized_events_total",
		Help:      "Unauthorized events broadcast on the host bus.",
	})
	m.reloads = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "reloads_total",
		Help:      "Host reloads triggered by 401 replies.",
	})
	m.registry.MustRegister(m.unauthorized, m.reloads)
	return m
}

// Listen counts every unauthorized event dispatched on bus.
func (m *Metrics) Listen(bus *host.Bus) *host.Subscription {
	return bus.Subscribe(host.EventUnauthorized, m.unauthorized.Inc)
}

// ObserveReload records one host reload.
func (m *Metrics) ObserveReload() {
	m.reloads.Inc()
}

// Write dumps every metric in the text exposition format.
func (m *Metrics) Write(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encoding metrics: %w", err)
		}
	}
	return nil
}
