// Package metrics exports event dispatch counters in the Prometheus format.
//
// A Metrics value implements event.Observer, so attaching it to an
// aggregator with event.WithObserver is all that is needed to count
// publishes, deliveries and subscriber failures per event kind.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the dispatch counters on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	published *prometheus.CounterVec
	delivered *prometheus.CounterVec
	failures  *prometheus.CounterVec
}

// New creates the counters and registers them, together with the Go runtime
// and process collectors, on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		published: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "groundcrew_events_published_total",
				Help: "Total number of events published, by kind",
			},
			[]string{"kind"},
		),
		delivered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "groundcrew_events_delivered_total",
				Help: "Total number of subscriber invocations, by kind",
			},
			[]string{"kind"},
		),
		failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "groundcrew_event_handler_failures_total",
				Help: "Total number of subscriber callbacks that panicked, by kind",
			},
			[]string{"kind"},
		),
	}
}

// Published records one Publish call and the subscribers it reached.
func (m *Metrics) Published(kind string, subscribers int) {
	m.published.WithLabelValues(kind).Inc()
	m.delivered.WithLabelValues(kind).Add(float64(subscribers))
}

// HandlerFailed records one subscriber panic.
func (m *Metrics) HandlerFailed(kind string) {
	m.failures.WithLabelValues(kind).Inc()
}

// Registry returns the registry the counters live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
