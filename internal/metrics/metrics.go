package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes of a command call.
const (
	OutcomeOK        = "ok"
	OutcomeUnknown   = "unknown"
	OutcomeMalformed = "malformed"
)

// Metrics holds the extension collectors on a private registry.
type Metrics struct {
	registry    *prometheus.Registry
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	journalErrs prometheus.Counter
}

// New registers the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		invocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ext_command_invocations_total",
				Help: "Total number of command calls by outcome",
			},
			[]string{"command", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ext_command_duration_seconds",
				Help:    "Duration of command execution",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"command"},
		),
		journalErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ext_journal_errors_total",
			Help: "Results that could not be written to the journal",
		}),
	}
	m.registry.MustRegister(
		m.invocations,
		m.duration,
		m.journalErrs,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Record counts one call. Unknown command names are folded into a single label
// value so callers can not blow up the series count.
func (m *Metrics) Record(command, outcome string, d time.Duration) {
	if outcome != OutcomeOK {
		command = "-"
	}
	m.invocations.WithLabelValues(command, outcome).Inc()
	if outcome == OutcomeOK {
		m.duration.WithLabelValues(command).Observe(d.Seconds())
	}
}

// JournalError counts a result the journal refused.
func (m *Metrics) JournalError() {
	m.journalErrs.Inc()
}

// Handler serves the registry in the prometheus exposition format.
// Compression is left to the server middleware.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{DisableCompression: true})
}
