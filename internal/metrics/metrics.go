// Package metrics exposes Prometheus instruments for settings changes,
// home timeline polling and chat bootstrap outcomes.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/aretw0/localsettings/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the instruments on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	changesApplied  *prometheus.CounterVec
	changesRejected *prometheus.CounterVec
	pollTicks       *prometheus.CounterVec
	bootstraps      *prometheus.CounterVec
	storeDuration   *prometheus.HistogramVec
}

// New creates and registers the instruments.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		changesApplied: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "localsettings_changes_applied_total",
				Help: "Total number of applied settings changes",
			},
			[]string{"path"},
		),
		changesRejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "localsettings_changes_rejected_total",
				Help: "Total number of rejected interactions and changes",
			},
			[]string{"reason"},
		),
		pollTicks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "localsettings_timeline_poll_ticks_total",
				Help: "Home timeline fetches triggered by the partial-view poller",
			},
			[]string{"result"},
		),
		bootstraps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "localsettings_chat_bootstrap_total",
				Help: "Chat bootstrap attempts by outcome",
			},
			[]string{"outcome"},
		),
		storeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "localsettings_store_duration_seconds",
				Help: "Duration of settings store operations",
			},
			[]string{"op"},
		),
	}
	m.registry.MustRegister(m.changesApplied, m.changesRejected, m.pollTicks, m.bootstraps, m.storeDuration)
	return m
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that count applied and rejected changes.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnChangeApplied: func(_ context.Context, e *domain.ChangeEvent) {
			m.changesApplied.WithLabelValues(e.Path.String()).Inc()
		},
		OnChangeRejected: func(_ context.Context, e *domain.RejectedEvent) {
			m.changesRejected.WithLabelValues(e.Reason).Inc()
		},
	}
}

// PollTick records one poller fetch.
func (m *Metrics) PollTick(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.pollTicks.WithLabelValues(result).Inc()
}

// Bootstrap records a chat bootstrap outcome.
func (m *Metrics) Bootstrap(outcome string) {
	m.bootstraps.WithLabelValues(outcome).Inc()
}

// ObserveStore records the duration of a store operation started at start.
func (m *Metrics) ObserveStore(op string, start time.Time) {
	m.storeDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
