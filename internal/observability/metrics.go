// Package observability holds the Prometheus metrics exported on /metrics.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes of a balance computation.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
)

// Metrics holds all Prometheus metrics for the server.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	RPCRequests *prometheus.CounterVec
	RPCDuration *prometheus.HistogramVec

	BalanceComputations    *prometheus.CounterVec
	SettlementTransactions prometheus.Histogram
	EventPublishFailures   *prometheus.CounterVec
}

// NewMetrics creates a registry with the Go and process collectors and registers every metric on it.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RPCRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kidoikoiaki_rpc_requests_total",
			Help: "RPC calls by procedure and result code",
		}, []string{"procedure", "code"}),

		RPCDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kidoikoiaki_rpc_duration_seconds",
			Help:    "RPC handling time",
			Buckets: prometheus.DefBuckets,
		}, []string{"procedure"}),

		BalanceComputations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kidoikoiaki_balance_computations_total",
			Help: "Balance computations by outcome",
		}, []string{"outcome"}),

		SettlementTransactions: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "kidoikoiaki_settlement_transactions",
			Help:    "Transactions proposed per settlement",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),

		EventPublishFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kidoikoiaki_event_publish_failures_total",
			Help: "Events that could not be delivered to the broker",
		}, []string{"type"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Gatherer exposes the registry, mostly for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// ObserveRPC counts one RPC and records how long it took.
func (m *Metrics) ObserveRPC(procedure, code string, seconds float64) {
	if m == nil {
		return
	}
	m.RPCRequests.WithLabelValues(procedure, code).Inc()
	m.RPCDuration.WithLabelValues(procedure).Observe(seconds)
}

// ObserveSettlement counts a balance computation. Successful ones also record
// how many transactions the settlement proposed.
func (m *Metrics) ObserveSettlement(outcome string, transactions int) {
	if m == nil {
		return
	}
	m.BalanceComputations.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		m.SettlementTransactions.Observe(float64(transactions))
	}
}

// PublishFailed counts an event the broker did not accept.
func (m *Metrics) PublishFailed(eventType string) {
	if m == nil {
		return
	}
	m.EventPublishFailures.WithLabelValues(eventType).Inc()
}
