// Package metrics exposes the household aggregates as Prometheus metrics.
package metrics

import (
	"net/http"
	"sync"

	"github.com/etnz/household"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the household gauges, on their own registry.
type Metrics struct {
	registry *prometheus.Registry

	mu       sync.Mutex
	observed bool
	version  uint64 // of the last observed snapshot

	EmergencyFund *prometheus.GaugeVec
	NetWorth      *prometheus.GaugeVec
	BudgetUsage   *prometheus.GaugeVec
	Records       *prometheus.GaugeVec
	Mutations     prometheus.Counter
}

// New creates the metrics on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		EmergencyFund: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "household",
			Name:      "emergency_fund",
			Help:      "Sum of the savings account balances.",
		}, []string{"currency"}),
		NetWorth: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "household",
			Name:      "net_worth",
			Help:      "Everything owned minus everything owed.",
		}, []string{"currency"}),
		BudgetUsage: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "household",
			Subsystem: "budget",
			Name:      "usage_percent",
			Help:      "Spent part of each budget allocation, in percent.",
		}, []string{"category"}),
		Records: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "household",
			Name:      "records",
			Help:      "Number of records per kind.",
		}, []string{"kind"}),
		Mutations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "household",
			Name:      "mutations_total",
			Help:      "Total store mutations since start.",
		}),
	}
}

// Observe sets every gauge from the snapshot. Snapshots older than the last
// observed one are ignored, since store observers may run concurrently.
func (m *Metrics) Observe(s *household.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.observed && s.Version() < m.version {
		return
	}
	m.observed, m.version = true, s.Version()

	m.EmergencyFund.Reset()
	ef := s.EmergencyFund()
	for _, c := range ef.Currencies() {
		m.EmergencyFund.WithLabelValues(c).Set(ef[c].AsFloat())
	}

	m.NetWorth.Reset()
	nw := s.NetWorth()
	for _, c := range nw.Currencies() {
		m.NetWorth.WithLabelValues(c).Set(nw[c].AsFloat())
	}

	m.BudgetUsage.Reset()
	for _, b := range s.Budgets() {
		m.BudgetUsage.WithLabelValues(b.Category).Set(float64(b.Percentage()))
	}

	for _, k := range household.Kinds {
		m.Records.WithLabelValues(string(k)).Set(float64(s.Len(k)))
	}
}

// Attach observes the current snapshot of the store and every following one.
// It returns the function detaching the metrics from the store.
func (m *Metrics) Attach(store *household.Store) (detach func()) {
	m.Observe(store.Snapshot())
	return store.Subscribe(func(s *household.Snapshot) {
		m.Mutations.Inc()
		m.Observe(s)
	})
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
