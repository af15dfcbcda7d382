package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the console's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	requests     *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	bulkAccounts *prometheus.CounterVec
	bulkSheet    *prometheus.CounterVec
	remoteErrors *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vci_admin",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vci_admin",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		bulkAccounts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vci_admin",
			Name:      "bulk_accounts_total",
			Help:      "Accounts reported by bulk reconciliation, by outcome.",
		}, []string{"outcome"}),
		bulkSheet: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vci_admin",
			Name:      "bulk_sheet_sync_total",
			Help:      "Spreadsheet persistence results of bulk reconciliation.",
		}, []string{"result"}),
		remoteErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vci_admin",
			Name:      "remote_errors_total",
			Help:      "Errors returned by backend function calls, by kind.",
		}, []string{"function", "kind"}),
	}
	reg.MustRegister(m.requests, m.latency, m.bulkAccounts, m.bulkSheet, m.remoteErrors)
	return m
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route, method).Observe(d.Seconds())
}

// AddBulkAccounts counts reconciled rows for outcome ("created", "recovered").
func (m *Metrics) AddBulkAccounts(outcome string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.bulkAccounts.WithLabelValues(outcome).Add(float64(n))
}

// IncBulkSheet counts one spreadsheet persistence result.
func (m *Metrics) IncBulkSheet(result string) {
	if m == nil || result == "" {
		return
	}
	m.bulkSheet.WithLabelValues(result).Inc()
}

// IncRemoteError counts one failed function call.
func (m *Metrics) IncRemoteError(function, kind string) {
	if m == nil {
		return
	}
	m.remoteErrors.WithLabelValues(function, kind).Inc()
}

// RegisterSessionGauge exposes the number of tracked console sessions.
func RegisterSessionGauge(reg prometheus.Registerer, count func() int) prometheus.GaugeFunc {
	g := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "vci_admin",
		Name:      "console_sessions",
		Help:      "Console sessions currently tracked in memory.",
	}, func() float64 { return float64(count()) })
	reg.MustRegister(g)
	return g
}
