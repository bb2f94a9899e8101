package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics records outcomes of order ledger operations.
type OrderMetrics struct {
	commitDuration *prometheus.HistogramVec
	commits        *prometheus.CounterVec
	commitFailures *prometheus.CounterVec
	amendments     prometheus.Counter
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	commitDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "order_commit_duration_seconds",
		Help:    "Duration of order commits in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	commits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_committed_total",
		Help: "Orders committed, labeled by vendor.",
	}, []string{"vendor"})
	commitFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_commit_failures_total",
		Help: "Failed order commits, labeled by error code.",
	}, []string{"code"})
	amendments := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pickup_amendments_total",
		Help: "Successful pickup-time amendments.",
	})
	reg.MustRegister(commitDuration, commits, commitFailures, amendments)
	return &OrderMetrics{
		commitDuration: commitDuration,
		commits:        commits,
		commitFailures: commitFailures,
		amendments:     amendments,
	}
}

// ObserveCommit records the duration of a commit attempt.
func (m *OrderMetrics) ObserveCommit(outcome string, duration time.Duration) {
	if m == nil || m.commitDuration == nil {
		return
	}
	m.commitDuration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncCommitted increments the committed-orders counter for a vendor.
func (m *OrderMetrics) IncCommitted(vendor string) {
	if m == nil || m.commits == nil {
		return
	}
	m.commits.WithLabelValues(normalizeLabel(vendor)).Inc()
}

// IncCommitFailure increments the failure counter for an error code.
func (m *OrderMetrics) IncCommitFailure(code string) {
	if m == nil || m.commitFailures == nil {
		return
	}
	m.commitFailures.WithLabelValues(normalizeLabel(code)).Inc()
}

// IncAmendment increments the pickup-amendment counter.
func (m *OrderMetrics) IncAmendment() {
	if m == nil || m.amendments == nil {
		return
	}
	m.amendments.Inc()
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}
	return strings.ReplaceAll(value, " ", "_")
}
