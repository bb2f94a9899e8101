package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestOrderMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewOrderMetrics(reg)

	metrics.ObserveCommit("success", 120*time.Millisecond)
	metrics.IncCommitted("Orchard Lane")
	metrics.IncCommitFailure("EMPTY_CART")
	metrics.IncAmendment()
	metrics.IncAmendment()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "orders_committed_total", "vendor", "orchard_lane"); err != nil {
		t.Fatalf("fetch commits: %v", err)
	} else if got != 1 {
		t.Fatalf("expected commits=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "order_commit_failures_total", "code", "empty_cart"); err != nil {
		t.Fatalf("fetch failures: %v", err)
	} else if got != 1 {
		t.Fatalf("expected failures=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "order_commit_duration_seconds", "outcome", "success"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}

	amendments := findMetricFamily(mfs, "pickup_amendments_total")
	if amendments == nil {
		t.Fatal("pickup_amendments_total not found")
	}
	if got := amendments.GetMetric()[0].GetCounter().GetValue(); got != 2 {
		t.Fatalf("expected amendments=2, got %f", got)
	}
}

func TestOrderMetricsNilSafe(t *testing.T) {
	var metrics *OrderMetrics
	metrics.ObserveCommit("success", time.Second)
	metrics.IncCommitted("vendor")
	metrics.IncCommitFailure("code")
	metrics.IncAmendment()

	unregistered := NewOrderMetrics(nil)
	unregistered.ObserveCommit("success", time.Second)
	unregistered.IncCommitted("vendor")
	unregistered.IncCommitFailure("code")
	unregistered.IncAmendment()
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q with %s=%s not found", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("metric %q with %s=%s not found", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
