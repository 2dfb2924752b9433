package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestHTTPMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := newHTTPMetrics(reg)

	done := metrics.IncInFlight()
	metrics.ObserveRequest("GET", "/api/tours", 200, 120*time.Millisecond)
	metrics.ObserveRequest("GET", "/api/tours", 200, 80*time.Millisecond)
	metrics.ObserveRequest("POST", "/api/orders", 422, 10*time.Millisecond)
	done()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "http_requests_total", "route", "/api/tours"); err != nil {
		t.Fatalf("fetch tours counter: %v", err)
	} else if got != 2 {
		t.Fatalf("expected 2 tour requests, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "http_requests_total", "status", "422"); err != nil {
		t.Fatalf("fetch 422 counter: %v", err)
	} else if got != 1 {
		t.Fatalf("expected 1 rejected order, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "http_request_duration_seconds", "route", "/api/tours"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}

	if got, err := fetchGaugeValue(mfs, "http_requests_in_flight"); err != nil {
		t.Fatalf("fetch in flight: %v", err)
	} else if got != 0 {
		t.Fatalf("expected in-flight gauge back to 0, got %f", got)
	}
}

func TestHTTPMetricsNormalizesEmptyLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := newHTTPMetrics(reg)
	metrics.ObserveRequest("", "", 500, time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchCounterValue(mfs, "http_requests_total", "route", "unknown"); err != nil {
		t.Fatalf("fetch unknown route: %v", err)
	} else if got != 1 {
		t.Fatalf("expected 1 unknown-route request, got %f", got)
	}
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
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
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
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func fetchGaugeValue(mfs []*dto.MetricFamily, name string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	if len(mf.GetMetric()) == 0 {
		return 0, fmt.Errorf("metric %q has no samples", name)
	}
	return mf.GetMetric()[0].GetGauge().GetValue(), nil
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
