package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestCartMetricsExportsMutationCounterAndHistograms(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewCartMetrics(reg)

	metrics.ObserveMutation(2, 600)
	metrics.ObserveMutation(3, 1100)
	metrics.ObserveMutation(0, 0)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	mf := findMetricFamily(mfs, "cart_mutations_total")
	if mf == nil {
		t.Fatal("cart_mutations_total not found")
	}
	if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 3 {
		t.Fatalf("expected 3 mutations, got %f", got)
	}

	if got, err := fetchPlainHistogramSum(mfs, "cart_items"); err != nil {
		t.Fatalf("fetch cart_items: %v", err)
	} else if got != 5 {
		t.Fatalf("expected item sum 5, got %f", got)
	}

	if got, err := fetchPlainHistogramSum(mfs, "cart_value"); err != nil {
		t.Fatalf("fetch cart_value: %v", err)
	} else if got != 1700 {
		t.Fatalf("expected value sum 1700, got %f", got)
	}
}

func TestCartMetricsNilSafe(t *testing.T) {
	var metrics *CartMetrics
	metrics.ObserveMutation(1, 100)
	NewCartMetrics(nil).ObserveMutation(1, 100)
}

func fetchPlainHistogramSum(mfs []*dto.MetricFamily, name string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	if len(mf.GetMetric()) == 0 {
		return 0, fmt.Errorf("metric %q has no samples", name)
	}
	return mf.GetMetric()[0].GetHistogram().GetSampleSum(), nil
}
