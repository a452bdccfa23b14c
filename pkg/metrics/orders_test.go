package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/shopspring/decimal"
)

func TestOrderMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewOrderMetrics(reg)

	m.ObserveFinished(decimal.NewFromInt(440))
	m.ObserveFinished(decimal.NewFromInt(600))
	m.AddLineWrites(3, 1)
	m.IncAdminLogin(true)
	m.IncAdminLogin(false)
	m.IncAdminLogin(false)
	m.IncCatalogAdd()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "burgershop_orders_finished_total", "", ""); err != nil {
		t.Fatalf("fetch finished: %v", err)
	} else if got != 2 {
		t.Fatalf("expected finished=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "burgershop_order_line_writes_total", "result", ResultOK); err != nil {
		t.Fatalf("fetch ok writes: %v", err)
	} else if got != 3 {
		t.Fatalf("expected ok writes=3, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "burgershop_order_line_writes_total", "result", ResultFailed); err != nil {
		t.Fatalf("fetch failed writes: %v", err)
	} else if got != 1 {
		t.Fatalf("expected failed writes=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "burgershop_admin_logins_total", "result", ResultFailed); err != nil {
		t.Fatalf("fetch failed logins: %v", err)
	} else if got != 2 {
		t.Fatalf("expected failed logins=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "burgershop_catalog_items_added_total", "", ""); err != nil {
		t.Fatalf("fetch catalog adds: %v", err)
	} else if got != 1 {
		t.Fatalf("expected catalog adds=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "burgershop_order_total_amount"); err != nil {
		t.Fatalf("fetch order totals: %v", err)
	} else if got != 1040 {
		t.Fatalf("expected order total sum 1040, got %f", got)
	}
}

func TestOrderMetricsNilSafe(t *testing.T) {
	var m *OrderMetrics
	m.ObserveFinished(decimal.NewFromInt(1))
	m.AddLineWrites(1, 1)
	m.IncAdminLogin(true)
	m.IncCatalogAdd()

	NewOrderMetrics(nil).ObserveFinished(decimal.NewFromInt(1))
}

// fetchCounterValue matches on label/value; an empty label selects the unlabelled series.
func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if label == "" || matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil || len(mf.GetMetric()) == 0 {
		return 0, fmt.Errorf("histogram %q not found", name)
	}
	return mf.GetMetric()[0].GetHistogram().GetSampleSum(), nil
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
