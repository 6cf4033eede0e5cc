package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestBotMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBotMetrics(reg)

	m.IncEvent("button")
	m.IncEvent("button")
	m.IncOrder("pickup")
	m.IncNotifyFailure(StageDirect)
	m.IncNotifyFailure("")
	m.IncQueued()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	checks := []struct {
		name, label, value string
		want               float64
	}{
		{"bot_events_total", "kind", "button", 2},
		{"bot_orders_total", "delivery", "pickup", 1},
		{"bot_notify_failures_total", "stage", StageDirect, 1},
		{"bot_notify_failures_total", "stage", "unknown", 1},
	}
	for _, c := range checks {
		got, err := fetchCounterValue(mfs, c.name, c.label, c.value)
		if err != nil {
			t.Fatalf("fetch %s: %v", c.name, err)
		}
		if got != c.want {
			t.Fatalf("%s{%s=%q} = %f, want %f", c.name, c.label, c.value, got, c.want)
		}
	}

	queued := findMetricFamily(mfs, "bot_orders_queued_total")
	if queued == nil || queued.GetMetric()[0].GetCounter().GetValue() != 1 {
		t.Fatalf("expected bot_orders_queued_total = 1")
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *BotMetrics
	m.IncEvent("start")
	m.IncOrder("pickup")
	m.IncNotifyFailure(StageRetry)
	m.IncQueued()

	NewBotMetrics(nil).IncEvent("start")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		for _, l := range metric.GetLabel() {
			if l.GetName() == label && l.GetValue() == value {
				return metric.GetCounter().GetValue(), nil
			}
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}
