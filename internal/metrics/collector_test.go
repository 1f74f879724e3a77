package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/t50io/t50/internal/metrics"
)

func TestNewCollector(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)

	if c.PacketsSent == nil {
		t.Error("PacketsSent is nil")
	}
	if c.SendErrors == nil {
		t.Error("SendErrors is nil")
	}
	if c.ThresholdRemaining == nil {
		t.Error("ThresholdRemaining is nil")
	}

	if _, err := reg.Gather(); err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
}

func TestPacketsSent(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)

	c.IncPacketsSent("parent", "tcp")
	c.IncPacketsSent("parent", "tcp")
	c.IncPacketsSent("child", "tcp")

	if got := counterValue(t, c.PacketsSent, "parent", "tcp"); got != 2 {
		t.Errorf("PacketsSent(parent,tcp) = %v, want 2", got)
	}
	if got := counterValue(t, c.PacketsSent, "child", "tcp"); got != 1 {
		t.Errorf("PacketsSent(child,tcp) = %v, want 1", got)
	}
}

func TestSendErrors(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)

	c.IncSendErrors("single", "ospf")

	if got := counterValue(t, c.SendErrors, "single", "ospf"); got != 1 {
		t.Errorf("SendErrors(single,ospf) = %v, want 1", got)
	}
}

func TestThresholdRemaining(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)

	c.SetThresholdRemaining(42)

	m := &dto.Metric{}
	if err := c.ThresholdRemaining.Write(m); err != nil {
		t.Fatalf("Write metric: %v", err)
	}
	if got := m.GetGauge().GetValue(); got != 42 {
		t.Errorf("ThresholdRemaining = %v, want 42", got)
	}
}

func counterValue(t *testing.T, vec *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()

	counter, err := vec.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("GetMetricWithLabelValues(%v): %v", labels, err)
	}

	m := &dto.Metric{}
	if err := counter.Write(m); err != nil {
		t.Fatalf("Write metric: %v", err)
	}

	return m.GetCounter().GetValue()
}
