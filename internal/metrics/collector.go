// Package metrics exposes the injection loop's counters on an optional
// Prometheus HTTP endpoint (§6, §11 domain stack).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "t50"
	subsystem = "inject"
)

const labelWorker = "worker" // "main", "parent", or "child"
const labelModule = "module" // the module name that built the datagram

// Collector holds every Prometheus metric the injection loop updates.
// PacketsSent and SendErrors are labeled by worker and module so a mixed
// T50-mode run shows the rotation; ThresholdRemaining is a single gauge
// since the loop has one logical threshold regardless of how many
// workers are splitting it.
type Collector struct {
	// PacketsSent counts every datagram successfully handed to the raw
	// socket.
	PacketsSent *prometheus.CounterVec

	// SendErrors counts transient send failures (§7 "no retry").
	SendErrors *prometheus.CounterVec

	// ThresholdRemaining reports the packet count still owed before the
	// run stops; always 0 in flood mode.
	ThresholdRemaining prometheus.Gauge
}

// NewCollector creates a Collector and registers its metrics against reg.
// If reg is nil, prometheus.DefaultRegisterer is used.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := newMetrics()

	reg.MustRegister(c.PacketsSent, c.SendErrors, c.ThresholdRemaining)

	return c
}

func newMetrics() *Collector {
	labels := []string{labelWorker, labelModule}

	return &Collector{
		PacketsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "packets_sent_total",
			Help:      "Total datagrams transmitted by the injection loop.",
		}, labels),

		SendErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "send_errors_total",
			Help:      "Total raw-socket send failures, by worker and module.",
		}, labels),

		ThresholdRemaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "threshold_remaining",
			Help:      "Datagrams still owed before the run stops; 0 in flood mode.",
		}),
	}
}

// IncPacketsSent increments the sent counter for one worker/module pair.
func (c *Collector) IncPacketsSent(worker, module string) {
	c.PacketsSent.WithLabelValues(worker, module).Inc()
}

// IncSendErrors increments the send-error counter for one worker/module
// pair.
func (c *Collector) IncSendErrors(worker, module string) {
	c.SendErrors.WithLabelValues(worker, module).Inc()
}

// SetThresholdRemaining records how many datagrams are still owed.
func (c *Collector) SetThresholdRemaining(n float64) {
	c.ThresholdRemaining.Set(n)
}
