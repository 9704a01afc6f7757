package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	refreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "argus_refresh_total",
		Help: "Total number of snapshot refresh cycles by outcome",
	}, []string{"outcome"})
	refreshDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "argus_refresh_duration_seconds",
		Help:    "Duration of snapshot refresh cycles",
		Buckets: prometheus.DefBuckets,
	})
	activeBlocks = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "argus_active_blocks",
		Help: "Active block records in the current snapshot",
	})
	detectionEvents = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "argus_detection_events",
		Help: "Detection events in the current snapshot after dedup",
	})
	criticalEvents = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "argus_critical_events",
		Help: "Events with risk score >= 90 in the current snapshot",
	})
)

// Register registers Prometheus collectors. Call once at startup.
func Register(registry *prometheus.Registry) {
	registry.MustRegister(refreshTotal, refreshDuration, activeBlocks, detectionEvents, criticalEvents)
}

// ObserveRefresh records one refresh cycle.
func ObserveRefresh(success bool, seconds float64) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	refreshTotal.WithLabelValues(outcome).Inc()
	refreshDuration.Observe(seconds)
}

// SetSnapshotGauges updates the per-snapshot gauges.
func SetSnapshotGauges(blocks, detections, critical int) {
	activeBlocks.Set(float64(blocks))
	detectionEvents.Set(float64(detections))
	criticalEvents.Set(float64(critical))
}
