package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Archive submission outcomes.
const (
	OutcomeClassified = "classified"
	OutcomeDegraded   = "degraded"
	OutcomeFailed     = "failed"
)

type ArchiveMetrics struct {
	service string

	archiveTotal    *prometheus.CounterVec
	archiveDuration *prometheus.HistogramVec
}

func NewArchiveMetrics(registry *prometheus.Registry, service string) *ArchiveMetrics {
	archiveTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docvault",
			Subsystem: "archive",
			Name:      "submissions_total",
			Help:      "Total archive submissions by outcome.",
		},
		[]string{"service", "outcome"},
	)
	archiveDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docvault",
			Subsystem: "archive",
			Name:      "submission_duration_seconds",
			Help:      "End-to-end submission pipeline duration in seconds by outcome.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "outcome"},
	)

	registry.MustRegister(archiveTotal, archiveDuration)

	return &ArchiveMetrics{
		service:         service,
		archiveTotal:    archiveTotal,
		archiveDuration: archiveDuration,
	}
}

// ObserveSubmission is nil-safe so handlers can run without metrics in tests.
func (m *ArchiveMetrics) ObserveSubmission(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.archiveTotal.WithLabelValues(m.service, outcome).Inc()
	m.archiveDuration.WithLabelValues(m.service, outcome).Observe(elapsed.Seconds())
}
