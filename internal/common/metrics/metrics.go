// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TriageEvaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_evaluations_total",
			Help: "Total number of triage evaluations by resulting risk level",
		},
		[]string{"risk_level"},
	)

	TriageEmergencies = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "triage_emergencies_detected_total",
			Help: "Total number of evaluations short-circuited by the emergency detector",
		},
	)

	TriageEvaluationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "triage_evaluation_duration_seconds",
			Help:    "Duration of one triage evaluation",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)

	CatalogEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "triage_catalog_entries",
			Help: "Entries in the active catalog snapshot",
		},
		[]string{"kind"}, // symptoms, diseases, relations
	)

	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)
)
