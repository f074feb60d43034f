package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

var (
	// Webhook submissions by final outcome
	// outcome: success, invalid or failed
	Submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_submissions_total",
			Help: "Form submissions received, by outcome.",
		},
		[]string{"outcome"},
	)

	// Outbound Pipedrive calls
	// operation: persons, leads or notes
	// code: http status code, or "error" when no response was received
	PipedriveRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipedrive_requests_total",
			Help: "Requests sent to the Pipedrive API.",
		},
		[]string{"operation", "code"},
	)

	PipedriveLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipedrive_request_duration_seconds",
			Help:    "Latency of requests sent to the Pipedrive API.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)
