package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// API metrics
var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Submission metrics
var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submissions_total",
			Help: "Total number of sign-up submissions by outcome",
		},
		[]string{"result"}, // accepted, rejected
	)
)

// Spreadsheet metrics
var (
	SheetsAppendTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sheets_append_total",
			Help: "Total number of spreadsheet append calls by outcome",
		},
		[]string{"status"}, // ok, error
	)

	SheetsAppendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sheets_append_duration_seconds",
			Help:    "Duration of spreadsheet append calls",
			Buckets: prometheus.DefBuckets,
		},
	)
)
