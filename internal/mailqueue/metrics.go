package mailqueue

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Queue metrics for Prometheus monitoring.
var (
	TasksEnqueuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mail_queue_tasks_enqueued_total",
			Help: "Total number of confirmation-mail tasks accepted onto the queue",
		},
	)

	TasksRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mail_queue_tasks_rejected_total",
			Help: "Total number of enqueue calls rejected (empty recipient or stopped queue)",
		},
	)

	TasksProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_queue_tasks_processed_total",
			Help: "Total number of delivery attempts by outcome",
		},
		[]string{"status"}, // sent, auth_failed, failed
	)

	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mail_queue_depth",
			Help: "Number of tasks currently waiting on the queue",
		},
	)

	DeliveryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mail_delivery_duration_seconds",
			Help:    "Duration of SMTP delivery attempts",
			Buckets: prometheus.DefBuckets,
		},
	)
)
