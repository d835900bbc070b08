package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request latency (seconds)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// DB query latency (seconds)
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"operation", "table"},
	)

	// MQ consume latency (milliseconds)
	MQConsumeLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mq_consume_latency_ms",
			Help:    "MQ message consumption latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10), // 10ms to ~10s
		},
		[]string{"routing_key", "queue"},
	)

	// Schedule synchronizer operations
	ScheduleSyncCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedule_sync_count",
			Help: "Total number of schedule synchronizer operations",
		},
		[]string{"operation"}, // operation: set, delete, skip
	)

	// Reminder dispatch outcomes
	ReminderDispatchCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminder_dispatch_count",
			Help: "Total number of reminder dispatch attempts",
		},
		[]string{"status"}, // status: sent, failed, duplicate, skipped
	)
)

// RecordHTTPRequestDuration records the duration of an HTTP request.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordDBQueryDuration records the duration of a database query.
func RecordDBQueryDuration(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// RecordMQConsumeLatency records how long a message took to process.
func RecordMQConsumeLatency(routingKey, queue string, duration time.Duration) {
	MQConsumeLatency.WithLabelValues(routingKey, queue).Observe(float64(duration.Milliseconds()))
}

// IncrementScheduleSync counts a synchronizer operation.
func IncrementScheduleSync(operation string) {
	ScheduleSyncCount.WithLabelValues(operation).Inc()
}

// IncrementReminderDispatch counts a reminder dispatch outcome.
func IncrementReminderDispatch(status string) {
	ReminderDispatchCount.WithLabelValues(status).Inc()
}
