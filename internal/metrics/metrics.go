package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for monitoring ingestion and bulk operation health
var (
	WebhooksReceivedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhooks_received_total",
			Help: "Total number of webhook deliveries received, by outcome",
		},
		[]string{"outcome"},
	)

	WebhookEventsPersistedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "webhook_events_persisted_total",
			Help: "Total number of webhook events persisted as PENDING",
		},
	)

	GraphQLCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopify_graphql_calls_total",
			Help: "Total number of Admin API mutation calls, by operation",
		},
		[]string{"operation"},
	)

	BulkOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bulk_operation_duration_seconds",
			Help:    "Duration of bulk maintenance operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// Register registers all Prometheus metrics
func Register() {
	prometheus.MustRegister(WebhooksReceivedTotal)
	prometheus.MustRegister(WebhookEventsPersistedTotal)
	prometheus.MustRegister(GraphQLCallsTotal)
	prometheus.MustRegister(BulkOperationDuration)
}
