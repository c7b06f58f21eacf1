package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Checkout session creation metrics
	CheckoutSessionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_sessions_total",
			Help: "Total number of checkout session creation attempts",
		},
		[]string{"status"},
	)

	// Webhook metrics
	WebhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_webhook_events_total",
			Help: "Total number of webhook events received",
		},
		[]string{"type", "outcome"},
	)

	WebhookSignatureFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_webhook_signature_failures_total",
			Help: "Total number of webhook deliveries rejected for a bad signature",
		},
	)

	// Sheet sink metrics
	SheetAppendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "checkout_sheet_append_duration_seconds",
			Help:    "Duration of spreadsheet row appends in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	SheetAppendErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_sheet_append_errors_total",
			Help: "Total number of failed spreadsheet row appends",
		},
	)
)
