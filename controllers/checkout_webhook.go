package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"

	"github.com/brunaaurora/form-payment-integration/metrics"
	"github.com/brunaaurora/form-payment-integration/services"
)

// StripeWebhook receives signed Stripe event deliveries. Only a signature
// failure changes the response; once the payload verifies, every downstream
// failure is logged and the delivery is still acknowledged so Stripe does not
// redeliver a notification for a payment that already happened.
func (cc *CheckoutController) StripeWebhook(c *gin.Context) {
	// Raw bytes, straight off the wire. The signature is computed over the
	// exact payload, so nothing may parse or rewrite the body first.
	payload, err := c.GetRawData()
	if err != nil {
		cc.Logger.Warn("Failed to read webhook body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read request body"})
		return
	}

	event, err := cc.Stripe.VerifyWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		metrics.WebhookSignatureFailures.Inc()
		cc.Logger.Warn("Stripe webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook signature"})
		return
	}

	cc.Logger.Info("Processing Stripe webhook",
		zap.String("event_type", string(event.Type)),
		zap.String("event_id", event.ID),
	)

	switch event.Type {
	case "checkout.session.completed":
		cc.handleCheckoutCompleted(c, event)
	default:
		metrics.WebhookEventsTotal.WithLabelValues(string(event.Type), "ignored").Inc()
		cc.Logger.Info("Ignoring webhook event type", zap.String("event_type", string(event.Type)))
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (cc *CheckoutController) handleCheckoutCompleted(c *gin.Context, event stripe.Event) {
	eventType := string(event.Type)

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		metrics.WebhookEventsTotal.WithLabelValues(eventType, "malformed").Inc()
		cc.Logger.Error("Failed to unmarshal checkout session",
			zap.String("event_id", event.ID),
			zap.Error(err),
		)
		return
	}

	record, err := services.NormalizeCheckoutSession(&sess, time.Now())
	if err != nil {
		metrics.WebhookEventsTotal.WithLabelValues(eventType, "malformed").Inc()
		cc.Logger.Error("Failed to normalize checkout session",
			zap.String("session_id", sess.ID),
			zap.Error(err),
		)
		return
	}

	if err := cc.Sink.Append(c.Request.Context(), record); err != nil {
		metrics.WebhookEventsTotal.WithLabelValues(eventType, "sink_error").Inc()
		cc.Logger.Error("Failed to append order record",
			zap.String("session_id", sess.ID),
			zap.String("payment_id", record.PaymentID),
			zap.Error(err),
		)
		return
	}

	metrics.WebhookEventsTotal.WithLabelValues(eventType, "processed").Inc()
	cc.Logger.Info("Order record persisted",
		zap.String("session_id", sess.ID),
		zap.String("payment_id", record.PaymentID),
		zap.String("email", record.Email),
	)
}
