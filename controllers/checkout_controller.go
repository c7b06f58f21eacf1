package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/brunaaurora/form-payment-integration/metrics"
	"github.com/brunaaurora/form-payment-integration/models"
	"github.com/brunaaurora/form-payment-integration/services"
)

type CheckoutController struct {
	Stripe services.StripeGateway
	Sink   services.OrderSink
	Logger *zap.Logger
}

// CreateCheckoutSession validates the order intent and delegates to Stripe
// for a hosted checkout session. Validation failures never reach the
// provider; provider failures come back as 500 with a displayable message.
func (cc *CheckoutController) CreateCheckoutSession(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.CheckoutSessionsTotal.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := cc.Stripe.CreateCheckoutSession(&req)
	if err != nil {
		metrics.CheckoutSessionsTotal.WithLabelValues("provider_error").Inc()
		cc.Logger.Error("Stripe checkout session creation failed",
			zap.String("product", req.ProductName),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start payment: " + err.Error()})
		return
	}

	metrics.CheckoutSessionsTotal.WithLabelValues("created").Inc()
	cc.Logger.Info("Checkout session created",
		zap.String("session_id", sess.ID),
		zap.String("product", req.ProductName),
	)
	c.JSON(http.StatusOK, gin.H{"checkoutUrl": sess.URL})
}
