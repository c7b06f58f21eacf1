package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brunaaurora/form-payment-integration/controllers"
)

func RegisterCheckoutRoutes(r *gin.Engine, cc *controllers.CheckoutController) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "form-payment-integration: ok")
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/create-checkout-session", cc.CreateCheckoutSession)

	// Stripe webhook (no auth; authenticated by signature)
	r.POST("/webhook", cc.StripeWebhook)
}
