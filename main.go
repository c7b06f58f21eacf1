package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/brunaaurora/form-payment-integration/config"
	"github.com/brunaaurora/form-payment-integration/controllers"
	"github.com/brunaaurora/form-payment-integration/gsheets"
	"github.com/brunaaurora/form-payment-integration/middleware"
	"github.com/brunaaurora/form-payment-integration/routes"
	"github.com/brunaaurora/form-payment-integration/services"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("[Checkout] Failed to load config: ", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("[Checkout] Failed to initialize logger: ", err)
	}
	defer logger.Sync()

	stripeSvc := services.NewStripeService(cfg.StripeSecretKey, cfg.StripeWebhookKey, cfg.FrontendURL)

	// The sink is best-effort: a missing or broken sheet configuration must
	// not take the webhook endpoint down with it.
	var sink services.OrderSink = &gsheets.DisabledSink{Logger: logger}
	if cfg.SheetConfigured() {
		s, err := gsheets.NewOrderSink(context.Background(), []byte(cfg.GoogleCredentials), cfg.SpreadsheetID, cfg.SheetRange, logger)
		if err != nil {
			logger.Error("Sheet sink initialization failed, running with disabled sink", zap.Error(err))
		} else {
			sink = s
		}
	} else {
		logger.Warn("GOOGLE_CREDENTIALS_JSON / SHEET_ID not set, sheet sink disabled")
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	cc := &controllers.CheckoutController{
		Stripe: stripeSvc,
		Sink:   sink,
		Logger: logger,
	}
	routes.RegisterCheckoutRoutes(r, cc)

	logger.Info("Checkout service running", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("[Checkout] Server failed: ", err)
	}
}
