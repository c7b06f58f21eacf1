package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
	"github.com/stripe/stripe-go/v80/webhook"

	"github.com/brunaaurora/form-payment-integration/models"
)

// StripeGateway is the payment-provider surface the controllers depend on:
// minting hosted checkout sessions and verifying signed webhook payloads.
type StripeGateway interface {
	CreateCheckoutSession(req *models.CheckoutRequest) (*stripe.CheckoutSession, error)
	VerifyWebhook(payload []byte, sigHeader string) (stripe.Event, error)
}

// OrderSink appends one normalized order record to the external store.
type OrderSink interface {
	Append(ctx context.Context, record *models.OrderRecord) error
}

type StripeService struct {
	SecretKey   string
	WebhookKey  string
	FrontendURL string
}

func NewStripeService(secretKey, webhookKey, frontendURL string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{SecretKey: secretKey, WebhookKey: webhookKey, FrontendURL: frontendURL}
}

// CreateCheckoutSession creates a hosted Stripe Checkout Session for a single
// line item. The customer name and any caller metadata are folded into the
// session metadata so they come back on the completion webhook.
func (s *StripeService) CreateCheckoutSession(req *models.CheckoutRequest) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ProductName),
					},
					UnitAmount: stripe.Int64(req.ProductPrice),
				},
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail:     stripe.String(req.CustomerEmail),
		ClientReferenceID: stripe.String(uuid.NewString()),
		SuccessURL:        stripe.String(s.FrontendURL + "/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:         stripe.String(s.FrontendURL + "/cancel"),
	}

	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	if req.CustomerName != "" {
		params.AddMetadata(models.MetadataNameKey, req.CustomerName)
	}

	return session.New(params)
}

// VerifyWebhook validates the Stripe signature over the exact raw payload
// bytes and returns the parsed event. The payload must be the untouched
// request body; any re-serialization breaks the signature.
func (s *StripeService) VerifyWebhook(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, s.WebhookKey)
}
