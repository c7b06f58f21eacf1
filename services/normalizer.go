package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v80"

	"github.com/brunaaurora/form-payment-integration/models"
)

// ErrMissingCustomerEmail indicates a completed checkout session arrived
// without a customer email. The record cannot be written without it.
var ErrMissingCustomerEmail = errors.New("checkout session has no customer email")

var minorUnitsPerMajor = decimal.NewFromInt(100)

// NormalizeCheckoutSession reshapes a verified checkout.session.completed
// payload into one flat OrderRecord. Pure field mapping, no I/O.
//
// The reserved customerName metadata key becomes Name and is dropped from the
// pass-through map; amount_total is converted from minor to major units with
// exact decimal division; the timestamp is the processing time, not anything
// carried by the event.
func NormalizeCheckoutSession(sess *stripe.CheckoutSession, now time.Time) (*models.OrderRecord, error) {
	if sess.CustomerDetails == nil || sess.CustomerDetails.Email == "" {
		return nil, ErrMissingCustomerEmail
	}

	var paymentID string
	if sess.PaymentIntent != nil {
		paymentID = sess.PaymentIntent.ID
	}

	extra := make(map[string]string, len(sess.Metadata))
	for k, v := range sess.Metadata {
		if k == models.MetadataNameKey {
			continue
		}
		extra[k] = v
	}

	return &models.OrderRecord{
		Name:          sess.Metadata[models.MetadataNameKey],
		Email:         sess.CustomerDetails.Email,
		PaymentStatus: "completed",
		PaymentID:     paymentID,
		PaymentAmount: decimal.NewFromInt(sess.AmountTotal).Div(minorUnitsPerMajor),
		Timestamp:     now.UTC().Format(time.RFC3339),
		Extra:         extra,
	}, nil
}
