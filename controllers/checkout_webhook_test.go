package controllers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v80"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/brunaaurora/form-payment-integration/models"
	"github.com/brunaaurora/form-payment-integration/services"
)

const webhookSecret = "whsec_test_secret"

func stripeSignature(payload []byte, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func completedSessionPayload() []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_test_1",
		"object": "event",
		"api_version": %q,
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_test_1",
				"object": "checkout.session",
				"amount_total": 5000,
				"payment_intent": "pi_1",
				"metadata": {"customerName": "Ann", "notes": "vip"},
				"customer_details": {"email": "ann@x.com"}
			}
		}
	}`, stripe.APIVersion))
}

func otherEventPayload() []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_test_2",
		"object": "event",
		"api_version": %q,
		"type": "payment_intent.created",
		"data": {"object": {"id": "pi_2", "object": "payment_intent"}}
	}`, stripe.APIVersion))
}

func newWebhookController(sink *MockOrderSink) *CheckoutController {
	return &CheckoutController{
		Stripe: services.NewStripeService("sk_test_key", webhookSecret, "http://localhost:3000"),
		Sink:   sink,
		Logger: zap.NewNop(),
	}
}

func postWebhook(r *gin.Engine, payload []byte, signature string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, "/webhook", bytes.NewBuffer(payload))
	req.Header.Set("Stripe-Signature", signature)
	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, req)
	return recorder
}

func TestStripeWebhook(t *testing.T) {
	t.Run("completed session - 200 and one sink append", func(t *testing.T) {
		sink := new(MockOrderSink)
		cc := newWebhookController(sink)

		before := time.Now().UTC().Add(-time.Second)
		sink.On("Append", mock.Anything, mock.MatchedBy(func(r *models.OrderRecord) bool {
			ts, err := time.Parse(time.RFC3339, r.Timestamp)
			return r.Name == "Ann" &&
				r.Email == "ann@x.com" &&
				r.PaymentStatus == "completed" &&
				r.PaymentID == "pi_1" &&
				r.PaymentAmount.Equal(decimal.NewFromInt(50)) &&
				len(r.Extra) == 1 && r.Extra["notes"] == "vip" &&
				err == nil && ts.After(before)
		})).Return(nil).Once()

		payload := completedSessionPayload()
		recorder := postWebhook(newTestRouter(cc), payload, stripeSignature(payload, webhookSecret))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"received":true}`, recorder.Body.String())
		sink.AssertExpectations(t)
	})

	t.Run("tampered body - 400 and no sink write", func(t *testing.T) {
		sink := new(MockOrderSink)
		cc := newWebhookController(sink)

		payload := completedSessionPayload()
		signature := stripeSignature(payload, webhookSecret)
		tampered := bytes.Replace(payload, []byte(`"amount_total": 5000`), []byte(`"amount_total": 9999`), 1)

		recorder := postWebhook(newTestRouter(cc), tampered, signature)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		sink.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("wrong secret - 400 and no sink write", func(t *testing.T) {
		sink := new(MockOrderSink)
		cc := newWebhookController(sink)

		payload := completedSessionPayload()
		recorder := postWebhook(newTestRouter(cc), payload, stripeSignature(payload, "whsec_wrong"))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		sink.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("other event kind - acknowledged, no sink write", func(t *testing.T) {
		sink := new(MockOrderSink)
		cc := newWebhookController(sink)

		payload := otherEventPayload()
		recorder := postWebhook(newTestRouter(cc), payload, stripeSignature(payload, webhookSecret))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"received":true}`, recorder.Body.String())
		sink.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("sink failure - still acknowledged", func(t *testing.T) {
		sink := new(MockOrderSink)
		cc := newWebhookController(sink)

		sink.On("Append", mock.Anything, mock.Anything).
			Return(errors.New("sheets: quota exceeded")).Once()

		payload := completedSessionPayload()
		recorder := postWebhook(newTestRouter(cc), payload, stripeSignature(payload, webhookSecret))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"received":true}`, recorder.Body.String())
		sink.AssertExpectations(t)
	})

	t.Run("missing customer email - acknowledged, no sink write", func(t *testing.T) {
		sink := new(MockOrderSink)
		cc := newWebhookController(sink)

		payload := bytes.Replace(completedSessionPayload(),
			[]byte(`"customer_details": {"email": "ann@x.com"}`),
			[]byte(`"customer_details": {}`), 1)
		recorder := postWebhook(newTestRouter(cc), payload, stripeSignature(payload, webhookSecret))

		assert.Equal(t, http.StatusOK, recorder.Code)
		sink.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})
}
