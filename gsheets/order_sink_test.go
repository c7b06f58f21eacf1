package gsheets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/brunaaurora/form-payment-integration/models"
)

func TestNewOrderSinkRejectsMalformedCredentials(t *testing.T) {
	_, err := NewOrderSink(context.Background(), []byte("not json"), "sheet-id", "Sheet1!A:Z", zap.NewNop())
	assert.Error(t, err)

	_, err = NewOrderSink(context.Background(), []byte(`{"type":"authorized_user"}`), "sheet-id", "Sheet1!A:Z", zap.NewNop())
	assert.Error(t, err, "only service-account credentials are accepted")
}

func TestDisabledSinkDropsWithoutError(t *testing.T) {
	sink := &DisabledSink{Logger: zap.NewNop()}

	err := sink.Append(context.Background(), &models.OrderRecord{
		Name:  "Ann",
		Email: "ann@x.com",
	})
	assert.NoError(t, err)
}
