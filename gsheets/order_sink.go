package gsheets

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/brunaaurora/form-payment-integration/metrics"
	"github.com/brunaaurora/form-payment-integration/models"
)

const appendTimeout = 10 * time.Second

// OrderSink appends normalized order records as rows to a single Google
// Sheet, authenticating with a service-account JWT scoped to spreadsheets.
// It performs no retries; failures are the caller's to log or ignore.
type OrderSink struct {
	svc           *sheets.Service
	spreadsheetID string
	writeRange    string
	logger        *zap.Logger
}

// NewOrderSink builds a sink from a service-account credential JSON blob and
// a destination spreadsheet. A malformed credential fails here, before any
// request is taken.
func NewOrderSink(ctx context.Context, credentialsJSON []byte, spreadsheetID, writeRange string, logger *zap.Logger) (*OrderSink, error) {
	jwtCfg, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account credentials: %w", err)
	}

	httpClient := jwtCfg.Client(ctx)
	httpClient.Timeout = appendTimeout

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("init sheets client: %w", err)
	}

	return &OrderSink{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		writeRange:    writeRange,
		logger:        logger,
	}, nil
}

// Append writes exactly one row for the record. No batching, no dedup.
func (s *OrderSink) Append(ctx context.Context, record *models.OrderRecord) error {
	ctx, cancel := context.WithTimeout(ctx, appendTimeout)
	defer cancel()

	vr := &sheets.ValueRange{
		Values: [][]interface{}{record.SheetRow()},
	}

	start := time.Now()
	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, s.writeRange, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	metrics.SheetAppendDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.SheetAppendErrors.Inc()
		return fmt.Errorf("append row to sheet %s: %w", s.spreadsheetID, err)
	}

	s.logger.Info("Order row appended to sheet",
		zap.String("spreadsheet_id", s.spreadsheetID),
		zap.String("payment_id", record.PaymentID),
	)
	return nil
}

// DisabledSink stands in when the sheet credential or destination ID is not
// configured. Appends are logged and dropped so the webhook endpoint stays
// functional.
type DisabledSink struct {
	Logger *zap.Logger
}

func (d *DisabledSink) Append(_ context.Context, record *models.OrderRecord) error {
	d.Logger.Warn("Sheet sink not configured, dropping order record",
		zap.String("payment_id", record.PaymentID),
		zap.String("email", record.Email),
	)
	return nil
}
