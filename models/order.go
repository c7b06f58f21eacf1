package models

import (
	"sort"

	"github.com/shopspring/decimal"
)

// MetadataNameKey is the reserved checkout-session metadata key holding the
// customer's display name. It is lifted into OrderRecord.Name and excluded
// from the pass-through fields.
const MetadataNameKey = "customerName"

// CheckoutRequest is the order intent posted by the storefront form.
// productPrice is in minor currency units (cents).
type CheckoutRequest struct {
	ProductName   string            `json:"productName" binding:"required"`
	ProductPrice  int64             `json:"productPrice" binding:"required,min=1"`
	CustomerName  string            `json:"customerName"`
	CustomerEmail string            `json:"customerEmail" binding:"required,email"`
	Metadata      map[string]string `json:"metadata"`
}

// OrderRecord is the flat order row produced from a completed checkout
// session. Extra holds every metadata key except MetadataNameKey, verbatim.
type OrderRecord struct {
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	PaymentStatus string            `json:"paymentStatus"`
	PaymentID     string            `json:"paymentId"`
	PaymentAmount decimal.Decimal   `json:"paymentAmount"`
	Timestamp     string            `json:"timestamp"`
	Extra         map[string]string `json:"extra,omitempty"`
}

// SheetRow flattens the record into the destination's positional column
// layout: the six well-known columns first, then the Extra values in
// ascending key order so the row shape is deterministic.
func (r *OrderRecord) SheetRow() []interface{} {
	row := []interface{}{
		r.Name,
		r.Email,
		r.PaymentStatus,
		r.PaymentID,
		r.PaymentAmount.String(),
		r.Timestamp,
	}

	keys := make([]string, 0, len(r.Extra))
	for k := range r.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		row = append(row, r.Extra[k])
	}
	return row
}
