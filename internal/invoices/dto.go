package invoices

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/quotedesk/quotedesk/internal/totals"
)

// Date accepts RFC 3339 timestamps or plain YYYY-MM-DD dates.
type Date struct {
	time.Time
}

// UnmarshalJSON parses either supported layout. Null and "" leave the zero value.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw := strings.Trim(string(data), `"`)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", raw)
}

// Payload is the client-supplied body for create and update.
// Derived totals sent by the client are ignored.
type Payload struct {
	Type            string            `json:"type"`
	Status          string            `json:"status"`
	PaymentStatus   string            `json:"payment_status"`
	CustomerID      *int64            `json:"customer_id"`
	Customer        *CustomerSnapshot `json:"customer"`
	Items           []LineItem        `json:"items"`
	DiscountPercent totals.Number     `json:"discount_percent"`
	Shipping        totals.Number     `json:"shipping"`
	TaxPercent      totals.Number     `json:"tax_percent"`
	RemoveTax       bool              `json:"remove_tax"`
	Notes           string            `json:"notes"`
	InvoiceDate     *Date             `json:"invoice_date"`
	DueDate         *Date             `json:"due_date"`
}

// TotalsRequest is the body of the preview-totals endpoint.
type TotalsRequest struct {
	Items           []LineItem    `json:"items"`
	DiscountPercent totals.Number `json:"discount_percent"`
	Shipping        totals.Number `json:"shipping"`
	TaxPercent      totals.Number `json:"tax_percent"`
	RemoveTax       bool          `json:"remove_tax"`
}

// TotalsView is the JSON form of a totals computation.
type TotalsView struct {
	Items              []LineItem    `json:"items"`
	SubTotal           totals.Number `json:"sub_total"`
	DiscountAmount     totals.Number `json:"discount_amount"`
	TaxableBase        totals.Number `json:"taxable_base"`
	TaxAmount          totals.Number `json:"tax_amount"`
	OrderTotalAfterTax totals.Number `json:"order_total_after_tax"`
}

// ListInvoicesRequest filters and paginates invoice listings.
type ListInvoicesRequest struct {
	Type          string
	Status        string
	PaymentStatus string
	Limit         int
	Offset        int
}
