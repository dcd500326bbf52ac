package invoices

import (
	"time"

	"github.com/google/uuid"

	"github.com/quotedesk/quotedesk/internal/customers"
	"github.com/quotedesk/quotedesk/internal/totals"
)

// LineItem is one row of a quotation. Total is always quantity × price.
type LineItem struct {
	ProductID   *int64        `json:"product_id,omitempty"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Quantity    totals.Number `json:"quantity"`
	Price       totals.Number `json:"price"`
	Total       totals.Number `json:"total"`
}

// CustomerSnapshot is the copy of a customer's details frozen into an invoice.
type CustomerSnapshot struct {
	Name         string `json:"customer_name"`
	Email        string `json:"customer_email"`
	Phone        string `json:"customer_phone"`
	Address1     string `json:"customer_address_1"`
	Address2     string `json:"customer_address_2"`
	Town         string `json:"customer_town"`
	County       string `json:"customer_county"`
	Postcode     string `json:"customer_postcode"`
	NameShip     string `json:"customer_name_ship"`
	Address1Ship string `json:"customer_address_1_ship"`
	Address2Ship string `json:"customer_address_2_ship"`
	TownShip     string `json:"customer_town_ship"`
	CountyShip   string `json:"customer_county_ship"`
	PostcodeShip string `json:"customer_postcode_ship"`
}

// SnapshotOf copies the customer record into a snapshot.
func SnapshotOf(c customers.Customer) CustomerSnapshot {
	return CustomerSnapshot{
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Address1:     c.Address1,
		Address2:     c.Address2,
		Town:         c.Town,
		County:       c.County,
		Postcode:     c.Postcode,
		NameShip:     c.NameShip,
		Address1Ship: c.Address1Ship,
		Address2Ship: c.Address2Ship,
		TownShip:     c.TownShip,
		CountyShip:   c.CountyShip,
		PostcodeShip: c.PostcodeShip,
	}
}

// Invoice is a quotation or estimate with its canonical totals.
type Invoice struct {
	ID                 uuid.UUID        `json:"id"`
	InvoiceNumber      string           `json:"invoice_number"`
	Sequence           int64            `json:"sequence"`
	Type               string           `json:"type"`
	Status             string           `json:"status"`
	PaymentStatus      string           `json:"payment_status"`
	CustomerID         *int64           `json:"customer_id,omitempty"`
	Customer           CustomerSnapshot `json:"customer"`
	Items              []LineItem       `json:"items"`
	SubTotal           totals.Number    `json:"sub_total"`
	DiscountPercent    totals.Number    `json:"discount_percent"`
	DiscountAmount     totals.Number    `json:"discount_amount"`
	Shipping           totals.Number    `json:"shipping"`
	TaxPercent         totals.Number    `json:"tax_percent"`
	TaxAmount          totals.Number    `json:"tax_amount"`
	RemoveTax          bool             `json:"remove_tax"`
	OrderTotalAfterTax totals.Number    `json:"order_total_after_tax"`
	Notes              string           `json:"notes"`
	InvoiceDate        time.Time        `json:"invoice_date"`
	DueDate            time.Time        `json:"due_date"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}
