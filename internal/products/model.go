package products

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalogue entry that invoice lines may reference.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"product_name"`
	Description string          `json:"product_desc"`
	Price       decimal.Decimal `json:"product_price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
