package products

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/quotedesk/quotedesk/internal/shared"
)

// CreateProductRequest is the payload for POST /api/products.
type CreateProductRequest struct {
	Name        string           `json:"product_name" validate:"required,max=200"`
	Description string           `json:"product_desc" validate:"max=2000"`
	Price       *decimal.Decimal `json:"product_price" validate:"required"`
}

// UpdateProductRequest carries a partial update.
type UpdateProductRequest struct {
	Name        *string          `json:"product_name" validate:"omitempty,max=200"`
	Description *string          `json:"product_desc" validate:"omitempty,max=2000"`
	Price       *decimal.Decimal `json:"product_price"`
}

// ListProductsRequest filters product listings.
type ListProductsRequest struct {
	Search string
	Limit  int
	Offset int
}

func checkPrice(price *decimal.Decimal) error {
	if price != nil && price.IsNegative() {
		return fmt.Errorf("%w: product_price must be >= 0", shared.ErrValidation)
	}
	return nil
}

func (req UpdateProductRequest) apply(p *Product) {
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil && *req.Description != "" {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
}
