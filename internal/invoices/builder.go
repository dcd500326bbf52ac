package invoices

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quotedesk/quotedesk/internal/customers"
	"github.com/quotedesk/quotedesk/internal/products"
	"github.com/quotedesk/quotedesk/internal/sequence"
	"github.com/quotedesk/quotedesk/internal/shared"
	"github.com/quotedesk/quotedesk/internal/totals"
)

// DefaultTermDays is the gap between invoice and due date when none is given.
const DefaultTermDays = 30

// ErrMissingFields is returned when the customer or the items are absent.
var ErrMissingFields = fmt.Errorf("%w: missing required fields", shared.ErrValidation)

// Allocator issues invoice sequence numbers.
type Allocator interface {
	Allocate(ctx context.Context, category string) (int64, error)
}

// CustomerLookup resolves customer references.
type CustomerLookup interface {
	Get(ctx context.Context, id int64) (*customers.Customer, error)
}

// ProductLookup resolves product references on line items.
type ProductLookup interface {
	Get(ctx context.Context, id int64) (*products.Product, error)
}

// Builder assembles persistable invoices from client payloads.
type Builder struct {
	allocator Allocator
	customers CustomerLookup
	products  ProductLookup
	now       func() time.Time
}

// NewBuilder constructs a Builder. The lookups may be nil.
func NewBuilder(allocator Allocator, customers CustomerLookup, products ProductLookup) *Builder {
	return &Builder{allocator: allocator, customers: customers, products: products, now: time.Now}
}

// Create validates p and assembles a new invoice with a freshly allocated
// number. Nothing is allocated when p is rejected.
func (b *Builder) Create(ctx context.Context, p Payload) (*Invoice, error) {
	if err := checkRequired(p); err != nil {
		return nil, err
	}
	snapshot, customerID, err := b.resolveCustomer(ctx, p)
	if err != nil {
		return nil, err
	}
	items, err := b.resolveItems(ctx, p.Items)
	if err != nil {
		return nil, err
	}

	inv := &Invoice{
		ID:         uuid.New(),
		CustomerID: customerID,
		Customer:   snapshot,
		Items:      items,
	}
	applyEnums(inv, p)

	seq, err := b.allocator.Allocate(ctx, inv.Type)
	if err != nil {
		return nil, err
	}
	inv.Sequence = seq
	inv.InvoiceNumber = sequence.Format(NumberPrefix(inv.Type), seq)

	applyAdjustments(inv, p)
	now := b.now().UTC()
	inv.InvoiceDate, inv.DueDate = resolveDates(p, now, time.Time{}, time.Time{})
	inv.CreatedAt = now
	inv.UpdatedAt = now
	return inv, nil
}

// Update rebuilds existing from p. Identity, number and sequence never change.
func (b *Builder) Update(ctx context.Context, existing *Invoice, p Payload) (*Invoice, error) {
	if existing == nil {
		return nil, shared.ErrNotFound
	}
	if err := checkRequired(p); err != nil {
		return nil, err
	}
	snapshot, customerID, err := b.resolveCustomer(ctx, p)
	if err != nil {
		return nil, err
	}
	items, err := b.resolveItems(ctx, p.Items)
	if err != nil {
		return nil, err
	}

	inv := &Invoice{
		ID:            existing.ID,
		InvoiceNumber: existing.InvoiceNumber,
		Sequence:      existing.Sequence,
		CustomerID:    customerID,
		Customer:      snapshot,
		Items:         items,
		CreatedAt:     existing.CreatedAt,
	}
	applyEnums(inv, p)
	applyAdjustments(inv, p)
	now := b.now().UTC()
	inv.InvoiceDate, inv.DueDate = resolveDates(p, now, existing.InvoiceDate, existing.DueDate)
	inv.UpdatedAt = now
	return inv, nil
}

// PreviewTotals runs the totals engine over a draft without allocating or persisting.
func (b *Builder) PreviewTotals(ctx context.Context, req TotalsRequest) (*TotalsView, error) {
	items, err := b.resolveItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	t := totals.Compute(totals.Input{
		LineTotals:      lineTotals(items),
		DiscountPercent: req.DiscountPercent.Decimal,
		Shipping:        req.Shipping.Decimal,
		TaxPercent:      req.TaxPercent.Decimal,
		RemoveTax:       req.RemoveTax,
	})
	if items == nil {
		items = []LineItem{}
	}
	return &TotalsView{
		Items:              items,
		SubTotal:           totals.NewNumber(t.SubTotal),
		DiscountAmount:     totals.NewNumber(t.DiscountAmount),
		TaxableBase:        totals.NewNumber(t.TaxableBase),
		TaxAmount:          totals.NewNumber(t.TaxAmount),
		OrderTotalAfterTax: totals.NewNumber(t.GrandTotal),
	}, nil
}

func checkRequired(p Payload) error {
	hasCustomer := (p.CustomerID != nil && *p.CustomerID > 0) ||
		(p.Customer != nil && strings.TrimSpace(p.Customer.Name) != "")
	if !hasCustomer || len(p.Items) == 0 {
		return ErrMissingFields
	}
	return nil
}

func (b *Builder) resolveCustomer(ctx context.Context, p Payload) (CustomerSnapshot, *int64, error) {
	if p.CustomerID != nil && *p.CustomerID > 0 && b.customers != nil {
		c, err := b.customers.Get(ctx, *p.CustomerID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return CustomerSnapshot{}, nil, fmt.Errorf("%w: customer %d does not exist", shared.ErrValidation, *p.CustomerID)
			}
			return CustomerSnapshot{}, nil, err
		}
		id := c.ID
		return SnapshotOf(*c), &id, nil
	}
	if p.Customer == nil || strings.TrimSpace(p.Customer.Name) == "" {
		return CustomerSnapshot{}, nil, ErrMissingFields
	}
	return *p.Customer, nil, nil
}

func (b *Builder) resolveItems(ctx context.Context, in []LineItem) ([]LineItem, error) {
	out := make([]LineItem, 0, len(in))
	for _, item := range in {
		if item.ProductID != nil && b.products != nil {
			product, err := b.products.Get(ctx, *item.ProductID)
			switch {
			case err == nil:
				if strings.TrimSpace(item.Name) == "" {
					item.Name = product.Name
				}
				if strings.TrimSpace(item.Description) == "" {
					item.Description = product.Description
				}
				if item.Price.IsZero() {
					item.Price = totals.NewNumber(product.Price)
				}
			case errors.Is(err, shared.ErrNotFound):
				// product was removed; keep the line as sent
			default:
				return nil, err
			}
		}
		item.Total = totals.NewNumber(totals.LineTotal(item.Quantity.Decimal, item.Price.Decimal))
		out = append(out, item)
	}
	return out, nil
}

func applyEnums(inv *Invoice, p Payload) {
	inv.Type = Normalize(p.Type, Types, TypeQuotation)
	inv.Status = Normalize(p.Status, Statuses, StatusOpen)
	inv.PaymentStatus = Normalize(p.PaymentStatus, PaymentStatuses, PaymentPending)
}

func applyAdjustments(inv *Invoice, p Payload) {
	t := totals.Compute(totals.Input{
		LineTotals:      lineTotals(inv.Items),
		DiscountPercent: p.DiscountPercent.Decimal,
		Shipping:        p.Shipping.Decimal,
		TaxPercent:      p.TaxPercent.Decimal,
		RemoveTax:       p.RemoveTax,
	})
	inv.DiscountPercent = p.DiscountPercent
	inv.Shipping = p.Shipping
	inv.TaxPercent = p.TaxPercent
	inv.RemoveTax = p.RemoveTax
	inv.Notes = strings.TrimSpace(p.Notes)
	inv.SubTotal = totals.NewNumber(t.SubTotal)
	inv.DiscountAmount = totals.NewNumber(t.DiscountAmount)
	inv.TaxAmount = totals.NewNumber(t.TaxAmount)
	inv.OrderTotalAfterTax = totals.NewNumber(t.GrandTotal)
}

func lineTotals(items []LineItem) []decimal.Decimal {
	out := make([]decimal.Decimal, len(items))
	for i, item := range items {
		out[i] = item.Total.Decimal
	}
	return out
}

// resolveDates picks supplied dates first, then the previous values, then defaults.
func resolveDates(p Payload, now, prevInvoice, prevDue time.Time) (time.Time, time.Time) {
	invoiceDate := prevInvoice
	if p.InvoiceDate != nil && !p.InvoiceDate.IsZero() {
		invoiceDate = p.InvoiceDate.Time
	}
	if invoiceDate.IsZero() {
		invoiceDate = now
	}
	dueDate := prevDue
	if p.DueDate != nil && !p.DueDate.IsZero() {
		dueDate = p.DueDate.Time
	}
	if dueDate.IsZero() {
		dueDate = invoiceDate.AddDate(0, 0, DefaultTermDays)
	}
	return invoiceDate, dueDate
}
