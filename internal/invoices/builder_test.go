package invoices

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotedesk/quotedesk/internal/customers"
	"github.com/quotedesk/quotedesk/internal/products"
	"github.com/quotedesk/quotedesk/internal/sequence"
	"github.com/quotedesk/quotedesk/internal/shared"
	"github.com/quotedesk/quotedesk/internal/totals"
)

type countingAllocator struct {
	next  map[string]int64
	calls int
	err   error
}

func newCountingAllocator() *countingAllocator {
	return &countingAllocator{next: map[string]int64{}}
}

func (a *countingAllocator) Allocate(_ context.Context, category string) (int64, error) {
	a.calls++
	if a.err != nil {
		return 0, a.err
	}
	a.next[category]++
	return a.next[category], nil
}

type customerMap map[int64]customers.Customer

func (m customerMap) Get(_ context.Context, id int64) (*customers.Customer, error) {
	c, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("customer %d: %w", id, shared.ErrNotFound)
	}
	return &c, nil
}

type productMap map[int64]products.Product

func (m productMap) Get(_ context.Context, id int64) (*products.Product, error) {
	p, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, shared.ErrNotFound)
	}
	return &p, nil
}

func fixedNow() time.Time {
	return time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)
}

func newTestBuilder(alloc Allocator) *Builder {
	b := NewBuilder(alloc,
		customerMap{1: {ID: 1, Name: "Acme", Email: "a@acme.example", Town: "Pune", TownShip: "Mumbai"}},
		productMap{5: {ID: 5, Name: "Widget", Description: "Blue widget", Price: decimal.RequireFromString("50")}},
	)
	b.now = fixedNow
	return b
}

func item(qty, price string) LineItem {
	return LineItem{Name: "Line", Quantity: totals.MustNumber(qty), Price: totals.MustNumber(price)}
}

func samplePayload() Payload {
	return Payload{
		Customer:        &CustomerSnapshot{Name: "Walk-in"},
		Items:           []LineItem{item("2", "100"), item("1", "50")},
		DiscountPercent: totals.MustNumber("10"),
		Shipping:        totals.MustNumber("20"),
		TaxPercent:      totals.MustNumber("5"),
	}
}

func TestCreateComputesTotalsAndNumber(t *testing.T) {
	alloc := newCountingAllocator()
	inv, err := newTestBuilder(alloc).Create(context.Background(), samplePayload())
	require.NoError(t, err)

	assert.Equal(t, "QTN-00001", inv.InvoiceNumber)
	assert.Equal(t, int64(1), inv.Sequence)
	assert.Equal(t, TypeQuotation, inv.Type)
	assert.Equal(t, StatusOpen, inv.Status)
	assert.Equal(t, PaymentPending, inv.PaymentStatus)
	assert.NotEqual(t, [16]byte{}, [16]byte(inv.ID))

	assert.True(t, inv.Items[0].Total.Equal(decimal.RequireFromString("200")))
	assert.True(t, inv.SubTotal.Equal(decimal.RequireFromString("250")))
	assert.True(t, inv.DiscountAmount.Equal(decimal.RequireFromString("25")))
	assert.True(t, inv.TaxAmount.Equal(decimal.RequireFromString("11.25")))
	assert.Equal(t, "256.25", inv.OrderTotalAfterTax.StringFixed(2))

	assert.Equal(t, fixedNow(), inv.InvoiceDate)
	assert.Equal(t, fixedNow().AddDate(0, 0, 30), inv.DueDate)
}

func TestCreateRemoveTax(t *testing.T) {
	p := samplePayload()
	p.RemoveTax = true
	inv, err := newTestBuilder(newCountingAllocator()).Create(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, inv.TaxAmount.IsZero())
	assert.Equal(t, "245.00", inv.OrderTotalAfterTax.StringFixed(2))
}

func TestCreateIgnoresClientTotals(t *testing.T) {
	p := samplePayload()
	p.Items[0].Total = totals.MustNumber("9999")
	inv, err := newTestBuilder(newCountingAllocator()).Create(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, inv.Items[0].Total.Equal(decimal.RequireFromString("200")))
	assert.Equal(t, "256.25", inv.OrderTotalAfterTax.StringFixed(2))
}

func TestCreateRejectsWithoutAllocating(t *testing.T) {
	cases := map[string]Payload{
		"no items":       {Customer: &CustomerSnapshot{Name: "Walk-in"}},
		"empty items":    {Customer: &CustomerSnapshot{Name: "Walk-in"}, Items: []LineItem{}},
		"no customer":    {Items: []LineItem{item("1", "1")}},
		"blank customer": {Customer: &CustomerSnapshot{}, Items: []LineItem{item("1", "1")}},
		"unknown ref":    {CustomerID: ptr(int64(404)), Items: []LineItem{item("1", "1")}},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			alloc := newCountingAllocator()
			_, err := newTestBuilder(alloc).Create(context.Background(), p)
			assert.ErrorIs(t, err, shared.ErrValidation)
			assert.Zero(t, alloc.calls)
		})
	}
}

func TestCreatePropagatesAllocatorError(t *testing.T) {
	alloc := newCountingAllocator()
	alloc.err = errors.New("redis down")
	_, err := newTestBuilder(alloc).Create(context.Background(), samplePayload())
	require.Error(t, err)
	assert.NotErrorIs(t, err, shared.ErrValidation)
}

func TestCreateNormalizesEnums(t *testing.T) {
	p := samplePayload()
	p.Type = " ESTIMATE "
	p.Status = "paid"
	p.PaymentStatus = "whatever"
	inv, err := newTestBuilder(newCountingAllocator()).Create(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, TypeEstimate, inv.Type)
	assert.Equal(t, "EST-00001", inv.InvoiceNumber)
	assert.Equal(t, StatusPaid, inv.Status)
	assert.Equal(t, PaymentPending, inv.PaymentStatus)
}

func TestCreateSnapshotsCustomerRecord(t *testing.T) {
	p := samplePayload()
	p.CustomerID = ptr(int64(1))
	p.Customer = &CustomerSnapshot{Name: "ignored"}
	inv, err := newTestBuilder(newCountingAllocator()).Create(context.Background(), p)
	require.NoError(t, err)
	require.NotNil(t, inv.CustomerID)
	assert.Equal(t, int64(1), *inv.CustomerID)
	assert.Equal(t, "Acme", inv.Customer.Name)
	assert.Equal(t, "Mumbai", inv.Customer.TownShip)
}

func TestCreateFillsFromProduct(t *testing.T) {
	p := samplePayload()
	p.Items = []LineItem{
		{ProductID: ptr(int64(5)), Quantity: totals.MustNumber("3")},
		{ProductID: ptr(int64(99)), Name: "Custom", Quantity: totals.MustNumber("1"), Price: totals.MustNumber("7")},
	}
	inv, err := newTestBuilder(newCountingAllocator()).Create(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "Widget", inv.Items[0].Name)
	assert.Equal(t, "Blue widget", inv.Items[0].Description)
	assert.True(t, inv.Items[0].Total.Equal(decimal.RequireFromString("150")))
	assert.Equal(t, "Custom", inv.Items[1].Name)
	assert.True(t, inv.SubTotal.Equal(decimal.RequireFromString("157")))
}

func TestCreateHonoursSuppliedDates(t *testing.T) {
	p := samplePayload()
	require.NoError(t, json.Unmarshal([]byte(`"2024-01-10"`), &p.InvoiceDate))
	inv, err := newTestBuilder(newCountingAllocator()).Create(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), inv.InvoiceDate)
	assert.Equal(t, time.Date(2024, time.February, 9, 0, 0, 0, 0, time.UTC), inv.DueDate)
}

func TestCreateCoercesMalformedNumbers(t *testing.T) {
	var p Payload
	body := `{"customer":{"customer_name":"Walk-in"},"items":[{"name":"x","quantity":"abc","price":10}],
		"discount_percent":"","shipping":null,"tax_percent":"five"}`
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	inv, err := newTestBuilder(newCountingAllocator()).Create(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, inv.SubTotal.IsZero())
	assert.Equal(t, "0.00", inv.OrderTotalAfterTax.StringFixed(2))
}

func TestUpdateKeepsNumber(t *testing.T) {
	alloc := newCountingAllocator()
	b := newTestBuilder(alloc)
	created, err := b.Create(context.Background(), samplePayload())
	require.NoError(t, err)

	p := samplePayload()
	p.Type = "estimate"
	p.Items = []LineItem{item("1", "10")}
	updated, err := b.Update(context.Background(), created, p)
	require.NoError(t, err)
	assert.Equal(t, 1, alloc.calls)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "QTN-00001", updated.InvoiceNumber)
	assert.Equal(t, TypeEstimate, updated.Type)
	assert.Equal(t, "29.45", updated.OrderTotalAfterTax.StringFixed(2))
	assert.Equal(t, created.DueDate, updated.DueDate)
}

func TestUpdateValidates(t *testing.T) {
	b := newTestBuilder(newCountingAllocator())
	created, err := b.Create(context.Background(), samplePayload())
	require.NoError(t, err)
	_, err = b.Update(context.Background(), created, Payload{Customer: &CustomerSnapshot{Name: "x"}})
	assert.ErrorIs(t, err, shared.ErrValidation)
	_, err = b.Update(context.Background(), nil, samplePayload())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestPreviewTotalsDoesNotAllocate(t *testing.T) {
	alloc := newCountingAllocator()
	view, err := newTestBuilder(alloc).PreviewTotals(context.Background(), TotalsRequest{
		Shipping: totals.MustNumber("15"),
	})
	require.NoError(t, err)
	assert.Zero(t, alloc.calls)
	assert.True(t, view.SubTotal.IsZero())
	assert.Equal(t, "15.00", view.OrderTotalAfterTax.StringFixed(2))
	assert.NotNil(t, view.Items)
}

func TestPerTypeSequencesOverRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	b := newTestBuilder(sequence.NewAllocator(sequence.NewRedisStore(client), nil))

	var numbers []string
	for _, typ := range []string{"quotation", "estimate", "quotation"} {
		p := samplePayload()
		p.Type = typ
		inv, err := b.Create(context.Background(), p)
		require.NoError(t, err)
		numbers = append(numbers, inv.InvoiceNumber)
	}
	assert.Equal(t, []string{"QTN-00001", "EST-00001", "QTN-00002"}, numbers)
}

func ptr[T any](v T) *T {
	return &v
}
