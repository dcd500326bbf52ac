package dashboard

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/quotedesk/quotedesk/internal/platform/db"
)

// Repository runs the aggregate queries behind the dashboard.
type Repository interface {
	SumByPaymentStatus(ctx context.Context, status string) (decimal.Decimal, error)
	CountInvoices(ctx context.Context, paymentStatus string) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
	CountCustomers(ctx context.Context) (int64, error)
}

type repository struct {
	db db.DBTX
}

// NewRepository constructs a Postgres-backed repository.
func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

func (r *repository) SumByPaymentStatus(ctx context.Context, status string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(order_total_after_tax), 0) FROM invoices WHERE payment_status = $1`, status).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum invoices %s: %w", status, err)
	}
	return sum, nil
}

// CountInvoices counts all invoices when paymentStatus is empty.
func (r *repository) CountInvoices(ctx context.Context, paymentStatus string) (int64, error) {
	var n int64
	var err error
	if paymentStatus == "" {
		err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&n)
	} else {
		err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM invoices WHERE payment_status = $1`, paymentStatus).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return n, nil
}

func (r *repository) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func (r *repository) CountCustomers(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}
