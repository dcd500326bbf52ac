// Package dashboard reports headline figures across invoices, products and customers.
package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/quotedesk/quotedesk/internal/invoices"
	"github.com/quotedesk/quotedesk/internal/platform/cache"
	"github.com/quotedesk/quotedesk/internal/sequence"
	"github.com/quotedesk/quotedesk/internal/totals"
)

// SequenceReader reports the last issued number of a category.
type SequenceReader interface {
	Current(ctx context.Context, category string) (int64, error)
}

// Summary aggregates every dashboard figure.
type Summary struct {
	SalesAmount         totals.Number `json:"sales_amount"`
	TotalDue            totals.Number `json:"total_due"`
	InvoiceCount        int64         `json:"invoice_count"`
	PendingCount        int64         `json:"pending_count"`
	PaidInvoiceCount    int64         `json:"paid_invoice_count"`
	ProductCount        int64         `json:"product_count"`
	CustomerCount       int64         `json:"customer_count"`
	LastQuotationNumber string        `json:"last_quotation_number,omitempty"`
	LastEstimateNumber  string        `json:"last_estimate_number,omitempty"`
}

// Service computes dashboard figures.
type Service struct {
	repo      Repository
	sequences SequenceReader
	cache     *cache.Versioned
}

// NewService constructs a Service. sequences and cache may be nil.
func NewService(repo Repository, sequences SequenceReader, c *cache.Versioned) *Service {
	return &Service{repo: repo, sequences: sequences, cache: c}
}

// SalesAmount is the sum of grand totals of paid invoices.
func (s *Service) SalesAmount(ctx context.Context) (totals.Number, error) {
	d, err := s.repo.SumByPaymentStatus(ctx, invoices.PaymentPaid)
	return totals.NewNumber(d), err
}

// TotalDue is the sum of grand totals still pending.
func (s *Service) TotalDue(ctx context.Context) (totals.Number, error) {
	d, err := s.repo.SumByPaymentStatus(ctx, invoices.PaymentPending)
	return totals.NewNumber(d), err
}

// InvoiceCount counts all invoices.
func (s *Service) InvoiceCount(ctx context.Context) (int64, error) {
	return s.repo.CountInvoices(ctx, "")
}

// PendingCount counts invoices awaiting payment.
func (s *Service) PendingCount(ctx context.Context) (int64, error) {
	return s.repo.CountInvoices(ctx, invoices.PaymentPending)
}

// PaidInvoiceCount counts paid invoices.
func (s *Service) PaidInvoiceCount(ctx context.Context) (int64, error) {
	return s.repo.CountInvoices(ctx, invoices.PaymentPaid)
}

// ProductCount counts catalogue entries.
func (s *Service) ProductCount(ctx context.Context) (int64, error) {
	return s.repo.CountProducts(ctx)
}

// CustomerCount counts customers.
func (s *Service) CustomerCount(ctx context.Context) (int64, error) {
	return s.repo.CountCustomers(ctx)
}

// Summary returns every figure, served from cache when possible.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	key, err := s.cache.BuildKey(ctx, "summary")
	if err != nil {
		return Summary{}, err
	}
	var out Summary
	err = s.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (any, error) {
		return s.compute(ctx)
	})
	return out, err
}

func (s *Service) compute(ctx context.Context) (Summary, error) {
	var sum Summary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { sum.SalesAmount, err = s.SalesAmount(gctx); return })
	g.Go(func() (err error) { sum.TotalDue, err = s.TotalDue(gctx); return })
	g.Go(func() (err error) { sum.InvoiceCount, err = s.InvoiceCount(gctx); return })
	g.Go(func() (err error) { sum.PendingCount, err = s.PendingCount(gctx); return })
	g.Go(func() (err error) { sum.PaidInvoiceCount, err = s.PaidInvoiceCount(gctx); return })
	g.Go(func() (err error) { sum.ProductCount, err = s.ProductCount(gctx); return })
	g.Go(func() (err error) { sum.CustomerCount, err = s.CustomerCount(gctx); return })
	if s.sequences != nil {
		g.Go(func() error {
			n, err := s.sequences.Current(gctx, invoices.TypeQuotation)
			if err == nil && n > 0 {
				sum.LastQuotationNumber = sequence.Format(invoices.NumberPrefix(invoices.TypeQuotation), n)
			}
			return err
		})
		g.Go(func() error {
			n, err := s.sequences.Current(gctx, invoices.TypeEstimate)
			if err == nil && n > 0 {
				sum.LastEstimateNumber = sequence.Format(invoices.NumberPrefix(invoices.TypeEstimate), n)
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return sum, nil
}
