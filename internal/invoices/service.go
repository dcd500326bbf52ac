package invoices

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Invalidator drops cached aggregates that depend on invoices.
type Invalidator interface {
	Bump(ctx context.Context) error
}

// Service coordinates the builder and the repository.
type Service struct {
	repo    Repository
	builder *Builder
	cache   Invalidator
	logger  *slog.Logger
}

// NewService constructs a Service. cache may be nil.
func NewService(repo Repository, builder *Builder, cache Invalidator, logger *slog.Logger) *Service {
	return &Service{repo: repo, builder: builder, cache: cache, logger: logger}
}

// Create builds and stores a new invoice. Once a number is allocated it is
// spent even if the insert fails.
func (s *Service) Create(ctx context.Context, p Payload) (*Invoice, error) {
	inv, err := s.builder.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, *inv); err != nil {
		if s.logger != nil {
			s.logger.Warn("invoice insert failed after allocation",
				slog.String("invoice_number", inv.InvoiceNumber), slog.Any("error", err))
		}
		return nil, err
	}
	s.invalidate(ctx)
	return inv, nil
}

// Update rebuilds an existing invoice from p.
func (s *Service) Update(ctx context.Context, id uuid.UUID, p Payload) (*Invoice, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	inv, err := s.builder.Update(ctx, existing, p)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, *inv); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return inv, nil
}

// Get returns one invoice.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.Get(ctx, id)
}

// List returns a page of invoices, newest first.
func (s *Service) List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, int, error) {
	req.Type = NormalizeFilter(req.Type, Types)
	req.Status = NormalizeFilter(req.Status, Statuses)
	req.PaymentStatus = NormalizeFilter(req.PaymentStatus, PaymentStatuses)
	return s.repo.List(ctx, req)
}

// Delete removes an invoice. Its number is not reissued.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// PreviewTotals computes totals for a draft.
func (s *Service) PreviewTotals(ctx context.Context, req TotalsRequest) (*TotalsView, error) {
	return s.builder.PreviewTotals(ctx, req)
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Bump(ctx); err != nil && s.logger != nil {
		s.logger.Warn("dashboard cache bump failed", slog.Any("error", err))
	}
}
