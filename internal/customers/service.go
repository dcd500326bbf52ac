package customers

import (
	"context"
)

// Service contains customer business rules.
type Service struct {
	repo Repository
}

// NewService creates a new customer service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new customer, defaulting shipping details from billing.
func (s *Service) Create(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	c := req.toCustomer()
	c.normalize()
	c.ApplyShippingDefaults()
	return s.repo.Create(ctx, c)
}

// Get returns a customer by id.
func (s *Service) Get(ctx context.Context, id int64) (*Customer, error) {
	return s.repo.Get(ctx, id)
}

// List returns a page of customers and the total count.
func (s *Service) List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error) {
	return s.repo.List(ctx, req)
}

// Update applies a partial update and re-applies shipping defaults.
func (s *Service) Update(ctx context.Context, id int64, req UpdateCustomerRequest) (*Customer, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	req.apply(current)
	current.normalize()
	current.ApplyShippingDefaults()
	return s.repo.Update(ctx, *current)
}

// Delete removes a customer. Invoices keep their own snapshot.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
