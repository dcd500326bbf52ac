package customers

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotedesk/quotedesk/internal/shared"
)

type memoryRepo struct {
	items  map[int64]*Customer
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: map[int64]*Customer{}, nextID: 1}
}

func (m *memoryRepo) Get(_ context.Context, id int64) (*Customer, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("customer %d: %w", id, shared.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (m *memoryRepo) List(_ context.Context, req ListCustomersRequest) ([]Customer, int, error) {
	var out []Customer
	for _, c := range m.items {
		if req.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(req.Search)) {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	total := len(out)
	if req.Offset >= len(out) {
		return nil, total, nil
	}
	out = out[req.Offset:]
	if req.Limit > 0 && len(out) > req.Limit {
		out = out[:req.Limit]
	}
	return out, total, nil
}

func (m *memoryRepo) Create(_ context.Context, c Customer) (*Customer, error) {
	c.ID = m.nextID
	m.nextID++
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	m.items[c.ID] = &c
	cp := c
	return &cp, nil
}

func (m *memoryRepo) Update(_ context.Context, c Customer) (*Customer, error) {
	if _, ok := m.items[c.ID]; !ok {
		return nil, fmt.Errorf("customer %d: %w", c.ID, shared.ErrNotFound)
	}
	c.UpdatedAt = time.Now()
	m.items[c.ID] = &c
	cp := c
	return &cp, nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("customer %d: %w", id, shared.ErrNotFound)
	}
	delete(m.items, id)
	return nil
}

func TestCreateDefaultsShippingFromBilling(t *testing.T) {
	svc := NewService(newMemoryRepo())
	c, err := svc.Create(context.Background(), CreateCustomerRequest{
		Name:     "  Acme Traders ",
		Email:    "Sales@Acme.Example",
		Address1: "12 Market Road",
		Town:     "Pune",
		Postcode: "411001",
		TownShip: "Mumbai",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Traders", c.Name)
	assert.Equal(t, "sales@acme.example", c.Email)
	assert.Equal(t, "Acme Traders", c.NameShip)
	assert.Equal(t, "12 Market Road", c.Address1Ship)
	assert.Equal(t, "Mumbai", c.TownShip, "explicit shipping value is kept")
	assert.Equal(t, "411001", c.PostcodeShip)
}

func TestUpdateIsPartial(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()
	c, err := svc.Create(ctx, CreateCustomerRequest{Name: "Acme", Phone: "555", Town: "Pune"})
	require.NoError(t, err)

	town := "Nashik"
	empty := ""
	updated, err := svc.Update(ctx, c.ID, UpdateCustomerRequest{Town: &town, Phone: &empty})
	require.NoError(t, err)
	assert.Equal(t, "Acme", updated.Name)
	assert.Equal(t, "555", updated.Phone, "empty values do not overwrite")
	assert.Equal(t, "Nashik", updated.Town)
	assert.Equal(t, "Pune", updated.TownShip, "shipping already populated stays")
}

func TestUpdateMissingCustomer(t *testing.T) {
	svc := NewService(newMemoryRepo())
	_, err := svc.Update(context.Background(), 42, UpdateCustomerRequest{})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteMissingCustomer(t *testing.T) {
	svc := NewService(newMemoryRepo())
	assert.ErrorIs(t, svc.Delete(context.Background(), 7), shared.ErrNotFound)
}
