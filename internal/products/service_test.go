package products

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotedesk/quotedesk/internal/shared"
)

type memoryRepo struct {
	items  map[int64]Product
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: map[int64]Product{}, nextID: 1}
}

func (m *memoryRepo) Get(_ context.Context, id int64) (*Product, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, shared.ErrNotFound)
	}
	return &p, nil
}

func (m *memoryRepo) List(_ context.Context, _ ListProductsRequest) ([]Product, int, error) {
	out := make([]Product, 0, len(m.items))
	for _, p := range m.items {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (m *memoryRepo) Create(_ context.Context, p Product) (*Product, error) {
	p.ID = m.nextID
	m.nextID++
	m.items[p.ID] = p
	return &p, nil
}

func (m *memoryRepo) Update(_ context.Context, p Product) (*Product, error) {
	if _, ok := m.items[p.ID]; !ok {
		return nil, fmt.Errorf("product %d: %w", p.ID, shared.ErrNotFound)
	}
	m.items[p.ID] = p
	return &p, nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("product %d: %w", id, shared.ErrNotFound)
	}
	delete(m.items, id)
	return nil
}

func TestServiceRejectsNegativePrice(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	price := decimal.RequireFromString("-1")
	_, err := svc.Create(context.Background(), CreateProductRequest{Name: "Widget", Price: &price})
	assert.ErrorIs(t, err, shared.ErrValidation)
	assert.Empty(t, repo.items)
}

func TestServicePartialUpdate(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()
	price := decimal.RequireFromString("12.345")
	p, err := svc.Create(ctx, CreateProductRequest{Name: " Widget ", Description: "Blue", Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Widget", p.Name)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("12.35")))

	name := "Gadget"
	updated, err := svc.Update(ctx, p.ID, UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Gadget", updated.Name)
	assert.Equal(t, "Blue", updated.Description)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("12.35")))
}

func TestHandlerCreateRequiresPrice(t *testing.T) {
	repo := newMemoryRepo()
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), NewService(repo))
	r := chi.NewRouter()
	r.Route("/api/products", h.MountRoutes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/products/", strings.NewReader(`{"product_name":"Widget"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "product_price is required")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/products/",
		strings.NewReader(`{"product_name":"Widget","product_price":19.99}`)))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, repo.items, 1)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"product_name":"Widget"`)
}
