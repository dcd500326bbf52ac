package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotedesk/quotedesk/internal/auth"
	"github.com/quotedesk/quotedesk/internal/invoices"
	"github.com/quotedesk/quotedesk/internal/observability"
	"github.com/quotedesk/quotedesk/internal/shared"
	_ "github.com/quotedesk/quotedesk/testing"
)

type emptyInvoices struct{}

func (emptyInvoices) Get(context.Context, uuid.UUID) (*invoices.Invoice, error) {
	return nil, shared.ErrNotFound
}
func (emptyInvoices) List(context.Context, invoices.ListInvoicesRequest) ([]invoices.Invoice, int, error) {
	return nil, 0, nil
}
func (emptyInvoices) Create(context.Context, invoices.Invoice) error { return nil }
func (emptyInvoices) Update(context.Context, invoices.Invoice) error { return nil }
func (emptyInvoices) Delete(context.Context, uuid.UUID) error        { return nil }

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func newTestRouter(t *testing.T, deps map[string]Pinger) (http.Handler, *auth.TokenStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := auth.NewTokenStore(client, time.Hour)
	svc := invoices.NewService(emptyInvoices{}, invoices.NewBuilder(nil, nil, nil), nil, logger)
	router := NewRouter(RouterParams{
		Logger:          logger,
		Config:          &Config{AppEnv: "test", RateLimitPerMin: 1000},
		Tokens:          tokens,
		InvoicesHandler: invoices.NewHandler(logger, svc, nil),
		Metrics:         observability.NewMetrics(),
		Readiness:       deps,
	})
	return router, tokens
}

func TestHealthAndSecurityHeaders(t *testing.T) {
	router, _ := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestAPIRequiresToken(t *testing.T) {
	router, tokens := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/invoices", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	token, err := tokens.Issue(context.Background(), 1)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/invoices", nil)
	req.Header.Set("Authorization", "Bearer "+token.Value)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"invoices":[]`)
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, nil)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `quotedesk_http_requests_total{code="200",route="/healthz"}`)
}

func TestReadiness(t *testing.T) {
	router, _ := newTestRouter(t, map[string]Pinger{
		"postgres":  pingFunc(func(context.Context) error { return nil }),
		"gotenberg": pingFunc(func(context.Context) error { return errors.New("connection refused") }),
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"postgres":"ok","gotenberg":"connection refused"}`, rec.Body.String())
}
