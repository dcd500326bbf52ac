package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quotedesk/quotedesk/internal/platform/httpx"
)

// Handler exposes dashboard figures.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds a dashboard handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers dashboard routes under the current router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/sales-amount", figure(h, "sales_amount", h.service.SalesAmount))
	r.Get("/total-due", figure(h, "total_due", h.service.TotalDue))
	r.Get("/invoice-count", figure(h, "invoice_count", h.service.InvoiceCount))
	r.Get("/pending-count", figure(h, "pending_count", h.service.PendingCount))
	r.Get("/paid-invoice-count", figure(h, "paid_invoice_count", h.service.PaidInvoiceCount))
	r.Get("/product-count", figure(h, "product_count", h.service.ProductCount))
	r.Get("/customer-count", figure(h, "customer_count", h.service.CustomerCount))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.service.Summary(r.Context())
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sum)
}

func figure[T any](h *Handler, name string, fn func(context.Context) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := fn(r.Context())
		if err != nil {
			httpx.RespondError(w, r, h.logger, err)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]any{name: v})
	}
}
