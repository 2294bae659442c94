package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/vino121095/valenmart-storefront/internal/pkg/session"
	"github.com/vino121095/valenmart-storefront/internal/storefront/app"
	"github.com/vino121095/valenmart-storefront/internal/storefront/core/aggregate"
	"github.com/vino121095/valenmart-storefront/internal/storefront/core/domain/entity"
	"github.com/vino121095/valenmart-storefront/internal/storefront/core/ports"
)

// InvoiceRenderer turns a computed invoice into a PDF document.
type InvoiceRenderer interface {
	Render(order entity.Order, inv aggregate.Invoice) ([]byte, error)
}

// Handler serves the storefront gateway API.
type Handler struct {
	svc          *app.Service
	pdf          InvoiceRenderer // nil disables the PDF route
	pollInterval time.Duration
}

func NewHandler(svc *app.Service, pdf InvoiceRenderer, pollInterval time.Duration) *Handler {
	return &Handler{svc: svc, pdf: pdf, pollInterval: pollInterval}
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	customerID, ok := customerParam(w, r)
	if !ok {
		return
	}
	d, err := h.svc.Dashboard(r.Context(), customerID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapDashboard(d))
}

func (h *Handler) Invoices(w http.ResponseWriter, r *http.Request) {
	customerID, ok := customerParam(w, r)
	if !ok {
		return
	}
	rows, err := h.svc.Invoices(r.Context(), customerID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapInvoiceList(rows))
}

func (h *Handler) Invoice(w http.ResponseWriter, r *http.Request) {
	got, err := h.svc.Invoice(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapInvoice(got.Order, got.Invoice))
}

func (h *Handler) InvoicePDF(w http.ResponseWriter, r *http.Request) {
	if h.pdf == nil {
		writeError(w, http.StatusNotImplemented, "pdf_disabled", "Invoice download is not available")
		return
	}
	got, err := h.svc.Invoice(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	doc, err := h.pdf.Render(got.Order, got.Invoice)
	if err != nil {
		slog.ErrorContext(r.Context(), "invoice pdf render failed", "order_id", got.Order.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "pdf_render_failed", "Failed to generate invoice")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="invoice-`+got.Order.ID+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (h *Handler) OrderStatus(w http.ResponseWriter, r *http.Request) {
	tl, err := h.svc.OrderStatus(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapTimeline(tl))
}

func (h *Handler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	tl, err := h.svc.MarkDelivered(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapTimeline(tl))
}

func (h *Handler) StatusHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.StatusHistory(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapHistory(entries))
}

func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.Products(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProducts(products))
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.Categories(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCategories(cats))
}

func (h *Handler) Cart(w http.ResponseWriter, r *http.Request) {
	customerID, ok := customerParam(w, r)
	if !ok {
		return
	}
	items, err := h.svc.Cart(r.Context(), customerID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(items))
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	customerID, ok := customerParam(w, r)
	if !ok {
		return
	}
	var req AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	price := decimal.Zero
	if strings.TrimSpace(req.Price) != "" {
		var err error
		if price, err = decimal.NewFromString(strings.TrimSpace(req.Price)); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "price must be a decimal string")
			return
		}
	}
	item, err := h.svc.AddToCart(r.Context(), entity.AddToCart{
		CustomerID: customerID,
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		Price:      price,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapCartItem(*item))
}

func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	if _, ok := customerParam(w, r); !ok {
		return
	}
	if err := h.svc.RemoveFromCart(r.Context(), chi.URLParam(r, "cartId")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	customerID, ok := customerParam(w, r)
	if !ok {
		return
	}
	ns, unread, err := h.svc.Notifications(r.Context(), customerID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapNotifications(ns, unread))
}

func (h *Handler) MarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	customerID, ok := customerParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.MarkNotificationsRead(r.Context(), customerID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	customerID, ok := customerParam(w, r)
	if !ok {
		return
	}
	p, err := h.svc.Profile(r.Context(), customerID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProfile(p))
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if err := h.svc.ForgotPassword(r.Context(), strings.TrimSpace(req.Email)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, MessageResponse{Message: "If the address is registered, a reset link is on its way"})
}

func Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// customerParam resolves {customerId}. The literal "me" means the customer
// in the caller's session.
func customerParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "customerId"))
	if id == "me" {
		id = session.FromContext(r.Context()).CustomerID
		if id == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Sign in to continue")
			return "", false
		}
	}
	if id == "" {
		writeError(w, http.StatusBadRequest, "customer_id_required", "")
		return "", false
	}
	return id, true
}

type userMessager interface {
	UserMessage() string
}

// writeServiceError maps app errors onto status codes. Backend failures that
// are not auth or not-found all become 502 with the generic message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var msg userMessager
	hasMsg := errors.As(err, &msg)

	switch {
	case errors.Is(err, app.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, ports.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized", "Your session has expired, please sign in again")
	case errors.Is(err, ports.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "The requested record does not exist")
	case hasMsg:
		slog.WarnContext(r.Context(), "backend call failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadGateway, "backend_error", msg.UserMessage())
	default:
		slog.ErrorContext(r.Context(), "unexpected error", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "Something went wrong")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
