package mockbackend

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
)

// Options tunes the mock. RequireAuth rejects requests without a bearer
// token with 401, which the real backend does for customer routes.
type Options struct {
	RequireAuth bool
}

type server struct {
	store *Store
}

// NewRouter serves the backend paths the storefront gateway calls. Response
// shapes deliberately vary between camelCase and snake_case, quoted and bare
// numbers, and enveloped and bare bodies, as the real backend does.
func NewRouter(store *Store, opts Options) http.Handler {
	s := &server{store: store}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/forgot-password", s.forgotPassword)
		r.Get("/product/all", s.listProducts)
		r.Get("/category/all", s.listCategories)

		r.Group(func(r chi.Router) {
			if opts.RequireAuth {
				r.Use(requireBearer)
			}
			r.Get("/order/customer/{customerId}", s.listCustomerOrders)
			r.Get("/order/{orderId}", s.getOrder)
			r.Put("/order/{orderId}/status", s.updateStatus)
			r.Get("/order-items/all", s.listOrderItems)

			r.Get("/cart/{customerId}", s.getCart)
			r.Post("/cart/create", s.addToCart)
			r.Delete("/cart/delete/{cartId}", s.removeFromCart)

			r.Get("/notification/all/{customerId}", s.listNotifications)
			r.Put("/notification/mark-read/{customerId}", s.markRead)

			r.Get("/customer-profile/{customerId}", s.getProfile)
		})
	})
	return r
}

func (s *server) listCustomerOrders(w http.ResponseWriter, r *http.Request) {
	orders := s.store.OrdersByCustomer(chi.URLParam(r, "customerId"))
	out := make([]map[string]any, 0, len(orders))
	for _, o := range orders {
		out = append(out, s.orderJSON(o))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": out})
}

// getOrder answers with a bare object, without the data envelope.
func (s *server) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := s.store.Order(chi.URLParam(r, "orderId"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	writeJSON(w, http.StatusOK, s.orderJSON(o))
}

func (s *server) updateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Status) == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}
	o, err := s.store.UpdateStatus(chi.URLParam(r, "orderId"), body.Status)
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Order status updated", "data": s.orderJSON(o)})
}

func (s *server) listOrderItems(w http.ResponseWriter, _ *http.Request) {
	items := s.store.Items()
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		row := map[string]any{
			"id":         it.ID,
			"order_id":   it.OrderID,
			"product_id": it.ProductID,
			"quantity":   decimal.NewFromInt(int64(it.Quantity)).String(),
			"line_total": it.LineTotal.StringFixed(2),
		}
		if p, ok := s.store.Product(it.ProductID); ok {
			row["Product"] = productSnapshotJSON(p)
		}
		out = append(out, row)
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": out})
}

func (s *server) listProducts(w http.ResponseWriter, _ *http.Request) {
	products := s.store.Products()
	out := make([]map[string]any, 0, len(products))
	for _, p := range products {
		row := productSnapshotJSON(p)
		row["pid"] = p.ID
		row["category_id"] = p.CategoryID
		row["price"] = p.Price.StringFixed(2)
		row["stock"] = p.Stock
		out = append(out, row)
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": out})
}

func (s *server) listCategories(w http.ResponseWriter, _ *http.Request) {
	cats := s.store.Categories()
	out := make([]map[string]any, 0, len(cats))
	for _, c := range cats {
		out = append(out, map[string]any{"cid": c.ID, "category_name": c.Name, "category_image": c.Image})
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": out})
}

func (s *server) getCart(w http.ResponseWriter, r *http.Request) {
	items := s.store.Cart(chi.URLParam(r, "customerId"))
	out := make([]map[string]any, 0, len(items))
	for _, c := range items {
		out = append(out, s.cartJSON(c))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": out})
}

func (s *server) addToCart(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CustomerID string          `json:"customerId"`
		ProductID  string          `json:"productId"`
		Quantity   int             `json:"quantity"`
		Price      decimal.Decimal `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if body.CustomerID == "" || body.ProductID == "" || body.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, "customerId, productId and a positive quantity are required")
		return
	}
	if _, ok := s.store.Product(body.ProductID); !ok {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	item := s.store.AddToCart(CartItem{
		CustomerID: body.CustomerID,
		ProductID:  body.ProductID,
		Quantity:   body.Quantity,
		Price:      body.Price,
	})
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Added to cart", "data": s.cartJSON(item)})
}

func (s *server) removeFromCart(w http.ResponseWriter, r *http.Request) {
	if err := s.store.RemoveFromCart(chi.URLParam(r, "cartId")); err != nil {
		writeError(w, http.StatusNotFound, "Cart item not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Removed from cart"})
}

func (s *server) listNotifications(w http.ResponseWriter, r *http.Request) {
	ns := s.store.Notifications(chi.URLParam(r, "customerId"))
	out := make([]map[string]any, 0, len(ns))
	for _, n := range ns {
		out = append(out, map[string]any{
			"nid":         n.ID,
			"customer_id": n.CustomerID,
			"title":       n.Title,
			"message":     n.Message,
			"is_read":     n.Read,
			"createdAt":   n.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": out})
}

func (s *server) markRead(w http.ResponseWriter, r *http.Request) {
	s.store.MarkAllRead(chi.URLParam(r, "customerId"))
	writeJSON(w, http.StatusOK, map[string]any{"message": "All notifications marked as read"})
}

func (s *server) getProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Profile(chi.URLParam(r, "customerId"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{
		"customer_id":         p.CustomerID,
		"contact_person_name": p.Name,
		"email":               p.Email,
		"phone":               p.Phone,
		"address":             p.Address,
		"business_name":       p.BusinessName,
	}})
}

func (s *server) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !strings.Contains(body.Email, "@") {
		writeError(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	s.store.RequestPasswordReset(body.Email)
	writeJSON(w, http.StatusOK, map[string]any{"message": "Password reset link sent"})
}

func (s *server) orderJSON(o Order) map[string]any {
	items := s.store.ItemsForOrder(o.ID)
	rows := make([]map[string]any, 0, len(items))
	for _, it := range items {
		row := map[string]any{
			"productId": it.ProductID,
			"quantity":  it.Quantity,
			"lineTotal": it.LineTotal.InexactFloat64(),
		}
		if p, ok := s.store.Product(it.ProductID); ok {
			row["product"] = productSnapshotJSON(p)
		}
		rows = append(rows, row)
	}
	out := map[string]any{
		"orderId":    o.ID,
		"customerId": o.CustomerID,
		"orderDate":  o.OrderDate.Format(time.RFC3339),
		"status":     o.Status,
		"items":      rows,
	}
	if o.TotalAmount != nil {
		out["totalAmount"] = o.TotalAmount.StringFixed(2)
	}
	return out
}

func (s *server) cartJSON(c CartItem) map[string]any {
	out := map[string]any{
		"cart_id":     c.ID,
		"customer_id": c.CustomerID,
		"product_id":  c.ProductID,
		"quantity":    c.Quantity,
		"price":       c.Price.StringFixed(2),
	}
	if p, ok := s.store.Product(c.ProductID); ok {
		out["product"] = productSnapshotJSON(p)
	}
	return out
}

func productSnapshotJSON(p Product) map[string]any {
	return map[string]any{
		"product_name":  p.Name,
		"product_image": p.Image,
		"unit":          p.Unit,
		"cgst":          p.CGST.InexactFloat64(),
		"sgst":          p.SGST.InexactFloat64(),
		"delivery_fee":  p.DeliveryFee.StringFixed(2),
	}
}

func requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.DebugContext(r.Context(), "mock backend request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", middleware.GetReqID(r.Context()),
			"upstream_request_id", r.Header.Get("X-Request-Id"),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("mock backend: failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
