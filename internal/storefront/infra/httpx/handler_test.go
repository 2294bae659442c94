package httpx

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vino121095/valenmart-storefront/internal/mockbackend"
	"github.com/vino121095/valenmart-storefront/internal/pkg/telemetry"
	"github.com/vino121095/valenmart-storefront/internal/statuslog/sqlite"
	"github.com/vino121095/valenmart-storefront/internal/storefront/app"
	"github.com/vino121095/valenmart-storefront/internal/storefront/infra/adapters/restapi"
	"github.com/vino121095/valenmart-storefront/internal/storefront/infra/invoicepdf"
)

type gateway struct {
	srv     *httptest.Server
	backend *httptest.Server
	store   *mockbackend.Store
}

func newGateway(t *testing.T, opts mockbackend.Options) *gateway {
	t.Helper()

	store := mockbackend.NewStore()
	mockbackend.Seed(store)
	backend := httptest.NewServer(mockbackend.NewRouter(store, opts))
	t.Cleanup(backend.Close)

	history, err := sqlite.Open(filepath.Join(t.TempDir(), "status.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = history.Close() })

	client := restapi.New(backend.URL, restapi.WithTimeout(2*time.Second))
	svc := app.New(app.Deps{
		Orders:        client,
		Catalog:       client,
		Cart:          client,
		Notifications: client,
		Profiles:      client,
		Accounts:      client,
		History:       history,
	}, app.Options{})

	metrics := telemetry.NewMetrics(prometheus.NewRegistry(), "gateway")
	h := NewHandler(svc, invoicepdf.NewRenderer("Valenmart"), 20*time.Millisecond)
	srv := httptest.NewServer(NewRouter(h, metrics))
	t.Cleanup(srv.Close)

	return &gateway{srv: srv, backend: backend, store: store}
}

func (g *gateway) do(t *testing.T, method, path, token, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, g.srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func customerToken(t *testing.T, customerID string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"customerId": customerID}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestDashboard(t *testing.T) {
	g := newGateway(t, mockbackend.Options{})

	resp := g.do(t, http.MethodGet, "/api/v1/customers/42/dashboard", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	d := decode[DashboardResponse](t, resp)

	assert.Equal(t, "Priya Raman", d.CustomerName)
	assert.Equal(t, StatsResponse{Total: 4, Pending: 1, Delivered: 1, Cancelled: 1}, d.Stats)
	assert.Equal(t, 1, d.UnreadNotifications)

	require.Len(t, d.TopProducts, 3)
	assert.Equal(t, "P1", d.TopProducts[0].ProductID)
	assert.Equal(t, 5, d.TopProducts[0].TotalQuantity)
	assert.Equal(t, 2, d.TopProducts[0].OrderCount)
	assert.Equal(t, "P2", d.TopProducts[1].ProductID)

	require.Len(t, d.RecentOrders, 3)
	assert.Equal(t, "3", d.RecentOrders[0].OrderID)
	assert.Equal(t, "2", d.RecentOrders[1].OrderID)
	assert.Equal(t, "4", d.RecentOrders[2].OrderID)
	assert.Equal(t, "60.00", d.RecentOrders[0].TotalAmount)
}

func TestDashboard_MeUsesSession(t *testing.T) {
	g := newGateway(t, mockbackend.Options{RequireAuth: true})

	resp := g.do(t, http.MethodGet, "/api/v1/customers/me/dashboard", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = g.do(t, http.MethodGet, "/api/v1/customers/me/dashboard", customerToken(t, "42"), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "42", decode[DashboardResponse](t, resp).CustomerID)
}

func TestBackendUnauthorizedMapsTo401(t *testing.T) {
	g := newGateway(t, mockbackend.Options{RequireAuth: true})

	resp := g.do(t, http.MethodGet, "/api/v1/customers/42/invoices", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "unauthorized", decode[ErrorResponse](t, resp).Error)
}

func TestBackendDownMapsTo502(t *testing.T) {
	g := newGateway(t, mockbackend.Options{})
	g.backend.Close()

	resp := g.do(t, http.MethodGet, "/api/v1/customers/42/dashboard", "", "")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "Failed to load orders", decode[ErrorResponse](t, resp).Message)
}

func TestInvoices(t *testing.T) {
	g := newGateway(t, mockbackend.Options{})

	resp := g.do(t, http.MethodGet, "/api/v1/customers/42/invoices", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rows := decode[[]InvoiceListItemResponse](t, resp)

	require.Len(t, rows, 4)
	assert.Equal(t, []string{"3", "2", "4", "1"}, []string{rows[0].OrderID, rows[1].OrderID, rows[2].OrderID, rows[3].OrderID})
	assert.Equal(t, "92.00", rows[3].GrandTotal)
	assert.Equal(t, 2, rows[3].ItemCount)
}

func TestInvoice(t *testing.T) {
	g := newGateway(t, mockbackend.Options{})

	resp := g.do(t, http.MethodGet, "/api/v1/orders/1/invoice", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	inv := decode[InvoiceResponse](t, resp)

	assert.Equal(t, "1", inv.OrderID)
	assert.Equal(t, "70.00", inv.Subtotal)
	assert.Equal(t, "3.50", inv.CGSTAmount)
	assert.Equal(t, "3.50", inv.SGSTAmount)
	assert.Equal(t, "15.00", inv.DeliveryFeeTotal)
	assert.Equal(t, "92.00", inv.GrandTotal)
	require.Len(t, inv.Items, 2)
	assert.Equal(t, "Tomato", inv.Items[0].Name)
}

func TestInvoice_NotFound(t *testing.T) {
	g := newGateway(t, mockbackend.Options{})

	resp := g.do(t, http.MethodGet, "/api/v1/orders/999/invoice", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInvoicePDF(t *testing.T) {
	g := newGateway(t, mockbackend.Options{})

	resp := g.do(t, http.MethodGet, "/api/v1/orders/1/invoice.pdf", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	head := make([]byte, 4)
	_, err := io.ReadFull(resp.Body, head)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(head))
}

func TestOrderStatusAndMarkDelivered(t *testing.T) {
	g := newGateway(t, mockbackend.Options{})

	resp := g.do(t, http.MethodGet, "/api/v1/orders/3/status", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tl := decode[TimelineResponse](t, resp)
	assert.Equal(t, 2, tl.CurrentIndex)
	assert.Equal(t, []bool{true, true, true, false, false}, completedFlags(tl))

	resp = g.do(t, http.MethodPost, "/api/v1/orders/3/deliver", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tl = decode[TimelineResponse](t, resp)
	assert.Equal(t, 4, tl.CurrentIndex)
	assert.Equal(t, "Delivered", tl.Status)

	stored, err := g.store.Order("3")
	require.NoError(t, err)
	assert.Equal(t, "Delivered", stored.Status)

	resp = g.do(t, http.MethodPost, "/api/v1/orders/999/deliver", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = g.do(t, http.MethodGet, "/api/v1/orders/3/status/history", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	history := decode[[]StatusHistoryResponse](t, resp)
	require.Len(t, history, 1)
	assert.Equal(t, "SUCCEEDED", history[0].Outcome)
	assert.Equal(t, "Delivered", history[0].RequestedStatus)
}

func completedFlags(tl TimelineResponse) []bool {
	out := make([]bool, len(tl.Steps))
	for i, s := range tl.Steps {
		out[i] = s.Completed
	}
	return out
}

func TestCatalog(t *testing.T) {
	g := newGateway(t, mockbackend.Options{})

	resp := g.do(t, http.MethodGet, "/api/v1/products", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	products := decode[[]ProductResponse](t, resp)
	require.Len(t, products, 3)
	assert.Equal(t, "25.00", products[0].Price)
	assert.Equal(t, "10.00", products[0].DeliveryFee)

	resp = g.do(t, http.MethodGet, "/api/v1/categories", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]CategoryResponse](t, resp), 2)
}

func TestCart(t *testing.T) {
	g := newGateway(t, mockbackend.Options{})

	resp := g.do(t, http.MethodPost, "/api/v1/customers/42/cart", "", `{"product_id":"P1","quantity":3,"price":"25"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	item := decode[CartItemResponse](t, resp)
	assert.Equal(t, "75.00", item.LineTotal)

	resp = g.do(t, http.MethodGet, "/api/v1/customers/42/cart", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cart := decode[CartResponse](t, resp)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "75.00", cart.Subtotal)

	resp = g.do(t, http.MethodDelete, "/api/v1/customers/42/cart/"+item.ID, "", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = g.do(t, http.MethodPost, "/api/v1/customers/42/cart", "", `{"product_id":"P1","quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNotificationsAndProfile(t *testing.T) {
	g := newGateway(t, mockbackend.Options{})

	resp := g.do(t, http.MethodGet, "/api/v1/customers/42/notifications", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[NotificationsResponse](t, resp).UnreadCount)

	resp = g.do(t, http.MethodPut, "/api/v1/customers/42/notifications/mark-read", "", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = g.do(t, http.MethodGet, "/api/v1/customers/42/profile", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "priya@example.com", decode[ProfileResponse](t, resp).Email)

	resp = g.do(t, http.MethodPost, "/api/v1/forgot-password", "", `{"email":"priya@example.com"}`)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, []string{"priya@example.com"}, g.store.PasswordResetRequests())
}

func TestNotificationStream(t *testing.T) {
	g := newGateway(t, mockbackend.Options{})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.srv.URL+"/api/v1/customers/42/notifications/stream", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	scanner := bufio.NewScanner(resp.Body)
	var event, data string
	for scanner.Scan() {
		line := scanner.Text()
		if v, ok := strings.CutPrefix(line, "event: "); ok {
			event = v
		}
		if v, ok := strings.CutPrefix(line, "data: "); ok {
			data = v
			break
		}
	}
	require.Equal(t, "notifications", event)

	var payload NotificationsResponse
	require.NoError(t, json.Unmarshal([]byte(data), &payload))
	assert.Len(t, payload.Items, 2)
	assert.Equal(t, 1, payload.UnreadCount)
}

func TestHealthAndMetrics(t *testing.T) {
	g := newGateway(t, mockbackend.Options{})

	resp := g.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	g.do(t, http.MethodGet, "/api/v1/products", "", "")
	resp = g.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := new(strings.Builder)
	_, err := bufio.NewReader(resp.Body).WriteTo(body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), `route="/api/v1/products"`)
}
