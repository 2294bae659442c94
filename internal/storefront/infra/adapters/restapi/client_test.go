package restapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vino121095/valenmart-storefront/internal/mockbackend"
	"github.com/vino121095/valenmart-storefront/internal/pkg/session"
	"github.com/vino121095/valenmart-storefront/internal/storefront/core/domain/entity"
	"github.com/vino121095/valenmart-storefront/internal/storefront/core/ports"
)

func newMockClient(t *testing.T, opts mockbackend.Options) (*Client, *mockbackend.Store) {
	t.Helper()
	store := mockbackend.NewStore()
	mockbackend.Seed(store)
	srv := httptest.NewServer(mockbackend.NewRouter(store, opts))
	t.Cleanup(srv.Close)
	return New(srv.URL, WithTimeout(2*time.Second)), store
}

func authed() context.Context {
	return session.WithSession(context.Background(), session.Session{Token: "t0k3n", CustomerID: "42"})
}

func TestClient_ListCustomerOrders(t *testing.T) {
	c, _ := newMockClient(t, mockbackend.Options{})

	orders, err := c.ListCustomerOrders(authed(), "42")
	require.NoError(t, err)
	require.Len(t, orders, 4)

	first := orders[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "42", first.CustomerID)
	assert.Equal(t, "Delivered", first.Status)
	assert.True(t, time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC).Equal(first.OrderDate))
	assert.Nil(t, first.TotalAmount)
	require.Len(t, first.Items, 2)
	assert.Equal(t, "1", first.Items[0].OrderID)
	assert.Equal(t, "P1", first.Items[0].ProductID)
	assert.Equal(t, 2, first.Items[0].Quantity)
	assert.True(t, decimal.NewFromInt(50).Equal(first.Items[0].LineTotal))
	assert.Equal(t, "Tomato", first.Items[0].Product.Name)
	assert.True(t, decimal.NewFromInt(6).Equal(first.Items[0].Product.CGSTRate))
	assert.True(t, decimal.NewFromInt(10).Equal(first.Items[0].Product.DeliveryFee))
}

func TestClient_GetOrder_BareBody(t *testing.T) {
	c, _ := newMockClient(t, mockbackend.Options{})

	o, err := c.GetOrder(authed(), "3")
	require.NoError(t, err)
	assert.Equal(t, "3", o.ID)
	assert.Equal(t, "Out for Delivery", o.Status)
}

func TestClient_GetOrder_NotFound(t *testing.T) {
	c, _ := newMockClient(t, mockbackend.Options{})

	_, err := c.GetOrder(authed(), "999")
	require.Error(t, err)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindStatus, apiErr.Kind)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Order not found", apiErr.Message)
}

func TestClient_UpdateOrderStatus(t *testing.T) {
	c, store := newMockClient(t, mockbackend.Options{})

	o, err := c.UpdateOrderStatus(authed(), "2", entity.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, "Delivered", o.Status)

	stored, err := store.Order("2")
	require.NoError(t, err)
	assert.Equal(t, "Delivered", stored.Status)
}

func TestClient_UpdateOrderStatus_MessageOnlyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"message":"Status updated"}`))
	}))
	defer srv.Close()

	o, err := New(srv.URL).UpdateOrderStatus(context.Background(), "7", entity.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, "7", o.ID)
	assert.Equal(t, "Delivered", o.Status)
}

func TestClient_ListOrderItems_SnakeCase(t *testing.T) {
	c, _ := newMockClient(t, mockbackend.Options{})

	items, err := c.ListOrderItems(authed())
	require.NoError(t, err)
	require.Len(t, items, 5)
	assert.Equal(t, "1", items[0].OrderID)
	assert.Equal(t, "P1", items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "Tomato", items[0].Product.Name)
	assert.Equal(t, "kg", items[0].Product.Unit)
}

func TestClient_Catalog(t *testing.T) {
	c, _ := newMockClient(t, mockbackend.Options{})

	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "P1", products[0].ID)
	assert.Equal(t, "1", products[0].CategoryID)
	assert.True(t, decimal.NewFromInt(25).Equal(products[0].Price))
	assert.True(t, products[0].InStock)
	assert.False(t, products[2].InStock)

	cats, err := c.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Vegetables", cats[0].Name)
}

func TestClient_CartRoundTrip(t *testing.T) {
	c, _ := newMockClient(t, mockbackend.Options{})
	ctx := authed()

	item, err := c.AddToCart(ctx, entity.AddToCart{CustomerID: "42", ProductID: "P2", Quantity: 3, Price: decimal.NewFromInt(20)})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "Onion", item.Product.Name)
	assert.True(t, decimal.NewFromInt(20).Equal(item.Price))

	cart, err := c.GetCart(ctx, "42")
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, 3, cart[0].Quantity)

	require.NoError(t, c.RemoveFromCart(ctx, item.ID))
	cart, err = c.GetCart(ctx, "42")
	require.NoError(t, err)
	assert.Empty(t, cart)
	assert.NotNil(t, cart)
}

func TestClient_Notifications(t *testing.T) {
	c, _ := newMockClient(t, mockbackend.Options{})
	ctx := authed()

	ns, err := c.ListNotifications(ctx, "42")
	require.NoError(t, err)
	require.Len(t, ns, 2)
	assert.Equal(t, 1, entity.UnreadCount(ns))

	require.NoError(t, c.MarkAllRead(ctx, "42"))
	ns, err = c.ListNotifications(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, 0, entity.UnreadCount(ns))
}

func TestClient_ProfileAndForgotPassword(t *testing.T) {
	c, store := newMockClient(t, mockbackend.Options{})

	p, err := c.GetProfile(authed(), "42")
	require.NoError(t, err)
	assert.Equal(t, "Priya Raman", p.Name)
	assert.Equal(t, "Raman Stores", p.BusinessName)

	require.NoError(t, c.ForgotPassword(context.Background(), "priya@example.com"))
	assert.Equal(t, []string{"priya@example.com"}, store.PasswordResetRequests())
}

func TestClient_UnauthenticatedCallerIsNotBlockedClientSide(t *testing.T) {
	c, _ := newMockClient(t, mockbackend.Options{RequireAuth: true})

	_, err := c.ListCustomerOrders(context.Background(), "42")
	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrUnauthorized)
	assert.Equal(t, KindUnauthorized, kindOf(err))

	orders, err := c.ListCustomerOrders(authed(), "42")
	require.NoError(t, err)
	assert.Len(t, orders, 4)
}

func TestClient_ForwardsBearerAndRequestID(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	orders, err := New(srv.URL).ListCustomerOrders(authed(), "42")
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Equal(t, "Bearer t0k3n", got.Get("Authorization"))
	assert.NotEmpty(t, got.Get("X-Request-Id"))
}

func TestClient_IdempotencyKeyOnMutations(t *testing.T) {
	var keys []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.Header.Get("X-Idempotency-Key"))
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	require.NoError(t, c.MarkAllRead(context.Background(), "42"))
	_, err := c.ListNotifications(context.Background(), "42")
	require.Error(t, err)

	require.Len(t, keys, 2)
	assert.NotEmpty(t, keys[0])
	assert.Empty(t, keys[1])
}

func TestClient_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    Kind
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, `{"message":"db down"}`, http.StatusInternalServerError)
			},
			want: KindStatus,
		},
		{
			name: "forbidden",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			},
			want: KindUnauthorized,
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`<html>oops</html>`))
			},
			want: KindMalformed,
		},
		{
			name: "object where list expected",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"data":{"orderId":1}}`))
			},
			want: KindMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := New(srv.URL).ListCustomerOrders(context.Background(), "42")
			require.Error(t, err)
			assert.Equal(t, tt.want, kindOf(err))
		})
	}

	t.Run("transport", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := New(url).ListCustomerOrders(context.Background(), "42")
		require.Error(t, err)
		assert.Equal(t, KindTransport, kindOf(err))
	})
}

type recordingObserver struct {
	mu    sync.Mutex
	calls map[string]int
}

func (r *recordingObserver) ObserveBackend(op, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.calls == nil {
		r.calls = map[string]int{}
	}
	r.calls[op+":"+outcome]++
}

func TestClient_Observer(t *testing.T) {
	store := mockbackend.NewStore()
	mockbackend.Seed(store)
	srv := httptest.NewServer(mockbackend.NewRouter(store, mockbackend.Options{}))
	defer srv.Close()

	obs := &recordingObserver{}
	c := New(srv.URL, WithObserver(obs))
	_, _ = c.ListProducts(context.Background())
	_, _ = c.GetOrder(context.Background(), "missing")

	assert.Equal(t, 1, obs.calls["products.list:ok"])
	assert.Equal(t, 1, obs.calls["orders.get:status"])
}
