package app

import (
	"context"
	"errors"
	"sync"

	"github.com/vino121095/valenmart-storefront/internal/statuslog"
	"github.com/vino121095/valenmart-storefront/internal/storefront/core/domain/entity"
)

var errBackend = errors.New("backend unavailable")

// fakeBackend implements every storefront port. Set a field in fail to make
// the matching method return errBackend.
type fakeBackend struct {
	mu            sync.Mutex
	orders        []entity.Order
	items         []entity.OrderLineItem
	products      []entity.Product
	notifications []entity.Notification
	profile       *entity.CustomerProfile
	cart          []entity.CartItem
	statusUpdates []string
	resets        []string
	fail          map[string]bool
}

func (f *fakeBackend) failing(op string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fail[op]
}

func (f *fakeBackend) ListCustomerOrders(_ context.Context, customerID string) ([]entity.Order, error) {
	if f.failing("orders") {
		return nil, errBackend
	}
	var out []entity.Order
	for _, o := range f.orders {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeBackend) GetOrder(_ context.Context, orderID string) (*entity.Order, error) {
	if f.failing("order") {
		return nil, errBackend
	}
	for _, o := range f.orders {
		if o.ID == orderID {
			return &o, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeBackend) UpdateOrderStatus(_ context.Context, orderID string, status entity.Status) (*entity.Order, error) {
	if f.failing("update") {
		return nil, errBackend
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusUpdates = append(f.statusUpdates, orderID+"="+string(status))
	for i := range f.orders {
		if f.orders[i].ID == orderID {
			f.orders[i].Status = string(status)
			o := f.orders[i]
			return &o, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeBackend) ListOrderItems(context.Context) ([]entity.OrderLineItem, error) {
	if f.failing("items") {
		return nil, errBackend
	}
	return f.items, nil
}

func (f *fakeBackend) ListProducts(context.Context) ([]entity.Product, error) {
	if f.failing("products") {
		return nil, errBackend
	}
	return f.products, nil
}

func (f *fakeBackend) ListCategories(context.Context) ([]entity.Category, error) {
	return []entity.Category{}, nil
}

func (f *fakeBackend) GetCart(context.Context, string) ([]entity.CartItem, error) {
	return f.cart, nil
}

func (f *fakeBackend) AddToCart(_ context.Context, req entity.AddToCart) (*entity.CartItem, error) {
	item := entity.CartItem{ID: "c1", CustomerID: req.CustomerID, ProductID: req.ProductID, Quantity: req.Quantity, Price: req.Price}
	f.cart = append(f.cart, item)
	return &item, nil
}

func (f *fakeBackend) RemoveFromCart(context.Context, string) error {
	if f.failing("cart.remove") {
		return errBackend
	}
	return nil
}

func (f *fakeBackend) ListNotifications(context.Context, string) ([]entity.Notification, error) {
	if f.failing("notifications") {
		return nil, errBackend
	}
	return f.notifications, nil
}

func (f *fakeBackend) MarkAllRead(context.Context, string) error {
	for i := range f.notifications {
		f.notifications[i].Read = true
	}
	return nil
}

func (f *fakeBackend) GetProfile(context.Context, string) (*entity.CustomerProfile, error) {
	if f.failing("profile") || f.profile == nil {
		return nil, errBackend
	}
	return f.profile, nil
}

func (f *fakeBackend) ForgotPassword(_ context.Context, email string) error {
	f.resets = append(f.resets, email)
	return nil
}

type memHistory struct {
	mu      sync.Mutex
	entries []statuslog.Entry
}

func (m *memHistory) Save(_ context.Context, e *statuslog.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *e)
	return nil
}

func (m *memHistory) ListByOrder(_ context.Context, orderID string) ([]statuslog.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []statuslog.Entry{}
	for _, e := range m.entries {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

func newService(fb *fakeBackend, hist statuslog.Repository) *Service {
	return New(Deps{
		Orders:        fb,
		Catalog:       fb,
		Cart:          fb,
		Notifications: fb,
		Profiles:      fb,
		Accounts:      fb,
		History:       hist,
	}, Options{})
}
