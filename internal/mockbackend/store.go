// Package mockbackend is an in-memory stand-in for the storefront REST
// backend, used for local development and the adapter tests.
package mockbackend

import (
	"errors"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("not found")

type Order struct {
	ID          string
	CustomerID  string
	OrderDate   time.Time
	Status      string
	TotalAmount *decimal.Decimal
}

type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	LineTotal decimal.Decimal
}

type Product struct {
	ID          string
	Name        string
	CategoryID  string
	Image       string
	Unit        string
	Price       decimal.Decimal
	CGST        decimal.Decimal
	SGST        decimal.Decimal
	DeliveryFee decimal.Decimal
	Stock       int
}

type Category struct {
	ID    string
	Name  string
	Image string
}

type CartItem struct {
	ID         string
	CustomerID string
	ProductID  string
	Quantity   int
	Price      decimal.Decimal
}

type Notification struct {
	ID         string
	CustomerID string
	Title      string
	Message    string
	Read       bool
	CreatedAt  time.Time
}

type Profile struct {
	CustomerID   string
	Name         string
	Email        string
	Phone        string
	Address      string
	BusinessName string
}

// Store holds every backend table behind one lock.
type Store struct {
	mu            sync.RWMutex
	orders        map[string]*Order
	items         []OrderItem
	products      map[string]*Product
	categories    []Category
	cart          map[string]*CartItem
	notifications []Notification
	profiles      map[string]Profile
	resetRequests []string
	nextID        int
}

func NewStore() *Store {
	return &Store{
		orders:   make(map[string]*Order),
		products: make(map[string]*Product),
		cart:     make(map[string]*CartItem),
		profiles: make(map[string]Profile),
		nextID:   1000,
	}
}

func (s *Store) PutOrder(o Order, items ...OrderItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = &o
	for _, it := range items {
		it.OrderID = o.ID
		s.items = append(s.items, it)
	}
}

func (s *Store) PutProduct(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = &p
}

func (s *Store) PutCategory(c Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, c)
}

func (s *Store) PutNotification(n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, n)
}

func (s *Store) PutProfile(p Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.CustomerID] = p
}

// OrdersByCustomer returns the customer's orders sorted by id.
func (s *Store) OrdersByCustomer(customerID string) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Order
	for _, o := range s.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	slices.SortFunc(out, func(a, b Order) int { return compareIDs(a.ID, b.ID) })
	return out
}

func (s *Store) Order(id string) (Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return *o, nil
}

func (s *Store) UpdateStatus(id, status string) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	o.Status = status
	return *o, nil
}

func (s *Store) Items() []OrderItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

func (s *Store) ItemsForOrder(orderID string) []OrderItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []OrderItem
	for _, it := range s.items {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out
}

func (s *Store) Product(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return Product{}, false
	}
	return *p, true
}

func (s *Store) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *p)
	}
	slices.SortFunc(out, func(a, b Product) int { return compareIDs(a.ID, b.ID) })
	return out
}

func (s *Store) Categories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categories)
}

func (s *Store) Cart(customerID string) []CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []CartItem
	for _, c := range s.cart {
		if c.CustomerID == customerID {
			out = append(out, *c)
		}
	}
	slices.SortFunc(out, func(a, b CartItem) int { return compareIDs(a.ID, b.ID) })
	return out
}

func (s *Store) AddToCart(c CartItem) CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c.ID = strconv.Itoa(s.nextID)
	s.cart[c.ID] = &c
	return c
}

func (s *Store) RemoveFromCart(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cart[id]; !ok {
		return ErrNotFound
	}
	delete(s.cart, id)
	return nil
}

func (s *Store) Notifications(customerID string) []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Notification
	for _, n := range s.notifications {
		if n.CustomerID == customerID {
			out = append(out, n)
		}
	}
	return out
}

func (s *Store) MarkAllRead(customerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].CustomerID == customerID {
			s.notifications[i].Read = true
		}
	}
}

func (s *Store) Profile(customerID string) (Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[customerID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (s *Store) RequestPasswordReset(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetRequests = append(s.resetRequests, email)
}

func (s *Store) PasswordResetRequests() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.resetRequests)
}

// compareIDs orders numeric ids numerically and everything else lexically.
func compareIDs(a, b string) int {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return ai - bi
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
