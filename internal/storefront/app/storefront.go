// Package app composes backend fetches with the aggregation engine into the
// view models served by the gateway.
package app

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vino121095/valenmart-storefront/internal/statuslog"
	"github.com/vino121095/valenmart-storefront/internal/storefront/core/aggregate"
	"github.com/vino121095/valenmart-storefront/internal/storefront/core/domain/entity"
	"github.com/vino121095/valenmart-storefront/internal/storefront/core/ports"
	"github.com/vino121095/valenmart-storefront/internal/storefront/core/tracker"
)

const (
	DefaultTopProducts  = 3
	DefaultRecentOrders = 3
)

type Options struct {
	TopProducts  int
	RecentOrders int
}

// Deps are the backend ports. History may be nil.
type Deps struct {
	Orders        ports.OrderService
	Catalog       ports.CatalogService
	Cart          ports.CartService
	Notifications ports.NotificationService
	Profiles      ports.ProfileService
	Accounts      ports.AccountService
	History       statuslog.Repository
}

type Service struct {
	deps    Deps
	tracker *tracker.Tracker
	opts    Options
}

func New(deps Deps, opts Options) *Service {
	if opts.TopProducts <= 0 {
		opts.TopProducts = DefaultTopProducts
	}
	if opts.RecentOrders <= 0 {
		opts.RecentOrders = DefaultRecentOrders
	}
	return &Service{
		deps:    deps,
		tracker: tracker.New(deps.Orders, deps.History),
		opts:    opts,
	}
}

// Dashboard is the customer's home screen.
type Dashboard struct {
	CustomerID   string
	CustomerName string
	Stats        aggregate.Stats
	TopProducts  []aggregate.ProductAggregate
	RecentOrders []entity.Order
	UnreadCount  int
}

// Dashboard fetches orders, notifications and the profile concurrently.
// Only the orders are required; the other two degrade to empty values.
func (s *Service) Dashboard(ctx context.Context, customerID string) (*Dashboard, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, invalid("customer id is required")
	}

	var (
		orders        []entity.Order
		notifications []entity.Notification
		profile       *entity.CustomerProfile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.deps.Orders.ListCustomerOrders(gctx, customerID)
		return loadErr("orders", err)
	})
	g.Go(func() error {
		var err error
		if notifications, err = s.deps.Notifications.ListNotifications(gctx, customerID); err != nil {
			slog.WarnContext(ctx, "dashboard: notifications unavailable", "customer_id", customerID, "error", err)
			notifications = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if profile, err = s.deps.Profiles.GetProfile(gctx, customerID); err != nil {
			slog.WarnContext(ctx, "dashboard: profile unavailable", "customer_id", customerID, "error", err)
			profile = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &Dashboard{
		CustomerID:   customerID,
		Stats:        aggregate.ComputeStats(orders),
		TopProducts:  aggregate.TopProducts(orders, s.opts.TopProducts),
		RecentOrders: aggregate.RecentOrders(orders, s.opts.RecentOrders),
		UnreadCount:  entity.UnreadCount(notifications),
	}
	if profile != nil {
		d.CustomerName = profile.Name
	}
	return d, nil
}

// Invoices joins the customer's orders with the global line-item list.
// Both fetches must succeed before any total is computed.
func (s *Service) Invoices(ctx context.Context, customerID string) ([]aggregate.InvoiceSummary, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, invalid("customer id is required")
	}

	var (
		orders []entity.Order
		items  []entity.OrderLineItem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.deps.Orders.ListCustomerOrders(gctx, customerID)
		return loadErr("orders", err)
	})
	g.Go(func() error {
		var err error
		items, err = s.deps.Orders.ListOrderItems(gctx)
		return loadErr("order items", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return aggregate.BuildInvoices(orders, items), nil
}

// OrderInvoice is one order with its computed totals.
type OrderInvoice struct {
	Order   entity.Order
	Invoice aggregate.Invoice
}

// Invoice computes the totals for a single order. When the global item list
// has nothing for the order, the order's own nested items are used.
func (s *Service) Invoice(ctx context.Context, orderID string) (*OrderInvoice, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, invalid("order id is required")
	}

	var (
		order *entity.Order
		items []entity.OrderLineItem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		order, err = s.deps.Orders.GetOrder(gctx, orderID)
		return loadErr("order", err)
	})
	g.Go(func() error {
		var err error
		items, err = s.deps.Orders.ListOrderItems(gctx)
		return loadErr("order items", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	inv := aggregate.CalculateOrderTotal(orderID, items)
	if len(inv.Items) == 0 && len(order.Items) > 0 {
		inv = aggregate.CalculateOrderTotal(orderID, order.Items)
	}
	return &OrderInvoice{Order: *order, Invoice: inv}, nil
}

// OrderStatus derives the milestone timeline for one order.
func (s *Service) OrderStatus(ctx context.Context, orderID string) (*tracker.Timeline, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, invalid("order id is required")
	}
	order, err := s.deps.Orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, loadErr("order status", err)
	}
	tl := tracker.NewTimeline(*order)
	return &tl, nil
}

// MarkDelivered transitions the order and returns the refreshed timeline.
func (s *Service) MarkDelivered(ctx context.Context, orderID string) (*tracker.Timeline, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, invalid("order id is required")
	}
	order, err := s.tracker.MarkDelivered(ctx, orderID)
	if err != nil {
		return nil, actionErr("mark order as delivered", err)
	}
	if order == nil {
		order = &entity.Order{Status: string(entity.StatusDelivered)}
	}
	if order.ID == "" {
		order.ID = orderID
	}
	tl := tracker.NewTimeline(*order)
	return &tl, nil
}

// StatusHistory lists recorded status update attempts, oldest first.
func (s *Service) StatusHistory(ctx context.Context, orderID string) ([]statuslog.Entry, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, invalid("order id is required")
	}
	if s.deps.History == nil {
		return []statuslog.Entry{}, nil
	}
	entries, err := s.deps.History.ListByOrder(ctx, orderID)
	return entries, loadErr("status history", err)
}
