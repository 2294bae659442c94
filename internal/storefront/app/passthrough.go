package app

import (
	"context"
	"net/mail"
	"strings"

	"github.com/vino121095/valenmart-storefront/internal/storefront/app/notifications"
	"github.com/vino121095/valenmart-storefront/internal/storefront/core/domain/entity"
)

func (s *Service) Products(ctx context.Context) ([]entity.Product, error) {
	products, err := s.deps.Catalog.ListProducts(ctx)
	return products, loadErr("products", err)
}

func (s *Service) Categories(ctx context.Context) ([]entity.Category, error) {
	cats, err := s.deps.Catalog.ListCategories(ctx)
	return cats, loadErr("categories", err)
}

func (s *Service) Cart(ctx context.Context, customerID string) ([]entity.CartItem, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, invalid("customer id is required")
	}
	items, err := s.deps.Cart.GetCart(ctx, customerID)
	return items, loadErr("cart", err)
}

func (s *Service) AddToCart(ctx context.Context, req entity.AddToCart) (*entity.CartItem, error) {
	switch {
	case strings.TrimSpace(req.CustomerID) == "":
		return nil, invalid("customer id is required")
	case strings.TrimSpace(req.ProductID) == "":
		return nil, invalid("product id is required")
	case req.Quantity <= 0:
		return nil, invalid("quantity must be positive, got %d", req.Quantity)
	case req.Price.IsNegative():
		return nil, invalid("price must not be negative")
	}
	item, err := s.deps.Cart.AddToCart(ctx, req)
	return item, actionErr("add to cart", err)
}

func (s *Service) RemoveFromCart(ctx context.Context, cartID string) error {
	if strings.TrimSpace(cartID) == "" {
		return invalid("cart id is required")
	}
	return actionErr("remove from cart", s.deps.Cart.RemoveFromCart(ctx, cartID))
}

// Notifications returns the list together with its unread count.
func (s *Service) Notifications(ctx context.Context, customerID string) ([]entity.Notification, int, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, 0, invalid("customer id is required")
	}
	ns, err := s.deps.Notifications.ListNotifications(ctx, customerID)
	if err != nil {
		return nil, 0, loadErr("notifications", err)
	}
	return ns, entity.UnreadCount(ns), nil
}

func (s *Service) MarkNotificationsRead(ctx context.Context, customerID string) error {
	if strings.TrimSpace(customerID) == "" {
		return invalid("customer id is required")
	}
	return actionErr("mark notifications as read", s.deps.Notifications.MarkAllRead(ctx, customerID))
}

func (s *Service) Profile(ctx context.Context, customerID string) (*entity.CustomerProfile, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, invalid("customer id is required")
	}
	p, err := s.deps.Profiles.GetProfile(ctx, customerID)
	return p, loadErr("profile", err)
}

func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return invalid("a valid email is required")
	}
	return actionErr("send password reset", s.deps.Accounts.ForgotPassword(ctx, email))
}

// NotificationFetcher exposes the notification port for pollers.
func (s *Service) NotificationFetcher() notifications.Fetcher {
	return s.deps.Notifications
}
