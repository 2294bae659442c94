package ports

import (
	"context"

	"github.com/vino121095/valenmart-storefront/internal/storefront/core/domain/entity"
)

type CatalogService interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	ListCategories(ctx context.Context) ([]entity.Category, error)
}

type CartService interface {
	GetCart(ctx context.Context, customerID string) ([]entity.CartItem, error)
	AddToCart(ctx context.Context, req entity.AddToCart) (*entity.CartItem, error)
	RemoveFromCart(ctx context.Context, cartID string) error
}

type NotificationService interface {
	ListNotifications(ctx context.Context, customerID string) ([]entity.Notification, error)
	MarkAllRead(ctx context.Context, customerID string) error
}

type ProfileService interface {
	GetProfile(ctx context.Context, customerID string) (*entity.CustomerProfile, error)
}

type AccountService interface {
	ForgotPassword(ctx context.Context, email string) error
}
