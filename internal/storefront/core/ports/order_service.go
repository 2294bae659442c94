package ports

import (
	"context"

	"github.com/vino121095/valenmart-storefront/internal/storefront/core/domain/entity"
)

type OrderService interface {
	ListCustomerOrders(ctx context.Context, customerID string) ([]entity.Order, error)
	GetOrder(ctx context.Context, orderID string) (*entity.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status entity.Status) (*entity.Order, error)
	ListOrderItems(ctx context.Context) ([]entity.OrderLineItem, error)
}
