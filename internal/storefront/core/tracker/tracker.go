package tracker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vino121095/valenmart-storefront/internal/statuslog"
	"github.com/vino121095/valenmart-storefront/internal/storefront/core/domain/entity"
	"github.com/vino121095/valenmart-storefront/internal/storefront/core/ports"
)

// StatusUpdater is the slice of ports.OrderService the tracker needs.
type StatusUpdater interface {
	UpdateOrderStatus(ctx context.Context, orderID string, status entity.Status) (*entity.Order, error)
}

var _ StatusUpdater = (ports.OrderService)(nil)

// Tracker issues customer-triggered status transitions.
type Tracker struct {
	orders StatusUpdater
	log    statuslog.Repository // nil-safe: attempts are not recorded if nil
}

func New(orders StatusUpdater, log statuslog.Repository) *Tracker {
	return &Tracker{orders: orders, log: log}
}

// MarkDelivered asks the backend to move orderID to Delivered. The outcome
// is returned as-is: there is no retry and nothing to roll back.
func (t *Tracker) MarkDelivered(ctx context.Context, orderID string) (*entity.Order, error) {
	if orderID == "" {
		return nil, fmt.Errorf("mark delivered: order id is required")
	}

	order, err := t.orders.UpdateOrderStatus(ctx, orderID, entity.StatusDelivered)
	t.record(ctx, orderID, err)
	if err != nil {
		slog.ErrorContext(ctx, "mark delivered failed", "order_id", orderID, "error", err)
		return nil, fmt.Errorf("mark delivered %s: %w", orderID, err)
	}

	slog.InfoContext(ctx, "order marked delivered", "order_id", orderID)
	return order, nil
}

func (t *Tracker) record(ctx context.Context, orderID string, err error) {
	if t.log == nil {
		return
	}
	entry := statuslog.NewEntry(ctx, orderID, string(entity.StatusDelivered), err)
	if saveErr := t.log.Save(ctx, entry); saveErr != nil {
		slog.WarnContext(ctx, "failed to record status update", "order_id", orderID, "error", saveErr)
	}
}
