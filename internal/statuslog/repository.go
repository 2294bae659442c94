package statuslog

import "context"

// Repository persists status-update attempts. The table is append-only.
type Repository interface {
	Save(ctx context.Context, entry *Entry) error
	ListByOrder(ctx context.Context, orderID string) ([]Entry, error)
}
