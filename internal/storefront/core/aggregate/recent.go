package aggregate

import (
	"slices"

	"github.com/vino121095/valenmart-storefront/internal/storefront/core/domain/entity"
)

// RecentOrders returns up to n orders, newest first. Orders without a
// parseable date carry the zero time and therefore sort last. The input
// slice is left untouched.
func RecentOrders(orders []entity.Order, n int) []entity.Order {
	if n <= 0 {
		return []entity.Order{}
	}
	sorted := slices.Clone(orders)
	slices.SortStableFunc(sorted, func(a, b entity.Order) int {
		return b.OrderDate.Compare(a.OrderDate)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	if sorted == nil {
		return []entity.Order{}
	}
	return sorted
}
