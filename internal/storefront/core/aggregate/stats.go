// Package aggregate derives dashboard, invoice and ranking view data from
// an already fetched snapshot of orders and order items.
//
// Every function here is pure: no I/O, no shared state, and malformed input
// is absorbed (records without an identifier are skipped, missing numbers
// count as zero) rather than reported as an error.
package aggregate

import "github.com/vino121095/valenmart-storefront/internal/storefront/core/domain/entity"

// Stats is the per-status order count shown on the dashboard.
// Orders whose status is unknown or missing are counted in Total only.
type Stats struct {
	Total     int
	Pending   int
	Delivered int
	Cancelled int
}

// ComputeStats counts orders into the dashboard buckets.
func ComputeStats(orders []entity.Order) Stats {
	st := Stats{Total: len(orders)}
	for _, o := range orders {
		s, ok := entity.NormalizeStatus(o.Status)
		if !ok {
			continue
		}
		switch s {
		case entity.StatusNewOrder:
			st.Pending++
		case entity.StatusDelivered:
			st.Delivered++
		case entity.StatusCancelled:
			st.Cancelled++
		}
	}
	return st
}
