package aggregate

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vino121095/valenmart-storefront/internal/storefront/core/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Invoice is the tax and fee breakdown of a single order.
type Invoice struct {
	OrderID          string
	Items            []entity.OrderLineItem
	Subtotal         decimal.Decimal
	CGSTAmount       decimal.Decimal
	SGSTAmount       decimal.Decimal
	DeliveryFeeTotal decimal.Decimal
	GrandTotal       decimal.Decimal
}

// GrandTotalString formats the grand total with exactly two decimals.
// A negative total can only come from corrupt line items and is shown as 0.00.
func (inv Invoice) GrandTotalString() string {
	return Money(inv.GrandTotal)
}

// Money renders an amount for display: two decimals, never negative.
func Money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "0.00"
	}
	return d.StringFixed(2)
}

// CalculateOrderTotal filters items down to orderID and sums them.
//
// The delivery fee is added once per line item, not once per order, which
// matches what customers have been billed so far. An order split over
// several lines that share one fee is charged that fee several times.
func CalculateOrderTotal(orderID string, items []entity.OrderLineItem) Invoice {
	inv := Invoice{OrderID: orderID}
	for _, it := range items {
		if it.OrderID != orderID {
			continue
		}
		inv.Items = append(inv.Items, it)
		inv.Subtotal = inv.Subtotal.Add(it.LineTotal)
		inv.CGSTAmount = inv.CGSTAmount.Add(it.LineTotal.Mul(it.Product.CGSTRate).Div(hundred))
		inv.SGSTAmount = inv.SGSTAmount.Add(it.LineTotal.Mul(it.Product.SGSTRate).Div(hundred))
		inv.DeliveryFeeTotal = inv.DeliveryFeeTotal.Add(it.Product.DeliveryFee)
	}
	inv.GrandTotal = inv.Subtotal.
		Add(inv.CGSTAmount).
		Add(inv.SGSTAmount).
		Add(inv.DeliveryFeeTotal).
		Round(2)
	return inv
}

// OrderTotal is CalculateOrderTotal reduced to its display string.
func OrderTotal(orderID string, items []entity.OrderLineItem) string {
	return CalculateOrderTotal(orderID, items).GrandTotalString()
}

// ResolveOrderTotal prefers the backend's precomputed total and falls back
// to deriving it from the order's own line items.
func ResolveOrderTotal(o entity.Order) decimal.Decimal {
	if o.TotalAmount != nil {
		return *o.TotalAmount
	}
	items := make([]entity.OrderLineItem, 0, len(o.Items))
	for _, it := range o.Items {
		if it.OrderID == "" {
			it.OrderID = o.ID
		}
		items = append(items, it)
	}
	return CalculateOrderTotal(o.ID, items).GrandTotal
}

// InvoiceSummary is one row of the invoice list.
type InvoiceSummary struct {
	OrderID   string
	OrderDate time.Time
	Status    string
	ItemCount int
	Invoice   Invoice
}

// BuildInvoices joins orders with the full item list and computes one
// invoice per order, newest order first.
func BuildInvoices(orders []entity.Order, items []entity.OrderLineItem) []InvoiceSummary {
	sorted := RecentOrders(orders, len(orders))
	out := make([]InvoiceSummary, 0, len(sorted))
	for _, o := range sorted {
		if o.ID == "" {
			continue
		}
		inv := CalculateOrderTotal(o.ID, items)
		out = append(out, InvoiceSummary{
			OrderID:   o.ID,
			OrderDate: o.OrderDate,
			Status:    o.Status,
			ItemCount: len(inv.Items),
			Invoice:   inv,
		})
	}
	return slices.Clip(out)
}
