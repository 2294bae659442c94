package httpx

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vino121095/valenmart-storefront/internal/statuslog"
	"github.com/vino121095/valenmart-storefront/internal/storefront/app"
	"github.com/vino121095/valenmart-storefront/internal/storefront/core/aggregate"
	"github.com/vino121095/valenmart-storefront/internal/storefront/core/domain/entity"
	"github.com/vino121095/valenmart-storefront/internal/storefront/core/tracker"
)

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func mapDashboard(d *app.Dashboard) DashboardResponse {
	top := make([]TopProductResponse, len(d.TopProducts))
	for i, p := range d.TopProducts {
		top[i] = TopProductResponse{
			ProductID:     p.ProductID,
			Name:          p.Name,
			ImageRef:      p.ImageRef,
			Unit:          p.Unit,
			TotalQuantity: p.TotalQuantity,
			OrderCount:    p.OrderCount,
		}
	}
	recent := make([]OrderSummaryResponse, len(d.RecentOrders))
	for i, o := range d.RecentOrders {
		recent[i] = OrderSummaryResponse{
			OrderID:     o.ID,
			OrderDate:   formatTime(o.OrderDate),
			Status:      o.Status,
			ItemCount:   len(o.Items),
			TotalAmount: aggregate.Money(aggregate.ResolveOrderTotal(o)),
		}
	}
	return DashboardResponse{
		CustomerID:   d.CustomerID,
		CustomerName: d.CustomerName,
		Stats: StatsResponse{
			Total:     d.Stats.Total,
			Pending:   d.Stats.Pending,
			Delivered: d.Stats.Delivered,
			Cancelled: d.Stats.Cancelled,
		},
		TopProducts:         top,
		RecentOrders:        recent,
		UnreadNotifications: d.UnreadCount,
	}
}

func mapInvoice(order entity.Order, inv aggregate.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, it := range inv.Items {
		items[i] = InvoiceItemResponse{
			ProductID:   it.ProductID,
			Name:        it.Product.Name,
			Unit:        it.Product.Unit,
			Quantity:    it.Quantity,
			LineTotal:   aggregate.Money(it.LineTotal),
			CGSTRate:    it.Product.CGSTRate.String(),
			SGSTRate:    it.Product.SGSTRate.String(),
			DeliveryFee: aggregate.Money(it.Product.DeliveryFee),
		}
	}
	return InvoiceResponse{
		OrderID:          inv.OrderID,
		OrderDate:        formatTime(order.OrderDate),
		Status:           order.Status,
		Items:            items,
		Subtotal:         aggregate.Money(inv.Subtotal),
		CGSTAmount:       aggregate.Money(inv.CGSTAmount),
		SGSTAmount:       aggregate.Money(inv.SGSTAmount),
		DeliveryFeeTotal: aggregate.Money(inv.DeliveryFeeTotal),
		GrandTotal:       inv.GrandTotalString(),
	}
}

func mapInvoiceList(rows []aggregate.InvoiceSummary) []InvoiceListItemResponse {
	out := make([]InvoiceListItemResponse, len(rows))
	for i, r := range rows {
		out[i] = InvoiceListItemResponse{
			OrderID:    r.OrderID,
			OrderDate:  formatTime(r.OrderDate),
			Status:     r.Status,
			ItemCount:  r.ItemCount,
			GrandTotal: r.Invoice.GrandTotalString(),
		}
	}
	return out
}

func mapTimeline(tl *tracker.Timeline) TimelineResponse {
	steps := make([]StepResponse, len(tl.Steps))
	for i, s := range tl.Steps {
		steps[i] = StepResponse{Index: s.Index, Name: s.Name, Completed: s.Completed}
	}
	return TimelineResponse{
		OrderID:      tl.OrderID,
		Status:       tl.Status,
		CurrentIndex: tl.CurrentIndex,
		Cancelled:    tl.Cancelled,
		Steps:        steps,
	}
}

func mapHistory(entries []statuslog.Entry) []StatusHistoryResponse {
	out := make([]StatusHistoryResponse, len(entries))
	for i, e := range entries {
		out[i] = StatusHistoryResponse{
			RequestedStatus: e.RequestedStatus,
			Outcome:         string(e.Outcome),
			Error:           e.Error,
			TraceID:         e.TraceID,
			RequestedAt:     formatTime(e.RequestedAt),
		}
	}
	return out
}

func mapProducts(products []entity.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = ProductResponse{
			ID:          p.ID,
			Name:        p.Name,
			CategoryID:  p.CategoryID,
			ImageRef:    p.ImageRef,
			Unit:        p.Unit,
			Price:       aggregate.Money(p.Price),
			CGSTRate:    p.CGSTRate.String(),
			SGSTRate:    p.SGSTRate.String(),
			DeliveryFee: aggregate.Money(p.DeliveryFee),
			InStock:     p.InStock,
		}
	}
	return out
}

func mapCategories(cats []entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(cats))
	for i, c := range cats {
		out[i] = CategoryResponse{ID: c.ID, Name: c.Name, ImageRef: c.ImageRef}
	}
	return out
}

func mapCartItem(c entity.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:        c.ID,
		ProductID: c.ProductID,
		Name:      c.Product.Name,
		ImageRef:  c.Product.ImageRef,
		Unit:      c.Product.Unit,
		Quantity:  c.Quantity,
		Price:     aggregate.Money(c.Price),
		LineTotal: aggregate.Money(cartLineTotal(c)),
	}
}

func cartLineTotal(c entity.CartItem) decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

func mapCart(items []entity.CartItem) CartResponse {
	out := CartResponse{Items: make([]CartItemResponse, len(items))}
	subtotal := decimal.Zero
	for i, c := range items {
		out.Items[i] = mapCartItem(c)
		subtotal = subtotal.Add(cartLineTotal(c))
	}
	out.Subtotal = aggregate.Money(subtotal)
	return out
}

func mapNotifications(ns []entity.Notification, unread int) NotificationsResponse {
	out := NotificationsResponse{Items: make([]NotificationResponse, len(ns)), UnreadCount: unread}
	for i, n := range ns {
		out.Items[i] = NotificationResponse{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Read:      n.Read,
			CreatedAt: formatTime(n.CreatedAt),
		}
	}
	return out
}

func mapProfile(p *entity.CustomerProfile) ProfileResponse {
	return ProfileResponse{
		CustomerID:   p.CustomerID,
		Name:         p.Name,
		Email:        p.Email,
		Phone:        p.Phone,
		Address:      p.Address,
		ImageRef:     p.ImageRef,
		BusinessName: p.BusinessName,
	}
}
