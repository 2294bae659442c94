// Package invoicepdf renders an order invoice as a printable A4 PDF.
package invoicepdf

import (
	"fmt"
	"strconv"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"github.com/vino121095/valenmart-storefront/internal/storefront/core/aggregate"
	"github.com/vino121095/valenmart-storefront/internal/storefront/core/domain/entity"
)

var (
	darkGray   = color.Color{Red: 38, Green: 38, Blue: 34}
	mediumGray = color.Color{Red: 121, Green: 119, Blue: 109}
)

// Renderer lays out invoices under a fixed store heading.
type Renderer struct {
	StoreName string
}

func NewRenderer(storeName string) *Renderer {
	return &Renderer{StoreName: storeName}
}

// Render returns the PDF bytes for order and its computed invoice. Amounts
// are the same two-decimal strings the JSON API serves.
func (r *Renderer) Render(order entity.Order, inv aggregate.Invoice) ([]byte, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 20, 20)

	m.Row(15, func() {
		m.Col(12, func() {
			m.Text("INVOICE", props.Text{Size: 24, Style: consts.Bold, Color: darkGray})
		})
	})
	m.Row(10, func() {
		m.Col(12, func() {
			m.Text(r.StoreName, props.Text{Size: 16, Style: consts.Bold, Color: darkGray})
		})
	})
	m.Row(8, func() {})

	m.Row(5, func() {
		m.Col(6, func() {
			m.Text(fmt.Sprintf("Order #%s", order.ID), props.Text{Size: 10, Style: consts.Bold, Color: darkGray})
		})
		m.Col(6, func() {
			m.Text("Status: "+order.Status, props.Text{Size: 9, Color: mediumGray, Align: consts.Right})
		})
	})
	if !order.OrderDate.IsZero() {
		m.Row(5, func() {
			m.Col(12, func() {
				m.Text("Date: "+order.OrderDate.Format("Jan 02, 2006"), props.Text{Size: 9, Color: mediumGray})
			})
		})
	}
	m.Row(8, func() {})

	header := props.Text{Size: 8, Style: consts.Bold, Color: darkGray, Align: consts.Right}
	m.Row(6, func() {
		m.Col(5, func() {
			m.Text("Product", props.Text{Size: 8, Style: consts.Bold, Color: darkGray})
		})
		m.Col(1, func() { m.Text("Qty", header) })
		m.Col(2, func() { m.Text("CGST %", header) })
		m.Col(2, func() { m.Text("SGST %", header) })
		m.Col(2, func() { m.Text("Amount", header) })
	})

	cell := props.Text{Size: 9, Color: darkGray, Align: consts.Right}
	for _, item := range inv.Items {
		name := item.Product.Name
		if name == "" {
			name = aggregate.UnknownProductName
		}
		unit := item.Product.Unit
		if unit == "" {
			unit = aggregate.DefaultUnit
		}
		m.Row(6, func() {
			m.Col(5, func() {
				m.Text(fmt.Sprintf("%s (%s)", name, unit), props.Text{Size: 9, Color: darkGray})
			})
			m.Col(1, func() { m.Text(strconv.Itoa(item.Quantity), cell) })
			m.Col(2, func() { m.Text(item.Product.CGSTRate.String(), cell) })
			m.Col(2, func() { m.Text(item.Product.SGSTRate.String(), cell) })
			m.Col(2, func() { m.Text(aggregate.Money(item.LineTotal), cell) })
		})
	}
	m.Row(8, func() {})

	summary := []struct {
		label  string
		amount string
	}{
		{"Subtotal", aggregate.Money(inv.Subtotal)},
		{"CGST", aggregate.Money(inv.CGSTAmount)},
		{"SGST", aggregate.Money(inv.SGSTAmount)},
		{"Delivery", aggregate.Money(inv.DeliveryFeeTotal)},
	}
	for _, line := range summary {
		m.Row(5, func() {
			m.Col(8, func() {})
			m.Col(2, func() {
				m.Text(line.label, props.Text{Size: 9, Color: mediumGray, Align: consts.Right})
			})
			m.Col(2, func() { m.Text(line.amount, cell) })
		})
	}

	m.Row(8, func() {
		m.Col(8, func() {})
		m.Col(2, func() {
			m.Text("Total", props.Text{Size: 12, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
		m.Col(2, func() {
			m.Text(inv.GrandTotalString(), props.Text{Size: 12, Style: consts.Bold, Color: darkGray, Align: consts.Right})
		})
	})

	buf, err := m.Output()
	if err != nil {
		return nil, fmt.Errorf("invoicepdf: rendering order %s: %w", order.ID, err)
	}
	return buf.Bytes(), nil
}
