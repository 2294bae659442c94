package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the order lifecycle status as the backend reports it.
type Status string

const (
	StatusNewOrder       Status = "New Order"
	StatusOutForDelivery Status = "Out for Delivery"
	StatusShipping       Status = "Shipping"
	StatusDelivered      Status = "Delivered"
	StatusCancelled      Status = "Cancelled"
)

var knownStatuses = map[string]Status{
	"new order":        StatusNewOrder,
	"neworder":         StatusNewOrder,
	"out for delivery": StatusOutForDelivery,
	"outfordelivery":   StatusOutForDelivery,
	"shipping":         StatusShipping,
	"delivered":        StatusDelivered,
	"cancelled":        StatusCancelled,
}

// NormalizeStatus maps a raw status string onto the fixed vocabulary,
// ignoring case and surrounding whitespace. ok is false for anything else,
// including the empty string.
func NormalizeStatus(raw string) (Status, bool) {
	s, ok := knownStatuses[strings.ToLower(strings.TrimSpace(raw))]
	return s, ok
}

type ProductSnapshot struct {
	Name        string
	ImageRef    string
	Unit        string
	CGSTRate    decimal.Decimal // percent, 0-100
	SGSTRate    decimal.Decimal // percent, 0-100
	DeliveryFee decimal.Decimal // flat amount
}

type OrderLineItem struct {
	OrderID   string
	ProductID string
	Quantity  int
	LineTotal decimal.Decimal
	Product   ProductSnapshot
}

type Order struct {
	ID         string
	CustomerID string
	// OrderDate is the zero time when the backend sent no parseable date.
	OrderDate time.Time
	// Status keeps the raw backend value; use NormalizeStatus to classify it.
	Status      string
	Items       []OrderLineItem
	TotalAmount *decimal.Decimal
}
