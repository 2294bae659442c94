package entity

import "github.com/shopspring/decimal"

type Product struct {
	ID          string
	Name        string
	CategoryID  string
	ImageRef    string
	Unit        string
	Price       decimal.Decimal
	CGSTRate    decimal.Decimal
	SGSTRate    decimal.Decimal
	DeliveryFee decimal.Decimal
	InStock     bool
}

type Category struct {
	ID       string
	Name     string
	ImageRef string
}
