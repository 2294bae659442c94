package entity

import "github.com/shopspring/decimal"

type CartItem struct {
	ID         string
	CustomerID string
	ProductID  string
	Quantity   int
	Price      decimal.Decimal
	Product    ProductSnapshot
}

type AddToCart struct {
	CustomerID string
	ProductID  string
	Quantity   int
	Price      decimal.Decimal
}
