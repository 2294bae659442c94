package mockbackend

import (
	"time"

	"github.com/shopspring/decimal"
)

// Seed loads a small catalog and order history for customer "42".
func Seed(s *Store) {
	d := decimal.RequireFromString

	s.PutCategory(Category{ID: "1", Name: "Vegetables", Image: "uploads/categories/vegetables.png"})
	s.PutCategory(Category{ID: "2", Name: "Fruits", Image: "uploads/categories/fruits.png"})

	s.PutProduct(Product{ID: "P1", Name: "Tomato", CategoryID: "1", Image: "uploads/products/tomato.png", Unit: "kg",
		Price: d("25"), CGST: d("6"), SGST: d("6"), DeliveryFee: d("10"), Stock: 120})
	s.PutProduct(Product{ID: "P2", Name: "Onion", CategoryID: "1", Image: "uploads/products/onion.png", Unit: "kg",
		Price: d("20"), CGST: d("2.5"), SGST: d("2.5"), DeliveryFee: d("5"), Stock: 80})
	s.PutProduct(Product{ID: "P3", Name: "Banana", CategoryID: "2", Image: "uploads/products/banana.png", Unit: "dozen",
		Price: d("60"), CGST: d("0"), SGST: d("0"), DeliveryFee: d("0"), Stock: 0})

	base := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	s.PutOrder(Order{ID: "1", CustomerID: "42", OrderDate: base, Status: "Delivered"},
		OrderItem{ID: "11", ProductID: "P1", Quantity: 2, LineTotal: d("50")},
		OrderItem{ID: "12", ProductID: "P2", Quantity: 1, LineTotal: d("20")},
	)
	s.PutOrder(Order{ID: "2", CustomerID: "42", OrderDate: base.Add(48 * time.Hour), Status: "New Order"},
		OrderItem{ID: "21", ProductID: "P1", Quantity: 3, LineTotal: d("75")},
	)
	s.PutOrder(Order{ID: "3", CustomerID: "42", OrderDate: base.Add(96 * time.Hour), Status: "Out for Delivery"},
		OrderItem{ID: "31", ProductID: "P3", Quantity: 1, LineTotal: d("60")},
	)
	s.PutOrder(Order{ID: "4", CustomerID: "42", OrderDate: base.Add(24 * time.Hour), Status: "Cancelled"},
		OrderItem{ID: "41", ProductID: "P2", Quantity: 4, LineTotal: d("80")},
	)

	s.PutNotification(Notification{ID: "n1", CustomerID: "42", Title: "Order delivered",
		Message: "Your order #1 has been delivered.", Read: true, CreatedAt: base.Add(6 * time.Hour)})
	s.PutNotification(Notification{ID: "n2", CustomerID: "42", Title: "Out for delivery",
		Message: "Your order #3 is on its way.", CreatedAt: base.Add(100 * time.Hour)})

	s.PutProfile(Profile{CustomerID: "42", Name: "Priya Raman", Email: "priya@example.com",
		Phone: "+91 98400 00000", Address: "12 Anna Salai, Chennai", BusinessName: "Raman Stores"})
}
