package entity

type CustomerProfile struct {
	CustomerID   string
	Name         string
	Email        string
	Phone        string
	Address      string
	ImageRef     string
	BusinessName string
}
