package entity

import "github.com/shopspring/decimal"

// ClientSales total vendido a un cliente en pedidos COMPLETED.
// Client es nil si el cliente ya no existe.
type ClientSales struct {
	ClientID string
	Total    decimal.Decimal
	Client   *Client
}

// VendorSales total vendido por un vendedor en pedidos COMPLETED.
// Vendor es nil si el usuario ya no existe.
type VendorSales struct {
	VendorID string
	Total    decimal.Decimal
	Vendor   *User
}
