package dto

import "github.com/shopspring/decimal"

// TopClientResponse fila de bestClients. Client es lista (vacía si el cliente ya no existe).
type TopClientResponse struct {
	Total  decimal.Decimal  `json:"total"`
	Client []ClientResponse `json:"client"`
}

// TopVendorResponse fila de bestVendors.
type TopVendorResponse struct {
	Total  decimal.Decimal `json:"total"`
	Vendor []UserResponse  `json:"vendor"`
}
