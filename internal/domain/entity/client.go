package entity

import "time"

// Client representa un cliente del CRM. VendorID se fija al crearlo y no cambia.
type Client struct {
	ID        string
	Name      string
	LastName  string
	Company   string
	Email     string // único
	Phone     string // opcional
	VendorID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy indica si el cliente pertenece al vendedor.
func (c *Client) OwnedBy(vendorID string) bool {
	return c != nil && c.VendorID == vendorID
}
