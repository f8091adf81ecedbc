package dto

import (
	"strings"
	"time"
)

// ClientInput entrada para crear o reemplazar un cliente. El vendedor sale del token.
type ClientInput struct {
	Name     string `json:"name" validate:"required,max=200"`
	LastName string `json:"lastName" validate:"required,max=200"`
	Company  string `json:"company" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,max=50"`
}

// Normalize recorta espacios de los campos de texto.
func (r *ClientInput) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Company = strings.TrimSpace(r.Company)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	LastName  string    `json:"lastName"`
	Company   string    `json:"company"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	VendorID  string    `json:"vendor"`
	CreatedAt time.Time `json:"createdAt"`
}
