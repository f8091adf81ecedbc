package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ProductInput entrada para crear o reemplazar un producto.
type ProductInput struct {
	Name  string          `json:"name" validate:"required,max=200"`
	Stock int             `json:"stock" validate:"gte=0"`
	Price decimal.Decimal `json:"price" validate:"gte=0"`
}

// Normalize recorta espacios del nombre.
func (r *ProductInput) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Stock     int             `json:"stock"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"createdAt"`
}
