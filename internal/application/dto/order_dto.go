package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemInput línea pedida: producto y cantidad.
type OrderItemInput struct {
	ProductID string `json:"id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// CreateOrderRequest entrada de newOrder. El total se calcula con los precios vigentes.
type CreateOrderRequest struct {
	ClientID string           `json:"client" validate:"required"`
	Items    []OrderItemInput `json:"order" validate:"required,min=1,dive"`
	Status   string           `json:"status" validate:"omitempty,oneof=PENDING COMPLETED CANCELED"`
}

// UpdateOrderRequest entrada de updateOrder.
// Items nil conserva las líneas actuales (revisión solo de estado o cliente).
type UpdateOrderRequest struct {
	ClientID string           `json:"client" validate:"required"`
	Items    []OrderItemInput `json:"order" validate:"omitempty,min=1,dive"`
	Status   string           `json:"status" validate:"omitempty,oneof=PENDING COMPLETED CANCELED"`
}

// OrderItemResponse línea de un pedido.
type OrderItemResponse struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID       string              `json:"id"`
	Items    []OrderItemResponse `json:"order"`
	Total    decimal.Decimal     `json:"total"`
	ClientID string              `json:"client"`
	VendorID string              `json:"vendor"`
	Status   string              `json:"status"`
	Date     time.Time           `json:"date"`
}
