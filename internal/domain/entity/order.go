package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estados de un pedido. PENDING -> COMPLETED | CANCELED.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCanceled  OrderStatus = "CANCELED"
)

// Valid indica si el estado es uno de los conocidos.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderCompleted, OrderCanceled:
		return true
	}
	return false
}

// OrderItem línea del pedido. Name y Price son una foto del producto al momento de pedir.
type OrderItem struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
}

// Subtotal devuelve Price × Quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order pedido de un cliente. VendorID siempre es el vendedor del cliente.
type Order struct {
	ID        string
	Items     []OrderItem
	Total     decimal.Decimal
	ClientID  string
	VendorID  string
	Status    OrderStatus
	Date      time.Time
	UpdatedAt time.Time
}

// OwnedBy indica si el pedido pertenece al vendedor.
func (o *Order) OwnedBy(vendorID string) bool {
	return o != nil && o.VendorID == vendorID
}

// ItemsTotal suma los subtotales de las líneas.
func ItemsTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}
