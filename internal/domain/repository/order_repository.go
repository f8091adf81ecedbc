package repository

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context) ([]*entity.Order, error)
	ListByVendor(ctx context.Context, vendorID string) ([]*entity.Order, error)
	ListByVendorAndStatus(ctx context.Context, vendorID string, status entity.OrderStatus) ([]*entity.Order, error)
	// Update reemplaza el documento completo (líneas, total, cliente, vendedor, estado).
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id string) error
}
