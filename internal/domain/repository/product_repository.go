package repository

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	// Search busca por texto en el índice de nombre; el orden de relevancia lo decide el motor.
	Search(ctx context.Context, text string, limit int) ([]*entity.Product, error)
	// Update reemplaza name, stock y price.
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock escribe el stock ya calculado (lectura-luego-escritura, no atómico).
	UpdateStock(ctx context.Context, id string, stock int) error
	Delete(ctx context.Context, id string) error
}
