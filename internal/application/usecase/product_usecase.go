package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// DefaultSearchLimit máximo de resultados de searchProduct si no se configura otro.
const DefaultSearchLimit = 10

// ProductUseCase casos de uso CRUD para productos. No requieren identidad.
type ProductUseCase struct {
	repo        repository.ProductRepository
	searchLimit int
}

// NewProductUseCase construye el caso de uso. searchLimit <= 0 usa DefaultSearchLimit.
func NewProductUseCase(repo repository.ProductRepository, searchLimit int) *ProductUseCase {
	if searchLimit <= 0 {
		searchLimit = DefaultSearchLimit
	}
	return &ProductUseCase{repo: repo, searchLimit: searchLimit}
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductInput) (*dto.ProductResponse, error) {
	in.Normalize()
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Stock:     in.Stock,
		Price:     in.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista todos los productos.
func (uc *ProductUseCase) List(ctx context.Context) ([]*dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// Search búsqueda de texto sobre el nombre, ordenada por relevancia.
func (uc *ProductUseCase) Search(ctx context.Context, text string) ([]*dto.ProductResponse, error) {
	list, err := uc.repo.Search(ctx, text, uc.searchLimit)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// Update reemplaza nombre, stock y precio.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductInput) (*dto.ProductResponse, error) {
	in.Normalize()
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	product, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Name = in.Name
	product.Stock = in.Stock
	product.Price = in.Price
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto. Los pedidos existentes conservan su copia de nombre y precio.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) (string, error) {
	if _, err := uc.find(ctx, id); err != nil {
		return "", err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return "", err
	}
	return "Product Deleted", nil
}

func (uc *ProductUseCase) find(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("Product not found")
	}
	return product, nil
}

func toProductResponses(list []*entity.Product) []*dto.ProductResponse {
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Stock:     p.Stock,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
	}
}
