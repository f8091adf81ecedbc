package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// ClientUseCase casos de uso para clientes. Todas las operaciones reciben el id del vendedor
// que llama; el guard de identidad vive en la capa de transporte.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crea un cliente asignado al vendedor. Conflict si el email ya está registrado.
func (uc *ClientUseCase) Create(ctx context.Context, vendorID string, in dto.ClientInput) (*dto.ClientResponse, error) {
	in.Normalize()
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict("Client already created")
	}
	now := time.Now().UTC()
	client := &entity.Client{
		ID:        uuid.New().String(),
		Name:      in.Name,
		LastName:  in.LastName,
		Company:   in.Company,
		Email:     in.Email,
		Phone:     in.Phone,
		VendorID:  vendorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, client); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Conflict("Client already created")
		}
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID devuelve el cliente si pertenece al vendedor.
func (uc *ClientUseCase) GetByID(ctx context.Context, vendorID, id string) (*dto.ClientResponse, error) {
	client, err := uc.owned(ctx, vendorID, id, "You don't have access to this client")
	if err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// List lista todos los clientes (cualquier vendedor autenticado).
func (uc *ClientUseCase) List(ctx context.Context) ([]*dto.ClientResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toClientResponses(list), nil
}

// ListByVendor lista los clientes del vendedor.
func (uc *ClientUseCase) ListByVendor(ctx context.Context, vendorID string) ([]*dto.ClientResponse, error) {
	list, err := uc.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	return toClientResponses(list), nil
}

// Update reemplaza los datos del cliente. El vendedor asignado no cambia.
func (uc *ClientUseCase) Update(ctx context.Context, vendorID, id string, in dto.ClientInput) (*dto.ClientResponse, error) {
	in.Normalize()
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	client, err := uc.owned(ctx, vendorID, id, "You don't have permissions to udpate this client")
	if err != nil {
		return nil, err
	}
	client.Name = in.Name
	client.LastName = in.LastName
	client.Company = in.Company
	client.Email = in.Email
	client.Phone = in.Phone
	client.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, client); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Conflict("Client already created")
		}
		return nil, err
	}
	return toClientResponse(client), nil
}

// Delete elimina el cliente. Sus pedidos no se tocan.
func (uc *ClientUseCase) Delete(ctx context.Context, vendorID, id string) (string, error) {
	if _, err := uc.owned(ctx, vendorID, id, "You don't have permissions to delete this client"); err != nil {
		return "", err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return "", err
	}
	return "Client deleted", nil
}

func (uc *ClientUseCase) owned(ctx context.Context, vendorID, id, forbidden string) (*entity.Client, error) {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.NotFound("Client not found")
	}
	if !client.OwnedBy(vendorID) {
		return nil, domain.Forbidden("%s", forbidden)
	}
	return client, nil
}

func toClientResponses(list []*entity.Client) []*dto.ClientResponse {
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		LastName:  c.LastName,
		Company:   c.Company,
		Email:     c.Email,
		Phone:     c.Phone,
		VendorID:  c.VendorID,
		CreatedAt: c.CreatedAt,
	}
}
