package analytics

import (
	"context"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// TopVendorsLimit máximo de filas de bestVendors.
const TopVendorsLimit = 5

// ReportUseCase reportes de ventas sobre pedidos COMPLETED.
type ReportUseCase struct {
	repo    repository.ReportRepository
	ranking repository.VendorRanking
}

// NewReportUseCase construye el caso de uso. ranking vacío equivale a RankTop.
func NewReportUseCase(repo repository.ReportRepository, ranking repository.VendorRanking) *ReportUseCase {
	if ranking == "" {
		ranking = repository.RankTop
	}
	return &ReportUseCase{repo: repo, ranking: ranking}
}

// BestClients total vendido por cliente. Sin orden ni límite.
func (uc *ReportUseCase) BestClients(ctx context.Context) ([]*dto.TopClientResponse, error) {
	rows, err := uc.repo.SalesByClient(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TopClientResponse, 0, len(rows))
	for _, r := range rows {
		item := &dto.TopClientResponse{Total: r.Total, Client: []dto.ClientResponse{}}
		if r.Client != nil {
			item.Client = append(item.Client, clientResponse(r.Client))
		}
		out = append(out, item)
	}
	return out, nil
}

// BestVendors hasta TopVendorsLimit vendedores por total vendido.
func (uc *ReportUseCase) BestVendors(ctx context.Context) ([]*dto.TopVendorResponse, error) {
	rows, err := uc.repo.SalesByVendor(ctx, TopVendorsLimit, uc.ranking)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TopVendorResponse, 0, len(rows))
	for _, r := range rows {
		item := &dto.TopVendorResponse{Total: r.Total, Vendor: []dto.UserResponse{}}
		if r.Vendor != nil {
			item.Vendor = append(item.Vendor, dto.UserResponse{
				ID:        r.Vendor.ID,
				Name:      r.Vendor.Name,
				LastName:  r.Vendor.LastName,
				Email:     r.Vendor.Email,
				CreatedAt: r.Vendor.CreatedAt,
			})
		}
		out = append(out, item)
	}
	return out, nil
}

func clientResponse(c *entity.Client) dto.ClientResponse {
	return dto.ClientResponse{
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
