package repository

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// VendorRanking orden en que se aplican límite y ordenamiento en SalesByVendor.
type VendorRanking string

const (
	// RankTop ordena por total descendente y luego limita (top N real).
	RankTop VendorRanking = "top"
	// RankLegacy limita primero y ordena después el subconjunto; puede dejar fuera
	// a vendedores con más ventas que los devueltos.
	RankLegacy VendorRanking = "legacy"
)

// ReportRepository consultas agregadas de solo lectura sobre pedidos COMPLETED.
type ReportRepository interface {
	// SalesByClient agrupa por cliente y suma total. Sin orden ni límite.
	SalesByClient(ctx context.Context) ([]entity.ClientSales, error)
	// SalesByVendor agrupa por vendedor, suma total y devuelve a lo sumo limit filas.
	SalesByVendor(ctx context.Context, limit int, ranking VendorRanking) ([]entity.VendorSales, error)
}
