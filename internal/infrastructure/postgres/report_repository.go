package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura de ventas COMPLETED.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// SalesByClient suma por cliente. LEFT JOIN: un cliente borrado deja su fila sin metadata.
func (r *ReportRepo) SalesByClient(ctx context.Context) ([]entity.ClientSales, error) {
	const query = `
	WITH sales AS (
	    SELECT client_id, SUM(total) AS total
	    FROM orders
	    WHERE status = 'COMPLETED'
	    GROUP BY client_id
	)
	SELECT s.client_id, s.total,
	       c.id, c.name, c.last_name, c.company, c.email, c.phone, c.vendor_id, c.created_at, c.updated_at
	FROM sales s
	LEFT JOIN clients c ON c.id = s.client_id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sales by client: %w", err)
	}
	defer rows.Close()

	out := []entity.ClientSales{}
	for rows.Next() {
		var (
			row                                                 entity.ClientSales
			id, name, lastName, company, email, phone, vendorID *string
			createdAt, updatedAt                                *time.Time
		)
		if err := rows.Scan(&row.ClientID, &row.Total,
			&id, &name, &lastName, &company, &email, &phone, &vendorID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan sales by client: %w", err)
		}
		if id != nil {
			row.Client = &entity.Client{
				ID: *id, Name: deref(name), LastName: deref(lastName), Company: deref(company),
				Email: deref(email), Phone: deref(phone), VendorID: deref(vendorID),
				CreatedAt: derefTime(createdAt), UpdatedAt: derefTime(updatedAt),
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// SalesByVendor suma por vendedor. Con RankLegacy el LIMIT se aplica a los grupos
// sin ordenar y el orden por total se hace después.
func (r *ReportRepo) SalesByVendor(ctx context.Context, limit int, ranking repository.VendorRanking) ([]entity.VendorSales, error) {
	inner := `ORDER BY total DESC LIMIT $1`
	if ranking == repository.RankLegacy {
		inner = `LIMIT $1`
	}
	query := `
	WITH sales AS (
	    SELECT vendor_id, SUM(total) AS total
	    FROM orders
	    WHERE status = 'COMPLETED'
	    GROUP BY vendor_id
	    ` + inner + `
	)
	SELECT s.vendor_id, s.total, u.id, u.name, u.last_name, u.email, u.created_at
	FROM sales s
	LEFT JOIN users u ON u.id = s.vendor_id
	ORDER BY s.total DESC`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("sales by vendor: %w", err)
	}
	defer rows.Close()

	out := []entity.VendorSales{}
	for rows.Next() {
		var (
			row                   entity.VendorSales
			total                 decimal.Decimal
			id, name, last, email *string
			createdAt             *time.Time
		)
		if err := rows.Scan(&row.VendorID, &total, &id, &name, &last, &email, &createdAt); err != nil {
			return nil, fmt.Errorf("scan sales by vendor: %w", err)
		}
		row.Total = total
		if id != nil {
			row.Vendor = &entity.User{
				ID: *id, Name: deref(name), LastName: deref(last), Email: deref(email), CreatedAt: derefTime(createdAt),
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
