package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, name, last_name, company, email, phone, vendor_id, created_at, updated_at`

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(&c.ID, &c.Name, &c.LastName, &c.Company, &c.Email, &c.Phone, &c.VendorID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(ctx context.Context, client *entity.Client) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO clients (`+clientColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		client.ID, client.Name, client.LastName, client.Company, client.Email, client.Phone,
		client.VendorID, client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert client: %w", domain.ErrConflict)
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	return r.findOne(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
}

func (r *ClientRepo) GetByEmail(ctx context.Context, email string) (*entity.Client, error) {
	return r.findOne(ctx, `SELECT `+clientColumns+` FROM clients WHERE email = $1`, email)
}

func (r *ClientRepo) findOne(ctx context.Context, query, arg string) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func (r *ClientRepo) List(ctx context.Context) ([]*entity.Client, error) {
	return r.list(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY created_at`)
}

func (r *ClientRepo) ListByVendor(ctx context.Context, vendorID string) ([]*entity.Client, error) {
	return r.list(ctx, `SELECT `+clientColumns+` FROM clients WHERE vendor_id = $1 ORDER BY created_at`, vendorID)
}

func (r *ClientRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Client, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	list := []*entity.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update reemplaza los datos del cliente; vendor_id y created_at no cambian.
func (r *ClientRepo) Update(ctx context.Context, client *entity.Client) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE clients SET name = $2, last_name = $3, company = $4, email = $5, phone = $6, updated_at = $7 WHERE id = $1`,
		client.ID, client.Name, client.LastName, client.Company, client.Email, client.Phone, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update client: %w", domain.ErrConflict)
		}
		return fmt.Errorf("update client: %w", err)
	}
	return rowsAffected(tag, domain.ErrNotFound)
}

func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return rowsAffected(tag, domain.ErrNotFound)
}
