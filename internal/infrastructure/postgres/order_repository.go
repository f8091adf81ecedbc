package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository. Las líneas viven en la columna items (JSONB).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, items, total, client_id, vendor_id, status, date, updated_at`

// itemJSON forma de cada línea dentro de items.
type itemJSON struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

func marshalItems(items []entity.OrderItem) ([]byte, error) {
	out := make([]itemJSON, 0, len(items))
	for _, it := range items {
		out = append(out, itemJSON{ID: it.ProductID, Name: it.Name, Price: it.Price, Quantity: it.Quantity})
	}
	return json.Marshal(out)
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o      entity.Order
		raw    []byte
		status string
	)
	if err := row.Scan(&o.ID, &raw, &o.Total, &o.ClientID, &o.VendorID, &status, &o.Date, &o.UpdatedAt); err != nil {
		return nil, err
	}
	var items []itemJSON
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	o.Items = make([]entity.OrderItem, 0, len(items))
	for _, it := range items {
		o.Items = append(o.Items, entity.OrderItem{ProductID: it.ID, Name: it.Name, Price: it.Price, Quantity: it.Quantity})
	}
	o.Status = entity.OrderStatus(status)
	return &o, nil
}

// Create persiste un pedido con sus líneas.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	items, err := marshalItems(order.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	_, err = r.q.Exec(ctx,
		`INSERT INTO orders (`+orderColumns+`) VALUES ($1, $2::jsonb, $3, $4, $5, $6, $7, $8)`,
		order.ID, items, order.Total, order.ClientID, order.VendorID, string(order.Status), order.Date, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *OrderRepo) List(ctx context.Context) ([]*entity.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY date`)
}

func (r *OrderRepo) ListByVendor(ctx context.Context, vendorID string) ([]*entity.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE vendor_id = $1 ORDER BY date`, vendorID)
}

func (r *OrderRepo) ListByVendorAndStatus(ctx context.Context, vendorID string, status entity.OrderStatus) ([]*entity.Order, error) {
	return r.list(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE vendor_id = $1 AND status = $2 ORDER BY date`,
		vendorID, string(status),
	)
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	list := []*entity.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Update reemplaza el pedido completo (líneas, total, cliente y estado).
func (r *OrderRepo) Update(ctx context.Context, order *entity.Order) error {
	items, err := marshalItems(order.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	tag, err := r.q.Exec(ctx,
		`UPDATE orders SET items = $2::jsonb, total = $3, client_id = $4, vendor_id = $5, status = $6, updated_at = $7 WHERE id = $1`,
		order.ID, items, order.Total, order.ClientID, order.VendorID, string(order.Status), order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return rowsAffected(tag, domain.ErrNotFound)
}

func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return rowsAffected(tag, domain.ErrNotFound)
}
