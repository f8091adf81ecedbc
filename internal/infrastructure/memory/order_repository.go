package memory

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos en memoria.
type OrderRepo struct {
	s *Store
}

// NewOrderRepository construye el adaptador sobre el Store compartido.
func NewOrderRepository(s *Store) *OrderRepo {
	return &OrderRepo{s: s}
}

func (r *OrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders.get(order.ID); ok {
		return domain.ErrConflict
	}
	r.s.orders.put(order.ID, *cloneOrder(*order))
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders.get(id)
	if !ok {
		return nil, nil
	}
	return cloneOrder(o), nil
}

func (r *OrderRepo) List(_ context.Context) ([]*entity.Order, error) {
	return r.filter(func(*entity.Order) bool { return true }), nil
}

func (r *OrderRepo) ListByVendor(_ context.Context, vendorID string) ([]*entity.Order, error) {
	return r.filter(func(o *entity.Order) bool { return o.VendorID == vendorID }), nil
}

func (r *OrderRepo) ListByVendorAndStatus(_ context.Context, vendorID string, status entity.OrderStatus) ([]*entity.Order, error) {
	return r.filter(func(o *entity.Order) bool { return o.VendorID == vendorID && o.Status == status }), nil
}

func (r *OrderRepo) filter(keep func(*entity.Order) bool) []*entity.Order {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := []*entity.Order{}
	for _, o := range r.s.orders.all() {
		c := cloneOrder(o)
		if keep(c) {
			list = append(list, c)
		}
	}
	return list
}

func (r *OrderRepo) Update(_ context.Context, order *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders.get(order.ID); !ok {
		return domain.ErrNotFound
	}
	r.s.orders.put(order.ID, *cloneOrder(*order))
	return nil
}

func (r *OrderRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.orders.remove(id) {
		return domain.ErrNotFound
	}
	return nil
}
