package memory

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo clientes en memoria.
type ClientRepo struct {
	s *Store
}

// NewClientRepository construye el adaptador sobre el Store compartido.
func NewClientRepository(s *Store) *ClientRepo {
	return &ClientRepo{s: s}
}

// emailTaken se llama con el lock tomado.
func (r *ClientRepo) emailTaken(email, exceptID string) bool {
	for id, c := range r.s.clients.rows {
		if id != exceptID && sameEmail(c.Email, email) {
			return true
		}
	}
	return false
}

func (r *ClientRepo) Create(_ context.Context, client *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.emailTaken(client.Email, "") {
		return domain.ErrConflict
	}
	r.s.clients.put(client.ID, *client)
	return nil
}

func (r *ClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.clients.get(id)
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *ClientRepo) GetByEmail(_ context.Context, email string) (*entity.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.clients.all() {
		if sameEmail(c.Email, email) {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *ClientRepo) List(_ context.Context) ([]*entity.Client, error) {
	return r.filter(func(*entity.Client) bool { return true }), nil
}

func (r *ClientRepo) ListByVendor(_ context.Context, vendorID string) ([]*entity.Client, error) {
	return r.filter(func(c *entity.Client) bool { return c.VendorID == vendorID }), nil
}

func (r *ClientRepo) filter(keep func(*entity.Client) bool) []*entity.Client {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := []*entity.Client{}
	for _, c := range r.s.clients.all() {
		c := c
		if keep(&c) {
			list = append(list, &c)
		}
	}
	return list
}

func (r *ClientRepo) Update(_ context.Context, client *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clients.get(client.ID); !ok {
		return domain.ErrNotFound
	}
	if r.emailTaken(client.Email, client.ID) {
		return domain.ErrConflict
	}
	r.s.clients.put(client.ID, *client)
	return nil
}

func (r *ClientRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.clients.remove(id) {
		return domain.ErrNotFound
	}
	return nil
}
