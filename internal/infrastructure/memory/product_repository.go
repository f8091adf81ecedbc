package memory

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct {
	s *Store
}

// NewProductRepository construye el adaptador sobre el Store compartido.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products.get(product.ID); ok {
		return domain.ErrConflict
	}
	r.s.products.put(product.ID, *product)
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products.get(id)
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Product, 0, len(r.s.products.order))
	for _, p := range r.s.products.all() {
		p := p
		list = append(list, &p)
	}
	return list, nil
}

// Search imita un índice de texto: términos completos, sin distinguir mayúsculas,
// ordenados por cantidad de términos que coinciden.
func (r *ProductRepo) Search(_ context.Context, text string, limit int) ([]*entity.Product, error) {
	terms := tokenize(text)
	if len(terms) == 0 || limit <= 0 {
		return []*entity.Product{}, nil
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	type hit struct {
		p     entity.Product
		score int
	}
	var hits []hit
	for _, p := range r.s.products.all() {
		words := map[string]bool{}
		for _, w := range tokenize(p.Name) {
			words[w] = true
		}
		score := 0
		for _, t := range terms {
			if words[t] {
				score++
			}
		}
		if score > 0 {
			hits = append(hits, hit{p: p, score: score})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	if len(hits) > limit {
		hits = hits[:limit]
	}
	list := make([]*entity.Product, 0, len(hits))
	for _, h := range hits {
		p := h.p
		list = append(list, &p)
	}
	return list, nil
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products.get(product.ID); !ok {
		return domain.ErrNotFound
	}
	r.s.products.put(product.ID, *product)
	return nil
}

func (r *ProductRepo) UpdateStock(_ context.Context, id string, stock int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products.get(id)
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	r.s.products.put(id, p)
	return nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.products.remove(id) {
		return domain.ErrNotFound
	}
	return nil
}
