package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregaciones sobre los pedidos en memoria.
// Los grupos se forman en el orden en que aparece cada cliente/vendedor entre los pedidos.
type ReportRepo struct {
	s *Store
}

// NewReportRepository construye el adaptador sobre el Store compartido.
func NewReportRepository(s *Store) *ReportRepo {
	return &ReportRepo{s: s}
}

type group struct {
	key   string
	total decimal.Decimal
}

// groupCompleted se llama con el lock tomado.
func (r *ReportRepo) groupCompleted(key func(entity.Order) string) []group {
	idx := map[string]int{}
	var groups []group
	for _, o := range r.s.orders.all() {
		if o.Status != entity.OrderCompleted {
			continue
		}
		k := key(o)
		i, ok := idx[k]
		if !ok {
			i = len(groups)
			idx[k] = i
			groups = append(groups, group{key: k})
		}
		groups[i].total = groups[i].total.Add(o.Total)
	}
	return groups
}

func (r *ReportRepo) SalesByClient(_ context.Context) ([]entity.ClientSales, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	groups := r.groupCompleted(func(o entity.Order) string { return o.ClientID })
	out := make([]entity.ClientSales, 0, len(groups))
	for _, g := range groups {
		row := entity.ClientSales{ClientID: g.key, Total: g.total}
		if c, ok := r.s.clients.get(g.key); ok {
			row.Client = &c
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *ReportRepo) SalesByVendor(_ context.Context, limit int, ranking repository.VendorRanking) ([]entity.VendorSales, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	groups := r.groupCompleted(func(o entity.Order) string { return o.VendorID })
	byTotal := func() {
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].total.GreaterThan(groups[j].total) })
	}
	if ranking == repository.RankLegacy {
		if len(groups) > limit {
			groups = groups[:limit]
		}
		byTotal()
	} else {
		byTotal()
		if len(groups) > limit {
			groups = groups[:limit]
		}
	}
	out := make([]entity.VendorSales, 0, len(groups))
	for _, g := range groups {
		row := entity.VendorSales{VendorID: g.key, Total: g.total}
		if u, ok := r.s.users.get(g.key); ok {
			row.Vendor = &u
		}
		out = append(out, row)
	}
	return out, nil
}
