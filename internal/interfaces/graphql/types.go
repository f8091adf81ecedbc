package graphql

import (
	"time"

	graphqlgo "github.com/graph-gophers/graphql-go"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-api/internal/application/dto"
)

// En el schema todos los campos de salida son anulables: graphql-go exige punteros.

func str(s string) *string { return &s }

func id(s string) *graphqlgo.ID {
	v := graphqlgo.ID(s)
	return &v
}

func i32(n int) *int32 {
	v := int32(n)
	return &v
}

func money(d decimal.Decimal) *float64 {
	f, _ := d.Float64()
	return &f
}

func timestamp(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	return str(t.UTC().Format(time.RFC3339))
}

// ─── User / Token ───────────────────────────────────────────────────────────

type userResolver struct{ u dto.UserResponse }

func (r *userResolver) ID() *graphqlgo.ID  { return id(r.u.ID) }
func (r *userResolver) Name() *string      { return str(r.u.Name) }
func (r *userResolver) LastName() *string  { return str(r.u.LastName) }
func (r *userResolver) Email() *string     { return str(r.u.Email) }
func (r *userResolver) CreatedAt() *string { return timestamp(r.u.CreatedAt) }

type tokenResolver struct{ t dto.TokenResponse }

func (r *tokenResolver) Token() *string { return str(r.t.Token) }

// ─── Product ────────────────────────────────────────────────────────────────

type productResolver struct{ p dto.ProductResponse }

func (r *productResolver) ID() *graphqlgo.ID  { return id(r.p.ID) }
func (r *productResolver) Name() *string      { return str(r.p.Name) }
func (r *productResolver) Stock() *int32      { return i32(r.p.Stock) }
func (r *productResolver) Price() *float64    { return money(r.p.Price) }
func (r *productResolver) CreatedAt() *string { return timestamp(r.p.CreatedAt) }

func productList(list []*dto.ProductResponse) *[]*productResolver {
	out := make([]*productResolver, 0, len(list))
	for _, p := range list {
		out = append(out, &productResolver{p: *p})
	}
	return &out
}

// ─── Client ─────────────────────────────────────────────────────────────────

type clientResolver struct{ c dto.ClientResponse }

func (r *clientResolver) ID() *graphqlgo.ID     { return id(r.c.ID) }
func (r *clientResolver) Name() *string         { return str(r.c.Name) }
func (r *clientResolver) LastName() *string     { return str(r.c.LastName) }
func (r *clientResolver) Company() *string      { return str(r.c.Company) }
func (r *clientResolver) Email() *string        { return str(r.c.Email) }
func (r *clientResolver) Vendor() *graphqlgo.ID { return id(r.c.VendorID) }
func (r *clientResolver) CreatedAt() *string    { return timestamp(r.c.CreatedAt) }

func (r *clientResolver) Phone() *string {
	if r.c.Phone == "" {
		return nil
	}
	return str(r.c.Phone)
}

func clientList(list []*dto.ClientResponse) *[]*clientResolver {
	out := make([]*clientResolver, 0, len(list))
	for _, c := range list {
		out = append(out, &clientResolver{c: *c})
	}
	return &out
}

// ─── Order ──────────────────────────────────────────────────────────────────

type orderGroupResolver struct{ it dto.OrderItemResponse }

func (r *orderGroupResolver) ID() *graphqlgo.ID { return id(r.it.ProductID) }
func (r *orderGroupResolver) Quantity() *int32  { return i32(r.it.Quantity) }
func (r *orderGroupResolver) Name() *string     { return str(r.it.Name) }
func (r *orderGroupResolver) Price() *float64   { return money(r.it.Price) }

type orderResolver struct{ o dto.OrderResponse }

func (r *orderResolver) ID() *graphqlgo.ID     { return id(r.o.ID) }
func (r *orderResolver) Total() *float64       { return money(r.o.Total) }
func (r *orderResolver) Client() *graphqlgo.ID { return id(r.o.ClientID) }
func (r *orderResolver) Vendor() *graphqlgo.ID { return id(r.o.VendorID) }
func (r *orderResolver) Date() *string         { return timestamp(r.o.Date) }
func (r *orderResolver) Status() *string       { return str(r.o.Status) }

func (r *orderResolver) Order() *[]*orderGroupResolver {
	out := make([]*orderGroupResolver, 0, len(r.o.Items))
	for _, it := range r.o.Items {
		out = append(out, &orderGroupResolver{it: it})
	}
	return &out
}

func orderList(list []*dto.OrderResponse) *[]*orderResolver {
	out := make([]*orderResolver, 0, len(list))
	for _, o := range list {
		out = append(out, &orderResolver{o: *o})
	}
	return &out
}

// ─── Reportes ───────────────────────────────────────────────────────────────

type topClientResolver struct{ row dto.TopClientResponse }

func (r *topClientResolver) Total() *float64 { return money(r.row.Total) }

func (r *topClientResolver) Client() *[]*clientResolver {
	out := make([]*clientResolver, 0, len(r.row.Client))
	for _, c := range r.row.Client {
		out = append(out, &clientResolver{c: c})
	}
	return &out
}

type topVendorResolver struct{ row dto.TopVendorResponse }

func (r *topVendorResolver) Total() *float64 { return money(r.row.Total) }

func (r *topVendorResolver) Vendor() *[]*userResolver {
	out := make([]*userResolver, 0, len(r.row.Vendor))
	for _, u := range r.row.Vendor {
		out = append(out, &userResolver{u: u})
	}
	return &out
}
