package graphql

import (
	"context"

	graphqlgo "github.com/graph-gophers/graphql-go"
)

// ─── Users ──────────────────────────────────────────────────────────────────

// GetUser decodifica el token recibido como argumento (no el del header).
func (r *Resolver) GetUser(ctx context.Context, args struct{ Token string }) (*userResolver, error) {
	u, err := r.auth.UserFromToken(ctx, args.Token)
	if err != nil {
		return nil, r.fail("getUser", err)
	}
	return &userResolver{u: *u}, nil
}

// ─── Products ───────────────────────────────────────────────────────────────

func (r *Resolver) GetProducts(ctx context.Context) (*[]*productResolver, error) {
	list, err := r.products.List(ctx)
	if err != nil {
		return nil, r.swallow("getProducts", err)
	}
	return productList(list), nil
}

func (r *Resolver) GetProduct(ctx context.Context, args struct{ ID graphqlgo.ID }) (*productResolver, error) {
	p, err := r.products.GetByID(ctx, string(args.ID))
	if err != nil {
		return nil, r.fail("getProduct", err)
	}
	return &productResolver{p: *p}, nil
}

func (r *Resolver) SearchProduct(ctx context.Context, args struct{ Text string }) (*[]*productResolver, error) {
	list, err := r.products.Search(ctx, args.Text)
	if err != nil {
		return nil, r.fail("searchProduct", err)
	}
	return productList(list), nil
}

// ─── Clients ────────────────────────────────────────────────────────────────

func (r *Resolver) GetClients(ctx context.Context) (*[]*clientResolver, error) {
	if _, err := r.caller(ctx, "getClients"); err != nil {
		return nil, err
	}
	list, err := r.clients.List(ctx)
	if err != nil {
		return nil, r.swallow("getClients", err)
	}
	return clientList(list), nil
}

func (r *Resolver) GetClientsByVendor(ctx context.Context) (*[]*clientResolver, error) {
	vendorID, err := r.caller(ctx, "getClientsByVendor")
	if err != nil {
		return nil, err
	}
	list, err := r.clients.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, r.swallow("getClientsByVendor", err)
	}
	return clientList(list), nil
}

func (r *Resolver) GetClient(ctx context.Context, args struct{ ID graphqlgo.ID }) (*clientResolver, error) {
	vendorID, err := r.caller(ctx, "getClient")
	if err != nil {
		return nil, err
	}
	c, err := r.clients.GetByID(ctx, vendorID, string(args.ID))
	if err != nil {
		return nil, r.fail("getClient", err)
	}
	return &clientResolver{c: *c}, nil
}

// ─── Orders ─────────────────────────────────────────────────────────────────

func (r *Resolver) GetOrders(ctx context.Context) (*[]*orderResolver, error) {
	if _, err := r.caller(ctx, "getOrders"); err != nil {
		return nil, err
	}
	list, err := r.orders.List(ctx)
	if err != nil {
		return nil, r.swallow("getOrders", err)
	}
	return orderList(list), nil
}

func (r *Resolver) GetOrdersByVendor(ctx context.Context) (*[]*orderResolver, error) {
	vendorID, err := r.caller(ctx, "getOrdersByVendor")
	if err != nil {
		return nil, err
	}
	list, err := r.orders.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, r.swallow("getOrdersByVendor", err)
	}
	return orderList(list), nil
}

func (r *Resolver) GetOrder(ctx context.Context, args struct{ ID graphqlgo.ID }) (*orderResolver, error) {
	vendorID, err := r.caller(ctx, "getOrder")
	if err != nil {
		return nil, err
	}
	o, err := r.orders.GetByID(ctx, vendorID, string(args.ID))
	if err != nil {
		return nil, r.fail("getOrder", err)
	}
	return &orderResolver{o: *o}, nil
}

func (r *Resolver) GetOrdersByStatus(ctx context.Context, args struct{ State string }) (*[]*orderResolver, error) {
	vendorID, err := r.caller(ctx, "getOrdersByStatus")
	if err != nil {
		return nil, err
	}
	list, err := r.orders.ListByStatus(ctx, vendorID, args.State)
	if err != nil {
		return nil, r.failAs("getOrdersByStatus", "Failed to get orders", err)
	}
	return orderList(list), nil
}

// ─── Reports ────────────────────────────────────────────────────────────────

func (r *Resolver) BestClients(ctx context.Context) (*[]*topClientResolver, error) {
	rows, err := r.reports.BestClients(ctx)
	if err != nil {
		return nil, r.fail("bestClients", err)
	}
	out := make([]*topClientResolver, 0, len(rows))
	for _, row := range rows {
		out = append(out, &topClientResolver{row: *row})
	}
	return &out, nil
}

func (r *Resolver) BestVendors(ctx context.Context) (*[]*topVendorResolver, error) {
	rows, err := r.reports.BestVendors(ctx)
	if err != nil {
		return nil, r.fail("bestVendors", err)
	}
	out := make([]*topVendorResolver, 0, len(rows))
	for _, row := range rows {
		out = append(out, &topVendorResolver{row: *row})
	}
	return &out, nil
}
