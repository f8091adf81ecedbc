package graphql

import (
	"context"

	graphqlgo "github.com/graph-gophers/graphql-go"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-api/internal/application/dto"
)

// Inputs del schema. Los campos anulables llegan como puntero.

type userInput struct {
	Name     string
	LastName string
	Email    string
	Password string
}

type authInput struct {
	Email    string
	Password string
}

type productInput struct {
	Name  string
	Stock int32
	Price float64
}

func (in productInput) toDTO() dto.ProductInput {
	return dto.ProductInput{Name: in.Name, Stock: int(in.Stock), Price: decimal.NewFromFloat(in.Price)}
}

type clientInput struct {
	Name     string
	LastName string
	Company  string
	Email    string
	Phone    *string
}

func (in clientInput) toDTO() dto.ClientInput {
	out := dto.ClientInput{Name: in.Name, LastName: in.LastName, Company: in.Company, Email: in.Email}
	if in.Phone != nil {
		out.Phone = *in.Phone
	}
	return out
}

type orderProductInput struct {
	ID       *graphqlgo.ID
	Quantity *int32
}

type orderInput struct {
	Order  *[]*orderProductInput
	Client *graphqlgo.ID
	Status *string
}

// items devuelve nil si la lista no vino, para que updateOrder conserve las líneas.
func (in orderInput) items() []dto.OrderItemInput {
	if in.Order == nil {
		return nil
	}
	out := make([]dto.OrderItemInput, 0, len(*in.Order))
	for _, line := range *in.Order {
		var item dto.OrderItemInput
		if line != nil {
			if line.ID != nil {
				item.ProductID = string(*line.ID)
			}
			if line.Quantity != nil {
				item.Quantity = int(*line.Quantity)
			}
		}
		out = append(out, item)
	}
	return out
}

func (in orderInput) client() string {
	if in.Client == nil {
		return ""
	}
	return string(*in.Client)
}

func (in orderInput) status() string {
	if in.Status == nil {
		return ""
	}
	return *in.Status
}

const inputRequired = "Invalid field input: is required"

// ─── Users ──────────────────────────────────────────────────────────────────

func (r *Resolver) NewUser(ctx context.Context, args struct{ Input *userInput }) (*userResolver, error) {
	if args.Input == nil {
		return nil, invalidInput(inputRequired)
	}
	u, err := r.auth.RegisterUser(ctx, dto.CreateUserRequest{
		Name:     args.Input.Name,
		LastName: args.Input.LastName,
		Email:    args.Input.Email,
		Password: args.Input.Password,
	})
	if err != nil {
		return nil, r.fail("newUser", err)
	}
	return &userResolver{u: *u}, nil
}

func (r *Resolver) AuthenticateUser(ctx context.Context, args struct{ Input *authInput }) (*tokenResolver, error) {
	if args.Input == nil {
		return nil, invalidInput(inputRequired)
	}
	tok, err := r.auth.Login(ctx, dto.LoginRequest{Email: args.Input.Email, Password: args.Input.Password})
	if err != nil {
		return nil, r.fail("authenticateUser", err)
	}
	return &tokenResolver{t: *tok}, nil
}

// ─── Products ───────────────────────────────────────────────────────────────

func (r *Resolver) NewProduct(ctx context.Context, args struct{ Input *productInput }) (*productResolver, error) {
	if args.Input == nil {
		return nil, invalidInput(inputRequired)
	}
	p, err := r.products.Create(ctx, args.Input.toDTO())
	if err != nil {
		return nil, r.fail("newProduct", err)
	}
	return &productResolver{p: *p}, nil
}

func (r *Resolver) UpdateProduct(ctx context.Context, args struct {
	ID    graphqlgo.ID
	Input *productInput
}) (*productResolver, error) {
	if args.Input == nil {
		return nil, invalidInput(inputRequired)
	}
	p, err := r.products.Update(ctx, string(args.ID), args.Input.toDTO())
	if err != nil {
		return nil, r.fail("updateProduct", err)
	}
	return &productResolver{p: *p}, nil
}

func (r *Resolver) DeleteProduct(ctx context.Context, args struct{ ID graphqlgo.ID }) (*string, error) {
	msg, err := r.products.Delete(ctx, string(args.ID))
	if err != nil {
		return nil, r.fail("deleteProduct", err)
	}
	return &msg, nil
}

// ─── Clients ────────────────────────────────────────────────────────────────

func (r *Resolver) NewClient(ctx context.Context, args struct{ Input *clientInput }) (*clientResolver, error) {
	vendorID, err := r.caller(ctx, "newClient")
	if err != nil {
		return nil, err
	}
	if args.Input == nil {
		return nil, invalidInput(inputRequired)
	}
	c, err := r.clients.Create(ctx, vendorID, args.Input.toDTO())
	if err != nil {
		return nil, r.fail("newClient", err)
	}
	return &clientResolver{c: *c}, nil
}

func (r *Resolver) UpdateClient(ctx context.Context, args struct {
	ID    graphqlgo.ID
	Input *clientInput
}) (*clientResolver, error) {
	vendorID, err := r.caller(ctx, "updateClient")
	if err != nil {
		return nil, err
	}
	if args.Input == nil {
		return nil, invalidInput(inputRequired)
	}
	c, err := r.clients.Update(ctx, vendorID, string(args.ID), args.Input.toDTO())
	if err != nil {
		return nil, r.fail("updateClient", err)
	}
	return &clientResolver{c: *c}, nil
}

func (r *Resolver) DeleteClient(ctx context.Context, args struct{ ID graphqlgo.ID }) (*string, error) {
	vendorID, err := r.caller(ctx, "deleteClient")
	if err != nil {
		return nil, err
	}
	msg, err := r.clients.Delete(ctx, vendorID, string(args.ID))
	if err != nil {
		return nil, r.fail("deleteClient", err)
	}
	return &msg, nil
}

// ─── Orders ─────────────────────────────────────────────────────────────────

func (r *Resolver) NewOrder(ctx context.Context, args struct{ Input *orderInput }) (*orderResolver, error) {
	vendorID, err := r.caller(ctx, "newOrder")
	if err != nil {
		return nil, err
	}
	if args.Input == nil {
		return nil, invalidInput(inputRequired)
	}
	o, err := r.orders.Create(ctx, vendorID, dto.CreateOrderRequest{
		ClientID: args.Input.client(),
		Items:    args.Input.items(),
		Status:   args.Input.status(),
	})
	if err != nil {
		return nil, r.fail("newOrder", err)
	}
	return &orderResolver{o: *o}, nil
}

func (r *Resolver) UpdateOrder(ctx context.Context, args struct {
	ID    graphqlgo.ID
	Input *orderInput
}) (*orderResolver, error) {
	vendorID, err := r.caller(ctx, "updateOrder")
	if err != nil {
		return nil, err
	}
	if args.Input == nil {
		return nil, invalidInput(inputRequired)
	}
	o, err := r.orders.Update(ctx, vendorID, string(args.ID), dto.UpdateOrderRequest{
		ClientID: args.Input.client(),
		Items:    args.Input.items(),
		Status:   args.Input.status(),
	})
	if err != nil {
		return nil, r.fail("updateOrder", err)
	}
	return &orderResolver{o: *o}, nil
}

func (r *Resolver) DeleteOrder(ctx context.Context, args struct{ ID graphqlgo.ID }) (*string, error) {
	vendorID, err := r.caller(ctx, "deleteOrder")
	if err != nil {
		return nil, err
	}
	msg, err := r.orders.Delete(ctx, vendorID, string(args.ID))
	if err != nil {
		return nil, r.fail("deleteOrder", err)
	}
	return &msg, nil
}
