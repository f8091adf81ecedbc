package orders_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/orders"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/infrastructure/memory"
)

type fixture struct {
	uc       *orders.UseCase
	products *memory.ProductRepo
	orders   *memory.OrderRepo
}

func newFixture(t *testing.T, policy orders.StockFailurePolicy) *fixture {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	products := memory.NewProductRepository(s)
	clients := memory.NewClientRepository(s)
	orderRepo := memory.NewOrderRepository(s)

	require.NoError(t, clients.Create(ctx, &entity.Client{ID: "c-1", Email: "c1@acme.com", VendorID: "v-1"}))
	require.NoError(t, clients.Create(ctx, &entity.Client{ID: "c-2", Email: "c2@acme.com", VendorID: "v-2"}))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p-widget", Name: "Widget", Stock: 10, Price: decimal.NewFromInt(5)}))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p-gadget", Name: "Gadget", Stock: 1, Price: decimal.RequireFromString("2.50")}))

	return &fixture{
		uc:       orders.NewUseCase(orderRepo, clients, products, policy, nil),
		products: products,
		orders:   orderRepo,
	}
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func (f *fixture) count(t *testing.T) int {
	t.Helper()
	list, err := f.orders.List(context.Background())
	require.NoError(t, err)
	return len(list)
}

// ─── Create ─────────────────────────────────────────────────────────────────

func TestCreate_DescuentaStockYCalculaTotal(t *testing.T) {
	f := newFixture(t, orders.PolicyKeep)

	out, err := f.uc.Create(context.Background(), "v-1", dto.CreateOrderRequest{
		ClientID: "c-1",
		Items:    []dto.OrderItemInput{{ProductID: "p-widget", Quantity: 3}},
	})
	require.NoError(t, err)

	assert.Equal(t, 7, f.stock(t, "p-widget"))
	assert.True(t, out.Total.Equal(decimal.NewFromInt(15)), out.Total.String())
	assert.Equal(t, "v-1", out.VendorID)
	assert.Equal(t, "PENDING", out.Status)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Widget", out.Items[0].Name)
	assert.WithinDuration(t, time.Now(), out.Date, time.Minute)
}

func TestCreate_ClienteDeOtroVendedor(t *testing.T) {
	f := newFixture(t, orders.PolicyKeep)

	_, err := f.uc.Create(context.Background(), "v-1", dto.CreateOrderRequest{
		ClientID: "c-2",
		Items:    []dto.OrderItemInput{{ProductID: "p-widget", Quantity: 1}},
	})
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 10, f.stock(t, "p-widget"))
	assert.Zero(t, f.count(t))
}

func TestCreate_ClienteInexistente(t *testing.T) {
	f := newFixture(t, orders.PolicyKeep)

	_, err := f.uc.Create(context.Background(), "v-1", dto.CreateOrderRequest{
		ClientID: "nope",
		Items:    []dto.OrderItemInput{{ProductID: "p-widget", Quantity: 1}},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Client not found", err.Error())
}

func TestCreate_StockInsuficienteConservaDescuentosPrevios(t *testing.T) {
	f := newFixture(t, orders.PolicyKeep)

	_, err := f.uc.Create(context.Background(), "v-1", dto.CreateOrderRequest{
		ClientID: "c-1",
		Items: []dto.OrderItemInput{
			{ProductID: "p-widget", Quantity: 3},
			{ProductID: "p-gadget", Quantity: 5},
		},
	})
	require.ErrorIs(t, err, domain.ErrStockExceeded)
	assert.Equal(t, "The item: Gadget exceed the available stock", err.Error())

	var se *domain.StockExceededError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 5, se.Requested)
	assert.Equal(t, 1, se.Available)

	assert.Equal(t, 7, f.stock(t, "p-widget"))
	assert.Equal(t, 1, f.stock(t, "p-gadget"))
	assert.Zero(t, f.count(t))
}

func TestCreate_StockInsuficienteCompensa(t *testing.T) {
	f := newFixture(t, orders.PolicyCompensate)

	_, err := f.uc.Create(context.Background(), "v-1", dto.CreateOrderRequest{
		ClientID: "c-1",
		Items: []dto.OrderItemInput{
			{ProductID: "p-widget", Quantity: 3},
			{ProductID: "p-widget", Quantity: 2},
			{ProductID: "nope", Quantity: 1},
		},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Product not found", err.Error())
	assert.Equal(t, 10, f.stock(t, "p-widget"))
}

func TestCreate_ProductoRepetidoDescuentaDosVeces(t *testing.T) {
	f := newFixture(t, orders.PolicyKeep)

	out, err := f.uc.Create(context.Background(), "v-1", dto.CreateOrderRequest{
		ClientID: "c-1",
		Items: []dto.OrderItemInput{
			{ProductID: "p-widget", Quantity: 6},
			{ProductID: "p-widget", Quantity: 4},
		},
		Status: "COMPLETED",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, f.stock(t, "p-widget"))
	assert.True(t, out.Total.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "COMPLETED", out.Status)
}

func TestCreate_CantidadIgualAlStock(t *testing.T) {
	f := newFixture(t, orders.PolicyKeep)

	_, err := f.uc.Create(context.Background(), "v-1", dto.CreateOrderRequest{
		ClientID: "c-1",
		Items:    []dto.OrderItemInput{{ProductID: "p-gadget", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, f.stock(t, "p-gadget"))
}

// ─── Update / Delete ────────────────────────────────────────────────────────

func createOrder(t *testing.T, f *fixture) *dto.OrderResponse {
	t.Helper()
	out, err := f.uc.Create(context.Background(), "v-1", dto.CreateOrderRequest{
		ClientID: "c-1",
		Items:    []dto.OrderItemInput{{ProductID: "p-widget", Quantity: 3}},
	})
	require.NoError(t, err)
	return out
}

func TestUpdate_SoloEstadoConservaLineas(t *testing.T) {
	f := newFixture(t, orders.PolicyKeep)
	created := createOrder(t, f)

	out, err := f.uc.Update(context.Background(), "v-1", created.ID, dto.UpdateOrderRequest{ClientID: "c-1", Status: "COMPLETED"})
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", out.Status)
	assert.True(t, out.Total.Equal(created.Total))
	assert.Len(t, out.Items, 1)
	assert.Equal(t, 7, f.stock(t, "p-widget"))
}

func TestUpdate_LineasNuevasDescuentanDeNuevo(t *testing.T) {
	f := newFixture(t, orders.PolicyKeep)
	created := createOrder(t, f)

	out, err := f.uc.Update(context.Background(), "v-1", created.ID, dto.UpdateOrderRequest{
		ClientID: "c-1",
		Items:    []dto.OrderItemInput{{ProductID: "p-widget", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, f.stock(t, "p-widget"))
	assert.True(t, out.Total.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "PENDING", out.Status)
}

func TestUpdate_PedidoDeOtroVendedor(t *testing.T) {
	f := newFixture(t, orders.PolicyKeep)
	created := createOrder(t, f)

	_, err := f.uc.Update(context.Background(), "v-2", created.ID, dto.UpdateOrderRequest{ClientID: "c-2"})
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, "You don't have permissions to update this order", err.Error())

	_, err = f.uc.Update(context.Background(), "v-1", created.ID, dto.UpdateOrderRequest{ClientID: "c-2"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDelete_InexistenteNoCambiaNada(t *testing.T) {
	f := newFixture(t, orders.PolicyKeep)
	createOrder(t, f)

	_, err := f.uc.Delete(context.Background(), "v-1", "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Order not found", err.Error())
	assert.Equal(t, 1, f.count(t))
}

func TestDelete_NoDevuelveStock(t *testing.T) {
	f := newFixture(t, orders.PolicyKeep)
	created := createOrder(t, f)

	_, err := f.uc.Delete(context.Background(), "v-2", created.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, "You don't have permissions to delete this order", err.Error())

	msg, err := f.uc.Delete(context.Background(), "v-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Order deleted", msg)
	assert.Zero(t, f.count(t))
	assert.Equal(t, 7, f.stock(t, "p-widget"))
}

// ─── Consultas ──────────────────────────────────────────────────────────────

func TestListByStatus(t *testing.T) {
	f := newFixture(t, orders.PolicyKeep)
	created := createOrder(t, f)
	_, err := f.uc.Update(context.Background(), "v-1", created.ID, dto.UpdateOrderRequest{ClientID: "c-1", Status: "COMPLETED"})
	require.NoError(t, err)
	createOrder(t, f)

	done, err := f.uc.ListByStatus(context.Background(), "v-1", "COMPLETED")
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, created.ID, done[0].ID)

	other, err := f.uc.ListByStatus(context.Background(), "v-2", "PENDING")
	require.NoError(t, err)
	assert.Empty(t, other)

	unknown, err := f.uc.ListByStatus(context.Background(), "v-1", "SHIPPED")
	require.NoError(t, err)
	assert.Empty(t, unknown)
}

func TestGetByID_Propietario(t *testing.T) {
	f := newFixture(t, orders.PolicyKeep)
	created := createOrder(t, f)

	got, err := f.uc.GetByID(context.Background(), "v-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = f.uc.GetByID(context.Background(), "v-2", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
