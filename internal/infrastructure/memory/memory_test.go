package memory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/internal/infrastructure/memory"
)

// ─── Productos ──────────────────────────────────────────────────────────────

func TestProductRepo_SearchPorTerminos(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository(memory.NewStore())
	for i, name := range []string{"Blue Widget", "Red Gadget", "Widget Pro Blue", "Laptop"} {
		require.NoError(t, repo.Create(ctx, &entity.Product{ID: fmt.Sprintf("p-%d", i), Name: name, Price: decimal.NewFromInt(1)}))
	}

	hits, err := repo.Search(ctx, "blue widget", 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "Blue Widget", hits[0].Name)
	assert.Equal(t, "Widget Pro Blue", hits[1].Name)

	hits, err = repo.Search(ctx, "widget", 1)
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	hits, err = repo.Search(ctx, "wid", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestProductRepo_UpdateStockInexistente(t *testing.T) {
	repo := memory.NewProductRepository(memory.NewStore())
	err := repo.UpdateStock(context.Background(), "nope", 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductRepo_GetByIDNoEncontradoDevuelveNil(t *testing.T) {
	repo := memory.NewProductRepository(memory.NewStore())
	p, err := repo.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, p)
}

// ─── Clientes ───────────────────────────────────────────────────────────────

func TestClientRepo_EmailUnico(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewClientRepository(memory.NewStore())
	require.NoError(t, repo.Create(ctx, &entity.Client{ID: "c-1", Email: "ana@acme.com", VendorID: "v-1"}))

	err := repo.Create(ctx, &entity.Client{ID: "c-2", Email: "ANA@acme.com", VendorID: "v-2"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, repo.Create(ctx, &entity.Client{ID: "c-3", Email: "luis@acme.com", VendorID: "v-2"}))
	err = repo.Update(ctx, &entity.Client{ID: "c-3", Email: "ana@acme.com", VendorID: "v-2"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	mine, err := repo.ListByVendor(ctx, "v-2")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "c-3", mine[0].ID)
}

// ─── Pedidos ────────────────────────────────────────────────────────────────

func TestOrderRepo_CopiaLasLineas(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOrderRepository(memory.NewStore())
	o := &entity.Order{ID: "o-1", VendorID: "v-1", Status: entity.OrderPending,
		Items: []entity.OrderItem{{ProductID: "p-1", Quantity: 2}}}
	require.NoError(t, repo.Create(ctx, o))

	o.Items[0].Quantity = 99
	got, err := repo.GetByID(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Items[0].Quantity)

	byStatus, err := repo.ListByVendorAndStatus(ctx, "v-1", entity.OrderCompleted)
	require.NoError(t, err)
	assert.Empty(t, byStatus)
}

// ─── Reportes ───────────────────────────────────────────────────────────────

func seedVendorSales(t *testing.T, s *memory.Store) {
	t.Helper()
	ctx := context.Background()
	users := memory.NewUserRepository(s)
	orders := memory.NewOrderRepository(s)
	// seis vendedores; el de mayor venta es el último en aparecer
	totals := []int64{10, 20, 30, 40, 50, 100}
	for i, total := range totals {
		vendor := fmt.Sprintf("v-%d", i+1)
		require.NoError(t, users.Create(ctx, &entity.User{ID: vendor, Email: vendor + "@crm.io"}))
		require.NoError(t, orders.Create(ctx, &entity.Order{
			ID: "o-" + vendor, ClientID: "c-1", VendorID: vendor,
			Total: decimal.NewFromInt(total), Status: entity.OrderCompleted, Date: time.Now(),
		}))
	}
	require.NoError(t, orders.Create(ctx, &entity.Order{
		ID: "o-pend", ClientID: "c-1", VendorID: "v-1",
		Total: decimal.NewFromInt(1000), Status: entity.OrderPending,
	}))
}

func TestReportRepo_SalesByVendorTop(t *testing.T) {
	s := memory.NewStore()
	seedVendorSales(t, s)

	rows, err := memory.NewReportRepository(s).SalesByVendor(context.Background(), 5, repository.RankTop)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "v-6", rows[0].VendorID)
	assert.True(t, rows[0].Total.Equal(decimal.NewFromInt(100)))
	require.NotNil(t, rows[0].Vendor)
	assert.Equal(t, "v-6@crm.io", rows[0].Vendor.Email)
	assert.Equal(t, "v-2", rows[4].VendorID)
}

func TestReportRepo_SalesByVendorLegacyLimitaAntesDeOrdenar(t *testing.T) {
	s := memory.NewStore()
	seedVendorSales(t, s)

	rows, err := memory.NewReportRepository(s).SalesByVendor(context.Background(), 5, repository.RankLegacy)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "v-5", rows[0].VendorID)
	for _, r := range rows {
		assert.NotEqual(t, "v-6", r.VendorID)
	}
}

func TestReportRepo_SalesByClientSoloCompletados(t *testing.T) {
	s := memory.NewStore()
	seedVendorSales(t, s)
	require.NoError(t, memory.NewClientRepository(s).Create(context.Background(), &entity.Client{ID: "c-1", Email: "c@x.io"}))

	rows, err := memory.NewReportRepository(s).SalesByClient(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Total.Equal(decimal.NewFromInt(250)))
	require.NotNil(t, rows[0].Client)
}
