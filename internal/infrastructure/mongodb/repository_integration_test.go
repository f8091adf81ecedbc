//go:build integration

package mongodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/pkg/config"
)

func setupMongo(t *testing.T) *mongo.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	ctx := context.Background()

	container, err := tcmongo.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := Connect(ctx, config.MongoConfig{URI: uri, DBName: "crm_test", Timeout: 30 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	db := client.Database("crm_test")
	require.NoError(t, EnsureIndexes(ctx, db))
	return db
}

func TestMongo_UserEmailUnico(t *testing.T) {
	db := setupMongo(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(ctx, &entity.User{ID: "u-1", Email: "ana@crm.io", CreatedAt: time.Now().UTC()}))
	err := repo.Create(ctx, &entity.User{ID: "u-2", Email: "ana@crm.io"})
	assert.True(t, errors.Is(err, domain.ErrConflict), err)

	u, err := repo.GetByEmail(ctx, "ana@crm.io")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u-1", u.ID)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMongo_ProductSearchYStock(t *testing.T) {
	db := setupMongo(t)
	ctx := context.Background()
	repo := NewProductRepository(db)

	for id, name := range map[string]string{"p-1": "Blue Widget", "p-2": "Red Gadget", "p-3": "Widget"} {
		require.NoError(t, repo.Create(ctx, &entity.Product{ID: id, Name: name, Stock: 10, Price: decimal.RequireFromString("2.50")}))
	}

	hits, err := repo.Search(ctx, "widget", 10)
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	require.NoError(t, repo.UpdateStock(ctx, "p-1", 7))
	p, err := repo.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 7, p.Stock)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("2.5")))

	assert.ErrorIs(t, repo.Delete(ctx, "nope"), domain.ErrNotFound)
}

func TestMongo_Reportes(t *testing.T) {
	db := setupMongo(t)
	ctx := context.Background()
	users := NewUserRepository(db)
	clients := NewClientRepository(db)
	orders := NewOrderRepository(db)

	require.NoError(t, users.Create(ctx, &entity.User{ID: "v-1", Email: "v1@crm.io"}))
	require.NoError(t, users.Create(ctx, &entity.User{ID: "v-2", Email: "v2@crm.io"}))
	require.NoError(t, clients.Create(ctx, &entity.Client{ID: "c-1", Email: "c1@acme.com", VendorID: "v-1"}))

	add := func(id, vendor string, total string, status entity.OrderStatus) {
		require.NoError(t, orders.Create(ctx, &entity.Order{
			ID: id, ClientID: "c-1", VendorID: vendor, Status: status,
			Total: decimal.RequireFromString(total), Date: time.Now().UTC(),
			Items: []entity.OrderItem{{ProductID: "p-1", Name: "Widget", Price: decimal.RequireFromString(total), Quantity: 1}},
		}))
	}
	add("o-1", "v-1", "10.50", entity.OrderCompleted)
	add("o-2", "v-2", "40", entity.OrderCompleted)
	add("o-3", "v-1", "4.50", entity.OrderCompleted)
	add("o-4", "v-2", "100", entity.OrderPending)

	byClient, err := NewReportRepository(db).SalesByClient(ctx)
	require.NoError(t, err)
	require.Len(t, byClient, 1)
	assert.True(t, byClient[0].Total.Equal(decimal.NewFromInt(55)), byClient[0].Total.String())
	require.NotNil(t, byClient[0].Client)

	byVendor, err := NewReportRepository(db).SalesByVendor(ctx, 5, repository.RankTop)
	require.NoError(t, err)
	require.Len(t, byVendor, 2)
	assert.Equal(t, "v-2", byVendor[0].VendorID)
	require.NotNil(t, byVendor[0].Vendor)
	assert.True(t, byVendor[1].Total.Equal(decimal.NewFromInt(15)))

	done, err := orders.ListByVendorAndStatus(ctx, "v-2", entity.OrderPending)
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, "Widget", done[0].Items[0].Name)
}
