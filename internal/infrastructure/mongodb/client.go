// Package mongodb implementa los puertos de persistencia sobre MongoDB (backend por defecto).
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jhoicas/crm-api/pkg/config"
)

const (
	usersCollection    = "users"
	productsCollection = "products"
	clientsCollection  = "clients"
	ordersCollection   = "orders"
)

// Connect abre el cliente y hace ping al primario. Si el ping falla se desconecta.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	connCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connCtx, readpref.Primary()); err != nil {
		disconnectCtx, dc := context.WithTimeout(context.Background(), 5*time.Second)
		defer dc()
		_ = client.Disconnect(disconnectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// EnsureIndexes crea los índices que sostienen las reglas del dominio:
// email único en users y clients, texto sobre products.name.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		clientsCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "vendor", Value: 1}}},
		},
		productsCollection: {
			{Keys: bson.D{{Key: "name", Value: "text"}}},
		},
		ordersCollection: {
			{Keys: bson.D{{Key: "vendor", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
	}
	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes %s: %w", coll, err)
		}
	}
	return nil
}
