package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de repository.ClientRepository.
type ClientRepo struct {
	coll *mongo.Collection
}

// NewClientRepository crea el repositorio sobre la colección clients.
func NewClientRepository(db *mongo.Database) *ClientRepo {
	return &ClientRepo{coll: db.Collection(clientsCollection)}
}

func (r *ClientRepo) Create(ctx context.Context, client *entity.Client) error {
	if _, err := r.coll.InsertOne(ctx, newClientDoc(client)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert client: %w", domain.ErrConflict)
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ClientRepo) GetByEmail(ctx context.Context, email string) (*entity.Client, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *ClientRepo) findOne(ctx context.Context, filter bson.M) (*entity.Client, error) {
	var doc clientDoc
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find client: %w", err)
	}
	return doc.entity(), nil
}

func (r *ClientRepo) List(ctx context.Context) ([]*entity.Client, error) {
	return r.find(ctx, bson.M{})
}

func (r *ClientRepo) ListByVendor(ctx context.Context, vendorID string) ([]*entity.Client, error) {
	return r.find(ctx, bson.M{"vendor": vendorID})
}

func (r *ClientRepo) find(ctx context.Context, filter bson.M) ([]*entity.Client, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find clients: %w", err)
	}
	var docs []clientDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode clients: %w", err)
	}
	list := make([]*entity.Client, 0, len(docs))
	for _, d := range docs {
		list = append(list, d.entity())
	}
	return list, nil
}

func (r *ClientRepo) Update(ctx context.Context, client *entity.Client) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": client.ID}, newClientDoc(client))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("update client: %w", domain.ErrConflict)
		}
		return fmt.Errorf("update client: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
