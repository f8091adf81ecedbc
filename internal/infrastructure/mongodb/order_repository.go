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

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de repository.OrderRepository. Las líneas van embebidas.
type OrderRepo struct {
	coll *mongo.Collection
}

// NewOrderRepository crea el repositorio sobre la colección orders.
func NewOrderRepository(db *mongo.Database) *OrderRepo {
	return &OrderRepo{coll: db.Collection(ordersCollection)}
}

func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	doc, err := newOrderDoc(order)
	if err != nil {
		return err
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var doc orderDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	return doc.entity()
}

func (r *OrderRepo) List(ctx context.Context) ([]*entity.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *OrderRepo) ListByVendor(ctx context.Context, vendorID string) ([]*entity.Order, error) {
	return r.find(ctx, bson.M{"vendor": vendorID})
}

func (r *OrderRepo) ListByVendorAndStatus(ctx context.Context, vendorID string, status entity.OrderStatus) ([]*entity.Order, error) {
	return r.find(ctx, bson.M{"vendor": vendorID, "status": string(status)})
}

func (r *OrderRepo) find(ctx context.Context, filter bson.M) ([]*entity.Order, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	list := make([]*entity.Order, 0, len(docs))
	for _, d := range docs {
		o, err := d.entity()
		if err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	return list, nil
}

func (r *OrderRepo) Update(ctx context.Context, order *entity.Order) error {
	doc, err := newOrderDoc(order)
	if err != nil {
		return err
	}
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": order.ID}, doc)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
