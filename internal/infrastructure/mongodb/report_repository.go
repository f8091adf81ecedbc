package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregaciones sobre orders con $lookup a clients/users.
type ReportRepo struct {
	orders *mongo.Collection
}

// NewReportRepository crea el repositorio de reportes.
func NewReportRepository(db *mongo.Database) *ReportRepo {
	return &ReportRepo{orders: db.Collection(ordersCollection)}
}

func completedTotalsBy(field string) bson.A {
	return bson.A{
		bson.M{"$match": bson.M{"status": string(entity.OrderCompleted)}},
		bson.M{"$group": bson.M{"_id": "$" + field, "total": bson.M{"$sum": "$total"}}},
	}
}

func lookup(from, as string) bson.M {
	return bson.M{"$lookup": bson.M{"from": from, "localField": "_id", "foreignField": "_id", "as": as}}
}

type clientSalesRow struct {
	ID     string               `bson:"_id"`
	Total  primitive.Decimal128 `bson:"total"`
	Client []clientDoc          `bson:"client"`
}

func (r *ReportRepo) SalesByClient(ctx context.Context) ([]entity.ClientSales, error) {
	pipeline := append(completedTotalsBy("client"), lookup(clientsCollection, "client"))
	cur, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate sales by client: %w", err)
	}
	var rows []clientSalesRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode sales by client: %w", err)
	}
	out := make([]entity.ClientSales, 0, len(rows))
	for _, row := range rows {
		total, err := fromDecimal128(row.Total)
		if err != nil {
			return nil, err
		}
		item := entity.ClientSales{ClientID: row.ID, Total: total}
		if len(row.Client) > 0 {
			item.Client = row.Client[0].entity()
		}
		out = append(out, item)
	}
	return out, nil
}

type vendorSalesRow struct {
	ID     string               `bson:"_id"`
	Total  primitive.Decimal128 `bson:"total"`
	Vendor []userDoc            `bson:"vendor"`
}

// SalesByVendor con RankLegacy aplica $limit antes de $sort (sobre grupos en orden arbitrario).
func (r *ReportRepo) SalesByVendor(ctx context.Context, limit int, ranking repository.VendorRanking) ([]entity.VendorSales, error) {
	sortStage := bson.M{"$sort": bson.D{{Key: "total", Value: -1}}}
	limitStage := bson.M{"$limit": int64(limit)}
	pipeline := completedTotalsBy("vendor")
	if ranking == repository.RankLegacy {
		pipeline = append(pipeline, limitStage, sortStage)
	} else {
		pipeline = append(pipeline, sortStage, limitStage)
	}
	pipeline = append(pipeline, lookup(usersCollection, "vendor"))

	cur, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate sales by vendor: %w", err)
	}
	var rows []vendorSalesRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode sales by vendor: %w", err)
	}
	out := make([]entity.VendorSales, 0, len(rows))
	for _, row := range rows {
		total, err := fromDecimal128(row.Total)
		if err != nil {
			return nil, err
		}
		item := entity.VendorSales{VendorID: row.ID, Total: total}
		if len(row.Vendor) > 0 {
			item.Vendor = row.Vendor[0].entity()
		}
		out = append(out, item)
	}
	return out, nil
}
