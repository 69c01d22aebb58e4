package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"dalbhaat-backend/internal/models"
)

// IncomeRepository is an append-only ledger. Nothing here updates or deletes.
type IncomeRepository struct {
	collection *mongo.Collection
}

func NewIncomeRepository(collection *mongo.Collection) *IncomeRepository {
	return &IncomeRepository{collection: collection}
}

func (r *IncomeRepository) Append(ctx context.Context, orderID primitive.ObjectID, amount float64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	entry := models.Income{
		ID:          primitive.NewObjectID(),
		OrderID:     orderID,
		Amount:      amount,
		CompletedAt: time.Now(),
	}
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// Total sums every ledger entry. Zero when the ledger is empty.
func (r *IncomeRepository) Total(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount"},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}
