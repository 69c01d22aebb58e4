package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"dalbhaat-backend/internal/models"
)

type WishlistRepository struct {
	collection *mongo.Collection
}

func NewWishlistRepository(collection *mongo.Collection) *WishlistRepository {
	return &WishlistRepository{collection: collection}
}

// Add records (userID, name). Adding a product already on the list is a
// no-op, reported via the bool so the handler can phrase its response.
func (r *WishlistRepository) Add(ctx context.Context, userID, name string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"userId": userID, "name": name})
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	entry := models.WishlistEntry{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Name:   name,
	}
	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// EntryWithCount decorates a wishlist row with how many users in total have
// wishlisted the same product.
type EntryWithCount struct {
	models.WishlistEntry
	ClickCount int64 `json:"clickCount"`
}

func (r *WishlistRepository) ListWithCounts(ctx context.Context, userID string) ([]EntryWithCount, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []models.WishlistEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}

	out := make([]EntryWithCount, 0, len(entries))
	for _, entry := range entries {
		count, err := r.collection.CountDocuments(ctx, bson.M{"name": entry.Name})
		if err != nil {
			return nil, err
		}
		out = append(out, EntryWithCount{WishlistEntry: entry, ClickCount: count})
	}
	return out, nil
}

func (r *WishlistRepository) Remove(ctx context.Context, userID, name string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID, "name": name})
	return err
}
