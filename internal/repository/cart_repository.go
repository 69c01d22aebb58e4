package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dalbhaat-backend/internal/models"
)

type CartRepository struct {
	collection *mongo.Collection
}

func NewCartRepository(collection *mongo.Collection) *CartRepository {
	return &CartRepository{collection: collection}
}

// FindByUser returns the user's cart, or an empty one when none exists yet.
func (r *CartRepository) FindByUser(ctx context.Context, userID string) (*models.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var cart models.Cart
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// SetItem upserts one line item, keyed by product name, setting its quantity
// to the given value. The cart document itself is created lazily.
func (r *CartRepository) SetItem(ctx context.Context, userID string, item models.CartItem) (*models.Cart, error) {
	cart, err := r.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].Name == item.Name {
			cart.Items[i].Quantity = item.Quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, item)
	}

	return cart, r.saveItems(ctx, userID, cart.Items)
}

func (r *CartRepository) RemoveItem(ctx context.Context, userID, name string) (*models.Cart, error) {
	cart, err := r.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.Name != name {
			items = append(items, item)
		}
	}
	cart.Items = items

	return cart, r.saveItems(ctx, userID, cart.Items)
}

func (r *CartRepository) saveItems(ctx context.Context, userID string, items []models.CartItem) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"items": items}},
		options.Update().SetUpsert(true),
	)
	return err
}

// Clear drops the whole cart document. Called after checkout and on explicit
// clear; clearing an absent cart is a no-op.
func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID})
	return err
}
