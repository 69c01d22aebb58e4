package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(uri string) *mongo.Client {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatal("connecting to MongoDB:", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatal("pinging MongoDB:", err)
	}
	log.Println("MongoDB connected")
	return client
}

// EnsureIndexes creates the uniqueness constraints the application relies
// on: product names and coupon codes are business keys, users are keyed by
// email, a user gets one cart and one wishlist row per product.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)

	indexes := map[string]mongo.IndexModel{
		"products": {Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		"coupons":  {Keys: bson.D{{Key: "code", Value: 1}}, Options: unique},
		"users":    {Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		"carts":    {Keys: bson.D{{Key: "userId", Value: 1}}, Options: unique},
		"wishlist": {
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "name", Value: 1}},
			Options: unique,
		},
	}
	for name, model := range indexes {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, model); err != nil {
			return err
		}
	}
	return nil
}
