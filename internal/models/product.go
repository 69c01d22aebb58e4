package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product is the catalog entry. Name doubles as the business key carts and
// order summaries reference; Quantity is the units on hand.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Description string             `bson:"description" json:"description"`
	Image       string             `bson:"image" json:"image"`
	Category    string             `bson:"category" json:"category"`
}
