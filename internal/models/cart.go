package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CartItem is a snapshot of the product at the time it was added. Price and
// image are copied, not referenced, so later catalog edits do not rewrite carts.
type CartItem struct {
	ProductID string  `bson:"productId,omitempty" json:"productId,omitempty"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Image     string  `bson:"image" json:"image"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

type Cart struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID string             `bson:"userId" json:"userId"`
	Items  []CartItem         `bson:"items" json:"items"`
}
