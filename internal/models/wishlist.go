package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// WishlistEntry is one (user, product) row; uniqueness per pair is enforced
// by an index created at startup.
type WishlistEntry struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID string             `bson:"userId" json:"userId"`
	Name   string             `bson:"name" json:"name"`
}
