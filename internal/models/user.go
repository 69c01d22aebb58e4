package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"password,omitempty"`
	IsAdmin  bool               `bson:"isAdmin" json:"isAdmin"`
	Bio      string             `bson:"bio" json:"bio"`
	Phone    string             `bson:"phone" json:"phone"`
	Address  string             `bson:"address" json:"address"`
	Avatar   string             `bson:"avatar" json:"avatar"`
}
