package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"dalbhaat-backend/internal/models"
)

var defaultProducts = []interface{}{
	models.Product{
		Name:        "Apple",
		Price:       20.99,
		Quantity:    50,
		Description: "Fresh Quality green apple.",
		Image:       "https://www.buildrestfoods.com/wp-content/uploads/2020/08/green-apply.jpg",
		Category:    "Fruits",
	},
}

// Seed populates an empty catalog with the starter products and, when an
// admin password is configured, creates the default admin account. Both
// steps are idempotent across restarts.
func Seed(ctx context.Context, db *mongo.Database, adminEmail, adminPassword string) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	count, err := db.Collection("products").CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count == 0 {
		if _, err := db.Collection("products").InsertMany(ctx, defaultProducts); err != nil {
			return err
		}
		log.Println("default products inserted")
	}

	if adminPassword == "" {
		log.Println("ADMIN_PASSWORD not set, skipping default admin")
		return nil
	}

	users := db.Collection("users")
	err = users.FindOne(ctx, bson.M{"email": adminEmail}).Err()
	if err == nil {
		return nil
	}
	if err != mongo.ErrNoDocuments {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Name:     "Admin",
		Email:    adminEmail,
		Password: string(hashed),
		IsAdmin:  true,
	}
	if _, err := users.InsertOne(ctx, admin); err != nil {
		return err
	}
	log.Println("default admin user created")
	return nil
}
