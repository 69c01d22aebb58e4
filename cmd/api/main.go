package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"dalbhaat-backend/internal/config"
	"dalbhaat-backend/internal/database"
	"dalbhaat-backend/internal/middleware"
	"dalbhaat-backend/internal/routes"
)

func main() {
	cfg := config.Load()

	client := database.Connect(cfg.MongoURI)
	defer client.Disconnect(context.Background())
	db := client.Database(cfg.MongoDB)

	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatal("creating indexes:", err)
	}
	if err := database.Seed(context.Background(), db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal("seeding database:", err)
	}

	router := gin.Default()
	router.Use(middleware.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		AllowCredentials: true,
	}))

	routes.Register(router, db, []byte(cfg.JWTSecret))

	log.Println("server running on port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
