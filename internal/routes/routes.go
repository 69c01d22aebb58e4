package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"dalbhaat-backend/internal/checkout"
	"dalbhaat-backend/internal/handlers"
	"dalbhaat-backend/internal/middleware"
	"dalbhaat-backend/internal/repository"
)

// Register wires repositories, the checkout service and all route groups
// onto the router.
func Register(router *gin.Engine, db *mongo.Database, jwtSecret []byte) {
	products := repository.NewProductRepository(db.Collection("products"))
	coupons := repository.NewCouponRepository(db.Collection("coupons"))
	orders := repository.NewOrderRepository(db.Collection("orders"))
	income := repository.NewIncomeRepository(db.Collection("income"))
	carts := repository.NewCartRepository(db.Collection("carts"))
	users := repository.NewUserRepository(db.Collection("users"))
	wishlist := repository.NewWishlistRepository(db.Collection("wishlist"))

	service := checkout.NewService(products, coupons, orders, income, carts, log.Default())

	userHandler := handlers.NewUserHandler(users, jwtSecret)
	productHandler := handlers.NewProductHandler(products)
	cartHandler := handlers.NewCartHandler(carts)
	wishlistHandler := handlers.NewWishlistHandler(wishlist)
	orderHandler := handlers.NewOrderHandler(service, orders)
	couponHandler := handlers.NewCouponHandler(coupons)
	incomeHandler := handlers.NewIncomeHandler(income)

	api := router.Group("/api")

	api.GET("", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Welcome to the API", "status": "success"})
	})

	api.POST("/users/register", userHandler.Register)
	api.POST("/users/login", userHandler.Login)

	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get)

	api.POST("/orders/create", orderHandler.Create)

	api.GET("/cart", cartHandler.Get)
	api.PUT("/cart", cartHandler.Put)
	api.DELETE("/cart/:name", cartHandler.RemoveItem)
	api.DELETE("/cart", cartHandler.Clear)

	api.POST("/wishlist", wishlistHandler.Add)
	api.GET("/wishlist", wishlistHandler.List)
	api.DELETE("/wishlist/:name", wishlistHandler.Remove)

	api.POST("/coupons/validate", couponHandler.Validate)

	auth := api.Group("", middleware.Auth(jwtSecret))
	{
		auth.GET("/orders/my-orders", orderHandler.MyOrders)
		auth.GET("/users/profile", userHandler.GetProfile)
		auth.PUT("/users/profile", userHandler.UpdateProfile)
	}

	admin := api.Group("", middleware.Auth(jwtSecret), middleware.AdminOnly())
	{
		admin.POST("/products", productHandler.Create)
		admin.PUT("/products/:id", productHandler.Update)
		admin.DELETE("/products/:id", productHandler.Delete)

		admin.GET("/orders/all", orderHandler.All)
		admin.GET("/orders/user/:userId", orderHandler.ByUser)
		admin.GET("/orders/:orderId", orderHandler.Get)
		admin.PUT("/orders/:orderId/status", orderHandler.UpdateStatus)
		admin.PUT("/orders/:orderId/edit", orderHandler.Edit)
		admin.DELETE("/orders/:orderId", orderHandler.Delete)
		admin.POST("/orders/cancel/:orderId", orderHandler.Cancel)
		admin.POST("/orders/complete/:orderId", orderHandler.Complete)

		admin.GET("/coupons", couponHandler.List)
		admin.POST("/coupons", couponHandler.Create)
		admin.PUT("/coupons/:id", couponHandler.Update)
		admin.DELETE("/coupons/:id", couponHandler.Delete)
		admin.POST("/coupons/reduce-usage", couponHandler.ReduceUsage)

		admin.GET("/income/total", incomeHandler.Total)
	}
}
