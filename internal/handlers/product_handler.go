package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"dalbhaat-backend/internal/models"
	"dalbhaat-backend/internal/repository"
)

type ProductHandler struct {
	products *repository.ProductRepository
}

func NewProductHandler(products *repository.ProductRepository) *ProductHandler {
	return &ProductHandler{products: products}
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.FindAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.products.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil || product.Name == "" || product.Price < 0 || product.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required; price and quantity must not be negative"})
		return
	}

	if err := h.products.Create(c.Request.Context(), &product); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// productUpdate uses pointers so "unset" and "zero" can be told apart.
type productUpdate struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	Category    *string  `json:"category"`
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req productUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	update := bson.M{}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Price != nil {
		update["price"] = *req.Price
	}
	if req.Quantity != nil {
		update["quantity"] = *req.Quantity
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.Image != nil {
		update["image"] = *req.Image
	}
	if req.Category != nil {
		update["category"] = *req.Category
	}
	if len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	if err := h.products.Update(c.Request.Context(), c.Param("id"), update); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully"})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
