package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dalbhaat-backend/internal/models"
	"dalbhaat-backend/internal/repository"
)

type CartHandler struct {
	carts *repository.CartRepository
}

func NewCartHandler(carts *repository.CartRepository) *CartHandler {
	return &CartHandler{carts: carts}
}

func (h *CartHandler) Get(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "userId is required"})
		return
	}

	cart, err := h.carts.FindByUser(c.Request.Context(), userID)
	if err != nil {
		failMessage(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "items": cart.Items})
}

func (h *CartHandler) Put(c *gin.Context) {
	var req struct {
		UserID    string  `json:"userId"`
		ProductID string  `json:"productId"`
		Name      string  `json:"name"`
		Price     float64 `json:"price"`
		Image     string  `json:"image"`
		Quantity  int     `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.Name == "" || req.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid data"})
		return
	}

	item := models.CartItem{
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Image:     req.Image,
		Quantity:  req.Quantity,
	}
	cart, err := h.carts.SetItem(c.Request.Context(), req.UserID, item)
	if err != nil {
		failMessage(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart})
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID := userIDFromBodyOrQuery(c)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "userId is required"})
		return
	}

	cart, err := h.carts.RemoveItem(c.Request.Context(), userID, c.Param("name"))
	if err != nil {
		failMessage(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item removed", "cart": cart})
}

func (h *CartHandler) Clear(c *gin.Context) {
	userID := userIDFromBodyOrQuery(c)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "userId is required"})
		return
	}

	if err := h.carts.Clear(c.Request.Context(), userID); err != nil {
		failMessage(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart cleared"})
}

// userIDFromBodyOrQuery reads userId from the JSON body, falling back to
// the query string. DELETE bodies do not survive every HTTP client, so
// both spellings are accepted.
func userIDFromBodyOrQuery(c *gin.Context) string {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := c.ShouldBindJSON(&req); err == nil && req.UserID != "" {
		return req.UserID
	}
	return c.Query("userId")
}
