package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"dalbhaat-backend/internal/repository"
)

type WishlistHandler struct {
	wishlist *repository.WishlistRepository
}

func NewWishlistHandler(wishlist *repository.WishlistRepository) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist}
}

func (h *WishlistHandler) Add(c *gin.Context) {
	var req struct {
		UserID string `json:"userId"`
		Name   string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID and Product name are required"})
		return
	}

	added, err := h.wishlist.Add(c.Request.Context(), req.UserID, req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	if !added {
		c.JSON(http.StatusOK, gin.H{"message": "Product already in wishlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Wishlist updated successfully"})
}

func (h *WishlistHandler) List(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	entries, err := h.wishlist.ListWithCounts(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *WishlistHandler) Remove(c *gin.Context) {
	name := c.Param("name")
	userID := userIDFromBodyOrQuery(c)
	if name == "" || userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product name and User ID are required"})
		return
	}

	if err := h.wishlist.Remove(c.Request.Context(), userID, name); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Wishlist item '%s' deleted successfully.", name)})
}
