package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"dalbhaat-backend/internal/checkout"
	"dalbhaat-backend/internal/models"
)

// OrderDirectory covers the plain reads and the hard delete; everything
// that mutates order state goes through the checkout service.
type OrderDirectory interface {
	FindAll(ctx context.Context) ([]models.Order, error)
	FindByUser(ctx context.Context, userID string) ([]models.Order, error)
	FindByID(ctx context.Context, id string) (*models.Order, error)
	Delete(ctx context.Context, id string) error
}

type OrderHandler struct {
	service *checkout.Service
	orders  OrderDirectory
}

func NewOrderHandler(service *checkout.Service, orders OrderDirectory) *OrderHandler {
	return &OrderHandler{service: service, orders: orders}
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req checkout.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	order, err := h.service.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully!",
		"orderId": order.ID.Hex(),
		"order":   order,
	})
}

func (h *OrderHandler) All(c *gin.Context) {
	orders, err := h.orders.FindAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) MyOrders(c *gin.Context) {
	orders, err := h.orders.FindByUser(c.Request.Context(), c.GetString("userId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) ByUser(c *gin.Context) {
	orders, err := h.orders.FindByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orders.FindByID(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), c.Param("orderId"), req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully", "order": order})
}

func (h *OrderHandler) Edit(c *gin.Context) {
	var req checkout.EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	order, err := h.service.Edit(c.Request.Context(), c.Param("orderId"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order updated successfully", "order": order})
}

func (h *OrderHandler) Delete(c *gin.Context) {
	orderID := c.Param("orderId")
	if err := h.orders.Delete(c.Request.Context(), orderID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully", "orderId": orderID})
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	order, err := h.service.Cancel(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled and stock restored", "order": order})
}

func (h *OrderHandler) Complete(c *gin.Context) {
	order, err := h.service.Complete(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order completed and income recorded", "order": order})
}
