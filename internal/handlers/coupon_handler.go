package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"dalbhaat-backend/internal/models"
)

type CouponDirectory interface {
	Create(ctx context.Context, coupon *models.Coupon) error
	FindAll(ctx context.Context) ([]models.Coupon, error)
	Update(ctx context.Context, id string, update bson.M) error
	Delete(ctx context.Context, id string) error
	Validate(ctx context.Context, code string) (*models.Coupon, error)
	Redeem(ctx context.Context, code string) (*models.Coupon, error)
}

type CouponHandler struct {
	coupons CouponDirectory
}

func NewCouponHandler(coupons CouponDirectory) *CouponHandler {
	return &CouponHandler{coupons: coupons}
}

type couponRequest struct {
	Code      string    `json:"code"`
	Discount  float64   `json:"discount"`
	ExpiresAt time.Time `json:"expiresAt"`
	// Pointer distinguishes "unbounded" (absent) from an explicit limit.
	UsageLimit *int  `json:"usageLimit"`
	IsActive   *bool `json:"isActive"`
}

func (h *CouponHandler) Create(c *gin.Context) {
	var req couponRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" || req.ExpiresAt.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "code, discount and expiresAt are required"})
		return
	}

	coupon := models.Coupon{
		Code:       req.Code,
		Discount:   req.Discount,
		ExpiresAt:  req.ExpiresAt,
		UsageLimit: req.UsageLimit,
		IsActive:   true,
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}

	if err := h.coupons.Create(c.Request.Context(), &coupon); err != nil {
		failMessage(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "coupon": coupon})
}

func (h *CouponHandler) List(c *gin.Context) {
	coupons, err := h.coupons.FindAll(c.Request.Context())
	if err != nil {
		failMessage(c, err)
		return
	}
	c.JSON(http.StatusOK, coupons)
}

func (h *CouponHandler) Update(c *gin.Context) {
	var req couponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input"})
		return
	}

	update := bson.M{}
	if req.Code != "" {
		update["code"] = req.Code
	}
	if req.Discount != 0 {
		update["discount"] = req.Discount
	}
	if !req.ExpiresAt.IsZero() {
		update["expiresAt"] = req.ExpiresAt
	}
	if req.UsageLimit != nil {
		update["usageLimit"] = req.UsageLimit
	}
	if req.IsActive != nil {
		update["isActive"] = *req.IsActive
	}
	if len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "no fields to update"})
		return
	}

	if err := h.coupons.Update(c.Request.Context(), c.Param("id"), update); err != nil {
		failMessage(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Coupon updated successfully."})
}

func (h *CouponHandler) Delete(c *gin.Context) {
	if err := h.coupons.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failMessage(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Coupon deleted successfully."})
}

// Validate is the pure price-calculation read: it reports the discount
// without consuming a use.
func (h *CouponHandler) Validate(c *gin.Context) {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "code is required"})
		return
	}

	coupon, err := h.coupons.Validate(c.Request.Context(), req.Code)
	if err != nil {
		failMessage(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "discount": coupon.Discount})
}

// ReduceUsage consumes one use of a coupon. Checkout redeems automatically
// when an order carries a coupon code; this endpoint remains for admin
// tooling that books a use by hand.
func (h *CouponHandler) ReduceUsage(c *gin.Context) {
	var req struct {
		CouponCode string `json:"couponCode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.CouponCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "couponCode is required"})
		return
	}

	coupon, err := h.coupons.Redeem(c.Request.Context(), req.CouponCode)
	if err != nil {
		failMessage(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Coupon usage reduced successfully.", "coupon": coupon})
}
