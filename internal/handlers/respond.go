package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dalbhaat-backend/internal/checkout"
	"dalbhaat-backend/internal/repository"
)

// httpStatus maps the store/workflow error taxonomy onto status codes.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, checkout.ErrValidation),
		errors.Is(err, repository.ErrCouponInactive),
		errors.Is(err, repository.ErrCouponExpired),
		errors.Is(err, repository.ErrCouponLimit),
		errors.Is(err, repository.ErrDuplicate):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrInsufficientStock),
		errors.Is(err, repository.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the orders/wishlist-family error shape.
func fail(c *gin.Context, err error) {
	c.JSON(httpStatus(err), gin.H{"error": err.Error()})
}

// failMessage writes the cart/coupon-family error shape.
func failMessage(c *gin.Context, err error) {
	c.JSON(httpStatus(err), gin.H{"success": false, "message": err.Error()})
}
