package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"dalbhaat-backend/internal/models"
	"dalbhaat-backend/internal/repository"
)

type stubCouponDirectory struct {
	coupons map[string]*models.Coupon
}

func (s *stubCouponDirectory) Create(_ context.Context, coupon *models.Coupon) error {
	if _, ok := s.coupons[coupon.Code]; ok {
		return fmt.Errorf("coupon %q: %w", coupon.Code, repository.ErrDuplicate)
	}
	s.coupons[coupon.Code] = coupon
	return nil
}

func (s *stubCouponDirectory) FindAll(context.Context) ([]models.Coupon, error) {
	out := []models.Coupon{}
	for _, c := range s.coupons {
		out = append(out, *c)
	}
	return out, nil
}

func (s *stubCouponDirectory) Update(context.Context, string, bson.M) error { return nil }
func (s *stubCouponDirectory) Delete(context.Context, string) error         { return nil }

func (s *stubCouponDirectory) Validate(_ context.Context, code string) (*models.Coupon, error) {
	coupon, ok := s.coupons[code]
	if !ok {
		return nil, fmt.Errorf("coupon %q: %w", code, repository.ErrNotFound)
	}
	if err := repository.CheckCoupon(coupon, time.Now()); err != nil {
		return nil, err
	}
	return coupon, nil
}

func (s *stubCouponDirectory) Redeem(ctx context.Context, code string) (*models.Coupon, error) {
	coupon, err := s.Validate(ctx, code)
	if err != nil {
		return nil, err
	}
	coupon.ApplyRedemption()
	return coupon, nil
}

func newCouponRouter(dir *stubCouponDirectory) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewCouponHandler(dir)
	router := gin.New()
	router.POST("/api/coupons/validate", handler.Validate)
	router.POST("/api/coupons/reduce-usage", handler.ReduceUsage)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestValidateCouponReturnsDiscount(t *testing.T) {
	dir := &stubCouponDirectory{coupons: map[string]*models.Coupon{
		"SAVE10": {Code: "SAVE10", Discount: 10, ExpiresAt: time.Now().Add(time.Hour), IsActive: true},
	}}

	w := postJSON(newCouponRouter(dir), "/api/coupons/validate", `{"code": "SAVE10"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"discount":10`)
	assert.Equal(t, 0, dir.coupons["SAVE10"].TimesUsed, "validation must not consume a use")
}

func TestValidateCouponExpired(t *testing.T) {
	dir := &stubCouponDirectory{coupons: map[string]*models.Coupon{
		"OLD": {Code: "OLD", Discount: 5, ExpiresAt: time.Now().Add(-time.Hour), IsActive: true},
	}}

	w := postJSON(newCouponRouter(dir), "/api/coupons/validate", `{"code": "OLD"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestValidateCouponUnknown(t *testing.T) {
	dir := &stubCouponDirectory{coupons: map[string]*models.Coupon{}}

	w := postJSON(newCouponRouter(dir), "/api/coupons/validate", `{"code": "NOPE"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReduceUsageConsumesOneUse(t *testing.T) {
	limit := 2
	dir := &stubCouponDirectory{coupons: map[string]*models.Coupon{
		"SAVE10": {Code: "SAVE10", Discount: 10, ExpiresAt: time.Now().Add(time.Hour), IsActive: true, UsageLimit: &limit},
	}}
	router := newCouponRouter(dir)

	w := postJSON(router, "/api/coupons/reduce-usage", `{"couponCode": "SAVE10"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, dir.coupons["SAVE10"].TimesUsed)
	assert.Equal(t, 1, *dir.coupons["SAVE10"].UsageLimit)

	// Both counters converged; the coupon is now spent.
	w = postJSON(router, "/api/coupons/reduce-usage", `{"couponCode": "SAVE10"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
