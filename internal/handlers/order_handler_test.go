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
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"dalbhaat-backend/internal/checkout"
	"dalbhaat-backend/internal/models"
	"dalbhaat-backend/internal/repository"
)

type stubProducts struct {
	stock map[string]int
}

func (s *stubProducts) Reserve(_ context.Context, name string, qty int) error {
	if s.stock[name] < qty {
		return fmt.Errorf("product %q: %w", name, repository.ErrInsufficientStock)
	}
	s.stock[name] -= qty
	return nil
}

func (s *stubProducts) Release(_ context.Context, name string, qty int) error {
	s.stock[name] += qty
	return nil
}

type stubCoupons struct{}

func (stubCoupons) Validate(context.Context, string) (*models.Coupon, error) {
	return nil, fmt.Errorf("coupon: %w", repository.ErrNotFound)
}

func (stubCoupons) Redeem(context.Context, string) (*models.Coupon, error) {
	return nil, fmt.Errorf("coupon: %w", repository.ErrNotFound)
}

type stubOrders struct {
	orders map[string]*models.Order
}

func (s *stubOrders) Create(_ context.Context, order *models.Order) error {
	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now()
	s.orders[order.ID.Hex()] = order
	return nil
}

func (s *stubOrders) FindByID(_ context.Context, id string) (*models.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, fmt.Errorf("order: %w", repository.ErrNotFound)
	}
	return order, nil
}

func (s *stubOrders) TransitionStatus(_ context.Context, id string, from []string, to string) error {
	order, ok := s.orders[id]
	if !ok {
		return fmt.Errorf("order: %w", repository.ErrNotFound)
	}
	for _, status := range from {
		if order.Status == status {
			order.Status = to
			return nil
		}
	}
	return fmt.Errorf("order status: %w", repository.ErrConflict)
}

func (s *stubOrders) SetFields(_ context.Context, id string, fields bson.M) error {
	if _, ok := s.orders[id]; !ok {
		return fmt.Errorf("order: %w", repository.ErrNotFound)
	}
	return nil
}

func (s *stubOrders) FindAll(context.Context) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range s.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (s *stubOrders) FindByUser(_ context.Context, userID string) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *stubOrders) Delete(_ context.Context, id string) error {
	if _, ok := s.orders[id]; !ok {
		return fmt.Errorf("order: %w", repository.ErrNotFound)
	}
	delete(s.orders, id)
	return nil
}

type stubIncome struct{ entries int }

func (s *stubIncome) Append(context.Context, primitive.ObjectID, float64) error {
	s.entries++
	return nil
}

type stubCarts struct{}

func (stubCarts) Clear(context.Context, string) error { return nil }

type orderTestEnv struct {
	router *gin.Engine
	orders *stubOrders
	income *stubIncome
}

func newOrderTestEnv() *orderTestEnv {
	gin.SetMode(gin.TestMode)

	orders := &stubOrders{orders: map[string]*models.Order{}}
	income := &stubIncome{}
	service := checkout.NewService(
		&stubProducts{stock: map[string]int{"Apple": 50}},
		stubCoupons{}, orders, income, stubCarts{}, nil,
	)
	handler := NewOrderHandler(service, orders)

	router := gin.New()
	router.POST("/api/orders/create", handler.Create)
	router.GET("/api/orders/all", handler.All)
	router.POST("/api/orders/cancel/:orderId", handler.Cancel)
	router.POST("/api/orders/complete/:orderId", handler.Complete)
	router.PUT("/api/orders/:orderId/status", handler.UpdateStatus)
	router.DELETE("/api/orders/:orderId", handler.Delete)

	return &orderTestEnv{router: router, orders: orders, income: income}
}

func (e *orderTestEnv) request(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

const orderBody = `{
	"name": "Rahim Uddin",
	"phone": "01700000000",
	"address": "12 Green Road, Dhaka",
	"deliveryOption": "home",
	"paymentMethod": "cod",
	"orderSummary": [{"productName": "Apple", "quantity": 5}],
	"totalAmount": 104.95,
	"userId": "user-1"
}`

func TestCreateOrderHappyPath(t *testing.T) {
	env := newOrderTestEnv()

	w := env.request(http.MethodPost, "/api/orders/create", orderBody)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Order placed successfully!")
	assert.Len(t, env.orders.orders, 1)
}

func TestCreateOrderMissingAddressRejected(t *testing.T) {
	env := newOrderTestEnv()
	body := strings.Replace(orderBody, `"address": "12 Green Road, Dhaka",`, "", 1)

	w := env.request(http.MethodPost, "/api/orders/create", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "address")
	assert.Empty(t, env.orders.orders, "no order may be persisted on validation failure")
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	env := newOrderTestEnv()
	body := strings.Replace(orderBody, `"quantity": 5`, `"quantity": 500`, 1)

	w := env.request(http.MethodPost, "/api/orders/create", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCancelUnknownOrder(t *testing.T) {
	env := newOrderTestEnv()

	w := env.request(http.MethodPost, "/api/orders/cancel/"+primitive.NewObjectID().Hex(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompleteTwiceIsConflict(t *testing.T) {
	env := newOrderTestEnv()
	w := env.request(http.MethodPost, "/api/orders/create", orderBody)
	require.Equal(t, http.StatusCreated, w.Code)

	var id string
	for key := range env.orders.orders {
		id = key
	}

	w = env.request(http.MethodPost, "/api/orders/complete/"+id, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, env.income.entries)

	w = env.request(http.MethodPost, "/api/orders/complete/"+id, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 1, env.income.entries, "double completion must not double-count income")
}

func TestStatusUpdateRejectsUnknownStatus(t *testing.T) {
	env := newOrderTestEnv()
	w := env.request(http.MethodPost, "/api/orders/create", orderBody)
	require.Equal(t, http.StatusCreated, w.Code)

	var id string
	for key := range env.orders.orders {
		id = key
	}

	w = env.request(http.MethodPut, "/api/orders/"+id+"/status", `{"status": "Shipped"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteOrder(t *testing.T) {
	env := newOrderTestEnv()
	w := env.request(http.MethodPost, "/api/orders/create", orderBody)
	require.Equal(t, http.StatusCreated, w.Code)

	var id string
	for key := range env.orders.orders {
		id = key
	}

	w = env.request(http.MethodDelete, "/api/orders/"+id, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.orders.orders)

	w = env.request(http.MethodDelete, "/api/orders/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
