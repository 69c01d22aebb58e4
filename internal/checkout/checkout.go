// Package checkout orchestrates the order lifecycle: placing an order
// against product stock and an optional coupon, cancelling it (restoring
// stock) and completing it (recording income). All multi-entity sequencing
// and compensation lives here; the stores only expose single-document
// conditional operations.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"dalbhaat-backend/internal/models"
	"dalbhaat-backend/internal/repository"
)

// ErrValidation marks a request rejected before any write happened.
var ErrValidation = errors.New("validation failed")

type ProductStore interface {
	Reserve(ctx context.Context, name string, qty int) error
	Release(ctx context.Context, name string, qty int) error
}

type CouponStore interface {
	Validate(ctx context.Context, code string) (*models.Coupon, error)
	Redeem(ctx context.Context, code string) (*models.Coupon, error)
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	TransitionStatus(ctx context.Context, id string, from []string, to string) error
	SetFields(ctx context.Context, id string, fields bson.M) error
}

type IncomeStore interface {
	Append(ctx context.Context, orderID primitive.ObjectID, amount float64) error
}

type CartStore interface {
	Clear(ctx context.Context, userID string) error
}

type Service struct {
	products ProductStore
	coupons  CouponStore
	orders   OrderStore
	income   IncomeStore
	carts    CartStore
	logger   *log.Logger
}

func NewService(products ProductStore, coupons CouponStore, orders OrderStore, income IncomeStore, carts CartStore, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		products: products,
		coupons:  coupons,
		orders:   orders,
		income:   income,
		carts:    carts,
		logger:   logger,
	}
}

// PlaceOrderRequest is the checkout payload. TransactionID is only recorded
// for the bkash payment method; CouponCode is optional.
type PlaceOrderRequest struct {
	Name           string             `json:"name"`
	Phone          string             `json:"phone"`
	Address        string             `json:"address"`
	DeliveryOption string             `json:"deliveryOption"`
	PaymentMethod  string             `json:"paymentMethod"`
	TransactionID  string             `json:"transactionId"`
	OrderSummary   []models.OrderItem `json:"orderSummary"`
	TotalAmount    float64            `json:"totalAmount"`
	UserID         string             `json:"userId"`
	CouponCode     string             `json:"couponCode"`
}

func (r *PlaceOrderRequest) validate() error {
	switch {
	case r.Name == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case r.Phone == "":
		return fmt.Errorf("%w: phone is required", ErrValidation)
	case r.Address == "":
		return fmt.Errorf("%w: address is required", ErrValidation)
	case r.DeliveryOption == "":
		return fmt.Errorf("%w: deliveryOption is required", ErrValidation)
	case r.PaymentMethod == "":
		return fmt.Errorf("%w: paymentMethod is required", ErrValidation)
	case len(r.OrderSummary) == 0:
		return fmt.Errorf("%w: orderSummary must not be empty", ErrValidation)
	case r.TotalAmount <= 0:
		return fmt.Errorf("%w: totalAmount must be positive", ErrValidation)
	}
	for _, item := range r.OrderSummary {
		if item.ProductName == "" || item.Quantity < 1 {
			return fmt.Errorf("%w: each order item needs a productName and a quantity of at least 1", ErrValidation)
		}
	}
	return nil
}

// PlaceOrder runs the checkout sequence: validate the coupon, create the
// order as Pending, reserve stock per line item, redeem the coupon, clear
// the cart. The steps are not one transaction, so any failure after the
// order exists compensates: already-reserved items are released and the
// order is flipped to Cancelled so it never ships against missing stock.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*models.Order, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	if req.CouponCode != "" {
		if _, err := s.coupons.Validate(ctx, req.CouponCode); err != nil {
			return nil, err
		}
	}

	transactionID := ""
	if req.PaymentMethod == "bkash" {
		transactionID = req.TransactionID
	}

	order := &models.Order{
		Name:           req.Name,
		Phone:          req.Phone,
		Address:        req.Address,
		DeliveryOption: req.DeliveryOption,
		PaymentMethod:  req.PaymentMethod,
		TransactionID:  transactionID,
		OrderSummary:   req.OrderSummary,
		TotalAmount:    req.TotalAmount,
		UserID:         req.UserID,
		Status:         models.StatusPending,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if err := s.reserveAll(ctx, order); err != nil {
		return nil, err
	}

	if req.CouponCode != "" {
		if _, err := s.coupons.Redeem(ctx, req.CouponCode); err != nil {
			// Validated moments ago, so this is a race on the last use.
			s.releaseItems(ctx, order.OrderSummary)
			s.abandon(ctx, order)
			return nil, err
		}
	}

	if req.UserID != "" {
		if err := s.carts.Clear(ctx, req.UserID); err != nil {
			// The order stands; an uncleaned cart only needs a log line.
			s.logger.Printf("checkout: clearing cart for user %s: %v", req.UserID, err)
		}
	}

	return order, nil
}

// reserveAll reserves stock for every line item, releasing the prefix
// already taken and abandoning the order if any item cannot be covered.
func (s *Service) reserveAll(ctx context.Context, order *models.Order) error {
	for i, item := range order.OrderSummary {
		if err := s.products.Reserve(ctx, item.ProductName, item.Quantity); err != nil {
			s.releaseItems(ctx, order.OrderSummary[:i])
			s.abandon(ctx, order)
			return err
		}
	}
	return nil
}

func (s *Service) releaseItems(ctx context.Context, items []models.OrderItem) {
	for _, item := range items {
		if err := s.products.Release(ctx, item.ProductName, item.Quantity); err != nil {
			s.logger.Printf("checkout: compensation failed releasing %d x %q: %v", item.Quantity, item.ProductName, err)
		}
	}
}

// abandon marks a half-placed order Cancelled. The record is kept, not
// deleted, so a failed checkout stays visible for reconciliation.
func (s *Service) abandon(ctx context.Context, order *models.Order) {
	err := s.orders.TransitionStatus(ctx, order.ID.Hex(), []string{models.StatusPending}, models.StatusCancelled)
	if err != nil {
		s.logger.Printf("checkout: cancelling abandoned order %s: %v", order.ID.Hex(), err)
		return
	}
	order.Status = models.StatusCancelled
}

// Cancel moves the order to Cancelled and restores stock for each line
// item. The status transition is the gate: only the caller that wins it
// restores stock, so cancelling twice cannot double-restore.
func (s *Service) Cancel(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.orders.TransitionStatus(ctx, orderID, models.NonTerminalStatuses(), models.StatusCancelled); err != nil {
		return nil, err
	}

	for _, item := range order.OrderSummary {
		if err := s.products.Release(ctx, item.ProductName, item.Quantity); err != nil {
			s.logger.Printf("checkout: restoring %d x %q for cancelled order %s: %v", item.Quantity, item.ProductName, orderID, err)
		}
	}

	order.Status = models.StatusCancelled
	return order, nil
}

// Complete moves the order to Completed and appends one income entry for
// its total. As with Cancel, the conditional transition guarantees a second
// call finds the order terminal and records nothing.
func (s *Service) Complete(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.orders.TransitionStatus(ctx, orderID, models.NonTerminalStatuses(), models.StatusCompleted); err != nil {
		return nil, err
	}

	if err := s.income.Append(ctx, order.ID, order.TotalAmount); err != nil {
		s.logger.Printf("checkout: recording income for order %s: %v", orderID, err)
		return nil, err
	}

	order.Status = models.StatusCompleted
	return order, nil
}

// UpdateStatus is the administrator's direct transition, e.g. Pending to
// Confirmed. Unknown targets are rejected outright; terminal sources lose
// the conditional update and surface as a conflict.
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	from := []string{}
	for _, source := range []string{models.StatusPending, models.StatusConfirmed} {
		if models.CanTransition(source, status) {
			from = append(from, source)
		}
	}
	if len(from) == 0 {
		return nil, fmt.Errorf("%w: no order may move to %q", ErrValidation, status)
	}

	if err := s.orders.TransitionStatus(ctx, orderID, from, status); err != nil {
		return nil, err
	}
	return s.orders.FindByID(ctx, orderID)
}

// EditRequest carries the only order fields an administrator may correct.
type EditRequest struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	DeliveryOption string `json:"deliveryOption"`
}

// Edit applies allow-listed corrections to an order that has not yet been
// confirmed. Everything else on the order is immutable after creation.
func (s *Service) Edit(ctx context.Context, orderID string, req EditRequest) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.StatusPending {
		return nil, fmt.Errorf("only pending orders can be edited: %w", repository.ErrConflict)
	}

	fields := bson.M{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Phone != "" {
		fields["phone"] = req.Phone
	}
	if req.Address != "" {
		fields["address"] = req.Address
	}
	if req.DeliveryOption != "" {
		fields["deliveryOption"] = req.DeliveryOption
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no editable fields provided", ErrValidation)
	}

	if err := s.orders.SetFields(ctx, orderID, fields); err != nil {
		return nil, err
	}
	return s.orders.FindByID(ctx, orderID)
}
