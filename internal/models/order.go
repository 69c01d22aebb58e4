package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Cancelled and Completed are terminal.
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusCancelled = "Cancelled"
	StatusCompleted = "Completed"
)

// OrderItem is a denormalized line-item snapshot. ProductName is the display
// key the stock adjuster matches on; ProductID pins the line to a catalog
// entry even if the product is later renamed or deleted.
type OrderItem struct {
	ProductID   string `bson:"productId,omitempty" json:"productId,omitempty"`
	ProductName string `bson:"productName" json:"productName"`
	Quantity    int    `bson:"quantity" json:"quantity"`
}

type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Phone          string             `bson:"phone" json:"phone"`
	Address        string             `bson:"address" json:"address"`
	DeliveryOption string             `bson:"deliveryOption" json:"deliveryOption"`
	PaymentMethod  string             `bson:"paymentMethod" json:"paymentMethod"`
	TransactionID  string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	OrderSummary   []OrderItem        `bson:"orderSummary" json:"orderSummary"`
	TotalAmount    float64            `bson:"totalAmount" json:"totalAmount"`
	UserID         string             `bson:"userId,omitempty" json:"userId,omitempty"`
	Status         string             `bson:"status" json:"status"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// TerminalStatus reports whether no further transition is allowed from s.
func TerminalStatus(s string) bool {
	return s == StatusCancelled || s == StatusCompleted
}

// CanTransition reports whether an order may move from one status to another.
// Any move out of a terminal status is rejected; everything else between
// distinct known statuses is allowed, which covers both the admin
// Pending→Confirmed step and completing an order straight from Pending.
func CanTransition(from, to string) bool {
	if !ValidStatus(from) || !ValidStatus(to) {
		return false
	}
	if TerminalStatus(from) {
		return false
	}
	return from != to
}

// NonTerminalStatuses is the set of statuses an order can still leave.
func NonTerminalStatuses() []string {
	return []string{StatusPending, StatusConfirmed}
}
