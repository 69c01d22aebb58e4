package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Income is one ledger entry, appended exactly once when an order completes.
type Income struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID     primitive.ObjectID `bson:"orderId" json:"orderId"`
	Amount      float64            `bson:"amount" json:"amount"`
	CompletedAt time.Time          `bson:"completedAt" json:"completedAt"`
}
