package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PaymentPending  = "pending"
	PaymentApproved = "approved"
)

// Amount is in minor currency units (cents), matching what the payment
// processor charges.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email         string             `bson:"email" json:"email"`
	Amount        int64              `bson:"amount" json:"amount"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	Status        string             `bson:"status" json:"status"`
	PaidAt        time.Time          `bson:"paidAt" json:"paidAt"`
}
