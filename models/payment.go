package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentStatus enum
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentUnpaid  PaymentStatus = "Unpaid"
)

// DefaultMaintenanceAmount is charged on self-submitted payments.
const DefaultMaintenanceAmount = 1000

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentUnpaid:
		return true
	}
	return false
}

// Payment is a maintenance due, either raised by an admin or submitted by a
// resident together with a proof image.
type Payment struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Resident    primitive.ObjectID  `bson:"resident" json:"resident"`
	Amount      float64             `bson:"amount" json:"amount"`
	DueDate     *time.Time          `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	Status      PaymentStatus       `bson:"status" json:"status"`
	PaidAt      *time.Time          `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	Month       string              `bson:"month,omitempty" json:"month,omitempty"`
	ReferenceID string              `bson:"referenceId,omitempty" json:"referenceId,omitempty"`
	ProofImage  *string             `bson:"proofImage,omitempty" json:"proofImage,omitempty"`
	UpdatedBy   *primitive.ObjectID `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}
