package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ComplaintStatus enum
type ComplaintStatus string

const (
	Pending    ComplaintStatus = "Pending"
	InProgress ComplaintStatus = "In Progress"
	Resolved   ComplaintStatus = "Resolved"
)

func (s ComplaintStatus) Valid() bool {
	switch s {
	case Pending, InProgress, Resolved:
		return true
	}
	return false
}

// Complaint represents an issue filed by a resident
type Complaint struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title           string              `bson:"title" json:"title"`
	Description     string              `bson:"description" json:"description"`
	Status          ComplaintStatus     `bson:"status" json:"status"`
	Resident        primitive.ObjectID  `bson:"resident" json:"resident"`
	AssignedTo      *primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	ApartmentNumber string              `bson:"apartmentNumber" json:"apartmentNumber"`
	Image           *string             `bson:"image,omitempty" json:"image"`
	AdminNotes      string              `bson:"adminNotes" json:"adminNotes"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}
