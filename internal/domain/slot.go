package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CustomerInfo is a single booking appended to a slot's customer list.
type CustomerInfo struct {
	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	BookedAt string `bson:"bookedAt,omitempty" json:"bookedAt,omitempty"`
}

// Slot is a bookable time window offered by a trainer. Bookings append to
// Customers; there is no capacity check against MaxParticipants.
type Slot struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SlotName        string             `bson:"slotName,omitempty" json:"slotName,omitempty"`
	TrainerID       string             `bson:"trainerId" json:"trainerId"`
	TrainerEmail    string             `bson:"trainerEmail" json:"trainerEmail"`
	TrainerName     string             `bson:"trainerName,omitempty" json:"trainerName,omitempty"`
	ClassID         string             `bson:"classId,omitempty" json:"classId,omitempty"`
	ClassName       string             `bson:"className,omitempty" json:"className,omitempty"`
	Date            string             `bson:"date,omitempty" json:"date,omitempty"`
	StartTime       string             `bson:"startTime,omitempty" json:"startTime,omitempty"`
	Duration        string             `bson:"duration,omitempty" json:"duration,omitempty"`
	MaxParticipants int                `bson:"maxParticipants,omitempty" json:"maxParticipants,omitempty"`
	Customers       []CustomerInfo     `bson:"customers,omitempty" json:"customers,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}
