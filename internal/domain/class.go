package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainerAssignment records a trainer attached to a class. The class keeps a
// set of these; assignments are deduplicated by value.
type TrainerAssignment struct {
	TrainerID    string `bson:"trainerId" json:"trainerId"`
	Name         string `bson:"name" json:"name"`
	Email        string `bson:"email" json:"email"`
	ProfileImage string `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
}

// Class is a bookable fitness class. BookingCount is incremented by its own
// endpoint and is NOT reconciled against slot customer lists; whether it
// tracks real bookings or click-throughs is a product decision still open.
type Class struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ClassName      string              `bson:"className" json:"className"`
	Details        string              `bson:"details" json:"details"`
	AdditionalInfo string              `bson:"additionalInfo,omitempty" json:"additionalInfo,omitempty"`
	Image          string              `bson:"image,omitempty" json:"image,omitempty"`
	Trainer        []TrainerAssignment `bson:"trainer,omitempty" json:"trainer,omitempty"`
	BookingCount   int64               `bson:"bookingCount,omitempty" json:"bookingCount"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`

	TrainerAssignedAt *time.Time `bson:"trainerAssignedAt,omitempty" json:"trainerAssignedAt,omitempty"`
	LastUpdated       *time.Time `bson:"lastUpdated,omitempty" json:"lastUpdated,omitempty"`
}
