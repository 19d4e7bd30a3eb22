package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewStatusActive marks reviews that count toward a trainer's rating.
const ReviewStatusActive = "active"

// Rating bounds accepted on submission (closed range).
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's rating of a trainer. At most one active review may exist
// per (TrainerID, UserEmail) pair; the storage layer enforces this with a
// unique compound index.
type Review struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID   string             `bson:"trainerId" json:"trainerId"`
	TrainerName string             `bson:"trainerName,omitempty" json:"trainerName,omitempty"`
	UserID      string             `bson:"userId,omitempty" json:"userId,omitempty"`
	UserEmail   string             `bson:"userEmail" json:"userEmail"`
	UserName    string             `bson:"userName,omitempty" json:"userName,omitempty"`
	Rating      int                `bson:"rating" json:"rating"`
	Review      string             `bson:"review" json:"review"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
