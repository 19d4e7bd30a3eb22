package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is an append-only financial record persisted after provider
// confirmation. There is no idempotency key: re-submitting the same confirmed
// payment creates a duplicate record.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	UserName      string             `bson:"userName,omitempty" json:"userName,omitempty"`
	UserEmail     string             `bson:"userEmail" json:"userEmail"`
	Price         float64            `bson:"price" json:"price"`
	Status        string             `bson:"status,omitempty" json:"status,omitempty"`

	TrainerID      string `bson:"trainerId,omitempty" json:"trainerId,omitempty"`
	TrainerName    string `bson:"trainerName,omitempty" json:"trainerName,omitempty"`
	TrainerEmail   string `bson:"trainerEmail,omitempty" json:"trainerEmail,omitempty"`
	TrainerProfile string `bson:"trainerProfile,omitempty" json:"trainerProfile,omitempty"`

	ClassID             string `bson:"classId,omitempty" json:"classId,omitempty"`
	ClassName           string `bson:"className,omitempty" json:"className,omitempty"`
	ClassImage          string `bson:"classImage,omitempty" json:"classImage,omitempty"`
	ClassDetails        string `bson:"classDetails,omitempty" json:"classDetails,omitempty"`
	ClassAdditionalInfo string `bson:"classAdditionalInfo,omitempty" json:"classAdditionalInfo,omitempty"`

	SlotName            string   `bson:"slotName,omitempty" json:"slotName,omitempty"`
	SlotStatus          string   `bson:"slotStatus,omitempty" json:"slotStatus,omitempty"`
	PackageName         string   `bson:"packageName,omitempty" json:"packageName,omitempty"`
	MembershipType      string   `bson:"membershipType,omitempty" json:"membershipType,omitempty"`
	MembershipFeatures  []string `bson:"membershipFeatures,omitempty" json:"membershipFeatures,omitempty"`
	SpecialInstructions string   `bson:"specialInstructions,omitempty" json:"specialInstructions,omitempty"`
	Date                string   `bson:"date,omitempty" json:"date,omitempty"`
	StartTime           string   `bson:"startTime,omitempty" json:"startTime,omitempty"`
	MaxParticipants     int      `bson:"maxParticipants,omitempty" json:"maxParticipants,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	PaidAt    time.Time `bson:"paidAt" json:"paidAt"`
}
