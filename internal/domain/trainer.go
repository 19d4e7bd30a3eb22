package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApplicationStatus tracks a trainer application through its lifecycle:
// pending -> trainer (approved) or pending -> rejected.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "trainer"
	ApplicationRejected ApplicationStatus = "rejected"
)

// ApprovedTrainerStatus is the fixed status written on approved trainer records.
const ApprovedTrainerStatus = "Trainer"

// TrainerApplication is a pending request to become a trainer, distinct from
// the approved-trainer record created on confirmation.
type TrainerApplication struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	Age           int                `bson:"age,omitempty" json:"age,omitempty"`
	ProfileImage  string             `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Skills        []string           `bson:"skills,omitempty" json:"skills,omitempty"`
	AvailableDays []string           `bson:"availableDays,omitempty" json:"availableDays,omitempty"`
	AvailableTime string             `bson:"availableTime,omitempty" json:"availableTime,omitempty"`
	Experience    string             `bson:"experience,omitempty" json:"experience,omitempty"`
	Biography     string             `bson:"biography,omitempty" json:"biography,omitempty"`
	Status        ApplicationStatus  `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`

	// Set on approval: back-reference to the approved trainer document.
	ApprovedTrainerID *primitive.ObjectID `bson:"approvedTrainerId,omitempty" json:"approvedTrainerId,omitempty"`
	ApprovedAt        *time.Time          `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`

	// Set on rejection.
	RejectionFeedback string     `bson:"rejectionFeedback,omitempty" json:"rejectionFeedback,omitempty"`
	RejectedAt        *time.Time `bson:"rejectedAt,omitempty" json:"rejectedAt,omitempty"`
}

// ApprovedTrainer is created as a side effect of approval and carries its own
// identity; OriginalApplicationID links back to the application.
type ApprovedTrainer struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OriginalApplicationID primitive.ObjectID `bson:"originalApplicationId" json:"originalApplicationId"`
	Name                  string             `bson:"name" json:"name"`
	Email                 string             `bson:"email" json:"email"`
	ProfileImage          string             `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Skills                []string           `bson:"skills,omitempty" json:"skills,omitempty"`
	AvailableDays         []string           `bson:"availableDays,omitempty" json:"availableDays,omitempty"`
	AvailableTime         string             `bson:"availableTime,omitempty" json:"availableTime,omitempty"`
	Experience            string             `bson:"experience,omitempty" json:"experience,omitempty"`
	Biography             string             `bson:"biography,omitempty" json:"biography,omitempty"`
	Status                string             `bson:"status" json:"status"` // Always "Trainer"
	SelectedClass         string             `bson:"selectedClass,omitempty" json:"selectedClass,omitempty"`
	ApprovedAt            time.Time          `bson:"approvedAt" json:"approvedAt"`
}

// RejectedTrainer is an append-only archive entry keeping admin feedback.
type RejectedTrainer struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID    primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	TrainerEmail string             `bson:"trainerEmail" json:"trainerEmail"`
	Feedback     string             `bson:"feedback" json:"feedback"`
	RejectedAt   time.Time          `bson:"rejectedAt" json:"rejectedAt"`
}
