package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscriber is a newsletter signup. Email is unique.
type Subscriber struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	SubscribedAt time.Time          `bson:"subscribedAt" json:"subscribedAt"`
}
