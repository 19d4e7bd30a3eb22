package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VoteType names the two counters a forum vote can increment.
type VoteType string

const (
	VoteUp   VoteType = "upvote"
	VoteDown VoteType = "downvote"
)

// ForumPost is a community post. Vote counters are incremented atomically.
type ForumPost struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	Category  string             `bson:"category,omitempty" json:"category,omitempty"`
	Author    string             `bson:"author" json:"author"`
	Email     string             `bson:"email" json:"email"`
	Role      Role               `bson:"role" json:"role"`
	Upvotes   int64              `bson:"upvotes,omitempty" json:"upvotes"`
	Downvotes int64              `bson:"downvotes,omitempty" json:"downvotes"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
