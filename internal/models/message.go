package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is stored in the MongoDB messages collection. User holds the email
// of the authenticated sender.
type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	User      string             `bson:"user" json:"user"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
