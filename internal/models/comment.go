package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is stored in the MongoDB comments collection, one document per
// comment on a movie.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MovieID   int                `bson:"movie_id" json:"movie_id"`
	Username  string             `bson:"username" json:"username"`
	Comment   string             `bson:"comment" json:"comment"`
	Title     string             `bson:"title" json:"title"`
	Rating    float64            `bson:"rating" json:"rating"`
	Upvotes   int                `bson:"upvotes" json:"upvotes"`
	Downvotes int                `bson:"downvotes" json:"downvotes"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
