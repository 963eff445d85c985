package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cinelog/cinelog-backend/internal/database"
)

// EnsureDocumentIndexes configures indexes for the comments and messages
// collections. Called on startup from main after Mongo has connected.
func EnsureDocumentIndexes(ctx context.Context) error {
	comments := database.DB.Collection("comments")
	_, err := comments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "movie_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
		Options: options.Index().SetName("idx_movie_created"),
	})
	if err != nil {
		return err
	}

	messages := database.DB.Collection("messages")
	_, err = messages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetName("idx_user"),
	})
	return err
}
