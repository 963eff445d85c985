package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cinelog/cinelog-backend/internal/database"
	"github.com/cinelog/cinelog-backend/internal/middleware"
	"github.com/cinelog/cinelog-backend/internal/models"
	"github.com/cinelog/cinelog-backend/internal/services"
)

const messagesCollection = "messages"

type AddMessageRequest struct {
	Message struct {
		Name string `json:"name"`
	} `json:"message"`
}

type EditMessageRequest struct {
	Name string `json:"name"`
}

// AddMessage handles POST /messages/add/message. The saved message is
// announced on the live feed.
func AddMessage(w http.ResponseWriter, r *http.Request) {
	var req AddMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message.Name == "" {
		writeError(w, http.StatusBadRequest, "missing information")
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "You are not authenticated")
		return
	}

	now := time.Now().UTC()
	msg := models.Message{
		Name:      req.Message.Name,
		User:      user.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := database.DB.Collection(messagesCollection).InsertOne(r.Context(), msg)
	if err != nil {
		log.Printf("add message: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to add message")
		return
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		msg.ID = id
	}

	services.PublishMessageEvent(r.Context(), msg)

	writeJSON(w, http.StatusOK, msg)
}

// GetMessages handles GET /messages.
func GetMessages(w http.ResponseWriter, r *http.Request) {
	cur, err := database.DB.Collection(messagesCollection).Find(r.Context(), bson.M{})
	if err != nil {
		log.Printf("get messages: %v", err)
		writeError(w, http.StatusInternalServerError, "Error while getting messages")
		return
	}
	defer cur.Close(r.Context())

	messages := []models.Message{}
	if err := cur.All(r.Context(), &messages); err != nil {
		log.Printf("get messages: %v", err)
		writeError(w, http.StatusInternalServerError, "Error while getting messages")
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// GetMessageByID handles GET /messages/{messageId}.
func GetMessageByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "messageId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing information")
		return
	}

	var msg models.Message
	err = database.DB.Collection(messagesCollection).FindOne(r.Context(), bson.M{"_id": id}).Decode(&msg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, http.StatusNotFound, "Message not found")
			return
		}
		log.Printf("get message: %v", err)
		writeError(w, http.StatusInternalServerError, "Error while getting message")
		return
	}

	writeJSON(w, http.StatusOK, msg)
}

// EditMessage handles PUT /messages/edit/{messageId} and returns the updated
// document.
func EditMessage(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "messageId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing information")
		return
	}

	var req EditMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "missing information")
		return
	}

	update := bson.M{"$set": bson.M{"name": req.Name, "updated_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var msg models.Message
	err = database.DB.Collection(messagesCollection).
		FindOneAndUpdate(r.Context(), bson.M{"_id": id}, update, opts).Decode(&msg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, http.StatusNotFound, "Message not found")
			return
		}
		log.Printf("edit message: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to update message")
		return
	}

	writeJSON(w, http.StatusOK, msg)
}

// DeleteMessage handles DELETE /messages/delete/{messageId}.
func DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "messageId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing information")
		return
	}

	if _, err := database.DB.Collection(messagesCollection).DeleteOne(r.Context(), bson.M{"_id": id}); err != nil {
		log.Printf("delete message: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete message")
		return
	}

	writeMessage(w, http.StatusOK, "Message deleted")
}

// listUserMessages returns the messages owned by an email, newest first.
// Used by /auth/me to embed the user's messages in the profile response.
func listUserMessages(ctx context.Context, email string) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := database.DB.Collection(messagesCollection).Find(ctx, bson.M{"user": email}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	messages := []models.Message{}
	if err := cur.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
