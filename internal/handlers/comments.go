package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cinelog/cinelog-backend/internal/database"
	"github.com/cinelog/cinelog-backend/internal/models"
)

const commentsCollection = "comments"

type AddCommentRequest struct {
	Rating   float64 `json:"rating"`
	Username string  `json:"username"`
	Comment  string  `json:"comment"`
	Title    string  `json:"title"`
}

// AddComment handles POST /comments/{movieId}.
func AddComment(w http.ResponseWriter, r *http.Request) {
	movieID, err := strconv.Atoi(chi.URLParam(r, "movieId"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Missing parameters")
		return
	}

	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Missing parameters")
		return
	}
	if req.Username == "" || req.Comment == "" || req.Title == "" || req.Rating <= 0 || req.Rating > 5 {
		writeMessage(w, http.StatusBadRequest, "Missing parameters")
		return
	}

	comment := models.Comment{
		MovieID:   movieID,
		Username:  req.Username,
		Comment:   req.Comment,
		Title:     req.Title,
		Rating:    req.Rating,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := database.DB.Collection(commentsCollection).InsertOne(r.Context(), comment); err != nil {
		log.Printf("add comment: %v", err)
		writeError(w, http.StatusInternalServerError, "Exception occurred while adding comment")
		return
	}

	writeMessage(w, http.StatusOK, "Comment added")
}

// GetCommentsByID handles GET /comments/{movieId}.
func GetCommentsByID(w http.ResponseWriter, r *http.Request) {
	movieID, err := strconv.Atoi(chi.URLParam(r, "movieId"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "movie id missing")
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := database.DB.Collection(commentsCollection).Find(r.Context(), bson.M{"movie_id": movieID}, opts)
	if err != nil {
		log.Printf("get comments: %v", err)
		writeError(w, http.StatusInternalServerError, "Exception occurred while fetching comments")
		return
	}
	defer cur.Close(r.Context())

	comments := []models.Comment{}
	if err := cur.All(r.Context(), &comments); err != nil {
		log.Printf("get comments: %v", err)
		writeError(w, http.StatusInternalServerError, "Exception occurred while fetching comments")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"comments": comments})
}
