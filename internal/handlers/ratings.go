package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cinelog/cinelog-backend/internal/middleware"
	"github.com/cinelog/cinelog-backend/internal/models"
	"github.com/cinelog/cinelog-backend/internal/store"
)

type AddRatingRequest struct {
	Rating float64 `json:"rating"`
}

// AddRating handles POST /ratings/{movieId}: persists the caller's rating and
// folds it into the movie's average.
func (h *MovieHandler) AddRating(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "You are not authenticated")
		return
	}

	movieID, err := strconv.Atoi(chi.URLParam(r, "movieId"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Missing parameters")
		return
	}

	var req AddRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Missing parameters")
		return
	}
	if req.Rating <= 0 || req.Rating > 5 {
		writeMessage(w, http.StatusBadRequest, "Missing parameters")
		return
	}

	_, err = h.Store.AddRating(r.Context(), models.Rating{
		Email:   user.Email,
		MovieID: movieID,
		Rating:  req.Rating,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Movie not found")
			return
		}
		log.Printf("add rating: %v", err)
		writeError(w, http.StatusInternalServerError, "Exception occurred while adding rating")
		return
	}

	writeMessage(w, http.StatusOK, "Rating added")
}
