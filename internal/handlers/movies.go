package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/cinelog/cinelog-backend/internal/middleware"
	"github.com/cinelog/cinelog-backend/internal/models"
)

// MovieStore is the slice of the relational store the movie and rating
// handlers need.
type MovieStore interface {
	GetMovies(ctx context.Context) ([]models.Movie, error)
	GetMoviesByCategory(ctx context.Context, category string) ([]models.Movie, error)
	GetTopRatedMovies(ctx context.Context) ([]models.Movie, error)
	GetSeenMovies(ctx context.Context, email string) ([]models.Movie, error)
	AddRating(ctx context.Context, rating models.Rating) (float64, error)
}

type MovieHandler struct {
	Store MovieStore
}

func NewMovieHandler(s MovieStore) *MovieHandler {
	return &MovieHandler{Store: s}
}

// GetMovies handles GET /movies. With ?category= it returns a flat list for
// that type; without it the whole catalog grouped by type.
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	if category != "" {
		movies, err := h.Store.GetMoviesByCategory(r.Context(), category)
		if err != nil {
			log.Printf("get movies by category: %v", err)
			writeError(w, http.StatusInternalServerError, "Exception occurred while fetching movies")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"movies": movies})
		return
	}

	movies, err := h.Store.GetMovies(r.Context())
	if err != nil {
		log.Printf("get movies: %v", err)
		writeError(w, http.StatusInternalServerError, "Exception occurred while fetching movies")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"movies": groupMoviesByType(movies)})
}

// groupMoviesByType buckets the catalog by the movie type column.
func groupMoviesByType(movies []models.Movie) map[string][]models.Movie {
	grouped := make(map[string][]models.Movie)
	for _, m := range movies {
		grouped[m.Type] = append(grouped[m.Type], m)
	}
	return grouped
}

// GetTopRatedMovies handles GET /movies/top.
func (h *MovieHandler) GetTopRatedMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.Store.GetTopRatedMovies(r.Context())
	if err != nil {
		log.Printf("get top rated movies: %v", err)
		writeError(w, http.StatusInternalServerError, "Exception occurred while fetching top rated movies")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"movies": movies})
}

// GetSeenMovies handles GET /movies/me for the token identity.
func (h *MovieHandler) GetSeenMovies(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "You are not authenticated")
		return
	}

	movies, err := h.Store.GetSeenMovies(r.Context(), user.Email)
	if err != nil {
		log.Printf("get seen movies: %v", err)
		writeError(w, http.StatusInternalServerError, "Exception occurred while fetching seen movies")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"movies": movies})
}
