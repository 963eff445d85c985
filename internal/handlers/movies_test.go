package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/cinelog-backend/internal/middleware"
	"github.com/cinelog/cinelog-backend/internal/models"
	"github.com/cinelog/cinelog-backend/internal/store"
	"github.com/cinelog/cinelog-backend/pkg/utils"
)

type fakeMovieStore struct {
	movies      []models.Movie
	seen        map[string][]models.Movie
	ratings     []models.Rating
	ratingError error
	category    string
}

func (f *fakeMovieStore) GetMovies(ctx context.Context) ([]models.Movie, error) {
	return f.movies, nil
}

func (f *fakeMovieStore) GetMoviesByCategory(ctx context.Context, category string) ([]models.Movie, error) {
	f.category = category
	var out []models.Movie
	for _, m := range f.movies {
		if m.Type == category {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMovieStore) GetTopRatedMovies(ctx context.Context) ([]models.Movie, error) {
	return f.movies, nil
}

func (f *fakeMovieStore) GetSeenMovies(ctx context.Context, email string) ([]models.Movie, error) {
	return f.seen[email], nil
}

func (f *fakeMovieStore) AddRating(ctx context.Context, r models.Rating) (float64, error) {
	if f.ratingError != nil {
		return 0, f.ratingError
	}
	f.ratings = append(f.ratings, r)
	return r.Rating, nil
}

func catalog() []models.Movie {
	return []models.Movie{
		{MovieID: 1, Title: "Alpha", Type: "Comedy"},
		{MovieID: 2, Title: "Beta", Type: "Drama"},
		{MovieID: 3, Title: "Gamma", Type: "Comedy"},
	}
}

func TestGroupMoviesByType(t *testing.T) {
	grouped := groupMoviesByType(catalog())

	require.Len(t, grouped, 2)
	assert.Len(t, grouped["Comedy"], 2)
	assert.Len(t, grouped["Drama"], 1)
	assert.Equal(t, "Beta", grouped["Drama"][0].Title)
}

func TestGetMovies(t *testing.T) {
	t.Run("grouped by type without category", func(t *testing.T) {
		h := NewMovieHandler(&fakeMovieStore{movies: catalog()})

		req := httptest.NewRequest(http.MethodGet, "/movies", nil)
		rec := httptest.NewRecorder()
		h.GetMovies(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Movies map[string][]models.Movie `json:"movies"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Movies, "Comedy")
		assert.Contains(t, resp.Movies, "Drama")
	})

	t.Run("flat list with category", func(t *testing.T) {
		fake := &fakeMovieStore{movies: catalog()}
		h := NewMovieHandler(fake)

		req := httptest.NewRequest(http.MethodGet, "/movies?category=Comedy", nil)
		rec := httptest.NewRecorder()
		h.GetMovies(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Comedy", fake.category)
		var resp struct {
			Movies []models.Movie `json:"movies"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Movies, 2)
	})
}

func TestGetSeenMovies(t *testing.T) {
	fake := &fakeMovieStore{seen: map[string][]models.Movie{
		"a@x.com": {{MovieID: 1, Title: "Alpha", Type: "Comedy"}},
	}}
	h := NewMovieHandler(fake)

	t.Run("requires identity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/movies/me", nil)
		rec := httptest.NewRecorder()
		h.GetSeenMovies(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("returns the caller's seen movies", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/movies/me", nil)
		req = req.WithContext(middleware.WithUser(req.Context(), utils.TokenUser{Email: "a@x.com"}))
		rec := httptest.NewRecorder()
		h.GetSeenMovies(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Movies []models.Movie `json:"movies"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Movies, 1)
		assert.Equal(t, "Alpha", resp.Movies[0].Title)
	})
}

func ratingRequest(t *testing.T, h *MovieHandler, movieID, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Post("/ratings/{movieId}", h.AddRating)

	req := httptest.NewRequest(http.MethodPost, "/ratings/"+movieID, strings.NewReader(body))
	if authed {
		req = req.WithContext(middleware.WithUser(req.Context(), utils.TokenUser{Email: "a@x.com"}))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAddRating(t *testing.T) {
	t.Run("invalid movie id", func(t *testing.T) {
		h := NewMovieHandler(&fakeMovieStore{})
		rec := ratingRequest(t, h, "abc", `{"rating":4}`, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rating out of range", func(t *testing.T) {
		h := NewMovieHandler(&fakeMovieStore{})
		for _, body := range []string{`{}`, `{"rating":0}`, `{"rating":5.5}`, `{"rating":-1}`} {
			rec := ratingRequest(t, h, "1", body, true)
			assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
		}
	})

	t.Run("unknown movie", func(t *testing.T) {
		h := NewMovieHandler(&fakeMovieStore{ratingError: store.ErrNotFound})
		rec := ratingRequest(t, h, "99", `{"rating":4}`, true)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("success records the caller's rating", func(t *testing.T) {
		fake := &fakeMovieStore{}
		h := NewMovieHandler(fake)
		rec := ratingRequest(t, h, "1", `{"rating":4}`, true)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Rating added"}`, rec.Body.String())
		require.Len(t, fake.ratings, 1)
		assert.Equal(t, models.Rating{Email: "a@x.com", MovieID: 1, Rating: 4}, fake.ratings[0])
	})
}
