package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func commentRoute(method, pattern string, handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(method, pattern, handler)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAddCommentValidation(t *testing.T) {
	t.Run("invalid movie id", func(t *testing.T) {
		rec := commentRoute(http.MethodPost, "/comments/{movieId}", AddComment,
			"/comments/abc", `{"username":"u","comment":"c","title":"t","rating":4}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"message":"Missing parameters"}`, rec.Body.String())
	})

	t.Run("incomplete body", func(t *testing.T) {
		bodies := []string{
			`???`,
			`{}`,
			`{"comment":"c","title":"t","rating":4}`,
			`{"username":"u","title":"t","rating":4}`,
			`{"username":"u","comment":"c","rating":4}`,
			`{"username":"u","comment":"c","title":"t"}`,
			`{"username":"u","comment":"c","title":"t","rating":0}`,
			`{"username":"u","comment":"c","title":"t","rating":6}`,
		}
		for _, body := range bodies {
			rec := commentRoute(http.MethodPost, "/comments/{movieId}", AddComment, "/comments/1", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
		}
	})
}

func TestGetCommentsInvalidID(t *testing.T) {
	rec := commentRoute(http.MethodGet, "/comments/{movieId}", GetCommentsByID, "/comments/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"movie id missing"}`, rec.Body.String())
}
