package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cinelog/cinelog-backend/internal/handlers"
	"github.com/cinelog/cinelog-backend/internal/middleware"
)

// Deps carries the wired handlers into route registration.
type Deps struct {
	Auth      *handlers.AuthHandler
	Movies    *handlers.MovieHandler
	Upload    *handlers.UploadHandler
	Feed      *handlers.FeedHandler
	JWTSecret string
}

func SetupRoutes(r *chi.Mux, d Deps) {
	r.Get("/api/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"All up and running !!"}`))
	})

	// Public auth surface
	r.Post("/users/register", d.Auth.Register)
	r.Post("/users/login", d.Auth.Login)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", d.Auth.Signup)
		r.Post("/login", d.Auth.Signin)
		r.Get("/me", d.Auth.Me)
		r.Get("/logout", d.Auth.Logout)
	})

	// Everything below requires a valid bearer token.
	r.Group(func(r chi.Router) {
		r.Use(middleware.VerifyToken(d.JWTSecret))

		r.Route("/movies", func(r chi.Router) {
			r.Get("/", d.Movies.GetMovies)
			r.Get("/top", d.Movies.GetTopRatedMovies)
			r.Get("/me", d.Movies.GetSeenMovies)
		})

		r.Post("/ratings/{movieId}", d.Movies.AddRating)

		r.Route("/comments", func(r chi.Router) {
			r.Get("/{movieId}", handlers.GetCommentsByID)
			r.Post("/{movieId}", handlers.AddComment)
		})

		r.Route("/messages", func(r chi.Router) {
			r.Get("/", handlers.GetMessages)
			r.Post("/add/message", handlers.AddMessage)
			r.Get("/{messageId}", handlers.GetMessageByID)
			r.Put("/edit/{messageId}", handlers.EditMessage)
			r.Delete("/delete/{messageId}", handlers.DeleteMessage)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Put("/", d.Auth.EditPassword)
			r.Post("/", d.Auth.Logout)
		})

		r.Post("/api/upload", d.Upload.UploadPoster)
	})

	// Live message feed (token checked inside; browsers can't set headers on WS)
	r.Get("/ws/messages", d.Feed.Stream)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"message":"Not Found"}}`))
	})
}
