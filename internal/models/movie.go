package models

import "time"

// Movie is a row in the PostgreSQL movies table.
type Movie struct {
	MovieID        int       `json:"movie_id"`
	Title          string    `json:"title"`
	ReleaseDate    time.Time `json:"release_date"`
	Author         string    `json:"author"`
	Type           string    `json:"type"`
	Poster         string    `json:"poster"`
	BackdropPoster string    `json:"backdrop_poster"`
	Overview       string    `json:"overview"`
	Rating         float64   `json:"rating"`
}

// Rating is a single user's rating of a movie. The movies.rating column holds
// the running average of these rows per movie.
type Rating struct {
	Email   string  `json:"email"`
	MovieID int     `json:"movie_id"`
	Rating  float64 `json:"rating"`
}
