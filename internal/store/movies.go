package store

import (
	"context"
	"database/sql"

	"github.com/cinelog/cinelog-backend/internal/models"
)

// GetMovies returns the whole catalog.
func (s *PostgresStore) GetMovies(ctx context.Context) ([]models.Movie, error) {
	return s.queryMovies(ctx, "SELECT movie_id, title, release_date, author, type, poster, backdrop_poster, overview, rating FROM movies ORDER BY type, movie_id")
}

// GetMoviesByCategory returns movies of one type, newest release first.
func (s *PostgresStore) GetMoviesByCategory(ctx context.Context, category string) ([]models.Movie, error) {
	return s.queryMovies(ctx, "SELECT movie_id, title, release_date, author, type, poster, backdrop_poster, overview, rating FROM movies WHERE type = $1 ORDER BY release_date DESC", category)
}

// GetTopRatedMovies returns the ten highest rated movies.
func (s *PostgresStore) GetTopRatedMovies(ctx context.Context) ([]models.Movie, error) {
	return s.queryMovies(ctx, "SELECT movie_id, title, release_date, author, type, poster, backdrop_poster, overview, rating FROM movies ORDER BY rating DESC LIMIT 10")
}

// GetSeenMovies returns the movies a user has marked as seen.
func (s *PostgresStore) GetSeenMovies(ctx context.Context, email string) ([]models.Movie, error) {
	return s.queryMovies(ctx, `
		SELECT M.movie_id, M.title, M.release_date, M.author, M.type, M.poster, M.backdrop_poster, M.overview, M.rating
		FROM seen_movies S JOIN movies M ON S.movie_id = M.movie_id
		WHERE S.email = $1`, NormalizeEmail(email))
}

// AddRating persists a user's rating and recomputes the movie's average into
// movies.rating, all in one transaction. Returns the new average.
func (s *PostgresStore) AddRating(ctx context.Context, r models.Rating) (float64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO ratings (email, movie_id, rating) VALUES ($1, $2, $3)",
		NormalizeEmail(r.Email), r.MovieID, r.Rating)
	if err != nil {
		// The foreign key fires before the update for unknown movies.
		if foreignKeyViolation(err) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	var average float64
	err = tx.QueryRowContext(ctx,
		"SELECT AVG(rating) FROM ratings WHERE movie_id = $1", r.MovieID).Scan(&average)
	if err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE movies SET rating = $1 WHERE movie_id = $2", average, r.MovieID)
	if err != nil {
		return 0, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return 0, ErrNotFound
	}

	return average, tx.Commit()
}

func (s *PostgresStore) queryMovies(ctx context.Context, query string, args ...interface{}) ([]models.Movie, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []models.Movie{}
	for rows.Next() {
		var m models.Movie
		var releaseDate sql.NullTime
		var author, poster, backdrop, overview sql.NullString
		if err := rows.Scan(&m.MovieID, &m.Title, &releaseDate, &author, &m.Type, &poster, &backdrop, &overview, &m.Rating); err != nil {
			return nil, err
		}
		m.ReleaseDate = releaseDate.Time
		m.Author = author.String
		m.Poster = poster.String
		m.BackdropPoster = backdrop.String
		m.Overview = overview.String
		movies = append(movies, m)
	}
	return movies, rows.Err()
}
