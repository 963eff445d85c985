package database

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
)

var PostgresDB *sql.DB

// ConnectPostgres connects to PostgreSQL and bootstraps the schema.
func ConnectPostgres(postgresURI string) error {
	var err error

	PostgresDB, err = sql.Open("postgres", postgresURI)
	if err != nil {
		return err
	}

	// Connection pool settings
	PostgresDB.SetMaxOpenConns(25)
	PostgresDB.SetMaxIdleConns(5)
	PostgresDB.SetConnMaxLifetime(5 * time.Minute)

	if err = PostgresDB.Ping(); err != nil {
		return err
	}

	log.Println("✅ Connected to PostgreSQL")

	return InitPostgresTables()
}

// InitPostgresTables creates the relational tables if they don't exist.
func InitPostgresTables() error {
	queries := []string{
		// Users: email is the identity, password holds the argon2id hash only
		`CREATE TABLE IF NOT EXISTS users (
			email VARCHAR(255) PRIMARY KEY,
			username VARCHAR(255) NOT NULL,
			password VARCHAR(255) NOT NULL,
			creation_date DATE NOT NULL DEFAULT CURRENT_DATE
		)`,

		// Addresses: one row per user, written in the same transaction as the user
		`CREATE TABLE IF NOT EXISTS addresses (
			email VARCHAR(255) NOT NULL REFERENCES users(email) ON DELETE CASCADE,
			country VARCHAR(100) NOT NULL,
			city VARCHAR(100),
			street VARCHAR(255)
		)`,

		// Movie catalog; rating holds the running per-movie average
		`CREATE TABLE IF NOT EXISTS movies (
			movie_id SERIAL PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			release_date DATE,
			author VARCHAR(255),
			type VARCHAR(100) NOT NULL,
			poster TEXT,
			backdrop_poster TEXT,
			overview TEXT,
			rating NUMERIC(3,1) NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS seen_movies (
			email VARCHAR(255) NOT NULL REFERENCES users(email) ON DELETE CASCADE,
			movie_id INTEGER NOT NULL REFERENCES movies(movie_id) ON DELETE CASCADE,
			UNIQUE(email, movie_id)
		)`,

		`CREATE TABLE IF NOT EXISTS ratings (
			email VARCHAR(255) NOT NULL REFERENCES users(email) ON DELETE CASCADE,
			movie_id INTEGER NOT NULL REFERENCES movies(movie_id) ON DELETE CASCADE,
			rating NUMERIC(2,1) NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_addresses_email ON addresses(email)`,
		`CREATE INDEX IF NOT EXISTS idx_movies_type ON movies(type)`,
		`CREATE INDEX IF NOT EXISTS idx_movies_rating ON movies(rating)`,
		`CREATE INDEX IF NOT EXISTS idx_movies_release_date ON movies(release_date)`,
		`CREATE INDEX IF NOT EXISTS idx_seen_movies_email ON seen_movies(email)`,
		`CREATE INDEX IF NOT EXISTS idx_ratings_movie_id ON ratings(movie_id)`,
	}

	for _, query := range queries {
		if _, err := PostgresDB.Exec(query); err != nil {
			return err
		}
	}

	log.Println("✅ PostgreSQL tables initialized")
	return nil
}

// DisconnectPostgres closes the PostgreSQL connection pool.
func DisconnectPostgres() error {
	if PostgresDB != nil {
		return PostgresDB.Close()
	}
	return nil
}
