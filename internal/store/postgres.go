package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	"github.com/cinelog/cinelog-backend/internal/models"
)

// PostgresStore is the relational data access layer for users, addresses,
// movies and ratings.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// NormalizeEmail lowercases and trims an email before it is used as identity.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// uniqueViolation reports whether err is a PostgreSQL unique-constraint error.
// The unique constraint is the source of truth for duplicate registrations;
// the pre-insert existence check is only an optimization.
func uniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// foreignKeyViolation reports whether err is a PostgreSQL foreign-key error,
// which surfaces when a child row references a missing parent.
func foreignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

// RegisterUser inserts a user row and its address row in one transaction.
// The existence check runs on the transaction's connection so it cannot race
// against the insert on a different pooled connection. Either both rows
// persist or neither does.
func (s *PostgresStore) RegisterUser(ctx context.Context, user models.User, addr models.Address) error {
	email := NormalizeEmail(user.Email)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM users WHERE email = $1", email).Scan(&exists)
	if err == nil {
		return ErrEmailTaken
	}
	if err != sql.ErrNoRows {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (email, username, password, creation_date)
		VALUES ($1, $2, $3, $4)
	`, email, strings.TrimSpace(user.Username), user.Password, user.CreationDate)
	if err != nil {
		if uniqueViolation(err) {
			return ErrEmailTaken
		}
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO addresses (email, country, city, street)
		VALUES ($1, $2, $3, $4)
	`, email, addr.Country, nullable(addr.City), nullable(addr.Street))
	if err != nil {
		return err
	}

	return tx.Commit()
}

// CreateUser inserts a user row without an address (the /auth/signup variant).
func (s *PostgresStore) CreateUser(ctx context.Context, user models.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (email, username, password, creation_date)
		VALUES ($1, $2, $3, $4)
	`, NormalizeEmail(user.Email), strings.TrimSpace(user.Username), user.Password, user.CreationDate)
	if uniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

// GetUserByEmail returns the user row for an email, ErrNotFound when absent.
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT email, username, password, creation_date
		FROM users WHERE email = $1
	`, NormalizeEmail(email)).Scan(&user.Email, &user.Username, &user.Password, &user.CreationDate)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePassword replaces the stored password hash for a user.
func (s *PostgresStore) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET password = $1 WHERE email = $2",
		passwordHash, NormalizeEmail(email))
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
