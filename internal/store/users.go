package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"smartlist/internal/database"
	"smartlist/internal/models"
)

type pgUserStore struct {
	db *database.DB
}

const userColumns = "id, username, email, password_hash, created_at, updated_at"

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *pgUserStore) CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	return scanUser(s.db.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING `+userColumns,
		username, email, passwordHash))
}

func (s *pgUserStore) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	return scanUser(s.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

func (s *pgUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(s.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email))
}

func (s *pgUserStore) GetUserByLogin(ctx context.Context, emailOrUsername string) (*models.User, error) {
	return scanUser(s.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1 OR username = $1", emailOrUsername))
}

func (s *pgUserStore) UserExists(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 OR email = $2)",
		username, email).Scan(&exists)
	return exists, err
}
