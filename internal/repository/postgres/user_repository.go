package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/besco/backend-go/internal/domain"
)

type userRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *userRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u,
		`SELECT id, username, email, hashed_password, is_active, created_at
		 FROM users WHERE username = $1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("user %q", username)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	var created domain.User
	err := r.db.GetContext(ctx, &created,
		`INSERT INTO users (username, email, hashed_password, is_active)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, username, email, hashed_password, is_active, created_at`,
		u.Username, u.Email, u.HashedPassword, u.IsActive)
	if isUniqueViolation(err) {
		return nil, domain.Conflictf("user %q", u.Username)
	}
	if err != nil {
		return nil, err
	}
	return &created, nil
}
