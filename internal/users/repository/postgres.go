package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uptask/uptask-backend/internal/storage/postgres"
	"github.com/uptask/uptask-backend/internal/users/domain"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = domain.NormalizeEmail(u.Email)

	const q = `
INSERT INTO users (id, name, email, password_hash)
VALUES ($1, $2, $3, $4)
RETURNING created_at;
`
	err := r.db.QueryRow(ctx, q, u.ID, u.Name, u.Email, u.PasswordHash).Scan(&u.CreatedAt)
	if postgres.IsUniqueViolation(err) {
		return domain.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if !postgres.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	return r.getOne(ctx, `
SELECT id, name, email, password_hash, created_at
FROM users
WHERE id = $1;
`, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `
SELECT id, name, email, password_hash, created_at
FROM users
WHERE email = $1;
`, domain.NormalizeEmail(email))
}

func (r *PostgresRepository) getOne(ctx context.Context, q string, arg string) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx, q, arg).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
