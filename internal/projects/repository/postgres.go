package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uptask/uptask-backend/internal/projects/domain"
	"github.com/uptask/uptask-backend/internal/storage/postgres"
)

// PostgresRepository provides persistence operations for projects
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p *domain.Project) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	const q = `
INSERT INTO projects (id, name, creator)
VALUES ($1, $2, $3)
RETURNING created_at;
`
	if err := r.db.QueryRow(ctx, q, p.ID, p.Name, p.Creator).Scan(&p.CreatedAt); err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	if !postgres.ValidID(id) {
		return nil, domain.ErrNotFound
	}

	const q = `
SELECT id, name, creator, created_at
FROM projects
WHERE id = $1;
`
	var p domain.Project
	err := r.db.QueryRow(ctx, q, id).Scan(&p.ID, &p.Name, &p.Creator, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}

// ListByCreator returns the creator's projects, newest first.
func (r *PostgresRepository) ListByCreator(ctx context.Context, creator string) ([]domain.Project, error) {
	const q = `
SELECT id, name, creator, created_at
FROM projects
WHERE creator = $1
ORDER BY created_at DESC;
`
	rows, err := r.db.Query(ctx, q, creator)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Project, 0)
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Creator, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return out, nil
}

// Update persists the mutable fields. Creator and created_at never change.
func (r *PostgresRepository) Update(ctx context.Context, p *domain.Project) error {
	if !postgres.ValidID(p.ID) {
		return domain.ErrNotFound
	}

	tag, err := r.db.Exec(ctx, `UPDATE projects SET name = $2 WHERE id = $1`, p.ID, p.Name)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the project; its tasks go with it via ON DELETE CASCADE.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if !postgres.ValidID(id) {
		return domain.ErrNotFound
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
