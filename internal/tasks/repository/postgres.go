package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uptask/uptask-backend/internal/storage/postgres"
	"github.com/uptask/uptask-backend/internal/tasks/domain"
)

// ErrUnknownProject is returned when a task references a project row that does not exist.
var ErrUnknownProject = errors.New("task references unknown project")

// PostgresRepository provides persistence operations for tasks
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, t *domain.Task) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if !postgres.ValidID(t.Project) {
		return ErrUnknownProject
	}

	const q = `
INSERT INTO tasks (id, name, state, project_id)
VALUES ($1, $2, $3, $4)
RETURNING created_at;
`
	err := r.db.QueryRow(ctx, q, t.ID, t.Name, t.State, t.Project).Scan(&t.CreatedAt)
	if postgres.IsForeignKeyViolation(err) {
		return ErrUnknownProject
	}
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	if !postgres.ValidID(id) {
		return nil, domain.ErrNotFound
	}

	const q = `
SELECT id, name, state, project_id, created_at
FROM tasks
WHERE id = $1;
`
	var t domain.Task
	err := r.db.QueryRow(ctx, q, id).Scan(&t.ID, &t.Name, &t.State, &t.Project, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &t, nil
}

// ListByProject returns the project's tasks, newest first.
func (r *PostgresRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	out := make([]domain.Task, 0)
	if !postgres.ValidID(projectID) {
		return out, nil
	}

	const q = `
SELECT id, name, state, project_id, created_at
FROM tasks
WHERE project_id = $1
ORDER BY created_at DESC;
`
	rows, err := r.db.Query(ctx, q, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Name, &t.State, &t.Project, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return out, nil
}

// Update persists name and state. The owning project never changes.
func (r *PostgresRepository) Update(ctx context.Context, t *domain.Task) error {
	if !postgres.ValidID(t.ID) {
		return domain.ErrNotFound
	}

	tag, err := r.db.Exec(ctx, `UPDATE tasks SET name = $2, state = $3 WHERE id = $1`, t.ID, t.Name, t.State)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if !postgres.ValidID(id) {
		return domain.ErrNotFound
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteByProject(ctx context.Context, projectID string) (int, error) {
	if !postgres.ValidID(projectID) {
		return 0, nil
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE project_id = $1`, projectID)
	if err != nil {
		return 0, fmt.Errorf("delete project tasks: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
