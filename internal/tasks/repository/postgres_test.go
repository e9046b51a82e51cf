package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uptask/uptask-backend/internal/storage/postgres/pgtest"
	"github.com/uptask/uptask-backend/internal/tasks/domain"
)

func insertProject(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	id := uuid.NewString()
	_, err := pool.Exec(context.Background(), `INSERT INTO projects (id, name, creator) VALUES ($1, 'Tienda Virtual', $2)`, id, uuid.NewString())
	require.NoError(t, err)
	return id
}

func TestPostgresRepository_CreateGet(t *testing.T) {
	pool := pgtest.Pool(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()
	projectID := insertProject(t, pool)

	task := &domain.Task{Name: "Elegir plataforma", State: true, Project: projectID}
	require.NoError(t, repo.Create(ctx, task))
	assert.NotEmpty(t, task.ID)
	assert.False(t, task.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Elegir plataforma", got.Name)
	assert.True(t, got.State)
	assert.Equal(t, projectID, got.Project)

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.GetByID(ctx, "by_project:"+projectID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgresRepository_CreateUnknownProject(t *testing.T) {
	pool := pgtest.Pool(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()

	err := repo.Create(ctx, &domain.Task{Name: "huérfana", Project: uuid.NewString()})
	assert.ErrorIs(t, err, ErrUnknownProject, "foreign key violations map to ErrUnknownProject")

	err = repo.Create(ctx, &domain.Task{Name: "huérfana", Project: "not-a-uuid"})
	assert.ErrorIs(t, err, ErrUnknownProject)
}

func TestPostgresRepository_ListByProject(t *testing.T) {
	pool := pgtest.Pool(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()
	projectID := insertProject(t, pool)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, name := range []string{"primera", "segunda", "tercera"} {
		task := &domain.Task{Name: name, Project: projectID}
		require.NoError(t, repo.Create(ctx, task))
		_, err := pool.Exec(ctx, `UPDATE tasks SET created_at = $2 WHERE id = $1`, task.ID, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
	}
	require.NoError(t, repo.Create(ctx, &domain.Task{Name: "ajena", Project: insertProject(t, pool)}))

	items, err := repo.ListByProject(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "tercera", items[0].Name)
	assert.Equal(t, "segunda", items[1].Name)
	assert.Equal(t, "primera", items[2].Name)

	empty, err := repo.ListByProject(ctx, "not-a-uuid")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestPostgresRepository_UpdateDelete(t *testing.T) {
	pool := pgtest.Pool(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()
	projectID := insertProject(t, pool)

	task := &domain.Task{Name: "Elegir plataforma", Project: projectID}
	require.NoError(t, repo.Create(ctx, task))

	task.Name = "Elegir hosting"
	task.State = true
	require.NoError(t, repo.Update(ctx, task))
	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Elegir hosting", got.Name)
	assert.True(t, got.State)

	assert.ErrorIs(t, repo.Update(ctx, &domain.Task{ID: uuid.NewString()}), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &domain.Task{ID: "missing"}), domain.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, task.ID))
	assert.ErrorIs(t, repo.Delete(ctx, task.ID), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), domain.ErrNotFound)
}

func TestPostgresRepository_DeleteByProject(t *testing.T) {
	pool := pgtest.Pool(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()
	projectID := insertProject(t, pool)
	otherID := insertProject(t, pool)

	for _, name := range []string{"a", "b"} {
		require.NoError(t, repo.Create(ctx, &domain.Task{Name: name, Project: projectID}))
	}
	require.NoError(t, repo.Create(ctx, &domain.Task{Name: "keep", Project: otherID}))

	n, err := repo.DeleteByProject(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	left, err := repo.ListByProject(ctx, otherID)
	require.NoError(t, err)
	assert.Len(t, left, 1)

	n, err = repo.DeleteByProject(ctx, "not-a-uuid")
	require.NoError(t, err)
	assert.Zero(t, n)
}
