package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uptask/uptask-backend/internal/projects/domain"
	"github.com/uptask/uptask-backend/internal/storage/postgres/pgtest"
)

func setCreatedAt(t *testing.T, pool *pgxpool.Pool, id string, at time.Time) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `UPDATE projects SET created_at = $2 WHERE id = $1`, id, at)
	require.NoError(t, err)
}

func TestPostgresRepository_CreateGet(t *testing.T) {
	pool := pgtest.Pool(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()
	creator := uuid.NewString()

	p := &domain.Project{Name: "Tienda Virtual", Creator: creator}
	require.NoError(t, repo.Create(ctx, p))
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, creator, got.Creator)

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.GetByID(ctx, "5f1a2b3c4d5e6f7a8b9c0d1e")
	assert.ErrorIs(t, err, domain.ErrNotFound, "ids that are not uuids never reach the database")
}

func TestPostgresRepository_ListByCreator(t *testing.T) {
	pool := pgtest.Pool(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()
	creator := uuid.NewString()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, name := range []string{"primero", "segundo", "tercero"} {
		p := &domain.Project{Name: name, Creator: creator}
		require.NoError(t, repo.Create(ctx, p))
		setCreatedAt(t, pool, p.ID, base.Add(time.Duration(i)*time.Hour))
	}
	require.NoError(t, repo.Create(ctx, &domain.Project{Name: "ajeno", Creator: uuid.NewString()}))

	items, err := repo.ListByCreator(ctx, creator)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "tercero", items[0].Name)
	assert.Equal(t, "segundo", items[1].Name)
	assert.Equal(t, "primero", items[2].Name)

	empty, err := repo.ListByCreator(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestPostgresRepository_Update(t *testing.T) {
	pool := pgtest.Pool(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()

	p := &domain.Project{Name: "Tienda Virtual", Creator: uuid.NewString()}
	require.NoError(t, repo.Create(ctx, p))

	p.Name = "Intranet"
	require.NoError(t, repo.Update(ctx, p))
	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Intranet", got.Name)

	assert.ErrorIs(t, repo.Update(ctx, &domain.Project{ID: uuid.NewString(), Name: "x"}), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &domain.Project{ID: "by_creator:x", Name: "x"}), domain.ErrNotFound)
}

func TestPostgresRepository_DeleteCascadesTasks(t *testing.T) {
	pool := pgtest.Pool(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()

	p := &domain.Project{Name: "Tienda Virtual", Creator: uuid.NewString()}
	require.NoError(t, repo.Create(ctx, p))
	_, err := pool.Exec(ctx, `INSERT INTO tasks (id, name, project_id) VALUES ($1, 'Elegir plataforma', $2)`, uuid.NewString(), p.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, p.ID))

	var n int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM tasks WHERE project_id = $1`, p.ID).Scan(&n))
	assert.Zero(t, n)

	assert.ErrorIs(t, repo.Delete(ctx, p.ID), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), domain.ErrNotFound)
}
