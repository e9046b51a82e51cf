package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uptask/uptask-backend/internal/apperror"
	"github.com/uptask/uptask-backend/internal/projects/domain"
	"github.com/uptask/uptask-backend/internal/projects/repository"
	taskdomain "github.com/uptask/uptask-backend/internal/tasks/domain"
	taskrepo "github.com/uptask/uptask-backend/internal/tasks/repository"
)

type fixture struct {
	svc   *ProjectService
	repo  *repository.RedisRepository
	tasks *taskrepo.RedisRepository
}

func setup(t *testing.T) fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := repository.NewRedisRepository(client)
	tasks := taskrepo.NewRedisRepository(client)
	return fixture{svc: NewProjectService(repo, tasks), repo: repo, tasks: tasks}
}

func strPtr(s string) *string { return &s }

func TestCreate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, "user-a", "  Tienda Virtual ")
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Tienda Virtual", p.Name)
	assert.Equal(t, "user-a", p.Creator)
	assert.False(t, p.CreatedAt.IsZero())

	stored, err := f.repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-a", stored.Creator)
}

func TestCreate_BlankName(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Create(context.Background(), "user-a", "   ")
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestList_OnlyOwnNewestFirst(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	for i, name := range []string{"uno", "dos", "tres"} {
		require.NoError(t, f.repo.Create(ctx, &domain.Project{Name: name, Creator: "user-a", CreatedAt: base.Add(time.Duration(i) * time.Minute)}))
	}
	require.NoError(t, f.repo.Create(ctx, &domain.Project{Name: "ajeno", Creator: "user-b", CreatedAt: base}))

	items, err := f.svc.List(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"tres", "dos", "uno"}, []string{items[0].Name, items[1].Name, items[2].Name})
	for _, p := range items {
		assert.Equal(t, "user-a", p.Creator)
	}

	none, err := f.svc.List(ctx, "user-c")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	p, err := f.svc.Create(ctx, "user-a", "Tienda Virtual")
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, p.ID, "user-a", domain.ProjectPatch{Name: strPtr("Intranet")})
	require.NoError(t, err)
	assert.Equal(t, "Intranet", updated.Name)
	assert.Equal(t, "user-a", updated.Creator)
	assert.Equal(t, p.ID, updated.ID)

	stored, err := f.repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Intranet", stored.Name)
}

func TestUpdate_EmptyPatchIsNoop(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	p, err := f.svc.Create(ctx, "user-a", "Tienda Virtual")
	require.NoError(t, err)

	got, err := f.svc.Update(ctx, p.ID, "user-a", domain.ProjectPatch{})
	require.NoError(t, err)
	assert.Equal(t, "Tienda Virtual", got.Name)
}

func TestUpdate_Errors(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	p, err := f.svc.Create(ctx, "user-a", "Tienda Virtual")
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, "missing", "user-a", domain.ProjectPatch{Name: strPtr("x")})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = f.svc.Update(ctx, p.ID, "user-b", domain.ProjectPatch{Name: strPtr("Robado")})
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))

	_, err = f.svc.Update(ctx, p.ID, "user-a", domain.ProjectPatch{Name: strPtr(" ")})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = f.svc.Update(ctx, p.ID, "user-b", domain.ProjectPatch{Name: strPtr(" ")})
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))

	stored, err := f.repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tienda Virtual", stored.Name, "failed updates leave the project untouched")
}

func TestDelete_CascadesTasks(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	p, err := f.svc.Create(ctx, "user-a", "Tienda Virtual")
	require.NoError(t, err)
	other, err := f.svc.Create(ctx, "user-a", "Intranet")
	require.NoError(t, err)

	require.NoError(t, f.tasks.Create(ctx, &taskdomain.Task{Name: "Elegir plataforma", Project: p.ID}))
	require.NoError(t, f.tasks.Create(ctx, &taskdomain.Task{Name: "Elegir hosting", Project: p.ID}))
	require.NoError(t, f.tasks.Create(ctx, &taskdomain.Task{Name: "Diseño", Project: other.ID}))

	require.NoError(t, f.svc.Delete(ctx, p.ID, "user-a"))

	_, err = f.repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	left, err := f.tasks.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	kept, err := f.tasks.ListByProject(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestDelete_Errors(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	p, err := f.svc.Create(ctx, "user-a", "Tienda Virtual")
	require.NoError(t, err)

	err = f.svc.Delete(ctx, "missing", "user-a")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	err = f.svc.Delete(ctx, p.ID, "user-b")
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))

	_, err = f.repo.GetByID(ctx, p.ID)
	assert.NoError(t, err)
}

type brokenRepo struct{ Repository }

func (brokenRepo) GetByID(context.Context, string) (*domain.Project, error) {
	return nil, errors.New("connection reset")
}

func (brokenRepo) ListByCreator(context.Context, string) ([]domain.Project, error) {
	return nil, errors.New("connection reset")
}

func TestStoreFailuresAreInternal(t *testing.T) {
	svc := NewProjectService(brokenRepo{}, nil)
	ctx := context.Background()

	_, err := svc.List(ctx, "user-a")
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))

	_, err = svc.Authorize(ctx, "p1", "user-a")
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "connection reset")
}
