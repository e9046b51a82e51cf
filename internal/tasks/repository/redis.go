package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/uptask/uptask-backend/internal/storage/redisstore"
	"github.com/uptask/uptask-backend/internal/tasks/domain"
)

// RedisRepository stores tasks as JSON documents indexed by project.
type RedisRepository struct {
	docs *redisstore.Collection[domain.Task]
}

func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{docs: redisstore.NewCollection[domain.Task](client, "tasks")}
}

func byProject(projectID string) redisstore.Index {
	return redisstore.Index{Field: "project", Value: projectID}
}

func (r *RedisRepository) Create(ctx context.Context, t *domain.Task) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	return r.docs.Insert(ctx, t.ID, t, byProject(t.Project))
}

func (r *RedisRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	t, err := r.docs.Get(ctx, id)
	if errors.Is(err, redisstore.ErrNotFound) {
		return nil, domain.ErrNotFound
	}
	return t, err
}

func (r *RedisRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	return r.docs.List(ctx, byProject(projectID))
}

func (r *RedisRepository) Update(ctx context.Context, t *domain.Task) error {
	err := r.docs.Replace(ctx, t.ID, t)
	if errors.Is(err, redisstore.ErrNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func (r *RedisRepository) Delete(ctx context.Context, id string) error {
	t, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	err = r.docs.Delete(ctx, id, byProject(t.Project))
	if errors.Is(err, redisstore.ErrNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func (r *RedisRepository) DeleteByProject(ctx context.Context, projectID string) (int, error) {
	return r.docs.DeleteIndex(ctx, byProject(projectID))
}
