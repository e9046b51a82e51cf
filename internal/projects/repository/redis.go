package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/uptask/uptask-backend/internal/projects/domain"
	"github.com/uptask/uptask-backend/internal/storage/redisstore"
)

// RedisRepository stores projects as JSON documents indexed by creator.
type RedisRepository struct {
	docs *redisstore.Collection[domain.Project]
}

func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{docs: redisstore.NewCollection[domain.Project](client, "projects")}
}

func byCreator(creator string) redisstore.Index {
	return redisstore.Index{Field: "creator", Value: creator}
}

func (r *RedisRepository) Create(ctx context.Context, p *domain.Project) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	return r.docs.Insert(ctx, p.ID, p, byCreator(p.Creator))
}

func (r *RedisRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	p, err := r.docs.Get(ctx, id)
	if errors.Is(err, redisstore.ErrNotFound) {
		return nil, domain.ErrNotFound
	}
	return p, err
}

func (r *RedisRepository) ListByCreator(ctx context.Context, creator string) ([]domain.Project, error) {
	return r.docs.List(ctx, byCreator(creator))
}

func (r *RedisRepository) Update(ctx context.Context, p *domain.Project) error {
	err := r.docs.Replace(ctx, p.ID, p)
	if errors.Is(err, redisstore.ErrNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func (r *RedisRepository) Delete(ctx context.Context, id string) error {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	err = r.docs.Delete(ctx, id, byCreator(p.Creator))
	if errors.Is(err, redisstore.ErrNotFound) {
		return domain.ErrNotFound
	}
	return err
}
