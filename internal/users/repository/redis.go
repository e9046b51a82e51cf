package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/uptask/uptask-backend/internal/storage/redisstore"
	"github.com/uptask/uptask-backend/internal/users/domain"
)

// userDocument is the stored form of a user. Unlike domain.User it
// serializes the password hash.
type userDocument struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (d *userDocument) user() *domain.User {
	return &domain.User{
		ID:           d.ID,
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}
}

// RedisRepository stores users as JSON documents with a unique email claim.
type RedisRepository struct {
	docs *redisstore.Collection[userDocument]
}

func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{docs: redisstore.NewCollection[userDocument](client, "users")}
}

func (r *RedisRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	u.Email = domain.NormalizeEmail(u.Email)

	ok, err := r.docs.Reserve(ctx, "email", u.Email, u.ID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrEmailTaken
	}

	doc := &userDocument{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
	if err := r.docs.Insert(ctx, u.ID, doc); err != nil {
		if rerr := r.docs.Release(ctx, "email", u.Email); rerr != nil {
			return fmt.Errorf("%w (release email: %v)", err, rerr)
		}
		return err
	}
	return nil
}

func (r *RedisRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	doc, err := r.docs.Get(ctx, id)
	if errors.Is(err, redisstore.ErrNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.user(), nil
}

func (r *RedisRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	id, err := r.docs.Lookup(ctx, "email", domain.NormalizeEmail(email))
	if errors.Is(err, redisstore.ErrNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}
