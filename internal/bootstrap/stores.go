package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/uptask/uptask-backend/config"
	httpapi "github.com/uptask/uptask-backend/internal/api/http"
	projectrepo "github.com/uptask/uptask-backend/internal/projects/repository"
	projectservice "github.com/uptask/uptask-backend/internal/projects/service"
	"github.com/uptask/uptask-backend/internal/storage/postgres"
	"github.com/uptask/uptask-backend/internal/storage/redisstore"
	taskrepo "github.com/uptask/uptask-backend/internal/tasks/repository"
	taskservice "github.com/uptask/uptask-backend/internal/tasks/service"
	userrepo "github.com/uptask/uptask-backend/internal/users/repository"
	userservice "github.com/uptask/uptask-backend/internal/users/service"
)

// TaskStore is the task repository plus the bulk delete used when a project is removed.
type TaskStore interface {
	taskservice.Repository
	projectservice.TaskPurger
}

// Stores groups the repositories of one storage backend.
type Stores struct {
	Name     string
	Projects projectservice.Repository
	Tasks    TaskStore
	Users    userservice.Repository
	Ping     httpapi.PingFunc
	Close    func()
}

// OpenStores connects to the backend selected by STORE_DRIVER.
func OpenStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverRedis:
		client, err := redisstore.NewClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, err
		}
		return NewRedisStores(client), nil

	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, &cfg.Database)
		if err != nil {
			return nil, err
		}
		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return NewPostgresStores(pool), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func NewRedisStores(client *redis.Client) *Stores {
	return &Stores{
		Name:     config.StoreDriverRedis,
		Projects: projectrepo.NewRedisRepository(client),
		Tasks:    taskrepo.NewRedisRepository(client),
		Users:    userrepo.NewRedisRepository(client),
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
		Close: func() { _ = client.Close() },
	}
}

func NewPostgresStores(pool *pgxpool.Pool) *Stores {
	return &Stores{
		Name:     config.StoreDriverPostgres,
		Projects: projectrepo.NewPostgresRepository(pool),
		Tasks:    taskrepo.NewPostgresRepository(pool),
		Users:    userrepo.NewPostgresRepository(pool),
		Ping:     pool.Ping,
		Close:    pool.Close,
	}
}
