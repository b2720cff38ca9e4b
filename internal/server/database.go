package server

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/philly/folio/internal/adapters/memory"
	"github.com/philly/folio/internal/adapters/postgres"
	"github.com/philly/folio/internal/platform/logger"
	"github.com/philly/folio/internal/posts/ports"
	taxonomyports "github.com/philly/folio/internal/taxonomy/ports"
)

// ConnectDatabase creates a new database connection pool and returns it with a cleanup function
func ConnectDatabase(ctx context.Context, config Config, log logger.Logger) (*pgxpool.Pool, func(), error) {
	log.Info(ctx, "connecting to database")

	// Parse config from URL and set pool defaults
	poolConfig, err := pgxpool.ParseConfig(config.DatabaseURL)
	if err != nil {
		log.Error(ctx, "failed to parse database URL", "error", err)
		return nil, nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Configure connection pool settings
	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = 5 * time.Minute
	poolConfig.MaxConnIdleTime = 1 * time.Minute

	log.Debug(ctx, "database pool configuration",
		"max_conns", poolConfig.MaxConns,
		"min_conns", poolConfig.MinConns,
		"max_conn_lifetime", poolConfig.MaxConnLifetime,
		"max_conn_idle_time", poolConfig.MaxConnIdleTime,
	)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Error(ctx, "failed to create connection pool", "error", err)
		return nil, nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		log.Error(ctx, "failed to ping database", "error", err)
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info(ctx, "database connection established successfully")

	cleanup := func() {
		log.Info(context.Background(), "closing database connection pool")
		pool.Close()
	}

	return pool, cleanup, nil
}

// Storage is the set of repositories selected by STORAGE_DRIVER
type Storage struct {
	Posts      ports.PostRepository
	Tags       taxonomyports.TagRepository
	Categories taxonomyports.CategoryRepository
	// Durable is false when posts are lost on restart
	Durable bool
}

// OpenStorage opens the configured storage driver. The cleanup releases
// whatever the driver holds.
func OpenStorage(ctx context.Context, config Config, log logger.Logger) (Storage, func(), error) {
	switch config.StorageDriver {
	case StorageDriverMemory:
		log.Warn(ctx, "using in-memory storage, posts are lost on restart")
		return Storage{
			Posts:      memory.NewPostRepository(),
			Tags:       memory.NewTagRepository(),
			Categories: memory.NewCategoryRepository(),
		}, func() {}, nil
	case StorageDriverPostgres:
		pool, cleanup, err := ConnectDatabase(ctx, config, log)
		if err != nil {
			return Storage{}, nil, err
		}
		return Storage{
			Posts:      postgres.NewPostRepository(pool),
			Tags:       postgres.NewTagRepository(pool),
			Categories: postgres.NewCategoryRepository(pool),
			Durable:    true,
		}, cleanup, nil
	default:
		return Storage{}, nil, fmt.Errorf("unknown storage driver %q", config.StorageDriver)
	}
}
