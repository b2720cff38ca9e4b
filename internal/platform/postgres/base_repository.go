package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgxpool.Pool the repositories use
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row
	Ping(ctx context.Context) error
}

var _ Querier = (*pgxpool.Pool)(nil)

// BaseRepository contains the common database components that all repositories need
type BaseRepository struct {
	DB Querier                 // Database connection
	SB sq.StatementBuilderType // SQL builder with PostgreSQL placeholders
}

// NewBaseRepository creates a new base repository on db
func NewBaseRepository(db Querier) BaseRepository {
	return BaseRepository{
		DB: db,
		SB: sq.StatementBuilder.PlaceholderFormat(sq.Dollar), // PostgreSQL $1, $2 placeholders
	}
}
