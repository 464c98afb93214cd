package adapters

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nextdb/gateway/core"
)

// Register client
func init() {
	register(core.KindPostgres, &Postgres{})
}

var _ core.Adapter = (*Postgres)(nil)

type Postgres struct{}

// Connect opens a bounded pool and pings it. Statements are described on
// every execution, nothing is cached per connection.
func (p *Postgres) Connect(ctx context.Context, url string) (core.Driver, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = MaxPoolConnections
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeDescribeExec
	cfg.ConnConfig.StatementCacheCapacity = 0
	cfg.ConnConfig.DescriptionCacheCapacity = 0

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return newPostgresDriver(pool), nil
}
