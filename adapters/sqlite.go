//go:build (darwin && (amd64 || arm64)) || (freebsd && (386 || amd64 || arm || arm64)) || (linux && (386 || amd64 || arm || arm64 || ppc64le || riscv64 || s390x)) || (netbsd && amd64) || (openbsd && (amd64 || arm64)) || (windows && (amd64 || arm64))

package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nextdb/gateway/core"
	"github.com/nextdb/gateway/core/builders"
)

// Register client
func init() {
	register(core.KindSQLite, &SQLite{})
}

var _ core.Adapter = (*SQLite)(nil)

type SQLite struct{}

func (s *SQLite) Connect(ctx context.Context, url string) (core.Driver, error) {
	db, err := sqlx.Open("sqlite", sqliteDSN(url))
	if err != nil {
		return nil, err
	}

	client := builders.NewClient(db,
		builders.WithCascade(newSQLiteCascade()),
		builders.WithMaxConnections(MaxPoolConnections),
	)

	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, err
	}

	return &sqliteDriver{
		c: client,
	}, nil
}

// sqliteDSN strips the url scheme. In-memory databases get a unique shared
// cache name, so every pooled connection sees the same data while separate
// connections stay isolated.
func sqliteDSN(url string) string {
	path := url
	for _, prefix := range []string{"sqlite3://", "sqlite://", "sqlite3:", "sqlite:"} {
		if strings.HasPrefix(path, prefix) {
			path = strings.TrimPrefix(path, prefix)
			break
		}
	}

	if path == ":memory:" || path == "" {
		return fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	}

	return path
}
