package core

import (
	"fmt"
	"strings"
)

// Kind is the backend protocol family behind a connection.
type Kind int

const (
	KindUnknown Kind = iota
	KindPostgres
	KindMySQL
	KindSQLite
	KindRedis
)

// KindFromString parses a kind or one of its aliases.
func KindFromString(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "postgres", "postgresql", "pg":
		return KindPostgres, nil
	case "mysql", "mariadb":
		return KindMySQL, nil
	case "sqlite", "sqlite3":
		return KindSQLite, nil
	case "redis":
		return KindRedis, nil
	default:
		return KindUnknown, fmt.Errorf("%w: %q", ErrUnsupportedKind, s)
	}
}

func (k Kind) String() string {
	switch k {
	case KindPostgres:
		return "postgres"
	case KindMySQL:
		return "mysql"
	case KindSQLite:
		return "sqlite"
	case KindRedis:
		return "redis"
	default:
		return "unknown"
	}
}

// IsSQL reports whether the kind is served by the query path.
func (k Kind) IsSQL() bool {
	return k == KindPostgres || k == KindMySQL || k == KindSQLite
}

type (
	// Row is an ordered sequence of decoded cell values
	Row []any
	// Header holds column names in backend order
	Header []string
)

type (
	// FormatterOptions provide various options for formatters
	FormatterOptions struct {
		ChunkStart int
	}

	// Formatter converts header and rows to bytes
	Formatter interface {
		Format(header Header, rows []Row, opts *FormatterOptions) ([]byte, error)
	}
)

// Logger is the leveled logger used across the gateway.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
