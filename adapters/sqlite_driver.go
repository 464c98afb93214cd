//go:build (darwin && (amd64 || arm64)) || (freebsd && (386 || amd64 || arm || arm64)) || (linux && (386 || amd64 || arm || arm64 || ppc64le || riscv64 || s390x)) || (netbsd && amd64) || (openbsd && (amd64 || arm64)) || (windows && (amd64 || arm64))

package adapters

import (
	"context"
	"database/sql"
	"math"
	"time"

	"github.com/nextdb/gateway/core"
	"github.com/nextdb/gateway/core/builders"
)

var (
	_ core.Driver  = (*sqliteDriver)(nil)
	_ core.Querier = (*sqliteDriver)(nil)
)

type sqliteDriver struct {
	c *builders.Client
}

// Query ignores opts.Database, a sqlite connection is a single database.
func (d *sqliteDriver) Query(ctx context.Context, query string, _ *core.QueryOptions) (*core.Result, error) {
	return d.c.Query(ctx, query)
}

func (d *sqliteDriver) Close() {
	d.c.Close()
}

// sqliteRung matches on the storage class of the value rather than the
// declared column type, which sqlite doesn't enforce.
func sqliteRung(name string, decode func(src any) (any, error)) builders.Rung[*sql.ColumnType] {
	return builders.Rung[*sql.ColumnType]{
		Name: name,
		Decode: func(_ *sql.ColumnType, src any) (any, error) {
			return decode(src)
		},
	}
}

func newSQLiteCascade() *builders.SQLCascade {
	return builders.NewCascade(builders.DatabaseTypeName,
		builders.Rung[*sql.ColumnType]{
			Name: "text",
			Decode: func(ct *sql.ColumnType, src any) (any, error) {
				switch v := src.(type) {
				case string:
					return v, nil
				case time.Time:
					// the driver parses text in DATE, DATETIME and TIMESTAMP
					// columns, hand it back as text
					return sqliteTimeText(ct, v), nil
				}
				return nil, builders.ErrTypeMismatch
			},
		},

		sqliteRung("int64", func(src any) (any, error) {
			if v, ok := src.(int64); ok {
				return v, nil
			}
			return nil, builders.ErrTypeMismatch
		}),

		sqliteRung("int32", func(src any) (any, error) {
			switch v := src.(type) {
			case int32:
				return int64(v), nil
			case int:
				if v < math.MinInt32 || v > math.MaxInt32 {
					return nil, builders.ErrTypeMismatch
				}
				return int64(v), nil
			}
			return nil, builders.ErrTypeMismatch
		}),

		sqliteRung("double", func(src any) (any, error) {
			if v, ok := src.(float64); ok {
				return builders.Float(v), nil
			}
			return nil, builders.ErrTypeMismatch
		}),

		sqliteRung("bool", func(src any) (any, error) {
			if v, ok := src.(bool); ok {
				return v, nil
			}
			return nil, builders.ErrTypeMismatch
		}),

		sqliteRung("binary", func(src any) (any, error) {
			if v, ok := src.([]byte); ok {
				return builders.BinaryToText(v), nil
			}
			return nil, builders.ErrTypeMismatch
		}),
	)
}

// Layouts of text the driver turned into time.Time. The driver accepts a T
// separator, a trailing Z and minute precision, none of which survive
// parsing, so those values come back in the space separated form.
const (
	sqliteDateTimeLayout       = "2006-01-02 15:04:05.999999999"
	sqliteDateTimeOffsetLayout = sqliteDateTimeLayout + "-07:00"
)

// sqliteTimeText renders a parsed date or time back to sqlite text. Values
// parsed without an offset are in UTC, anything else keeps its offset.
func sqliteTimeText(ct *sql.ColumnType, t time.Time) string {
	if t.Location() != time.UTC {
		return t.Format(sqliteDateTimeOffsetLayout)
	}

	if ct != nil && ct.DatabaseTypeName() == "DATE" && isMidnight(t) {
		return t.Format(builders.DateLayout)
	}

	return t.Format(sqliteDateTimeLayout)
}

func isMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}
