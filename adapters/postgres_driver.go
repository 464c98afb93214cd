package adapters

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nextdb/gateway/core"
	"github.com/nextdb/gateway/core/builders"
)

var (
	_ core.Driver  = (*postgresDriver)(nil)
	_ core.Querier = (*postgresDriver)(nil)
)

// pgColumn describes a single result column as reported by the server.
type pgColumn struct {
	oid    uint32
	format int16
	m      *pgtype.Map
}

func (c pgColumn) OID() uint32 { return c.oid }

type postgresDriver struct {
	pool    *pgxpool.Pool
	cascade *builders.Cascade[pgColumn]
}

func newPostgresDriver(pool *pgxpool.Pool) *postgresDriver {
	return &postgresDriver{
		pool:    pool,
		cascade: newPostgresCascade(),
	}
}

// Query ignores opts.Database: the database of a postgres connection is
// fixed by its url.
func (c *postgresDriver) Query(ctx context.Context, query string, _ *core.QueryOptions) (*core.Result, error) {
	start := time.Now()

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	typeMap := rows.Conn().TypeMap()

	cols := make([]pgColumn, len(fields))
	for i, f := range fields {
		cols[i] = pgColumn{oid: f.DataTypeOID, format: f.Format, m: typeMap}
	}

	var out []core.Row
	for rows.Next() {
		row, err := c.cascade.DecodeRow(cols, rawToValues(rows.RawValues()))
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	took := time.Since(start)

	var header core.Header
	if len(out) > 0 {
		header = fieldNames(fields)
	} else {
		header = c.describe(ctx, query, fields)
	}

	return core.NewResult(header, out, took), nil
}

// describe recovers column names of an empty result. Result metadata is used
// if the server sent any, otherwise the query is prepared on a pooled
// connection. Any failure leaves the columns empty.
func (c *postgresDriver) describe(ctx context.Context, query string, fields []pgconn.FieldDescription) core.Header {
	if len(fields) > 0 {
		return fieldNames(fields)
	}

	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return core.Header{}
	}
	defer conn.Release()

	sd, err := conn.Conn().PgConn().Prepare(ctx, "", query, nil)
	if err != nil {
		return core.Header{}
	}

	return fieldNames(sd.Fields)
}

func (c *postgresDriver) Close() {
	c.pool.Close()
}

func fieldNames(fields []pgconn.FieldDescription) core.Header {
	header := make(core.Header, len(fields))
	for i, f := range fields {
		header[i] = f.Name
	}
	return header
}

// rawToValues keeps NULL (nil slice) distinguishable as an untyped nil.
func rawToValues(raw [][]byte) []any {
	values := make([]any, len(raw))
	for i, r := range raw {
		if r == nil {
			continue
		}
		values[i] = r
	}
	return values
}

// pgScan decodes the raw wire value into a value of type T using the codec
// registered for the column type.
func pgScan[T any](col pgColumn, src any) (T, error) {
	var dst T

	raw, ok := src.([]byte)
	if !ok {
		return dst, builders.ErrTypeMismatch
	}

	if err := col.m.Scan(col.oid, col.format, raw, &dst); err != nil {
		return dst, err
	}

	return dst, nil
}

func pgRung[T any](name string, convert func(T) (any, error), oids ...uint32) builders.Rung[pgColumn] {
	return builders.Rung[pgColumn]{
		Name:    name,
		Accepts: builders.OneOf(pgColumn.OID, oids...),
		Decode: func(col pgColumn, src any) (any, error) {
			v, err := pgScan[T](col, src)
			if err != nil {
				return nil, err
			}
			return convert(v)
		},
	}
}

func postgresTypeName(col pgColumn, _ any) string {
	if col.m != nil {
		if t, ok := col.m.TypeForOID(col.oid); ok {
			return strings.ToUpper(t.Name)
		}
	}
	return fmt.Sprintf("OID %d", col.oid)
}

func newPostgresCascade() *builders.Cascade[pgColumn] {
	return builders.NewCascade(postgresTypeName,
		pgRung("text", func(v string) (any, error) {
			return v, nil
		}, pgtype.TextOID, pgtype.VarcharOID, pgtype.BPCharOID, pgtype.NameOID, pgtype.UnknownOID),

		pgRung("timestamp", func(v time.Time) (any, error) {
			return builders.FormatDateTime(v), nil
		}, pgtype.TimestampOID),

		pgRung("timestamptz", func(v time.Time) (any, error) {
			return builders.FormatDateTimeUTC(v), nil
		}, pgtype.TimestamptzOID),

		pgRung("date", func(v time.Time) (any, error) {
			return builders.FormatDate(v), nil
		}, pgtype.DateOID),

		pgRung("time", func(v pgtype.Time) (any, error) {
			return builders.FormatClock(time.Duration(v.Microseconds) * time.Microsecond)
		}, pgtype.TimeOID),

		pgRung("json", func(v any) (any, error) {
			return v, nil
		}, pgtype.JSONOID, pgtype.JSONBOID),

		pgRung("bytea", func(v []byte) (any, error) {
			return builders.BinaryToText(v), nil
		}, pgtype.ByteaOID),

		pgRung("int8", func(v int64) (any, error) {
			return v, nil
		}, pgtype.Int8OID),

		pgRung("int4", func(v int32) (any, error) {
			return int64(v), nil
		}, pgtype.Int4OID),

		pgRung("int2", func(v int16) (any, error) {
			return int64(v), nil
		}, pgtype.Int2OID),

		pgRung("float8", func(v float64) (any, error) {
			return builders.Float(v), nil
		}, pgtype.Float8OID),

		pgRung("float4", func(v float32) (any, error) {
			return builders.Float(float64(v)), nil
		}, pgtype.Float4OID),

		pgRung("bool", func(v bool) (any, error) {
			return v, nil
		}, pgtype.BoolOID),
	)
}
