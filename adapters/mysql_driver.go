package adapters

import (
	"context"
	"database/sql"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nextdb/gateway/core"
	"github.com/nextdb/gateway/core/builders"
)

var (
	_ core.Driver  = (*mySQLDriver)(nil)
	_ core.Querier = (*mySQLDriver)(nil)
)

type mySQLDriver struct {
	c *builders.Client
}

// Query runs the query on a single checked out connection. If a database is
// requested, it is selected on that connection first and a failure aborts the
// query.
func (d *mySQLDriver) Query(ctx context.Context, query string, opts *core.QueryOptions) (*core.Result, error) {
	conn, err := d.c.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if opts != nil && opts.Database != "" {
		if err := conn.Exec(ctx, "USE "+quoteMySQLIdentifier(opts.Database)); err != nil {
			return nil, err
		}
	}

	return conn.Query(ctx, query)
}

func (d *mySQLDriver) Close() {
	d.c.Close()
}

func quoteMySQLIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

var (
	mysqlTextTypes = []string{
		"CHAR", "VARCHAR", "TEXT", "TINYTEXT", "MEDIUMTEXT", "LONGTEXT",
		"ENUM", "SET", "JSON",
	}
	mysqlBinaryTypes = append([]string{
		"BINARY", "VARBINARY", "BLOB", "TINYBLOB", "MEDIUMBLOB", "LONGBLOB",
	}, mysqlTextTypes...)
	mysqlSignedTypes   = []string{"TINYINT", "SMALLINT", "MEDIUMINT", "INT", "BIGINT"}
	mysqlUnsignedTypes = []string{
		"UNSIGNED TINYINT", "UNSIGNED SMALLINT", "UNSIGNED MEDIUMINT",
		"UNSIGNED INT", "UNSIGNED BIGINT", "YEAR",
	}
)

const mysqlDateTimeLayout = "2006-01-02 15:04:05.999999"

func mysqlRung(name string, decode func(src any) (any, error), types ...string) builders.Rung[*sql.ColumnType] {
	return builders.Rung[*sql.ColumnType]{
		Name:    name,
		Accepts: builders.OneOf((*sql.ColumnType).DatabaseTypeName, types...),
		Decode: func(_ *sql.ColumnType, src any) (any, error) {
			return decode(src)
		},
	}
}

func newMySQLCascade() *builders.SQLCascade {
	return builders.NewCascade(builders.DatabaseTypeName,
		mysqlRung("text", func(src any) (any, error) {
			s, ok := mysqlText(src)
			if !ok || !utf8.ValidString(s) {
				return nil, builders.ErrTypeMismatch
			}
			return s, nil
		}, mysqlTextTypes...),

		mysqlRung("datetime", func(src any) (any, error) {
			t, err := mysqlTime(src, mysqlDateTimeLayout)
			if err != nil {
				return nil, err
			}
			return builders.FormatDateTime(t), nil
		}, "DATETIME", "TIMESTAMP"),

		mysqlRung("date", func(src any) (any, error) {
			t, err := mysqlTime(src, builders.DateLayout)
			if err != nil {
				return nil, err
			}
			return builders.FormatDate(t), nil
		}, "DATE"),

		mysqlRung("time", func(src any) (any, error) {
			s, ok := mysqlText(src)
			if !ok {
				return nil, builders.ErrTypeMismatch
			}
			d, err := parseMySQLDuration(s)
			if err != nil {
				return nil, err
			}
			return builders.FormatClock(d)
		}, "TIME"),

		mysqlRung("datetime utc", func(src any) (any, error) {
			t, err := mysqlTime(src, mysqlDateTimeLayout)
			if err != nil {
				return nil, err
			}
			return builders.FormatDateTimeUTC(t), nil
		}, "DATETIME", "TIMESTAMP"),

		mysqlRung("binary", func(src any) (any, error) {
			switch v := src.(type) {
			case []byte:
				return builders.BinaryToText(v), nil
			case string:
				return builders.BinaryToText([]byte(v)), nil
			}
			return nil, builders.ErrTypeMismatch
		}, mysqlBinaryTypes...),

		mysqlSignedRung("i64", 64),
		mysqlSignedRung("i32", 32),
		mysqlSignedRung("i16", 16),
		mysqlSignedRung("i8", 8),

		mysqlUnsignedRung("u64", 64),
		mysqlUnsignedRung("u32", 32),
		mysqlUnsignedRung("u16", 16),
		mysqlUnsignedRung("u8", 8),

		mysqlRung("double", func(src any) (any, error) {
			f, err := mysqlFloat(src, 64)
			if err != nil {
				return nil, err
			}
			return builders.Float(f), nil
		}, "DOUBLE"),

		mysqlRung("float", func(src any) (any, error) {
			f, err := mysqlFloat(src, 32)
			if err != nil {
				return nil, err
			}
			return builders.Float(f), nil
		}, "FLOAT"),

		mysqlRung("bool", func(src any) (any, error) {
			switch v := src.(type) {
			case bool:
				return v, nil
			case int64:
				return v != 0, nil
			case []byte:
				// BIT(1) arrives as a single raw 0 or 1 byte. The driver does
				// not report the bit width, so any other byte is left to the
				// unsigned rung below.
				if len(v) != 1 || v[0] > 1 {
					return nil, builders.ErrTypeMismatch
				}
				return v[0] == 1, nil
			}
			return nil, builders.ErrTypeMismatch
		}, "BOOL", "BOOLEAN", "BIT"),

		mysqlRung("bit", func(src any) (any, error) {
			v, ok := src.([]byte)
			if !ok || len(v) == 0 || len(v) > 8 {
				return nil, builders.ErrTypeMismatch
			}
			var u uint64
			for _, b := range v {
				u = u<<8 | uint64(b)
			}
			return u, nil
		}, "BIT"),
	)
}

func mysqlSignedRung(name string, bits int) builders.Rung[*sql.ColumnType] {
	return mysqlRung(name, func(src any) (any, error) {
		var i int64
		switch v := src.(type) {
		case int64:
			i = v
		case []byte:
			parsed, err := strconv.ParseInt(string(v), 10, 64)
			if err != nil {
				return nil, err
			}
			i = parsed
		default:
			return nil, builders.ErrTypeMismatch
		}

		if bits < 64 {
			limit := int64(1) << (bits - 1)
			if i < -limit || i >= limit {
				return nil, strconv.ErrRange
			}
		}
		return i, nil
	}, mysqlSignedTypes...)
}

func mysqlUnsignedRung(name string, bits int) builders.Rung[*sql.ColumnType] {
	return mysqlRung(name, func(src any) (any, error) {
		var u uint64
		switch v := src.(type) {
		case uint64:
			u = v
		case int64:
			if v < 0 {
				return nil, strconv.ErrRange
			}
			u = uint64(v)
		case []byte:
			parsed, err := strconv.ParseUint(string(v), 10, 64)
			if err != nil {
				return nil, err
			}
			u = parsed
		default:
			return nil, builders.ErrTypeMismatch
		}

		if bits < 64 && u > uint64(math.MaxUint64)>>(64-bits) {
			return nil, strconv.ErrRange
		}
		return u, nil
	}, mysqlUnsignedTypes...)
}

func mysqlText(src any) (string, bool) {
	switch v := src.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	}
	return "", false
}

// mysqlTime accepts values parsed by the driver (parseTime=true) as well as
// their raw text form.
func mysqlTime(src any, layout string) (time.Time, error) {
	switch v := src.(type) {
	case time.Time:
		return v, nil
	case []byte:
		return time.Parse(layout, string(v))
	case string:
		return time.Parse(layout, v)
	}
	return time.Time{}, builders.ErrTypeMismatch
}

func mysqlFloat(src any, bits int) (float64, error) {
	switch v := src.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case []byte:
		return strconv.ParseFloat(string(v), bits)
	}
	return 0, builders.ErrTypeMismatch
}

// parseMySQLDuration parses a TIME value ([-]HHH:MM:SS[.ffffff]).
func parseMySQLDuration(s string) (time.Duration, error) {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, builders.ErrTypeMismatch
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, err
	}

	d := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(math.Round(seconds*1e6))*time.Microsecond
	if neg {
		d = -d
	}
	return d, nil
}
