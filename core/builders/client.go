package builders

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nextdb/gateway/core"
)

// SQLCascade decodes database/sql values using the driver column types.
type SQLCascade = Cascade[*sql.ColumnType]

// default sql client used by other specific implementations
type Client struct {
	db      *sqlx.DB
	cascade *SQLCascade
}

func NewClient(db *sqlx.DB, opts ...ClientOption) *Client {
	config := clientConfig{
		cascade:        NewCascade(DatabaseTypeName),
		maxConnections: 0,
	}
	for _, opt := range opts {
		opt(&config)
	}

	if config.maxConnections > 0 {
		db.SetMaxOpenConns(config.maxConnections)
		db.SetMaxIdleConns(config.maxConnections)
	}

	return &Client{
		db:      db,
		cascade: config.cascade,
	}
}

// Ping makes sure the pool can reach the database.
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Conn checks out a single connection from the pool.
func (c *Client) Conn(ctx context.Context) (*Conn, error) {
	conn, err := c.db.Connx(ctx)
	if err != nil {
		return nil, err
	}

	return &Conn{
		conn:    conn,
		cascade: c.cascade,
	}, nil
}

// Query runs the query on a connection checked out for this call only.
func (c *Client) Query(ctx context.Context, query string) (*core.Result, error) {
	conn, err := c.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	return conn.Query(ctx, query)
}

func (c *Client) Close() {
	c.db.Close()
}

// connection to use for execution
type Conn struct {
	conn    *sqlx.Conn
	cascade *SQLCascade
}

func (c *Conn) Close() error {
	return c.conn.Close()
}

// Exec executes a statement that returns no rows.
func (c *Conn) Exec(ctx context.Context, query string) error {
	_, err := c.conn.ExecContext(ctx, query)
	return err
}

// Query executes a query and materializes every row. The timer covers
// execution and fetching only.
func (c *Conn) Query(ctx context.Context, query string) (*core.Result, error) {
	start := time.Now()

	rows, err := c.conn.QueryxContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// column metadata has to be read before the rows are drained,
	// database/sql refuses it on closed rows.
	columnTypes, columnsErr := rows.ColumnTypes()

	var out []core.Row
	for rows.Next() {
		if columnsErr != nil {
			return nil, columnsErr
		}

		values, err := rows.SliceScan()
		if err != nil {
			return nil, err
		}

		row, err := c.cascade.DecodeRow(columnTypes, values)
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
		header = ColumnNames(columnTypes)
	} else {
		header = describe(columnTypes, columnsErr)
	}

	return core.NewResult(header, out, took), nil
}

// describe recovers column names of an empty result from the result set
// metadata. Failure is soft and yields no columns.
func describe(columnTypes []*sql.ColumnType, err error) core.Header {
	if err != nil {
		return core.Header{}
	}
	return ColumnNames(columnTypes)
}

func ColumnNames(columnTypes []*sql.ColumnType) core.Header {
	header := make(core.Header, len(columnTypes))
	for i, ct := range columnTypes {
		header[i] = ct.Name()
	}
	return header
}

// DatabaseTypeName names the column type for placeholders, falling back
// to the go type of the value when the driver reports none.
func DatabaseTypeName(ct *sql.ColumnType, src any) string {
	if ct != nil {
		if name := ct.DatabaseTypeName(); name != "" {
			return name
		}
	}
	return goTypeName(src)
}
