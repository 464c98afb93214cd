package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	ErrConnectionNotFound      = errors.New("connection not found")
	ErrRedisConnectionNotFound = errors.New("redis connection not found")
	ErrEmptyConnectionID       = errors.New("connection id must not be empty")
	ErrUnsupportedKind         = errors.New("unsupported backend kind")
	ErrQueryNotSupported       = errors.New("driver does not support queries")
	ErrCommandNotSupported     = errors.New("driver does not support commands")
)

type (
	// Adapter is an object which allows to connect to a backend via url
	Adapter interface {
		Connect(ctx context.Context, url string) (Driver, error)
	}

	// Driver is a live pooled handle for a specific backend
	Driver interface {
		Close()
	}

	// Querier is implemented by drivers that execute SQL text.
	Querier interface {
		Query(ctx context.Context, query string, opts *QueryOptions) (*Result, error)
	}

	// Commander is implemented by drivers that execute key-value commands.
	Commander interface {
		Command(ctx context.Context, args []string) (string, error)
	}
)

// QueryOptions carry per-query settings that only some drivers honor.
type QueryOptions struct {
	// Database selects the active schema for the duration of the query.
	Database string
}

type ConnectionID string

// Connection is a registry entry: a driver tagged with its backend kind.
type Connection struct {
	params    *ConnectionParams
	kind      Kind
	createdAt time.Time

	driver Driver
}

func (c *Connection) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        string `json:"id"`
		Kind      string `json:"kind"`
		CreatedAt int64  `json:"created_at_us"`
	}{
		ID:        string(c.params.ID),
		Kind:      c.kind.String(),
		CreatedAt: c.createdAt.UnixMicro(),
	})
}

// NewConnection connects the adapter with params.URL as given. The driver
// error is returned as is, so its text reaches the caller verbatim.
func NewConnection(ctx context.Context, params *ConnectionParams, adapter Adapter) (*Connection, error) {
	if params.ID == "" {
		return nil, ErrEmptyConnectionID
	}

	kind, err := KindFromString(params.Type)
	if err != nil {
		return nil, err
	}

	driver, err := adapter.Connect(ctx, params.URL)
	if err != nil {
		return nil, err
	}

	return &Connection{
		params:    params,
		kind:      kind,
		createdAt: time.Now(),

		driver: driver,
	}, nil
}

func (c *Connection) GetID() ConnectionID {
	return c.params.ID
}

func (c *Connection) GetKind() Kind {
	return c.kind
}

func (c *Connection) GetCreatedAt() time.Time {
	return c.createdAt
}

// GetParams returns the original source for this connection
func (c *Connection) GetParams() *ConnectionParams {
	return c.params
}

// Query routes the query to the driver based on the connection kind.
// Only mysql connections forward the database name.
func (c *Connection) Query(ctx context.Context, query, database string) (*Result, error) {
	if !c.kind.IsSQL() {
		return nil, ErrConnectionNotFound
	}

	querier, ok := c.driver.(Querier)
	if !ok {
		return nil, ErrQueryNotSupported
	}

	opts := &QueryOptions{}
	if c.kind == KindMySQL {
		opts.Database = database
	}

	result, err := querier.Query(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Command tokenizes the command text and sends it to a key-value driver.
func (c *Connection) Command(ctx context.Context, command string) (string, error) {
	if c.kind != KindRedis {
		return "", ErrRedisConnectionNotFound
	}

	commander, ok := c.driver.(Commander)
	if !ok {
		return "", ErrCommandNotSupported
	}

	args, err := SplitCommand(command)
	if err != nil {
		return "", err
	}

	reply, err := commander.Command(ctx, args)
	if err != nil {
		return "", err
	}

	return reply, nil
}

func (c *Connection) Close() {
	c.driver.Close()
}

func (c *Connection) String() string {
	return fmt.Sprintf("%s (%s)", c.params.ID, c.kind)
}
