package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nextdb/gateway/core"
)

var (
	_ core.Driver    = (*Driver)(nil)
	_ core.Querier   = (*Driver)(nil)
	_ core.Commander = (*Driver)(nil)
)

// Driver answers every query with the configured rows and every command with
// the configured replies. It records what it was asked.
type Driver struct {
	url    string
	data   []core.Row
	config *adapterConfig

	mu          sync.Mutex
	lastOptions *core.QueryOptions
	lastArgs    []string
	closed      bool
}

func (d *Driver) Query(ctx context.Context, query string, opts *core.QueryOptions) (*core.Result, error) {
	d.mu.Lock()
	d.lastOptions = opts
	d.mu.Unlock()

	eff, ok := d.config.querySideEffects[query]
	if ok {
		err := eff(ctx)
		if err != nil {
			return nil, fmt.Errorf("side effect error: %w", err)
		}
	}

	start := time.Now()
	rows := NewResult(d.data, d.config.resultOptions...)
	rows.Took = time.Since(start)

	return rows, nil
}

func (d *Driver) Command(_ context.Context, args []string) (string, error) {
	d.mu.Lock()
	d.lastArgs = args
	d.mu.Unlock()

	if len(args) < 1 {
		return "", core.ErrEmptyCommand
	}

	reply, ok := d.config.replies[args[0]]
	if !ok {
		return "", fmt.Errorf("ERR unknown command '%s'", args[0])
	}
	return reply, nil
}

func (d *Driver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
}

// URL is the url the driver was connected with.
func (d *Driver) URL() string {
	return d.url
}

// LastOptions returns the options of the most recent query.
func (d *Driver) LastOptions() *core.QueryOptions {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastOptions
}

// LastArgs returns the tokens of the most recent command.
func (d *Driver) LastArgs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastArgs
}

func (d *Driver) IsClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

var _ core.Adapter = (*Adapter)(nil)

type Adapter struct {
	data   []core.Row
	config *adapterConfig

	mu      sync.Mutex
	drivers []*Driver
}

func NewAdapter(data []core.Row, opts ...AdapterOption) *Adapter {
	config := &adapterConfig{
		querySideEffects: make(map[string]func(context.Context) error),
		replies:          make(map[string]string),

		resultOptions: []ResultOption{},
	}
	for _, opt := range opts {
		opt(config)
	}

	return &Adapter{
		data:   data,
		config: config,
	}
}

func (a *Adapter) Connect(_ context.Context, url string) (core.Driver, error) {
	if a.config.connectErr != nil {
		return nil, a.config.connectErr
	}

	d := &Driver{
		url:    url,
		data:   a.data,
		config: a.config,
	}

	a.mu.Lock()
	a.drivers = append(a.drivers, d)
	a.mu.Unlock()

	return d, nil
}

// Drivers returns every driver created by the adapter, oldest first.
func (a *Adapter) Drivers() []*Driver {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*Driver(nil), a.drivers...)
}
