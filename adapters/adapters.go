package adapters

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nextdb/gateway/core"
)

// MaxPoolConnections is the upper bound of connections in every SQL pool.
const MaxPoolConnections = 5

var ErrUnsupportedTypeAlias = errors.New("no driver registered for provided type alias")

// registeredAdapters holds implemented adapters - specific adapters register themselves in their init functions.
// The main reason is to be able to compile the binary without unsupported os/arch of specific drivers.
var (
	registeredMu       sync.RWMutex
	registeredAdapters = make(map[core.Kind]core.Adapter)
)

// register registers a new adapter for a backend kind
func register(kind core.Kind, adapter core.Adapter) {
	registeredMu.Lock()
	defer registeredMu.Unlock()
	registeredAdapters[kind] = adapter
}

// Mux is an interface to all internal adapters.
type Mux struct{}

// GetAdapter resolves a kind name or alias to its adapter.
func (*Mux) GetAdapter(typ string) (core.Adapter, error) {
	kind, err := core.KindFromString(typ)
	if err != nil {
		return nil, err
	}

	registeredMu.RLock()
	defer registeredMu.RUnlock()

	adapter, ok := registeredAdapters[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTypeAlias, kind)
	}

	return adapter, nil
}

// AddAdapter overrides the adapter of a kind.
func (*Mux) AddAdapter(typ string, adapter core.Adapter) error {
	kind, err := core.KindFromString(typ)
	if err != nil {
		return err
	}

	register(kind, adapter)
	return nil
}

// NewConnection is a wrapper around core.NewConnection that uses the internal mux for
// adapter registration.
func NewConnection(ctx context.Context, params *core.ConnectionParams) (*core.Connection, error) {
	adapter, err := new(Mux).GetAdapter(params.Type)
	if err != nil {
		return nil, err
	}

	return core.NewConnection(ctx, params, adapter)
}
