package core

import (
	"errors"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

var ErrRegistryClosed = errors.New("failed to lock connection registry")

// Registry maps connection ids to live connections. Each id holds exactly one
// connection of one kind. The lock only guards the map, never a query.
type Registry struct {
	mu          sync.RWMutex
	connections map[ConnectionID]*Connection
	closed      bool
}

func NewRegistry() *Registry {
	return &Registry{
		connections: make(map[ConnectionID]*Connection),
	}
}

// Register inserts the connection, replacing any previous one under the same
// id. The replaced connection is returned so the caller can close it.
func (r *Registry) Register(c *Connection) (replaced *Connection, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrRegistryClosed
	}

	old := r.connections[c.GetID()]
	r.connections[c.GetID()] = c

	return old, nil
}

func (r *Registry) Lookup(id ConnectionID) (*Connection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, ErrRegistryClosed
	}

	c, ok := r.connections[id]
	if !ok {
		return nil, ErrConnectionNotFound
	}

	return c, nil
}

// Remove deletes the entry and returns it.
func (r *Registry) Remove(id ConnectionID) (*Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrRegistryClosed
	}

	c, ok := r.connections[id]
	if !ok {
		return nil, ErrConnectionNotFound
	}
	delete(r.connections, id)

	return c, nil
}

// List returns connections sorted by id.
func (r *Registry) List() []*Connection {
	r.mu.RLock()
	conns := make([]*Connection, 0, len(r.connections))
	for _, c := range r.connections {
		conns = append(conns, c)
	}
	r.mu.RUnlock()

	sort.Slice(conns, func(i, j int) bool {
		return conns[i].GetID() < conns[j].GetID()
	})

	return conns
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.connections)
}

// Close closes every connection concurrently. Any later operation fails
// with ErrRegistryClosed.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	conns := r.connections
	r.connections = make(map[ConnectionID]*Connection)
	r.mu.Unlock()

	var g errgroup.Group
	for _, c := range conns {
		g.Go(func() error {
			c.Close()
			return nil
		})
	}
	_ = g.Wait()
}
