package core_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nextdb/gateway/core"
	"github.com/nextdb/gateway/core/mock"
)

func newTestConnection(t *testing.T, id, kind string, adapter core.Adapter) *core.Connection {
	t.Helper()

	c, err := core.NewConnection(context.Background(), &core.ConnectionParams{
		ID:   core.ConnectionID(id),
		Type: kind,
		URL:  "mock://" + id,
	}, adapter)
	require.NoError(t, err)

	return c
}

func TestRegistry_RegisterLookup(t *testing.T) {
	r := require.New(t)

	reg := core.NewRegistry()
	c := newTestConnection(t, "pg", "postgres", mock.NewAdapter(nil))

	replaced, err := reg.Register(c)
	r.NoError(err)
	r.Nil(replaced)

	got, err := reg.Lookup("pg")
	r.NoError(err)
	r.Same(c, got)

	_, err = reg.Lookup("missing")
	r.ErrorIs(err, core.ErrConnectionNotFound)
	r.Equal("connection not found", err.Error())
}

func TestRegistry_LastWriterWins(t *testing.T) {
	r := require.New(t)

	reg := core.NewRegistry()
	first := newTestConnection(t, "x", "postgres", mock.NewAdapter(nil))
	second := newTestConnection(t, "x", "redis", mock.NewAdapter(nil))

	_, err := reg.Register(first)
	r.NoError(err)

	replaced, err := reg.Register(second)
	r.NoError(err)
	r.Same(first, replaced)

	got, err := reg.Lookup("x")
	r.NoError(err)
	r.Same(second, got)
	// an id belongs to exactly one kind
	r.Equal(core.KindRedis, got.GetKind())
	r.Equal(1, reg.Len())
}

func TestRegistry_Remove(t *testing.T) {
	r := require.New(t)

	reg := core.NewRegistry()
	c := newTestConnection(t, "lite", "sqlite", mock.NewAdapter(nil))
	_, err := reg.Register(c)
	r.NoError(err)

	removed, err := reg.Remove("lite")
	r.NoError(err)
	r.Same(c, removed)

	_, err = reg.Remove("lite")
	r.ErrorIs(err, core.ErrConnectionNotFound)
	r.Zero(reg.Len())
}

func TestRegistry_ListSorted(t *testing.T) {
	r := require.New(t)

	reg := core.NewRegistry()
	for _, id := range []string{"c", "a", "b"} {
		_, err := reg.Register(newTestConnection(t, id, "mysql", mock.NewAdapter(nil)))
		r.NoError(err)
	}

	var ids []core.ConnectionID
	for _, c := range reg.List() {
		ids = append(ids, c.GetID())
	}
	r.Equal([]core.ConnectionID{"a", "b", "c"}, ids)
}

func TestRegistry_Close(t *testing.T) {
	r := require.New(t)

	adapter := mock.NewAdapter(nil)
	reg := core.NewRegistry()
	for i := 0; i < 3; i++ {
		_, err := reg.Register(newTestConnection(t, fmt.Sprintf("conn_%d", i), "postgres", adapter))
		r.NoError(err)
	}

	reg.Close()
	// second close is a no-op
	reg.Close()

	for _, d := range adapter.Drivers() {
		r.True(d.IsClosed())
	}

	_, err := reg.Lookup("conn_0")
	r.ErrorIs(err, core.ErrRegistryClosed)
	r.Equal("failed to lock connection registry", err.Error())

	_, err = reg.Register(newTestConnection(t, "late", "postgres", adapter))
	r.ErrorIs(err, core.ErrRegistryClosed)

	_, err = reg.Remove("conn_1")
	r.ErrorIs(err, core.ErrRegistryClosed)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := require.New(t)

	reg := core.NewRegistry()
	adapter := mock.NewAdapter(nil)

	conns := make([]*core.Connection, 50)
	for i := range conns {
		conns[i] = newTestConnection(t, fmt.Sprintf("id_%d", i%5), "sqlite", adapter)
	}

	var wg sync.WaitGroup
	for _, c := range conns {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := reg.Register(c); err != nil {
				t.Error(err)
			}
		}()
		go func() {
			defer wg.Done()
			_, _ = reg.Lookup(c.GetID())
			_ = reg.List()
		}()
	}
	wg.Wait()

	r.Equal(5, reg.Len())
	for i := 0; i < 5; i++ {
		_, err := reg.Lookup(core.ConnectionID(fmt.Sprintf("id_%d", i)))
		r.NoError(err)
	}
}
