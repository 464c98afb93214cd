package core

import (
	"fmt"
	"sync"
)

const DefaultHistoryLimit = 100

// History keeps the most recent calls, newest first.
type History struct {
	mu    sync.RWMutex
	limit int
	calls []*Call
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	return &History{
		limit: limit,
	}
}

func (h *History) Add(c *Call) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.calls = append([]*Call{c}, h.calls...)
	if len(h.calls) > h.limit {
		h.calls = h.calls[:h.limit]
	}
}

// List returns calls of the given connection, or all calls if connID is empty.
func (h *History) List(connID ConnectionID) []*Call {
	h.mu.RLock()
	defer h.mu.RUnlock()

	calls := make([]*Call, 0, len(h.calls))
	for _, c := range h.calls {
		if connID != "" && c.GetConnectionID() != connID {
			continue
		}
		calls = append(calls, c)
	}

	return calls
}

func (h *History) Get(id CallID) (*Call, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.calls {
		if c.GetID() == id {
			return c, nil
		}
	}

	return nil, fmt.Errorf("unknown call with id: %q", id)
}

func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = nil
}
