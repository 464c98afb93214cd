package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNoResult = errors.New("call has no result")

type (
	CallID string

	// Call is a single execution of a query or command against a connection.
	Call struct {
		mu sync.RWMutex

		id           CallID
		connectionID ConnectionID
		query        string
		state        CallState
		timeTaken    time.Duration
		timestamp    time.Time

		result *Result
		// any error that might occur during execution
		err error
	}
)

// RunCall executes exec synchronously and records its outcome. onEvent is
// triggered on every state change.
func RunCall(
	ctx context.Context,
	connID ConnectionID,
	query string,
	exec func(context.Context) (*Result, error),
	onEvent func(CallState, *Call),
) *Call {
	c := &Call{
		id:           CallID(uuid.New().String()),
		connectionID: connID,
		query:        query,
		state:        CallStateUnknown,
		timestamp:    time.Now(),
	}

	c.setState(CallStateExecuting, onEvent)

	result, err := exec(ctx)

	c.mu.Lock()
	c.timeTaken = time.Since(c.timestamp)
	c.result = result
	c.err = err
	c.mu.Unlock()

	if err != nil {
		c.setState(CallStateFailed, onEvent)
		return c
	}

	c.setState(CallStateSucceeded, onEvent)
	return c
}

func (c *Call) setState(state CallState, onEvent func(CallState, *Call)) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()

	if onEvent != nil {
		onEvent(state, c)
	}
}

func (c *Call) GetID() CallID {
	return c.id
}

func (c *Call) GetConnectionID() ConnectionID {
	return c.connectionID
}

func (c *Call) GetQuery() string {
	return c.query
}

func (c *Call) GetState() CallState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Call) GetTimeTaken() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.timeTaken
}

func (c *Call) GetTimestamp() time.Time {
	return c.timestamp
}

func (c *Call) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

func (c *Call) GetResult() (*Result, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.result == nil {
		return nil, ErrNoResult
	}
	return c.result, nil
}
