package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/neovim/go-client/nvim"

	"github.com/nextdb/gateway/core"
	"github.com/nextdb/gateway/core/format"
)

// ConnectedMessage acknowledges a successful connect.
const ConnectedMessage = "Connected successfully"

var errNoVim = errors.New("no neovim host attached")

type Handler struct {
	vim    *nvim.Nvim
	log    core.Logger
	events *eventBus

	adapters AdapterSource
	registry *core.Registry
	history  *core.History

	urlTemplates bool
	urlExec      bool
}

// New creates a handler. vim may be nil, in which case no events are sent
// and only file outputs are available.
func New(vim *nvim.Nvim, logger core.Logger, opts ...Option) *Handler {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Handler{
		vim: vim,
		log: logger,
		events: &eventBus{
			vim: vim,
			log: logger,
		},

		adapters: cfg.adapters,
		registry: core.NewRegistry(),
		history:  core.NewHistory(cfg.historyLimit),

		urlTemplates: cfg.urlTemplates,
		urlExec:      cfg.urlExec,
	}
}

// Close closes all connections. The handler is unusable afterwards.
func (h *Handler) Close() {
	h.registry.Close()
}

// Connect opens a connection of the given kind and registers it under id,
// replacing (and closing) any previous connection with the same id.
func (h *Handler) Connect(ctx context.Context, kind, id, url string) (string, error) {
	if id == "" {
		return "", core.ErrEmptyConnectionID
	}

	adapter, err := h.adapters.GetAdapter(kind)
	if err != nil {
		return "", err
	}

	params := &core.ConnectionParams{
		ID:   core.ConnectionID(id),
		Type: kind,
		URL:  url,
	}
	if h.urlTemplates {
		params = params.Expand(h.urlExec)
	}

	c, err := core.NewConnection(ctx, params, adapter)
	if err != nil {
		h.log.Errorf("connect %q (%s): %s", id, kind, err)
		return "", err
	}

	old, err := h.registry.Register(c)
	if err != nil {
		c.Close()
		return "", err
	}
	if old != nil {
		h.log.Infof("replacing connection %s", old)
		go old.Close()
	}

	h.log.Infof("connected %s", c)
	h.events.ConnectionChanged(c.GetID(), true)

	return ConnectedMessage, nil
}

// Disconnect removes the connection and closes it.
func (h *Handler) Disconnect(id core.ConnectionID) error {
	c, err := h.registry.Remove(id)
	if err != nil {
		return err
	}

	c.Close()
	h.log.Infof("disconnected %s", c)
	h.events.ConnectionChanged(id, false)

	return nil
}

// GetConnections returns registered connections sorted by id.
func (h *Handler) GetConnections() []*core.Connection {
	return h.registry.List()
}

// ExecuteQuery runs SQL text on a postgres, mysql or sqlite connection. The
// database name is only honored by mysql connections.
func (h *Handler) ExecuteQuery(ctx context.Context, id core.ConnectionID, query, database string) (*core.Result, error) {
	c, err := h.registry.Lookup(id)
	if err != nil {
		return nil, err
	}
	if !c.GetKind().IsSQL() {
		return nil, core.ErrConnectionNotFound
	}

	call := core.RunCall(ctx, id, query, func(ctx context.Context) (*core.Result, error) {
		return c.Query(ctx, query, database)
	}, h.onCallEvent)
	h.history.Add(call)

	if err := call.Err(); err != nil {
		return nil, err
	}
	return call.GetResult()
}

// ExecuteCommand sends a whitespace separated command to a redis connection
// and returns the reply as text.
func (h *Handler) ExecuteCommand(ctx context.Context, id core.ConnectionID, command string) (string, error) {
	c, err := h.registry.Lookup(id)
	if err != nil {
		if errors.Is(err, core.ErrConnectionNotFound) {
			return "", core.ErrRedisConnectionNotFound
		}
		return "", err
	}
	if c.GetKind() != core.KindRedis {
		return "", core.ErrRedisConnectionNotFound
	}

	var reply string
	call := core.RunCall(ctx, id, command, func(ctx context.Context) (*core.Result, error) {
		start := time.Now()

		r, err := c.Command(ctx, command)
		if err != nil {
			return nil, err
		}
		reply = r

		return core.NewResult(core.Header{"reply"}, []core.Row{{r}}, time.Since(start)), nil
	}, h.onCallEvent)
	h.history.Add(call)

	if err := call.Err(); err != nil {
		return "", err
	}
	return reply, nil
}

func (h *Handler) onCallEvent(state core.CallState, c *core.Call) {
	if state == core.CallStateFailed {
		h.log.Errorf("call %s on %q failed: %s", c.GetID(), c.GetConnectionID(), c.Err())
	}

	h.events.CallStateChanged(c)
}

// GetHistory returns recorded calls of a connection, newest first. An empty
// id returns calls of all connections.
func (h *Handler) GetHistory(id core.ConnectionID) []*core.Call {
	return h.history.List(id)
}

func (h *Handler) ClearHistory() {
	h.history.Clear()
}

func newFormatter(name string) (core.Formatter, error) {
	switch name {
	case "json":
		return format.NewJSON(), nil
	case "csv":
		return format.NewCSV(), nil
	case "table":
		return newTable(), nil
	default:
		return nil, fmt.Errorf("store output: %q is not supported", name)
	}
}

func (h *Handler) callResult(callID core.CallID) (*core.Result, error) {
	call, err := h.history.Get(callID)
	if err != nil {
		return nil, err
	}

	res, err := call.GetResult()
	if err != nil {
		return nil, fmt.Errorf("call.GetResult: %w", err)
	}

	return res, nil
}

// CallFormatResult renders the result of a recorded call as json, csv or
// table.
func (h *Handler) CallFormatResult(callID core.CallID, fmat string) ([]byte, error) {
	formatter, err := newFormatter(fmat)
	if err != nil {
		return nil, err
	}

	res, err := h.callResult(callID)
	if err != nil {
		return nil, err
	}

	text, err := res.Format(formatter)
	if err != nil {
		return nil, fmt.Errorf("res.Format: %w", err)
	}

	return text, nil
}

// CallDisplayResult writes the result of a call as a table to a buffer and
// returns the number of rows.
func (h *Handler) CallDisplayResult(callID core.CallID, buffer nvim.Buffer) (int, error) {
	if h.vim == nil {
		return 0, errNoVim
	}

	res, err := h.callResult(callID)
	if err != nil {
		return 0, err
	}

	text, err := res.Format(newTable())
	if err != nil {
		return 0, fmt.Errorf("res.Format: %w", err)
	}

	_, err = newBuffer(h.vim, buffer).Write(text)
	if err != nil {
		return 0, fmt.Errorf("buffer.Write: %w", err)
	}

	return res.Len(), nil
}

// CallStoreResult formats the result of a call and writes it to an output:
// "file" (arg: path), "buffer" (arg: buffer number) or "yank" (arg: optional
// register).
func (h *Handler) CallStoreResult(callID core.CallID, fmat, out string, arg ...any) error {
	text, err := h.CallFormatResult(callID, fmat)
	if err != nil {
		return err
	}

	writer, cleanup, err := h.getStoreWriter(out, arg...)
	if err != nil {
		return err
	}
	defer cleanup()

	_, err = writer.Write(text)
	if err != nil {
		return fmt.Errorf("writer.Write: %w", err)
	}

	return nil
}

func (h *Handler) getStoreWriter(output string, arg ...any) (writer io.Writer, cleanup func(), err error) {
	switch output {
	case "file":
		if len(arg) < 1 || arg[0] == "" {
			return nil, func() {}, fmt.Errorf("no output path provided")
		}

		path, ok := arg[0].(string)
		if !ok {
			return nil, func() {}, fmt.Errorf("invalid output path: not a string")
		}

		writer, err := os.Create(path)
		if err != nil {
			return nil, func() {}, err
		}

		return writer, func() { writer.Close() }, nil
	case "buffer":
		if h.vim == nil {
			return nil, func() {}, errNoVim
		}
		if len(arg) < 1 {
			return nil, func() {}, fmt.Errorf("no buffer provided")
		}

		switch buf := arg[0].(type) {
		case int64:
			return newBuffer(h.vim, nvim.Buffer(buf)), func() {}, nil
		case uint64:
			return newBuffer(h.vim, nvim.Buffer(buf)), func() {}, nil
		case int:
			return newBuffer(h.vim, nvim.Buffer(buf)), func() {}, nil
		case string:
			n, err := strconv.ParseInt(buf, 10, 64)
			return newBuffer(h.vim, nvim.Buffer(n)), func() {}, err
		}

		return nil, func() {}, fmt.Errorf("buffer number not an int")
	case "yank":
		if h.vim == nil {
			return nil, func() {}, errNoVim
		}
		register := ""
		if len(arg) > 0 {
			register, _ = arg[0].(string)
		}

		return newYankRegister(h.vim, register), func() {}, nil
	}

	return nil, func() {}, fmt.Errorf("store output: %q is not supported", output)
}
