package handler

import (
	"github.com/nextdb/gateway/adapters"
	"github.com/nextdb/gateway/core"
)

// AdapterSource resolves a backend kind name to its adapter.
type AdapterSource interface {
	GetAdapter(typ string) (core.Adapter, error)
}

type config struct {
	adapters     AdapterSource
	historyLimit int
	urlTemplates bool
	urlExec      bool
}

type Option func(*config)

// WithAdapters replaces the built in adapters.
func WithAdapters(source AdapterSource) Option {
	return func(c *config) {
		if source == nil {
			return
		}
		c.adapters = source
	}
}

// WithHistoryLimit sets the number of calls kept in history.
func WithHistoryLimit(n int) Option {
	return func(c *config) {
		c.historyLimit = n
	}
}

// WithURLTemplates renders connection urls as text/template before
// connecting, with env available. allowExec additionally enables exec, which
// runs the given command line and substitutes its output.
func WithURLTemplates(allowExec bool) Option {
	return func(c *config) {
		c.urlTemplates = true
		c.urlExec = allowExec
	}
}

func defaultConfig() *config {
	return &config{
		adapters:     new(adapters.Mux),
		historyLimit: core.DefaultHistoryLimit,
	}
}
