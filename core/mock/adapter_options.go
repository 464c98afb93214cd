package mock

import (
	"context"
)

type adapterConfig struct {
	querySideEffects map[string]func(context.Context) error
	replies          map[string]string
	connectErr       error

	resultOptions []ResultOption
}

type AdapterOption func(*adapterConfig)

func AdapterWithQuerySideEffect(query string, sideEffect func(context.Context) error) AdapterOption {
	return func(c *adapterConfig) {
		_, ok := c.querySideEffects[query]
		if ok {
			panic("side effect already registered for query: " + query)
		}

		c.querySideEffects[query] = sideEffect
	}
}

// AdapterWithReply sets the reply for a command verb.
func AdapterWithReply(verb string, reply string) AdapterOption {
	return func(c *adapterConfig) {
		_, ok := c.replies[verb]
		if ok {
			panic("reply already registered for command: " + verb)
		}

		c.replies[verb] = reply
	}
}

// AdapterWithConnectError makes every Connect fail with err.
func AdapterWithConnectError(err error) AdapterOption {
	return func(c *adapterConfig) {
		c.connectErr = err
	}
}

func AdapterWithResultOpts(opts ...ResultOption) AdapterOption {
	return func(c *adapterConfig) {
		c.resultOptions = append(c.resultOptions, opts...)
	}
}
