package main

import (
	"context"

	"github.com/neovim/go-client/nvim"

	"github.com/nextdb/gateway/core"
	"github.com/nextdb/gateway/handler"
	"github.com/nextdb/gateway/plugin"
)

func mountEndpoints(p *plugin.Plugin, h *handler.Handler) {
	p.RegisterEndpoint(
		"GatewayConnect",
		func(args *struct {
			Kind string `msgpack:",array"`
			ID   string
			URL  string
		},
		) (string, error) {
			return h.Connect(context.Background(), args.Kind, args.ID, args.URL)
		})

	p.RegisterEndpoint(
		"GatewayDisconnect",
		func(args *struct {
			ID core.ConnectionID `msgpack:",array"`
		},
		) error {
			return h.Disconnect(args.ID)
		})

	p.RegisterEndpoint(
		"GatewayGetConnections",
		func() (any, error) {
			return handler.WrapConnections(h.GetConnections()), nil
		})

	p.RegisterEndpoint(
		"GatewayExecuteQuery",
		func(args *struct {
			ID       core.ConnectionID `msgpack:",array"`
			Query    string
			Database string
		},
		) (any, error) {
			result, err := h.ExecuteQuery(context.Background(), args.ID, args.Query, args.Database)
			if err != nil {
				return nil, err
			}
			return handler.WrapResult(result), nil
		})

	p.RegisterEndpoint(
		"GatewayExecuteCommand",
		func(args *struct {
			ID      core.ConnectionID `msgpack:",array"`
			Command string
		},
		) (string, error) {
			return h.ExecuteCommand(context.Background(), args.ID, args.Command)
		})

	p.RegisterEndpoint(
		"GatewayGetHistory",
		func(args *struct {
			ID core.ConnectionID `msgpack:",array"`
		},
		) (any, error) {
			return handler.WrapCalls(h.GetHistory(args.ID)), nil
		})

	p.RegisterEndpoint(
		"GatewayClearHistory",
		func() error {
			h.ClearHistory()
			return nil
		})

	p.RegisterEndpoint(
		"GatewayCallDisplayResult",
		func(args *struct {
			ID     core.CallID `msgpack:",array"`
			Buffer int
		},
		) (int, error) {
			return h.CallDisplayResult(args.ID, nvim.Buffer(args.Buffer))
		})

	p.RegisterEndpoint(
		"GatewayCallStoreResult",
		func(args *struct {
			ID     core.CallID `msgpack:",array"`
			Format string
			Output string
			Opts   *struct {
				ExtraArg any `msgpack:"extra_arg"`
			}
		},
		) (any, error) {
			var extra []any
			if args.Opts != nil && args.Opts.ExtraArg != nil {
				extra = append(extra, args.Opts.ExtraArg)
			}
			return nil, h.CallStoreResult(args.ID, args.Format, args.Output, extra...)
		})
}
