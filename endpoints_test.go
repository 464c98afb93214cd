package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nextdb/gateway/handler"
	"github.com/nextdb/gateway/plugin"
)

func TestMountEndpoints(t *testing.T) {
	logger := plugin.NewLogger(nil)
	p := plugin.New(nil, logger)
	h := handler.New(nil, logger)
	defer h.Close()

	mountEndpoints(p, h)

	require.Equal(t, []string{
		"GatewayCallDisplayResult",
		"GatewayCallStoreResult",
		"GatewayClearHistory",
		"GatewayConnect",
		"GatewayDisconnect",
		"GatewayExecuteCommand",
		"GatewayExecuteQuery",
		"GatewayGetConnections",
		"GatewayGetHistory",
	}, p.Endpoints())
}
