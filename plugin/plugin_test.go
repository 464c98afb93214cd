package plugin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlugin_Manifest(t *testing.T) {
	r := require.New(t)

	p := New(nil, NewLogger(nil))
	p.RegisterEndpoint("GatewayExecuteQuery", func(args *struct {
		ID string `msgpack:",array"`
	},
	) (any, error) {
		return nil, nil
	})
	p.RegisterEndpoint("GatewayClearHistory", func() error {
		return nil
	})

	r.Equal([]string{"GatewayClearHistory", "GatewayExecuteQuery"}, p.Endpoints())

	path := filepath.Join(t.TempDir(), "manifest.lua")
	r.NoError(p.Manifest("nvim_gateway", "/usr/bin/gateway", path))

	b, err := os.ReadFile(path)
	r.NoError(err)
	manifest := string(b)

	r.Contains(manifest, `vim.fn["remote#host#Register"]("nvim_gateway"`)
	r.Contains(manifest, `"/usr/bin/gateway"`)
	r.Contains(manifest, `{ type = "function", name = "GatewayExecuteQuery", sync = 1, opts = vim.empty_dict() },`)
	r.Contains(manifest, `{ type = "function", name = "GatewayClearHistory", sync = 1, opts = vim.empty_dict() },`)
}
