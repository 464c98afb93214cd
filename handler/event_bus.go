package handler

import (
	"fmt"

	"github.com/neovim/go-client/nvim"

	"github.com/nextdb/gateway/core"
)

// eventBus forwards state changes to the lua side. Without a neovim host the
// events are dropped.
type eventBus struct {
	vim *nvim.Nvim
	log core.Logger
}

func (eb *eventBus) callLua(event string, data string) {
	if eb.vim == nil {
		return
	}

	err := eb.vim.ExecLua(fmt.Sprintf(`require("gateway.events").trigger(%q, %s)`, event, data), nil)
	if err != nil {
		eb.log.Warnf("eb.vim.ExecLua: %s", err)
	}
}

func (eb *eventBus) CallStateChanged(call *core.Call) {
	errMsg := "nil"
	if err := call.Err(); err != nil {
		errMsg = fmt.Sprintf("%q", err.Error())
	}

	data := fmt.Sprintf(`{
		call = {
			id = %q,
			conn_id = %q,
			query = %q,
			state = %q,
			time_taken_us = %d,
			timestamp_us = %d,
			error = %s,
		},
	}`, call.GetID(),
		call.GetConnectionID(),
		call.GetQuery(),
		call.GetState().String(),
		call.GetTimeTaken().Microseconds(),
		call.GetTimestamp().UnixMicro(),
		errMsg)

	eb.callLua("call_state_changed", data)
}

func (eb *eventBus) ConnectionChanged(id core.ConnectionID, connected bool) {
	data := fmt.Sprintf(`{
		conn_id = %q,
		connected = %t,
	}`, id, connected)

	eb.callLua("connection_changed", data)
}
