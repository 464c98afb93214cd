package handler

import (
	"github.com/neovim/go-client/msgpack"

	"github.com/nextdb/gateway/core"
)

// resultWrap is a wrapper around core.Result with msgpack marshaling capabilities
type resultWrap struct {
	result *core.Result
}

func WrapResult(result *core.Result) *resultWrap {
	return &resultWrap{
		result: result,
	}
}

func (rw *resultWrap) MarshalMsgPack(enc *msgpack.Encoder) error {
	if rw.result == nil {
		return enc.Encode(nil)
	}

	header := rw.result.Header
	if header == nil {
		header = core.Header{}
	}
	rows := make([][]any, len(rw.result.Rows))
	for i, row := range rw.result.Rows {
		rows[i] = row
	}

	return enc.Encode(&struct {
		Columns         []string `msgpack:"columns"`
		Rows            [][]any  `msgpack:"rows"`
		ExecutionTimeMs int64    `msgpack:"execution_time_ms"`
		AffectedRows    int64    `msgpack:"affected_rows"`
	}{
		Columns:         header,
		Rows:            rows,
		ExecutionTimeMs: rw.result.ExecutionTimeMs(),
		AffectedRows:    rw.result.AffectedRows(),
	})
}

// callWrap is a wrapper around core.Call with msgpack marshaling capabilities
type callWrap struct {
	call *core.Call
}

func WrapCall(call *core.Call) *callWrap {
	return &callWrap{
		call: call,
	}
}

func WrapCalls(calls []*core.Call) []*callWrap {
	wraps := make([]*callWrap, len(calls))

	for i := range calls {
		wraps[i] = &callWrap{
			call: calls[i],
		}
	}

	return wraps
}

func (cw *callWrap) MarshalMsgPack(enc *msgpack.Encoder) error {
	if cw.call == nil {
		return enc.Encode(nil)
	}

	errMsg := ""
	if err := cw.call.Err(); err != nil {
		errMsg = err.Error()
	}

	rowCount := 0
	if res, err := cw.call.GetResult(); err == nil {
		rowCount = res.Len()
	}

	return enc.Encode(&struct {
		ID           string `msgpack:"id"`
		ConnectionID string `msgpack:"conn_id"`
		Query        string `msgpack:"query"`
		State        string `msgpack:"state"`
		TimeTaken    int64  `msgpack:"time_taken_us"`
		Timestamp    int64  `msgpack:"timestamp_us"`
		RowCount     int    `msgpack:"row_count"`
		Error        string `msgpack:"error,omitempty"`
	}{
		ID:           string(cw.call.GetID()),
		ConnectionID: string(cw.call.GetConnectionID()),
		Query:        cw.call.GetQuery(),
		State:        cw.call.GetState().String(),
		TimeTaken:    cw.call.GetTimeTaken().Microseconds(),
		Timestamp:    cw.call.GetTimestamp().UnixMicro(),
		RowCount:     rowCount,
		Error:        errMsg,
	})
}

// connectionWrap is wrapper around core.Connection with msgpack marshaling capabilities
type connectionWrap struct {
	connection *core.Connection
}

func WrapConnection(connection *core.Connection) *connectionWrap {
	return &connectionWrap{
		connection: connection,
	}
}

func WrapConnections(connections []*core.Connection) []*connectionWrap {
	wraps := make([]*connectionWrap, len(connections))

	for i := range connections {
		wraps[i] = &connectionWrap{
			connection: connections[i],
		}
	}

	return wraps
}

// MarshalMsgPack leaves the url out, it usually carries credentials.
func (cw *connectionWrap) MarshalMsgPack(enc *msgpack.Encoder) error {
	if cw.connection == nil {
		return enc.Encode(nil)
	}
	return enc.Encode(&struct {
		ID        string `msgpack:"id"`
		Kind      string `msgpack:"kind"`
		CreatedAt int64  `msgpack:"created_at_us"`
	}{
		ID:        string(cw.connection.GetID()),
		Kind:      cw.connection.GetKind().String(),
		CreatedAt: cw.connection.GetCreatedAt().UnixMicro(),
	})
}
