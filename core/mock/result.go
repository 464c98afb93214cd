package mock

import (
	"fmt"
	"time"

	"github.com/nextdb/gateway/core"
)

func makeDefaultHeader(rows []core.Row) core.Header {
	var header core.Header
	if len(rows) > 0 {
		for i := range rows[0] {
			header = append(header, fmt.Sprintf("header_%d", i))
		}
	}
	return header
}

// NewResult returns a result with provided rows.
// It creates a header that matches the number of columns in the first row
// in form of: <header_0>, <header_1>, etc.
func NewResult(rows []core.Row, opts ...ResultOption) *core.Result {
	config := &resultConfig{
		header: makeDefaultHeader(rows),
	}
	for _, opt := range opts {
		opt(config)
	}

	if config.delay > 0 {
		time.Sleep(config.delay)
	}

	return core.NewResult(config.header, rows, config.delay)
}

// NewRows returns a slice of rows in form of:
//
//	{ <index>(int), "row_<index>"(string) }
//
// where the first index is "from" and the last one is one less than "to".
func NewRows(from, to int) []core.Row {
	var rows []core.Row

	for i := from; i < to; i++ {
		rows = append(rows, core.Row{i, fmt.Sprintf("row_%d", i)})
	}
	return rows
}
