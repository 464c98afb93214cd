package handler

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/nextdb/gateway/core"
	"github.com/nextdb/gateway/core/format"
)

var _ core.Formatter = (*Table)(nil)

// Table renders rows as a numbered text table.
type Table struct{}

func newTable() *Table {
	return &Table{}
}

func (tf *Table) Format(header core.Header, rows []core.Row, opts *core.FormatterOptions) ([]byte, error) {
	tableHeaders := table.Row{""}
	for _, k := range header {
		tableHeaders = append(tableHeaders, k)
	}
	index := opts.ChunkStart

	tableRows := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		indexedRow := make(table.Row, 0, len(row)+1)
		indexedRow = append(indexedRow, index+1)
		for _, v := range row {
			if v == nil {
				indexedRow = append(indexedRow, "NULL")
				continue
			}
			cell, err := format.Cell(v)
			if err != nil {
				return nil, err
			}
			indexedRow = append(indexedRow, cell)
		}
		tableRows = append(tableRows, indexedRow)
		index++
	}

	t := table.NewWriter()
	t.AppendHeader(tableHeaders)
	t.AppendRows(tableRows)
	t.AppendSeparator()
	t.SetStyle(table.StyleLight)
	t.Style().Format = table.FormatOptions{
		Footer: text.FormatDefault,
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	}
	t.Style().Options.DrawBorder = false
	t.SuppressTrailingSpaces()

	return []byte(t.Render()), nil
}
