package format

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/nextdb/gateway/core"
)

var _ core.Formatter = (*CSV)(nil)

// CSV renders a header line followed by one line per row. NULL is an empty
// field.
type CSV struct{}

func NewCSV() *CSV {
	return &CSV{}
}

func (cf *CSV) records(header core.Header, rows []core.Row) ([][]string, error) {
	data := [][]string{
		header,
	}
	for _, row := range rows {
		csvRow := make([]string, len(row))
		for i, rec := range row {
			field, err := Cell(rec)
			if err != nil {
				return nil, err
			}
			csvRow[i] = field
		}
		data = append(data, csvRow)
	}

	return data, nil
}

func (cf *CSV) Format(header core.Header, rows []core.Row, _ *core.FormatterOptions) ([]byte, error) {
	data, err := cf.records(header, rows)
	if err != nil {
		return nil, err
	}

	b := new(bytes.Buffer)
	w := csv.NewWriter(b)

	err = w.WriteAll(data)
	if err != nil {
		return nil, fmt.Errorf("w.WriteAll: %w", err)
	}

	return b.Bytes(), nil
}

// Cell renders a single value as text. Structured values (decoded json) are
// written as compact json.
func Cell(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return "", fmt.Errorf("json.Marshal: %w", err)
		}
		return string(b), nil
	default:
		return fmt.Sprint(val), nil
	}
}
