package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// Result is the backend-agnostic shape produced by every query path.
type Result struct {
	Header Header
	Rows   []Row
	// Took is the wall-clock duration of the query and fetch phase.
	Took time.Duration
}

// NewResult makes sure neither header nor rows are nil so the result always
// serializes to arrays.
func NewResult(header Header, rows []Row, took time.Duration) *Result {
	if header == nil {
		header = Header{}
	}
	if rows == nil {
		rows = []Row{}
	}

	return &Result{
		Header: header,
		Rows:   rows,
		Took:   took,
	}
}

// ExecutionTimeMs is the query duration in whole milliseconds.
func (r *Result) ExecutionTimeMs() int64 {
	return r.Took.Milliseconds()
}

// AffectedRows is always 0: no backend reports modification counts on the
// uniform query path.
func (r *Result) AffectedRows() int64 {
	return 0
}

func (r *Result) Len() int {
	return len(r.Rows)
}

// Validate checks that every row is as wide as the header.
func (r *Result) Validate() error {
	for i, row := range r.Rows {
		if len(row) != len(r.Header) {
			return fmt.Errorf("row %d has %d values, expected %d", i, len(row), len(r.Header))
		}
	}
	return nil
}

// Format formats the whole result with the given formatter.
func (r *Result) Format(formatter Formatter) ([]byte, error) {
	f, err := formatter.Format(r.Header, r.Rows, &FormatterOptions{ChunkStart: 0})
	if err != nil {
		return nil, fmt.Errorf("formatter.Format: %w", err)
	}

	return f, nil
}

type resultPersistent struct {
	Columns         []string `json:"columns"`
	Rows            []Row    `json:"rows"`
	ExecutionTimeMs int64    `json:"execution_time_ms"`
	AffectedRows    int64    `json:"affected_rows"`
}

func (r *Result) toPersistent() *resultPersistent {
	header := r.Header
	if header == nil {
		header = Header{}
	}
	rows := r.Rows
	if rows == nil {
		rows = []Row{}
	}

	return &resultPersistent{
		Columns:         header,
		Rows:            rows,
		ExecutionTimeMs: r.ExecutionTimeMs(),
		AffectedRows:    r.AffectedRows(),
	}
}

func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.toPersistent())
}
