package builders

import (
	"errors"
	"fmt"
	"math"

	"github.com/nextdb/gateway/core"
)

// ErrTypeMismatch is returned by rungs that can't convert a value.
var ErrTypeMismatch = errors.New("type mismatch")

// Rung is a single typed decode attempt. C is the column descriptor of the
// backend (type OID, *sql.ColumnType, ...).
type Rung[C any] struct {
	Name string
	// Accepts reports whether the column type is compatible with the rung.
	// nil accepts every column.
	Accepts func(col C) bool
	// Decode converts a non-NULL source value.
	Decode func(col C, src any) (any, error)
}

// Cascade is an ordered, first-match-wins list of rungs.
type Cascade[C any] struct {
	rungs    []Rung[C]
	typeName func(col C, src any) string
}

func NewCascade[C any](typeName func(col C, src any) string, rungs ...Rung[C]) *Cascade[C] {
	return &Cascade[C]{
		rungs:    rungs,
		typeName: typeName,
	}
}

// Decode returns the value of the first rung that accepts the column and
// converts the source without error. NULL decodes to nil. If every rung
// fails, a placeholder naming the column type is returned instead.
func (c *Cascade[C]) Decode(col C, src any) any {
	if src == nil {
		return nil
	}

	for _, r := range c.rungs {
		if r.Accepts != nil && !r.Accepts(col) {
			continue
		}

		v, err := r.Decode(col, src)
		if err != nil {
			continue
		}
		return v
	}

	return Unsupported(c.typeName(col, src))
}

// DecodeRow decodes values positionally against cols.
func (c *Cascade[C]) DecodeRow(cols []C, values []any) (core.Row, error) {
	if len(cols) != len(values) {
		return nil, fmt.Errorf("got %d values for %d columns", len(values), len(cols))
	}

	row := make(core.Row, len(values))
	for i := range values {
		row[i] = c.Decode(cols[i], values[i])
	}

	return row, nil
}

// Names returns rung names in evaluation order.
func (c *Cascade[C]) Names() []string {
	names := make([]string, len(c.rungs))
	for i, r := range c.rungs {
		names[i] = r.Name
	}
	return names
}

// Unsupported is the placeholder for cells no rung could decode.
func Unsupported(typ string) string {
	return fmt.Sprintf("<unsupported: %s>", typ)
}

// OneOf builds an Accepts predicate matching a column key against values.
func OneOf[C any, T comparable](key func(C) T, values ...T) func(C) bool {
	set := make(map[T]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}

	return func(col C) bool {
		_, ok := set[key(col)]
		return ok
	}
}

// Float converts a float to a number value. NaN and infinities have no JSON
// representation and become nil.
func Float(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}
