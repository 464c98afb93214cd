package builders

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

type testColumn struct {
	typ string
}

func testColumnType(c testColumn) string { return c.typ }

func newTestCascade() *Cascade[testColumn] {
	return NewCascade(
		func(c testColumn, _ any) string { return c.typ },
		Rung[testColumn]{
			Name:    "text",
			Accepts: OneOf(testColumnType, "TEXT", "VARCHAR"),
			Decode: func(_ testColumn, src any) (any, error) {
				s, ok := src.(string)
				if !ok {
					return nil, ErrTypeMismatch
				}
				return s, nil
			},
		},
		Rung[testColumn]{
			Name:    "int",
			Accepts: OneOf(testColumnType, "INT"),
			Decode: func(_ testColumn, src any) (any, error) {
				i, ok := src.(int64)
				if !ok {
					return nil, ErrTypeMismatch
				}
				return i, nil
			},
		},
		Rung[testColumn]{
			Name: "any float",
			Decode: func(_ testColumn, src any) (any, error) {
				f, ok := src.(float64)
				if !ok {
					return nil, errors.New("not a float")
				}
				return Float(f), nil
			},
		},
	)
}

func TestCascade_Decode(t *testing.T) {
	c := newTestCascade()

	testCases := []struct {
		name     string
		col      testColumn
		src      any
		expected any
	}{
		{"text", testColumn{"TEXT"}, "abc", "abc"},
		{"int", testColumn{"INT"}, int64(7), int64(7)},
		{"null short circuits", testColumn{"INT"}, nil, nil},
		{"int column with text value falls through", testColumn{"INT"}, "x", "<unsupported: INT>"},
		{"untyped float rung", testColumn{"NUMERIC"}, 1.5, 1.5},
		{"nan becomes null", testColumn{"NUMERIC"}, math.NaN(), nil},
		{"inf becomes null", testColumn{"NUMERIC"}, math.Inf(-1), nil},
		{"fallback", testColumn{"POINT"}, struct{}{}, "<unsupported: POINT>"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, c.Decode(tc.col, tc.src))
		})
	}
}

func TestCascade_DecodeRow(t *testing.T) {
	r := require.New(t)

	c := newTestCascade()

	row, err := c.DecodeRow(
		[]testColumn{{"TEXT"}, {"INT"}, {"INT"}},
		[]any{"abc", int64(0), nil},
	)
	r.NoError(err)
	// null and zero stay distinct
	r.Equal([]any{"abc", int64(0), nil}, []any(row))

	_, err = c.DecodeRow([]testColumn{{"TEXT"}}, []any{"a", "b"})
	r.Error(err)
}

func TestCascade_Names(t *testing.T) {
	require.Equal(t, []string{"text", "int", "any float"}, newTestCascade().Names())
}
