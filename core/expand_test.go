package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	r := require.New(t)
	t.Setenv("GATEWAY_TEST_PASSWORD", "s3cret")

	testCases := []struct {
		input    string
		expected string
	}{
		{"redis://localhost:6379", "redis://localhost:6379"},
		{"postgres://app:{{ env `GATEWAY_TEST_PASSWORD` }}@db/app", "postgres://app:s3cret@db/app"},
		{"{{ exec `echo \"hello\nbuddy\" | grep buddy` }}", "buddy"},
		{"{{ exec `echo plain` }}", "plain"},
	}

	for _, tc := range testCases {
		actual, err := expand(tc.input, true)
		r.NoError(err)

		r.Equal(tc.expected, actual)
	}
}

func TestExpandOrDefault_InvalidTemplate(t *testing.T) {
	// unterminated action, returned as is
	require.Equal(t, "sqlite:{{ oops", expandOrDefault("sqlite:{{ oops", true))
}

func TestExpand_ExecNeedsOptIn(t *testing.T) {
	r := require.New(t)

	_, err := expand("{{ exec `echo plain` }}", false)
	r.Error(err)

	// nothing runs, the value is kept as written
	r.Equal("x{{ exec `echo plain` }}", expandOrDefault("x{{ exec `echo plain` }}", false))
	r.Equal("plain", expandOrDefault("{{ exec `echo plain` }}", true))
}

func TestConnectionParams_Expand(t *testing.T) {
	r := require.New(t)
	t.Setenv("GATEWAY_TEST_HOST", "db.internal")

	params := &ConnectionParams{
		ID:   "main",
		Type: "mysql",
		URL:  "mysql://root@{{ env `GATEWAY_TEST_HOST` }}:3306/app",
	}

	expanded := params.Expand(false)
	r.Equal("mysql://root@db.internal:3306/app", expanded.URL)
	r.Equal(params.ID, expanded.ID)
	r.Equal(params.Type, expanded.Type)
	// original stays untouched
	r.Contains(params.URL, "{{")
}
