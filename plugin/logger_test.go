package plugin

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLogger_WithoutNeovim(t *testing.T) {
	r := require.New(t)

	var buf bytes.Buffer
	l := NewLogger(nil)
	l.logger = newZerolog(&buf)

	l.Infof("connected %s", "pg")
	l.Errorf("query failed: %d", 42)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	r.Len(lines, 2)

	var entry map[string]any
	r.NoError(json.Unmarshal(lines[0], &entry))
	r.Equal("info", entry["level"])
	r.Equal("connected pg", entry["message"])

	r.NoError(json.Unmarshal(lines[1], &entry))
	r.Equal("error", entry["level"])
	r.Equal("query failed: 42", entry["message"])
}

func TestLogger_SetLevel(t *testing.T) {
	r := require.New(t)

	var buf bytes.Buffer
	l := NewLogger(nil)
	l.logger = newZerolog(&buf)
	l.SetLevel(zerolog.WarnLevel)

	l.Debugf("hidden")
	l.Infof("hidden")
	l.Warnf("shown")

	r.NotContains(buf.String(), "hidden")
	r.Contains(buf.String(), "shown")

	// closing without a file is a no-op
	l.Close()
}
