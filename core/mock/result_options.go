package mock

import (
	"time"

	"github.com/nextdb/gateway/core"
)

type resultConfig struct {
	delay  time.Duration
	header core.Header
}

type ResultOption func(*resultConfig)

// ResultWithDelay makes producing the result take at least d.
func ResultWithDelay(d time.Duration) ResultOption {
	return func(c *resultConfig) {
		c.delay = d
	}
}

func ResultWithHeader(header core.Header) ResultOption {
	return func(c *resultConfig) {
		c.header = header
	}
}
