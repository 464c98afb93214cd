package builders

import (
	"fmt"
)

type clientConfig struct {
	cascade        *SQLCascade
	maxConnections int
}

type ClientOption func(*clientConfig)

// WithCascade sets the cascade used to decode values.
func WithCascade(cascade *SQLCascade) ClientOption {
	return func(cc *clientConfig) {
		if cascade == nil {
			return
		}
		cc.cascade = cascade
	}
}

// WithMaxConnections bounds the pool size.
func WithMaxConnections(n int) ClientOption {
	return func(cc *clientConfig) {
		cc.maxConnections = n
	}
}

func goTypeName(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%T", v)
}
