package adapters

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/nextdb/gateway/core"
)

var (
	_ core.Driver    = (*redisDriver)(nil)
	_ core.Commander = (*redisDriver)(nil)
)

// ErrUnsupportedReply is returned for replies that have no single text form.
var ErrUnsupportedReply = errors.New("response was of incompatible type")

// redisDoer is the part of the redis client used by the driver.
type redisDoer interface {
	Do(ctx context.Context, args ...any) *redis.Cmd
	Close() error
}

type redisDriver struct {
	redis redisDoer
}

func (c *redisDriver) Command(ctx context.Context, args []string) (string, error) {
	if len(args) < 1 {
		return "", core.ErrEmptyCommand
	}

	cmd := make([]any, len(args))
	for i, a := range args {
		cmd[i] = a
	}

	reply, err := c.redis.Do(ctx, cmd...).Result()
	if err != nil {
		return "", err
	}

	return redisReplyToText(reply)
}

func (c *redisDriver) Close() {
	_ = c.redis.Close()
}

// redisReplyToText renders scalar replies. Nil and aggregate replies are
// rejected.
func redisReplyToText(reply any) (string, error) {
	switch v := reply.(type) {
	case string:
		return v, nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case *big.Int:
		return v.String(), nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedReply, reply)
	}
}
