package adapters

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/nextdb/gateway/core"
)

// Register client
func init() {
	register(core.KindRedis, &Redis{})
}

var _ core.Adapter = (*Redis)(nil)

type Redis struct{}

// Connect only builds the client. The server is contacted lazily by the first
// command.
func (r *Redis) Connect(_ context.Context, url string) (core.Driver, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	return &redisDriver{
		redis: redis.NewClient(opt),
	}, nil
}
