package testhelpers

import (
	"context"
	"fmt"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/nextdb/gateway/core"
	"github.com/nextdb/gateway/handler"
)

type RedisContainer struct {
	tc.Container
	ConnURL string
	Handler *handler.Handler
}

// NewRedisContainer starts an empty redis container and connects a handler
// to it under id.
func NewRedisContainer(ctx context.Context, id core.ConnectionID) (*RedisContainer, error) {
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
	}

	ctr, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		ProviderType:     GetContainerProvider(),
		Started:          true,
	})
	if err != nil {
		return nil, err
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		return nil, err
	}
	port, err := ctr.MappedPort(ctx, "6379/tcp")
	if err != nil {
		return nil, err
	}

	connURL := fmt.Sprintf("redis://%s:%s/0", host, port.Port())

	h, err := NewHandler(ctx, "redis", id, connURL)
	if err != nil {
		return nil, err
	}

	return &RedisContainer{
		Container: ctr,
		ConnURL:   connURL,
		Handler:   h,
	}, nil
}
