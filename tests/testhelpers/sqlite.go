package testhelpers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/nextdb/gateway/core"
	"github.com/nextdb/gateway/handler"
)

type SQLiteContainer struct {
	tc.Container
	ConnURL string
	Handler *handler.Handler
	TempDir string
}

// NewSQLiteContainer seeds a database file with the sqlite3 cli inside a
// container. The file lives in tmpDir, which is mounted into the container, so
// the handler connects to it from the host.
func NewSQLiteContainer(ctx context.Context, id core.ConnectionID, tmpDir string) (*SQLiteContainer, error) {
	seedFile, err := GetTestDataFile("sqlite_seed.sql")
	if err != nil {
		return nil, err
	}

	dbName, containerDBPath := "test.db", "/container/db"
	entrypointCmd := []string{
		"apk add sqlite",
		fmt.Sprintf("sqlite3 %s/%s < %s", containerDBPath, dbName, seedFile.Name()),
		"echo 'ready'",
		"tail -f /dev/null", // keeps the container alive
	}

	req := tc.ContainerRequest{
		Image: "alpine:3.21",
		Files: []tc.ContainerFile{
			{
				Reader:            seedFile,
				ContainerFilePath: seedFile.Name(),
				FileMode:          0o755,
			},
		},
		HostConfigModifier: func(hc *container.HostConfig) {
			hc.Binds = append(hc.Binds, fmt.Sprintf("%s:%s", tmpDir, containerDBPath))
		},
		Cmd:        []string{"sh", "-c", strings.Join(entrypointCmd, " && ")},
		WaitingFor: wait.ForLog("ready").WithStartupTimeout(30 * time.Second),
	}

	ctr, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		ProviderType:     GetContainerProvider(),
		Started:          true,
	})
	if err != nil {
		return nil, err
	}

	connURL := "sqlite://" + filepath.Join(tmpDir, dbName)

	h, err := NewHandler(ctx, "sqlite", id, connURL)
	if err != nil {
		return nil, err
	}

	return &SQLiteContainer{
		Container: ctr,
		ConnURL:   connURL,
		Handler:   h,
		TempDir:   tmpDir,
	}, nil
}
