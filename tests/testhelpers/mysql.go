package testhelpers

import (
	"context"

	tc "github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"

	"github.com/nextdb/gateway/core"
	"github.com/nextdb/gateway/handler"
)

type MySQLContainer struct {
	*tcmysql.MySQLContainer
	ConnURL string
	Handler *handler.Handler
}

// NewMySQLContainer starts a seeded MySQL container and connects a handler to
// it under id. The connection string is in the driver's DSN format.
func NewMySQLContainer(ctx context.Context, id core.ConnectionID) (*MySQLContainer, error) {
	seedFile, err := GetTestDataFile("mysql_seed.sql")
	if err != nil {
		return nil, err
	}
	defer seedFile.Close()

	ctr, err := tcmysql.Run(
		ctx,
		"mysql:9.2.0",
		tc.CustomizeRequest(tc.GenericContainerRequest{
			ProviderType: GetContainerProvider(),
		}),
		tcmysql.WithDatabase("dev"),
		tcmysql.WithPassword("password"),
		tcmysql.WithUsername("root"),
		tcmysql.WithScripts(seedFile.Name()),
	)
	if err != nil {
		return nil, err
	}

	connURL, err := ctr.ConnectionString(ctx, "tls=skip-verify")
	if err != nil {
		return nil, err
	}

	h, err := NewHandler(ctx, "mysql", id, connURL)
	if err != nil {
		return nil, err
	}

	return &MySQLContainer{
		MySQLContainer: ctr,
		ConnURL:        connURL,
		Handler:        h,
	}, nil
}
