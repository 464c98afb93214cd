package integration

import (
	"context"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	tsuite "github.com/stretchr/testify/suite"
	tc "github.com/testcontainers/testcontainers-go"

	"github.com/nextdb/gateway/core"
	th "github.com/nextdb/gateway/tests/testhelpers"
)

// PostgresTestSuite is the test suite for the postgres adapter.
type PostgresTestSuite struct {
	tsuite.Suite
	ctr *th.PostgresContainer
	ctx context.Context
}

const postgresID core.ConnectionID = "test-postgres"

// TestPostgresTestSuite is the entrypoint for go test.
//
// testify/suite can't handle parallel tests, see
// https://github.com/stretchr/testify/issues/934
func TestPostgresTestSuite(t *testing.T) {
	tc.SkipIfProviderIsNotHealthy(t)
	tsuite.Run(t, new(PostgresTestSuite))
}

func (suite *PostgresTestSuite) SetupSuite() {
	suite.ctx = context.Background()
	ctr, err := th.NewPostgresContainer(suite.ctx, postgresID)
	if err != nil {
		log.Fatal(err)
	}

	suite.ctr = ctr
}

func (suite *PostgresTestSuite) TearDownSuite() {
	suite.ctr.Handler.Close()
	tc.CleanupContainer(suite.T(), suite.ctr)
}

func (suite *PostgresTestSuite) TestShouldErrorInvalidQuery() {
	t := suite.T()

	_, err := suite.ctr.Handler.ExecuteQuery(suite.ctx, postgresID, "invalid sql", "")
	assert.ErrorContains(t, err, "syntax error")
}

func (suite *PostgresTestSuite) TestShouldReturnRows() {
	t := suite.T()

	wantCols := core.Header{"id", "username", "email", "score", "active", "created_at", "payload"}
	wantRows := []core.Row{
		{int64(1), "john_doe", "john@example.com", 1.5, true, "2023-01-02 03:04:05", "0xdead"},
		{int64(2), "jane_smith", nil, 2.25, false, "2023-06-07 08:09:10.5", nil},
		{int64(3), "bob_wilson", "bob@example.com", nil, nil, nil, "plain"},
	}

	result, err := suite.ctr.Handler.ExecuteQuery(suite.ctx, postgresID,
		"SELECT * FROM test.test_table ORDER BY id", "")
	assert.NoError(t, err)

	assert.Equal(t, wantCols, result.Header)
	assert.Equal(t, wantRows, result.Rows)
	assert.Zero(t, result.AffectedRows())
}

func (suite *PostgresTestSuite) TestShouldDecodeLiterals() {
	t := suite.T()

	query := `SELECT
		2::int2 AS small,
		'12:30:00'::time AS clock,
		'2024-02-29'::date AS day,
		'2024-01-01 10:00:00+02'::timestamptz AS stamp,
		'NaN'::float8 AS nan,
		'{"a": 1}'::jsonb AS doc,
		'10.5'::numeric AS num`

	result, err := suite.ctr.Handler.ExecuteQuery(suite.ctx, postgresID, query, "")
	assert.NoError(t, err)

	assert.Equal(t, []core.Row{{
		int64(2),
		"12:30:00",
		"2024-02-29",
		"2024-01-01 08:00:00 UTC",
		nil,
		map[string]any{"a": float64(1)},
		"<unsupported: NUMERIC>",
	}}, result.Rows)
}

func (suite *PostgresTestSuite) TestShouldReturnColumnsOfEmptyResult() {
	t := suite.T()

	result, err := suite.ctr.Handler.ExecuteQuery(suite.ctx, postgresID,
		"SELECT id, name FROM test.empty_table", "")
	assert.NoError(t, err)

	assert.Equal(t, core.Header{"id", "name"}, result.Header)
	assert.Empty(t, result.Rows)
}

func (suite *PostgresTestSuite) TestShouldRecordHistory() {
	t := suite.T()

	_, err := suite.ctr.Handler.ExecuteQuery(suite.ctx, postgresID, "SELECT 1", "")
	assert.NoError(t, err)

	calls := suite.ctr.Handler.GetHistory(postgresID)
	assert.NotEmpty(t, calls)
	assert.Equal(t, "SELECT 1", calls[0].GetQuery())
	assert.Equal(t, core.CallStateSucceeded, calls[0].GetState())
}

func (suite *PostgresTestSuite) TestShouldRejectCommands() {
	t := suite.T()

	_, err := suite.ctr.Handler.ExecuteCommand(suite.ctx, postgresID, "PING")
	assert.ErrorIs(t, err, core.ErrRedisConnectionNotFound)
}
