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

// SQLiteTestSuite is the test suite for the sqlite adapter.
type SQLiteTestSuite struct {
	tsuite.Suite
	ctr *th.SQLiteContainer
	ctx context.Context
}

const sqliteID core.ConnectionID = "test-sqlite"

func TestSQLiteTestSuite(t *testing.T) {
	tc.SkipIfProviderIsNotHealthy(t)
	tsuite.Run(t, new(SQLiteTestSuite))
}

func (suite *SQLiteTestSuite) SetupSuite() {
	suite.ctx = context.Background()

	ctr, err := th.NewSQLiteContainer(suite.ctx, sqliteID, suite.T().TempDir())
	if err != nil {
		log.Fatal(err)
	}

	suite.ctr = ctr
}

func (suite *SQLiteTestSuite) TearDownSuite() {
	suite.ctr.Handler.Close()
	tc.CleanupContainer(suite.T(), suite.ctr)
}

func (suite *SQLiteTestSuite) TestShouldErrorInvalidQuery() {
	t := suite.T()

	_, err := suite.ctr.Handler.ExecuteQuery(suite.ctx, sqliteID, "invalid sql", "")
	assert.ErrorContains(t, err, "syntax error")
}

func (suite *SQLiteTestSuite) TestShouldReturnManyRows() {
	t := suite.T()

	wantCols := core.Header{"id", "username", "score", "payload"}
	wantRows := []core.Row{
		{int64(1), "john_doe", 1.5, "0xdead"},
		{int64(2), "jane_smith", nil, nil},
		{int64(3), "bob_wilson", 3.0, nil},
	}

	result, err := suite.ctr.Handler.ExecuteQuery(suite.ctx, sqliteID,
		"SELECT id, username, score, payload FROM test_table ORDER BY id", "")
	assert.NoError(t, err)

	assert.Equal(t, wantCols, result.Header)
	assert.Equal(t, wantRows, result.Rows)
}

func (suite *SQLiteTestSuite) TestShouldIgnoreDatabase() {
	t := suite.T()

	result, err := suite.ctr.Handler.ExecuteQuery(suite.ctx, sqliteID, "SELECT count(*) AS n FROM test_table", "ignored")
	assert.NoError(t, err)
	assert.Equal(t, []core.Row{{int64(3)}}, result.Rows)
}
