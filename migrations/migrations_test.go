package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDDL(t *testing.T) {
	stmts := SplitDDL("CREATE TABLE a (x INT64) PRIMARY KEY (x);\r\n\r\n  CREATE INDEX i ON a (x);\n")
	assert.Equal(t, []string{"CREATE TABLE a (x INT64) PRIMARY KEY (x)", "CREATE INDEX i ON a (x)"}, stmts)
}

func TestStatements_EmbeddedSchema(t *testing.T) {
	stmts, err := Statements()
	require.NoError(t, err)
	require.Len(t, stmts, 4)
	assert.Contains(t, stmts[0], "CREATE TABLE documents")
	assert.Contains(t, stmts[1], "CREATE TABLE collection_revisions")
	assert.Contains(t, stmts[2], "CREATE TABLE outbox_events")
}
