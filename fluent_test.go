package simpledb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	simpledb "github.com/biyonik/go-simple-db"
)

func seedUsers(t *testing.T, db *simpledb.DB, n int) {
	t.Helper()
	rows := make([]map[string]any, n)
	for i := range rows {
		rows[i] = map[string]any{"name": "user", "age": 20 + i}
	}
	_, err := db.InsertMany("users", rows)
	require.NoError(t, err)
}

func TestFluentChain(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db, 30)

	rows, err := db.Select("id", "age").
		Limit(5).
		Offset(10).
		FetchWithOffset("users", map[string]any{"name": "user"})
	require.NoError(t, err)
	assert.Len(t, rows, 5)

	// The first page was skipped entirely.
	assert.EqualValues(t, 30, rows[0]["age"])

	// Only the selected columns come back.
	_, hasName := rows[0]["name"]
	assert.False(t, hasName)

	last, ok := db.Log().Last()
	require.True(t, ok)
	assert.Contains(t, last.Query, "LIMIT 5")
	assert.Contains(t, last.Query, "OFFSET 10")
}

func TestFluentChainDoesNotLeakBetweenCalls(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db, 10)

	_, err := db.Limit(3).FetchWithOffset("users", nil)
	require.NoError(t, err)

	// A fresh chain starts from defaults: no limit, all columns.
	rows, err := db.FetchWithOffset("users", nil)
	require.NoError(t, err)
	assert.Len(t, rows, 10)

	last, ok := db.Log().Last()
	require.True(t, ok)
	assert.NotContains(t, last.Query, "LIMIT")
}

func TestFluentForPage(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db, 25)

	rows, err := db.Select().ForPage(2, 10).FetchWithOffset("users", nil)
	require.NoError(t, err)
	assert.Len(t, rows, 10)

	last, ok := db.Log().Last()
	require.True(t, ok)
	assert.Contains(t, last.Query, "LIMIT 10")
	assert.Contains(t, last.Query, "OFFSET 10")

	// The final partial page.
	rows, err = db.Select().ForPage(3, 10).FetchWithOffset("users", nil)
	require.NoError(t, err)
	assert.Len(t, rows, 5)
}

func TestFluentRawSource(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db, 5)

	rows, err := db.FetchWithOffset(simpledb.NewRaw(
		"SELECT name, age FROM users WHERE age > ?", 22,
	), nil)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestFluentRawSourceIgnoresChainState(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db, 5)

	// Raw statements run as-is; limit/offset on the chain do not apply.
	rows, err := db.Limit(1).FetchWithOffset(simpledb.NewRaw(
		"SELECT name FROM users",
	), nil)
	require.NoError(t, err)
	assert.Len(t, rows, 5)
}

func TestFluentInvalidSource(t *testing.T) {
	db := newTestDB(t)

	_, err := db.FetchWithOffset(42, nil)
	assert.ErrorIs(t, err, simpledb.ErrInvalidSource)
	assert.ErrorIs(t, err, simpledb.ErrInvalidArgument)

	_, err = db.FetchWithOffset((*simpledb.Raw)(nil), nil)
	assert.ErrorIs(t, err, simpledb.ErrInvalidSource)
}
