package sqlds

import (
	"testing"

	_ "github.com/proullon/ramsql/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowkit/commands-framework/config"
	"github.com/rowkit/commands-framework/dataset"
)

var userColumns = []string{"id", "name", "status"}

// openStoreForTest opens a store against an in-memory SQL engine with a
// users table.
func openStoreForTest(t *testing.T) *Store {
	t.Helper()

	store, err := Open(t.Context(), config.DatasetConfig{
		Driver: "ramsql",
		DSN:    "test-" + t.Name(),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	_, err = store.db.Exec("CREATE TABLE users (id TEXT, name TEXT, status TEXT)")
	require.NoError(t, err)

	return store
}

func Test_Open_InvalidDriver(t *testing.T) {
	t.Parallel()

	_, err := Open(t.Context(), config.DatasetConfig{Driver: "nonexistent", DSN: "x"})
	require.Error(t, err)
}

func Test_Relation_InsertAndTuples(t *testing.T) {
	t.Parallel()

	store := openStoreForTest(t)
	rel := store.Relation("users", userColumns)
	assert.Equal(t, "users", rel.Name())

	stored, err := rel.Insert(dataset.Tuple{"id": "u1", "name": "Jane", "status": "active"})
	require.NoError(t, err)
	assert.Equal(t, "Jane", stored["name"])

	_, err = rel.Insert(dataset.Tuple{"id": "u2", "name": "Joe", "status": "inactive"})
	require.NoError(t, err)

	tuples, err := rel.Tuples()
	require.NoError(t, err)
	require.Len(t, tuples, 2)

	byID := map[any]dataset.Tuple{}
	for _, tp := range tuples {
		byID[tp["id"]] = tp
	}
	assert.Equal(t, "Jane", byID["u1"]["name"])
	assert.Equal(t, "inactive", byID["u2"]["status"])
}

func Test_Relation_Insert_NoConfiguredColumns(t *testing.T) {
	t.Parallel()

	store := openStoreForTest(t)
	rel := store.Relation("users", userColumns)

	_, err := rel.Insert(dataset.Tuple{"nickname": "jj"})
	require.ErrorIs(t, err, dataset.ErrNotDecodable)
	assert.ErrorContains(t, err, "users")
}

func Test_Relation_Update(t *testing.T) {
	t.Parallel()

	store := openStoreForTest(t)
	rel := store.Relation("users", userColumns)

	_, err := rel.Insert(dataset.Tuple{"id": "u1", "name": "Jane", "status": "active"})
	require.NoError(t, err)
	_, err = rel.Insert(dataset.Tuple{"id": "u2", "name": "Joe", "status": "active"})
	require.NoError(t, err)

	updated, err := rel.Update(dataset.Eq("id", "u1"), dataset.Tuple{"status": "inactive"})
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, "inactive", updated[0]["status"])

	tuples, err := rel.Tuples()
	require.NoError(t, err)
	statuses := map[any]any{}
	for _, tp := range tuples {
		statuses[tp["id"]] = tp["status"]
	}
	assert.Equal(t, "inactive", statuses["u1"])
	assert.Equal(t, "active", statuses["u2"], "non-matching rows are untouched")

	_, err = rel.Update(dataset.Eq("id", "nope"), dataset.Tuple{"status": "x"})
	require.ErrorIs(t, err, dataset.ErrTupleNotFound)
}

func Test_Relation_Delete(t *testing.T) {
	t.Parallel()

	store := openStoreForTest(t)
	rel := store.Relation("users", userColumns)

	_, err := rel.Insert(dataset.Tuple{"id": "u1", "name": "Jane", "status": "active"})
	require.NoError(t, err)
	_, err = rel.Insert(dataset.Tuple{"id": "u2", "name": "Joe", "status": "inactive"})
	require.NoError(t, err)

	deleted, err := rel.Delete(dataset.Eq("status", "inactive"))
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, "u2", deleted[0]["id"])

	tuples, err := rel.Tuples()
	require.NoError(t, err)
	require.Len(t, tuples, 1)
	assert.Equal(t, "u1", tuples[0]["id"])

	_, err = rel.Delete(dataset.Eq("status", "inactive"))
	require.ErrorIs(t, err, dataset.ErrTupleNotFound)
}
