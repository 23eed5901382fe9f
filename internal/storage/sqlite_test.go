package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteCreatesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "srbill.db")

	sub, err := OpenSQLite(path)
	require.NoError(t, err)
	defer sub.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err, "database file should be created")
}

func TestOpenSQLiteIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "srbill.db")

	for i := 0; i < 3; i++ {
		sub, err := OpenSQLite(path)
		require.NoError(t, err, "open iteration %d", i)
		require.NoError(t, sub.Close())
	}
}

func TestOpenSQLiteInvalidPath(t *testing.T) {
	_, err := OpenSQLite("/nonexistent/dir/srbill.db")
	assert.Error(t, err)
}

func TestSQLiteReadWriteDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "srbill.db")
	sub, err := OpenSQLite(path)
	require.NoError(t, err)
	defer sub.Close()

	_, ok, err := sub.Read("items")
	require.NoError(t, err)
	assert.False(t, ok, "unwritten name reads as absent")

	require.NoError(t, sub.Write("items", []byte(`[{"id":"a"}]`)))
	data, ok, err := sub.Read("items")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"id":"a"}]`, string(data))

	// Overwrite replaces the whole value.
	require.NoError(t, sub.Write("items", []byte("[]")))
	data, _, err = sub.Read("items")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	require.NoError(t, sub.Delete("items"))
	_, ok, err = sub.Read("items")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent name is a no-op.
	require.NoError(t, sub.Delete("items"))
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "srbill.db")

	sub, err := OpenSQLite(path)
	require.NoError(t, err)
	st := New(sub)
	require.NoError(t, st.Init())
	id, err := st.Save(Items, Record{"name": "Tap", "rate": 150})
	require.NoError(t, err)
	require.NoError(t, sub.Close())

	sub2, err := OpenSQLite(path)
	require.NoError(t, err)
	defer sub2.Close()
	st2 := New(sub2)

	rec, found, err := st2.Get(Items, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Tap", rec.String("name"))
}

func TestStoreOnSQLiteSubstrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "srbill.db")
	sub, err := OpenSQLite(path)
	require.NoError(t, err)
	defer sub.Close()

	st := New(sub)
	require.NoError(t, st.Init())

	id, err := st.Save(Payments, Record{"method": "UPI", "amount": 300})
	require.NoError(t, err)

	found, err := st.Update(Payments, id, Record{"status": "completed"})
	require.NoError(t, err)
	assert.True(t, found)

	rec, _, err := st.Get(Payments, id)
	require.NoError(t, err)
	assert.Equal(t, "completed", rec.String("status"))

	removed, err := st.Remove(Payments, id)
	require.NoError(t, err)
	assert.True(t, removed)
}
