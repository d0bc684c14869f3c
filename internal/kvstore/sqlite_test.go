package kvstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/sellerdesk/pkg/types"
)

func setupSQLite(t *testing.T) *SQLiteMedium {
	t.Helper()
	m, err := NewSQLiteMedium(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func TestSQLiteReadWrite(t *testing.T) {
	m := setupSQLite(t)

	_, ok, err := m.Read("absent")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Write("k", []byte(`{"a":1}`)))
	data, ok, err := m.Read("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte(`{"a":1}`), data)

	// Upsert replaces in place.
	require.NoError(t, m.Write("k", []byte(`{"a":2}`)))
	data, _, err = m.Read("k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":2}`), data)
}

func TestSQLiteDeleteIdempotent(t *testing.T) {
	m := setupSQLite(t)

	require.NoError(t, m.Write("k", []byte("1")))
	require.NoError(t, m.Delete("k"))
	require.NoError(t, m.Delete("k"))

	_, ok, err := m.Read("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteKeys(t *testing.T) {
	m := setupSQLite(t)

	require.NoError(t, m.Write("b", []byte("1")))
	require.NoError(t, m.Write("a", []byte("2")))

	keys, err := m.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestSQLiteQuota(t *testing.T) {
	m := setupSQLite(t)

	big := make([]byte, MaxStoreBytes+1)
	assert.ErrorIs(t, m.Write("huge", big), types.ErrQuotaExceeded)

	// Replacing a key's own payload is measured against the rest of
	// the store, not against itself.
	require.NoError(t, m.Write("k", make([]byte, 1024)))
	require.NoError(t, m.Write("k", make([]byte, 2048)))
}

func TestAdapterOverSQLite(t *testing.T) {
	a, err := Open(Config{Backend: BackendSQLite, DataDir: t.TempDir()}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	leads := []types.Lead{{ID: 1, Name: "Ana", Status: types.LeadStatusNew}}
	require.True(t, a.Set(types.KeyLeadsData, leads))

	var out []types.Lead
	require.True(t, a.Get(types.KeyLeadsData, &out))
	assert.Equal(t, leads, out)
}
