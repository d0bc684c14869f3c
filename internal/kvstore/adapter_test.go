package kvstore

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/sellerdesk/pkg/types"
)

// setupAdapter opens a file-backed adapter rooted in a temp dir.
func setupAdapter(t *testing.T) (*Adapter, string) {
	t.Helper()
	dir := t.TempDir()
	a, err := Open(Config{Backend: BackendFile, DataDir: dir}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a, dir
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty backend returns ErrBackendEmpty",
			config:  Config{Backend: "", DataDir: "/tmp/data"},
			wantErr: types.ErrBackendEmpty,
		},
		{
			name:    "unknown backend returns ErrBackendUnknown",
			config:  Config{Backend: "redis", DataDir: "/tmp/data"},
			wantErr: types.ErrBackendUnknown,
		},
		{
			name:    "empty data dir returns ErrDataDirEmpty",
			config:  Config{Backend: BackendFile, DataDir: ""},
			wantErr: types.ErrDataDirEmpty,
		},
		{
			name:   "valid file config",
			config: Config{Backend: BackendFile, DataDir: "/tmp/data"},
		},
		{
			name:   "valid sqlite config",
			config: Config{Backend: BackendSQLite, DataDir: "/tmp/data"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAdapterRoundTrip(t *testing.T) {
	a, _ := setupAdapter(t)

	in := types.DefaultSimulationConfig()
	require.True(t, a.Set(types.KeySimulationConfig, in))

	var out types.SimulationConfig
	require.True(t, a.Get(types.KeySimulationConfig, &out))
	assert.Equal(t, in, out)
}

func TestAdapterGetAbsentLeavesFallback(t *testing.T) {
	a, _ := setupAdapter(t)

	got := GetOr(a, "missing-key", types.DefaultLeadFilters())
	assert.Equal(t, types.DefaultLeadFilters(), got)
}

func TestAdapterGetCorruptFailsSoft(t *testing.T) {
	a, dir := setupAdapter(t)

	// Corrupt the stored payload behind the adapter's back.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad-key.json"), []byte("{not json"), 0o644))

	out := types.SimulationConfig{ErrorChance: 0.5}
	assert.False(t, a.Get("bad-key", &out))
	assert.Equal(t, 0.5, out.ErrorChance, "fallback value must survive a corrupt read")
}

func TestAdapterRemove(t *testing.T) {
	a, _ := setupAdapter(t)

	require.True(t, a.Set("k", []int{1, 2, 3}))
	require.True(t, a.Remove("k"))

	var out []int
	assert.False(t, a.Get("k", &out))

	// Removing an absent key still succeeds.
	assert.True(t, a.Remove("k"))
}

func TestAdapterKeys(t *testing.T) {
	a, _ := setupAdapter(t)

	require.True(t, a.Set(types.KeyLeadsData, []types.Lead{}))
	require.True(t, a.Set(types.KeyLeadsFilters, types.DefaultLeadFilters()))

	assert.ElementsMatch(t, []string{types.KeyLeadsData, types.KeyLeadsFilters}, a.Keys())
}

func TestQuotaRefusal(t *testing.T) {
	dir := t.TempDir()
	m, err := NewFileMedium(dir, nil)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })

	big := make([]byte, MaxStoreBytes+1)
	err = m.Write("huge", big)
	require.ErrorIs(t, err, types.ErrQuotaExceeded)

	// The adapter degrades the same failure to a boolean.
	a := NewAdapter(m, nil, WithCodec(
		func(v any) ([]byte, error) { return v.([]byte), nil },
		nil,
	))
	assert.False(t, a.Set("huge", big))
}

func TestCrossProcessNotification(t *testing.T) {
	dir := t.TempDir()

	a, err := Open(Config{Backend: BackendFile, DataDir: dir}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	// A second medium on the same directory stands in for another
	// process writing to the shared store.
	other, err := NewFileMedium(dir, nil)
	require.NoError(t, err)
	t.Cleanup(func() { other.Close() })

	var notified atomic.Int32
	var lastRemoved atomic.Bool
	cancel := a.Subscribe("shared", func(value []byte, removed bool) {
		notified.Add(1)
		lastRemoved.Store(removed)
	})
	defer cancel()

	require.NoError(t, other.Write("shared", []byte(`{"v":1}`)))
	require.Eventually(t, func() bool { return notified.Load() >= 1 },
		2*time.Second, 10*time.Millisecond, "external write never observed")
	assert.False(t, lastRemoved.Load())

	require.NoError(t, other.Delete("shared"))
	require.Eventually(t, func() bool { return notified.Load() >= 2 },
		2*time.Second, 10*time.Millisecond, "external delete never observed")
	assert.True(t, lastRemoved.Load())
}

func TestNoSelfNotification(t *testing.T) {
	a, _ := setupAdapter(t)

	var notified atomic.Int32
	cancel := a.Subscribe("mine", func([]byte, bool) { notified.Add(1) })
	defer cancel()

	require.True(t, a.Set("mine", map[string]int{"v": 1}))
	require.True(t, a.Set("mine", map[string]int{"v": 2}))
	require.True(t, a.Remove("mine"))

	// Give the watcher time to (incorrectly) echo our own writes back.
	time.Sleep(250 * time.Millisecond)
	assert.Zero(t, notified.Load(), "same-process writes must not self-notify")
}
