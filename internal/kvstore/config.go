// Package kvstore provides the persistent key-value layer of the
// console: a typed adapter with pluggable serialization over a
// file-per-key or SQLite storage medium, with change notification for
// writes made by other processes.
package kvstore

import "github.com/mesh-intelligence/sellerdesk/pkg/types"

// Supported backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendFile:   true,
	BackendSQLite: true,
}

// MaxStoreBytes is the capacity ceiling for the whole store. Writes
// that would cross it are refused.
const MaxStoreBytes = 5 * 1024 * 1024

// Config selects and parameterizes the storage medium.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from pkg/types on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return types.ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return types.ErrBackendUnknown
	}
	if c.DataDir == "" {
		return types.ErrDataDirEmpty
	}
	return nil
}
