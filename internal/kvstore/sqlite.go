package kvstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/sellerdesk/pkg/types"
)

// kvSchema is the DDL for the single key-value table.
const kvSchema = `CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at TEXT NOT NULL
);`

// SQLiteMedium stores keys in a single-table SQLite database. It cannot
// observe writes made by other processes, so Watch returns a channel
// that only closes. Durability otherwise matches FileMedium.
type SQLiteMedium struct {
	mu     sync.Mutex
	db     *sql.DB
	events chan Event
	closed bool
}

// NewSQLiteMedium opens (creating if needed) the store database at
// dir/store.db and ensures the schema exists.
func NewSQLiteMedium(dir string) (*SQLiteMedium, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "store.db"))
	if err != nil {
		return nil, fmt.Errorf("opening store database: %w", err)
	}
	if _, err := db.Exec(kvSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &SQLiteMedium{
		db:     db,
		events: make(chan Event),
	}, nil
}

// Read returns the stored payload for key, or ok=false when absent.
func (m *SQLiteMedium) Read(key string) ([]byte, bool, error) {
	var value []byte
	err := m.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", key, err)
	}
	return value, true, nil
}

// Write upserts the payload under key. Refuses the write with
// types.ErrQuotaExceeded when it would push total usage past
// MaxStoreBytes.
func (m *SQLiteMedium) Write(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var used int64
	err := m.db.QueryRow(
		`SELECT COALESCE(SUM(LENGTH(value)), 0) FROM kv WHERE key != ?`, key,
	).Scan(&used)
	if err != nil {
		return fmt.Errorf("measuring store usage: %w", err)
	}
	if used+int64(len(value)) > MaxStoreBytes {
		return fmt.Errorf("writing %s (%d bytes, %d in use): %w",
			key, len(value), used, types.ErrQuotaExceeded)
	}

	_, err = m.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Delete removes the key. Absent keys are a no-op.
func (m *SQLiteMedium) Delete(key string) error {
	if _, err := m.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}

// Keys returns every key currently present in the store.
func (m *SQLiteMedium) Keys() ([]string, error) {
	rows, err := m.db.Query(`SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Watch returns a channel that never delivers: SQLite has no
// cross-process change feed in this setup.
func (m *SQLiteMedium) Watch() <-chan Event {
	return m.events
}

// Close closes the database. Idempotent.
func (m *SQLiteMedium) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	close(m.events)
	return m.db.Close()
}
