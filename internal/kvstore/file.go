package kvstore

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/sellerdesk/pkg/types"
)

// keyFileExt is the on-disk extension for stored keys. Files without it
// (including in-flight temp files) are ignored by the watcher.
const keyFileExt = ".json"

// FileMedium stores each key as one JSON file inside a data directory.
// Writes are atomic (temp file, fsync, rename) and a filesystem watcher
// surfaces changes made by other processes as Events. The medium's own
// writes are fingerprinted and filtered out of the event stream, so a
// writer never observes itself.
type FileMedium struct {
	dir    string
	logger *zap.Logger

	mu      sync.Mutex
	own     map[string]string // fingerprint of our last write per key
	ownGone map[string]bool   // keys we deleted ourselves
	closed  bool

	watcher *fsnotify.Watcher
	events  chan Event
	done    chan struct{}
}

// NewFileMedium opens (creating if needed) a file-per-key store rooted
// at dir and starts the change watcher. The logger may be nil.
func NewFileMedium(dir string, logger *zap.Logger) (*FileMedium, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching data dir: %w", err)
	}

	m := &FileMedium{
		dir:     dir,
		logger:  logger,
		own:     make(map[string]string),
		ownGone: make(map[string]bool),
		watcher: watcher,
		events:  make(chan Event, 16),
		done:    make(chan struct{}),
	}
	go m.watchLoop()
	return m, nil
}

func (m *FileMedium) path(key string) string {
	return filepath.Join(m.dir, key+keyFileExt)
}

// Read returns the stored payload for key, or ok=false when absent.
func (m *FileMedium) Read(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(m.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, true, nil
}

// Write atomically replaces the payload stored under key. Refuses the
// write with types.ErrQuotaExceeded when it would push total usage past
// MaxStoreBytes.
func (m *FileMedium) Write(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkQuota(key, int64(len(value))); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(m.dir, ".kv-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, m.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", key, err)
	}

	m.own[key] = fingerprint(value)
	delete(m.ownGone, key)
	return nil
}

// Delete removes the key. Absent keys are a no-op.
func (m *FileMedium) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := os.Remove(m.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	delete(m.own, key)
	m.ownGone[key] = true
	return nil
}

// Keys returns every key currently present in the store.
func (m *FileMedium) Keys() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("listing data dir: %w", err)
	}
	var keys []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), keyFileExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(e.Name(), keyFileExt))
	}
	return keys, nil
}

// Watch returns the external change event channel. The channel is
// closed by Close.
func (m *FileMedium) Watch() <-chan Event {
	return m.events
}

// Close stops the watcher and closes the event channel. Idempotent.
func (m *FileMedium) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	err := m.watcher.Close()
	<-m.done
	close(m.events)
	return err
}

// checkQuota verifies that replacing key's current payload with newSize
// bytes keeps the store under MaxStoreBytes. Caller holds mu.
func (m *FileMedium) checkQuota(key string, newSize int64) error {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return fmt.Errorf("listing data dir: %w", err)
	}
	var used int64
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), keyFileExt) {
			continue
		}
		if e.Name() == key+keyFileExt {
			continue // being replaced
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		used += info.Size()
	}
	if used+newSize > MaxStoreBytes {
		return fmt.Errorf("writing %s (%d bytes, %d in use): %w",
			key, newSize, used, types.ErrQuotaExceeded)
	}
	return nil
}

// watchLoop translates filesystem events into key Events, dropping
// events caused by this process's own writes and deletes.
func (m *FileMedium) watchLoop() {
	defer close(m.done)
	for {
		select {
		case ev, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			m.handleFSEvent(ev)
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			m.logger.Warn("kvstore watch error", zap.Error(err))
		}
	}
}

func (m *FileMedium) handleFSEvent(ev fsnotify.Event) {
	name := filepath.Base(ev.Name)
	if !strings.HasSuffix(name, keyFileExt) {
		return
	}
	key := strings.TrimSuffix(name, keyFileExt)

	switch {
	case ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename):
		m.mu.Lock()
		if m.ownGone[key] {
			delete(m.ownGone, key)
			m.mu.Unlock()
			return
		}
		delete(m.own, key)
		m.mu.Unlock()
		m.emit(Event{Key: key, Removed: true})

	case ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write):
		data, ok, err := m.Read(key)
		if err != nil {
			m.logger.Warn("kvstore read after change", zap.String("key", key), zap.Error(err))
			return
		}
		if !ok {
			return // removed again before we got to it
		}
		m.mu.Lock()
		if m.own[key] == fingerprint(data) {
			m.mu.Unlock()
			return // our own write echoed back
		}
		m.mu.Unlock()
		m.emit(Event{Key: key, Value: data})
	}
}

// emit delivers an event without blocking the watch loop; a consumer
// that cannot keep up loses intermediate events, never the loop.
func (m *FileMedium) emit(ev Event) {
	select {
	case m.events <- ev:
	default:
		m.logger.Warn("kvstore event dropped", zap.String("key", ev.Key))
	}
}

// fingerprint hashes a payload for own-write detection.
func fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
