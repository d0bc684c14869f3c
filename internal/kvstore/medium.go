package kvstore

// Event describes an externally observed change to a stored key.
// Value is the raw stored payload after the change; Removed is true
// when the key was deleted, in which case Value is nil.
type Event struct {
	Key     string
	Value   []byte
	Removed bool
}

// Medium is the synchronous storage engine beneath the Adapter. All
// operations are blocking and complete before returning; Watch is the
// only asynchronous surface and only carries changes made by other
// processes (a medium that cannot observe external writes returns a
// channel that never fires).
type Medium interface {
	// Read returns the stored payload for key. The second return is
	// false when the key is absent.
	Read(key string) ([]byte, bool, error)

	// Write stores the payload under key, replacing any previous value.
	// Returns types.ErrQuotaExceeded when the write would push total
	// usage past MaxStoreBytes.
	Write(key string, value []byte) error

	// Delete removes the key. Deleting an absent key is a no-op.
	Delete(key string) error

	// Keys returns the keys currently present, in unspecified order.
	Keys() ([]string, error)

	// Watch returns a channel of external change events. The channel
	// is closed when the medium is closed.
	Watch() <-chan Event

	// Close releases medium resources. Idempotent.
	Close() error
}
