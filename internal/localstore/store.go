package localstore

// Store is the key/value persistence interface the hub runs on. Values are
// JSON documents; callers own encoding. A missing key is not an error.
type Store interface {
	// Get returns the value for key and whether the key exists.
	Get(key string) ([]byte, bool, error)
	// Put writes value under key, replacing any previous value.
	Put(key string, value []byte) error
	// Delete removes key. Deleting a missing key is a no-op.
	Delete(key string) error
	// Keys lists all stored keys.
	Keys() ([]string, error)
	Close() error
}
