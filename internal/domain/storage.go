package domain

// KVStore is a byte-oriented key-value capability.
// Two backings exist: a volatile in-memory map and a persisted bbolt bucket.
// Values are JSON documents; keys are opaque strings.
type KVStore interface {
	// Get returns (value, true, nil) on a hit and (nil, false, nil) on a miss.
	// A non-nil error means the backing store itself could not be read.
	Get(key string) ([]byte, bool, error)

	// Set stores value under key, replacing any previous value
	Set(key string, value []byte) error
}
