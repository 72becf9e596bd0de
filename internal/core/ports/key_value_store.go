package ports

import (
	"context"
)

// KeyValueStore is a persistent slot store: every key holds one opaque
// value that is replaced as a whole on Put.
type KeyValueStore interface {
	// Get returns the value stored under key. found is false when the key
	// was never written.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
}
