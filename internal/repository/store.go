package repository

import "context"

// Collection names inside the key-hash store. Users are keyed by email,
// roles by their generated id; values are opaque serialized records
// understood only by the typed repositories.
const (
	UsersCollection = "users"
	RolesCollection = "roles"
)

// KeyHashStore is the persistence contract for the service: named hash
// collections of key -> serialized value with atomic single-key
// operations. There are no transactions; callers that need multi-key
// changes (such as a rename) sequence single-key calls and detect lost
// updates from the removal count.
type KeyHashStore interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, collection, key string) ([]byte, error)
	// Put stores value under key, overwriting any previous value.
	Put(ctx context.Context, collection, key string, value []byte) error
	// Remove deletes the key and reports how many entries were removed.
	Remove(ctx context.Context, collection, key string) (int64, error)
	// Values returns all values in the collection in unspecified order.
	Values(ctx context.Context, collection string) ([][]byte, error)
	// Count returns the number of entries in the collection.
	Count(ctx context.Context, collection string) (int64, error)
}
