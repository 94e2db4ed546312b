package cache

import "context"

// Store is a content-addressed byte cache for full responses. Both calls are
// best-effort: a broken cache must never fail the primary request path, so
// implementations log and swallow their own errors.
type Store interface {
	// Get returns the cached payload for a resource and canonical filter
	// set, or false on a miss. A stale entry is a miss.
	Get(ctx context.Context, resourceType string, canonicalQuery string) ([]byte, bool)
	// Put stores the payload, overwriting any previous entry.
	Put(ctx context.Context, resourceType string, canonicalQuery string, payload []byte)
}
