package ports

import "github.com/madirex/funko-server/internal/core/domain"

// FunkoCache is a bounded funko store keyed by id with capacity (LRU) and age
// (TTL against the funko's last-modified timestamp) eviction. All operations
// are safe for concurrent use.
type FunkoCache interface {
	// Get promotes the entry on a hit.
	Get(key string) (*domain.Funko, bool)
	Put(key string, value domain.Funko)
	Remove(key string)
	// Sweep removes expired entries immediately. It is also run periodically
	// by the cache's own timer.
	Sweep()
	// Shutdown stops the periodic timer. Idempotent.
	Shutdown()
}
