package txprovider

import (
	"context"
	"sync"

	"github.com/klingon-exchange/klingon-v2/internal/dogecoin"
	"github.com/klingon-exchange/klingon-v2/internal/wormhole"
)

// Cache wraps a TransactionProvider with a read-through in-memory cache.
//
// On a hit, Cache returns the cached transaction without touching the
// wrapped provider. On a miss, it forwards to the wrapped provider and
// returns whatever it gets back — but does NOT insert the result into the
// cache. Put is the only way an entry enters the cache, so the map never
// grows on its own. GuardianProcessor.Settle fetches once per input, so a
// prior transaction that funds more than one input of the same message is
// fetched from the wrapped provider each time unless it was put here
// beforehand.
type Cache struct {
	next wormhole.TransactionProvider

	mu      sync.RWMutex
	entries map[dogecoin.Hash256]*dogecoin.Transaction
}

// NewCache wraps next in a read-through cache.
func NewCache(next wormhole.TransactionProvider) *Cache {
	return &Cache{
		next:    next,
		entries: make(map[dogecoin.Hash256]*dogecoin.Transaction),
	}
}

// Put pre-seeds the cache with a transaction the caller already has,
// keyed by its hash under hp.
func (c *Cache) Put(tx *dogecoin.Transaction, hp dogecoin.HashProvider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[tx.Hash(hp)] = tx
}

// GetTransaction implements wormhole.TransactionProvider.
func (c *Cache) GetTransaction(ctx context.Context, hash dogecoin.Hash256) (*dogecoin.Transaction, error) {
	c.mu.RLock()
	tx, ok := c.entries[hash]
	c.mu.RUnlock()
	if ok {
		return tx, nil
	}
	return c.next.GetTransaction(ctx, hash)
}

// BroadcastTransaction implements wormhole.TransactionProvider by
// forwarding to the wrapped provider; broadcasts are never cached.
func (c *Cache) BroadcastTransaction(ctx context.Context, raw []byte) (string, error) {
	return c.next.BroadcastTransaction(ctx, raw)
}

var _ wormhole.TransactionProvider = (*Cache)(nil)
