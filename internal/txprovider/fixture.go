package txprovider

import (
	"context"
	"fmt"
	"sync"

	"github.com/klingon-exchange/klingon-v2/internal/dogecoin"
	"github.com/klingon-exchange/klingon-v2/internal/wormhole"
)

// Fixture is a static, in-memory TransactionProvider backed by a fixed
// set of transactions. It's used in tests and local demos in place of a
// live indexer.
type Fixture struct {
	mu  sync.RWMutex
	txs map[dogecoin.Hash256]*dogecoin.Transaction
}

// NewFixture builds a Fixture pre-loaded with txs, keyed by each
// transaction's own hash under hp.
func NewFixture(hp dogecoin.HashProvider, txs ...*dogecoin.Transaction) *Fixture {
	if hp == nil {
		hp = dogecoin.StdHashProvider{}
	}
	f := &Fixture{txs: make(map[dogecoin.Hash256]*dogecoin.Transaction, len(txs))}
	for _, tx := range txs {
		f.txs[tx.Hash(hp)] = tx
	}
	return f
}

// Add registers tx under hash for later lookup.
func (f *Fixture) Add(hash dogecoin.Hash256, tx *dogecoin.Transaction) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.txs[hash] = tx
}

// GetTransaction implements wormhole.TransactionProvider.
func (f *Fixture) GetTransaction(_ context.Context, hash dogecoin.Hash256) (*dogecoin.Transaction, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	tx, ok := f.txs[hash]
	if !ok {
		return nil, fmt.Errorf("%w: %x", ErrNotFound, hash)
	}
	return tx, nil
}

// BroadcastTransaction implements wormhole.TransactionProvider by
// recording raw under its own hash and returning a synthetic txid; it
// never touches the network.
func (f *Fixture) BroadcastTransaction(_ context.Context, raw []byte) (string, error) {
	tx, err := dogecoin.ParseTransaction(raw)
	if err != nil {
		return "", fmt.Errorf("txprovider: fixture broadcast received unparseable transaction: %w", err)
	}
	hash := tx.Hash(dogecoin.StdHashProvider{})
	f.Add(hash, tx)
	return fmt.Sprintf("%x", tx.Txid(dogecoin.StdHashProvider{})), nil
}

var _ wormhole.TransactionProvider = (*Fixture)(nil)
