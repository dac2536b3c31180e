// Package txprovider supplies the guardian processor's TransactionProvider
// dependency: an HTTP indexer client speaking the Esplora/mempool.space
// contract, a read-through cache wrapper, and a static fixture provider
// for tests and demos.
package txprovider

import "errors"

var (
	// ErrNotFound means the indexer has no record of the requested
	// transaction.
	ErrNotFound = errors.New("txprovider: transaction not found")

	// ErrBroadcastFailed means the indexer rejected a broadcast attempt.
	ErrBroadcastFailed = errors.New("txprovider: broadcast failed")
)
