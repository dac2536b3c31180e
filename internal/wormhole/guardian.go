package wormhole

import (
	"context"
	"fmt"

	"github.com/klingon-exchange/klingon-v2/internal/dogecoin"
)

// Signer is the capability GuardianProcessor depends on to turn a sighash
// into a spendable scriptSig component. It is defined here, structurally,
// rather than imported from internal/signer, so that neither package needs
// to import the other; internal/signer.Memory satisfies this interface
// without referencing it, since both depend on dogecoin.CompactSignature.
type Signer interface {
	Sign(ctx context.Context, prehash dogecoin.Hash256) (dogecoin.CompactSignature, error)
	PublicKeyHash() dogecoin.Hash160
}

// TransactionProvider is the capability GuardianProcessor depends on to
// fetch the prior transactions a VAA message's inputs claim to spend, and
// to broadcast the finished settlement transaction. Implementations may
// block or respect ctx cancellation; internal/txprovider provides both an
// HTTP indexer client and a read-through cache wrapper.
type TransactionProvider interface {
	GetTransaction(ctx context.Context, hash dogecoin.Hash256) (*dogecoin.Transaction, error)
	BroadcastTransaction(ctx context.Context, raw []byte) (string, error)
}

// GuardianProcessor is the settlement engine's top-level orchestrator
// (component C9): given a VAA message, it fetches the prior transactions
// its inputs reference, validates the message against them, signs every
// input, and assembles a broadcastable transaction.
type GuardianProcessor struct {
	Network             dogecoin.NetworkProfile
	HashProvider        dogecoin.HashProvider
	Signer              Signer
	TransactionProvider TransactionProvider
}

// NewGuardianProcessor constructs a GuardianProcessor from its
// dependencies, defaulting the hash provider to dogecoin.StdHashProvider
// when hp is nil.
func NewGuardianProcessor(network dogecoin.NetworkProfile, hp dogecoin.HashProvider, signer Signer, provider TransactionProvider) *GuardianProcessor {
	if hp == nil {
		hp = dogecoin.StdHashProvider{}
	}
	return &GuardianProcessor{
		Network:             network,
		HashProvider:        hp,
		Signer:              signer,
		TransactionProvider: provider,
	}
}

// Settle validates msg, signs every input, and returns the fully signed,
// ready-to-broadcast transaction. It does not broadcast; call Broadcast
// with the result when the caller is ready to submit it.
func (g *GuardianProcessor) Settle(ctx context.Context, msg *Message) (*dogecoin.Transaction, error) {
	priorTxs := make([]*dogecoin.Transaction, len(msg.Inputs))
	for i, input := range msg.Inputs {
		tx, err := g.TransactionProvider.GetTransaction(ctx, input.PrevHash)
		if err != nil {
			return nil, fmt.Errorf("wormhole: fetching prior transaction for input %d: %w", i, err)
		}
		priorTxs[i] = tx
	}

	guardianPubKeyHash := g.Signer.PublicKeyHash()
	sighashes, spend, err := ValidateAndGetSighashes(g.HashProvider, msg, priorTxs, guardianPubKeyHash)
	if err != nil {
		return nil, err
	}

	redeemScript := msg.Metadata.LockingScript(guardianPubKeyHash)

	for i, sighash := range sighashes {
		sig, err := g.Signer.Sign(ctx, sighash)
		if err != nil {
			return nil, fmt.Errorf("%w: input %d: %v", ErrSignerFailure, i, err)
		}

		scriptSig := sig.ToScriptSig()
		// The redeem script is always appended as the final scriptSig
		// stack item, regardless of whether signing happened
		// synchronously or asynchronously.
		scriptSig = append(scriptSig, dogecoin.PushStackItem(redeemScript)...)
		spend.Inputs[i].Script = scriptSig
	}

	return spend, nil
}

// Broadcast serializes tx and submits it through the transaction
// provider, returning the broadcast txid.
func (g *GuardianProcessor) Broadcast(ctx context.Context, tx *dogecoin.Transaction) (string, error) {
	raw := tx.Serialize()
	txid, err := g.TransactionProvider.BroadcastTransaction(ctx, raw)
	if err != nil {
		return "", fmt.Errorf("wormhole: broadcasting settlement transaction: %w", err)
	}
	return txid, nil
}
