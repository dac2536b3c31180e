package wormhole

import (
	"fmt"

	"github.com/klingon-exchange/klingon-v2/internal/dogecoin"
)

// Metadata is the authenticated part of a cross-chain VAA message: the
// identity of the canonical destination script and the policy bounds the
// settlement must respect.
type Metadata struct {
	EmitterChain            uint16
	EmitterContractAddress  [32]byte
	SubAddressSeed          [32]byte
	TotalOutputAmount       uint64
	MaxDogeTransactionFee   uint64
	MinDogeTransactionFee   uint64
}

// LockingScript reconstructs the Wormhole redeem script this VAA's funds
// are locked under, given the guardian committee's public-key hash.
func (m Metadata) LockingScript(guardianPubKeyHash dogecoin.Hash160) []byte {
	return RedeemScript(m.EmitterChain, m.EmitterContractAddress, m.SubAddressSeed, guardianPubKeyHash)
}

// P2SHScript returns the pay-to-script-hash output script funds are locked
// in for this VAA: p2sh(hash160(LockingScript)).
func (m Metadata) P2SHScript(hp dogecoin.HashProvider, guardianPubKeyHash dogecoin.Hash160) []byte {
	h := dogecoin.Hash160Of(hp, m.LockingScript(guardianPubKeyHash))
	return dogecoin.P2SHScript(h)
}

// Message is a VAA message: metadata plus the ordered inputs it claims to
// spend and the ordered outputs it authorizes.
type Message struct {
	Metadata Metadata
	Inputs   []dogecoin.InputStub
	Outputs  []dogecoin.Output
}

func checkedAddSum(values []uint64) (uint64, error) {
	var total uint64
	for _, v := range values {
		next := total + v
		if next < total {
			return 0, fmt.Errorf("%w: u64 overflow in addition", ErrAmountInvariant)
		}
		total = next
	}
	return total, nil
}

// ValidateAndGetSighashes is the VAA message validator (component C8 of
// the settlement engine). Given the prior transactions referenced by
// msg.Inputs (already fetched and order-matched one-to-one), it:
//
//  1. reconstructs the expected P2SH locking script;
//  2. checks each referenced prior transaction's hash against the input
//     stub's PrevHash (provenance), and that the referenced output pays
//     to the expected P2SH script (binding);
//  3. enforces exact output-sum-equals-metadata-total and
//     min_fee <= fee <= max_fee with checked arithmetic throughout;
//  4. builds the unsigned spend transaction (version 2, locktime 0, empty
//     scriptSigs, outputs copied verbatim);
//  5. computes the SIGHASH_ALL pre-segwit sighash for every input against
//     the redeem script.
//
// All failures are terminal: no partial transaction or sighash set is
// returned alongside an error.
func ValidateAndGetSighashes(hp dogecoin.HashProvider, msg *Message, priorTxs []*dogecoin.Transaction, guardianPubKeyHash dogecoin.Hash160) ([]dogecoin.Hash256, *dogecoin.Transaction, error) {
	if len(priorTxs) != len(msg.Inputs) {
		return nil, nil, fmt.Errorf("%w: got %d prior transactions for %d inputs", ErrProvenanceMismatch, len(priorTxs), len(msg.Inputs))
	}

	redeemScript := msg.Metadata.LockingScript(guardianPubKeyHash)
	expectedP2SHScript := msg.Metadata.P2SHScript(hp, guardianPubKeyHash)

	var totalInput uint64
	for i, input := range msg.Inputs {
		priorTx := priorTxs[i]
		actualHash := priorTx.Hash(hp)
		if actualHash != input.PrevHash {
			return nil, nil, fmt.Errorf("%w: requested prev_hash=%x but transaction provider returned hash=%x", ErrProvenanceMismatch, input.PrevHash, actualHash)
		}
		if !priorTx.HasVoutForAddress(expectedP2SHScript, int(input.PrevIndex)) {
			return nil, nil, fmt.Errorf("%w: input %d does not spend from the expected wormhole VAA P2SH address", ErrBindingMismatch, i)
		}
		next := totalInput + priorTx.Outputs[input.PrevIndex].Value
		if next < totalInput {
			return nil, nil, fmt.Errorf("%w: u64 overflow accumulating input amounts", ErrAmountInvariant)
		}
		totalInput = next
	}

	outputValues := make([]uint64, len(msg.Outputs))
	for i, o := range msg.Outputs {
		outputValues[i] = o.Value
	}
	totalOutput, err := checkedAddSum(outputValues)
	if err != nil {
		return nil, nil, err
	}
	if totalOutput != msg.Metadata.TotalOutputAmount {
		return nil, nil, fmt.Errorf("%w: total output amount %d does not match metadata total %d", ErrAmountInvariant, totalOutput, msg.Metadata.TotalOutputAmount)
	}

	if totalInput < totalOutput {
		return nil, nil, fmt.Errorf("%w: u64 underflow computing fee (input %d < output %d)", ErrAmountInvariant, totalInput, totalOutput)
	}
	fee := totalInput - totalOutput
	if fee < msg.Metadata.MinDogeTransactionFee {
		return nil, nil, fmt.Errorf("%w: fee %d is less than minimum required %d", ErrAmountInvariant, fee, msg.Metadata.MinDogeTransactionFee)
	}
	if fee > msg.Metadata.MaxDogeTransactionFee {
		return nil, nil, fmt.Errorf("%w: fee %d is more than maximum allowed %d", ErrAmountInvariant, fee, msg.Metadata.MaxDogeTransactionFee)
	}

	spend := &dogecoin.Transaction{
		Version:  2,
		LockTime: 0,
		Outputs:  append([]dogecoin.Output(nil), msg.Outputs...),
	}
	spend.Inputs = make([]dogecoin.Input, len(msg.Inputs))
	for i, stub := range msg.Inputs {
		spend.Inputs[i] = stub.ToInput()
	}

	sighashes := make([]dogecoin.Hash256, len(spend.Inputs))
	for i := range spend.Inputs {
		sighashes[i] = dogecoin.SighashForInput(hp, spend, i, redeemScript, dogecoin.SighashAll)
	}

	return sighashes, spend, nil
}
