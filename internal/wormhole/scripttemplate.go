// Package wormhole implements the Wormhole-style redeem-script template,
// the VAA message validator, and the guardian processor that orchestrates
// validation, signing, and scriptSig assembly into a broadcastable
// Dogecoin transaction.
package wormhole

import "github.com/klingon-exchange/klingon-v2/internal/dogecoin"

// SizeOfFixedTemplate is the byte length of the redeem-script template
// excluding the leading push_number(emitter_chain) prefix, whose own
// length varies with the chain id's value.
const SizeOfFixedTemplate = 93

// RedeemScript constructs the exact Wormhole P2SH locking script for a
// VAA: push_number(emitterChain), then the emitter contract address, then
// OP_2DROP, the sub-address seed, OP_DROP, and a standard P2PKH tail
// against guardianPubKeyHash. The witnesses consumed by OP_2DROP/OP_DROP
// are the spender's proof that this address is the canonical destination
// for this VAA; the tail alone is what ultimately authorizes the spend.
func RedeemScript(emitterChain uint16, emitterContractAddress, subAddressSeed [32]byte, guardianPubKeyHash dogecoin.Hash160) []byte {
	prefix := dogecoin.PushNumber(emitterChain)
	out := make([]byte, 0, SizeOfFixedTemplate+len(prefix))
	out = append(out, prefix...)
	out = append(out, dogecoin.OpPushBytes32)
	out = append(out, emitterContractAddress[:]...)
	out = append(out, dogecoin.Op2Drop, dogecoin.OpPushBytes32)
	out = append(out, subAddressSeed[:]...)
	out = append(out, dogecoin.OpDrop, dogecoin.OpDup, dogecoin.OpHash160, dogecoin.OpPushBytes20)
	out = append(out, guardianPubKeyHash[:]...)
	out = append(out, dogecoin.OpEqualVerify, dogecoin.OpCheckSig)
	return out
}

// RedeemScriptLength returns len(RedeemScript(...)) without building it.
func RedeemScriptLength(emitterChain uint16) int {
	return SizeOfFixedTemplate + dogecoin.SizeOfPushNumber(emitterChain)
}
