package dogecoin

import "encoding/binary"

// Pre-segwit sighash type bytes.
const (
	SighashAll          uint32 = 0x01
	SighashNone         uint32 = 0x02
	SighashSingle       uint32 = 0x03
	SighashAnyoneCanPay uint32 = 0x80
)

// SighashPreimage pairs a (possibly mutated, per sighash-type rules) copy
// of a transaction with the sighash type byte that will be appended to its
// serialization before hashing.
type SighashPreimage struct {
	Transaction *Transaction
	SighashType uint32
}

// Bytes returns Serialize(Transaction) || LE32(SighashType), the buffer
// that gets hash256'd to produce the signature digest.
func (p *SighashPreimage) Bytes() []byte {
	out := p.Transaction.Serialize()
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], p.SighashType)
	return append(out, buf[:]...)
}

// Hash returns hash256(Bytes()), the digest a signer actually signs.
func (p *SighashPreimage) Hash(hp HashProvider) Hash256 {
	return Hash256Of(hp, p.Bytes())
}

// cloneTransaction deep-copies tx so sighash preparation never mutates the
// caller's transaction.
func cloneTransaction(tx *Transaction) *Transaction {
	out := &Transaction{Version: tx.Version, LockTime: tx.LockTime}
	out.Inputs = make([]Input, len(tx.Inputs))
	for i, in := range tx.Inputs {
		script := append([]byte(nil), in.Script...)
		out.Inputs[i] = Input{PrevHash: in.PrevHash, PrevIndex: in.PrevIndex, Script: script, Sequence: in.Sequence}
	}
	out.Outputs = make([]Output, len(tx.Outputs))
	for i, o := range tx.Outputs {
		script := append([]byte(nil), o.Script...)
		out.Outputs[i] = Output{Value: o.Value, Script: script}
	}
	return out
}

// PreimageForInput builds the pre-segwit sighash preimage for spending
// input i of tx against prevOutScript under sighashType. tx is never
// mutated; the returned preimage wraps an independent copy.
//
// SIGHASH_NONE zeros the sequence of every input OTHER than i, leaving i's
// own sequence untouched — easy to get backwards, verified by direct
// transcription against the written invariant rather than by intuition.
//
// SIGHASH_SINGLE preserves the historical "SIGHASH_SINGLE bug": if
// i >= len(outputs) on entry, truncating to i+1 is a no-op and every
// existing output ends up blanked, producing a sighash over a transaction
// that pays to no real destination. This is required for consensus
// compatibility, not a bug to fix.
func PreimageForInput(tx *Transaction, i int, prevOutScript []byte, sighashType uint32) *SighashPreimage {
	t := cloneTransaction(tx)
	flag := sighashType & 0x1f

	switch flag {
	case SighashNone:
		t.Outputs = nil
		for j := range t.Inputs {
			if j != i {
				t.Inputs[j].Sequence = 0
			}
		}
	case SighashSingle:
		if i+1 < len(t.Outputs) {
			t.Outputs = t.Outputs[:i+1]
		}
		for j := 0; j < i && j < len(t.Outputs); j++ {
			t.Outputs[j] = BlankOutput()
			t.Inputs[j].Sequence = 0
		}
	}

	if sighashType&SighashAnyoneCanPay != 0 {
		only := t.Inputs[i]
		only.Script = append([]byte(nil), prevOutScript...)
		t.Inputs = []Input{only}
	} else {
		for j := range t.Inputs {
			t.Inputs[j].Script = nil
		}
		t.Inputs[i].Script = append([]byte(nil), prevOutScript...)
	}

	return &SighashPreimage{Transaction: t, SighashType: sighashType}
}

// SighashForInput is the convenience entry point combining
// PreimageForInput and Hash: it is the function the VAA validator and
// guardian processor actually call.
func SighashForInput(hp HashProvider, tx *Transaction, i int, prevOutScript []byte, sighashType uint32) Hash256 {
	return PreimageForInput(tx, i, prevOutScript, sighashType).Hash(hp)
}
