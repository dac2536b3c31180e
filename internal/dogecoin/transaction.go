package dogecoin

import (
	"encoding/binary"
	"fmt"

	"github.com/klingon-exchange/klingon-v2/pkg/helpers"
)

// Transaction is the in-memory model of a pre-segwit Dogecoin transaction.
// Order of Inputs and Outputs is significant and preserved end-to-end.
type Transaction struct {
	Version  uint32
	Inputs   []Input
	Outputs  []Output
	LockTime uint32
}

// Input is a transaction input referencing a previous output by
// (PrevHash, PrevIndex), carrying a scriptSig and a sequence number.
// PrevHash is the internal (non-reversed) hash256 form.
type Input struct {
	PrevHash  Hash256
	PrevIndex uint32
	Script    []byte
	Sequence  uint32
}

// Output is a transaction output: a value in satoshi-equivalent units and
// a locking script.
type Output struct {
	Value  uint64
	Script []byte
}

// BlankOutput returns the sentinel blank output used by the SIGHASH_SINGLE
// preimage construction: value = 0xFFFFFFFFFFFFFFFF, empty script.
func BlankOutput() Output {
	return Output{Value: 0xFFFFFFFFFFFFFFFF}
}

// IsP2PKH reports whether script is a 25-byte P2PKH output script.
func (o Output) IsP2PKH() bool { return IsP2PKHOutputScript(o.Script) }

// IsP2SH reports whether script is a 23-byte P2SH output script.
func (o Output) IsP2SH() bool { return IsP2SHOutputScript(o.Script) }

// InputStub is an Input without its scriptSig, as carried in VAA payloads
// before the spending script is known.
type InputStub struct {
	PrevHash  Hash256
	PrevIndex uint32
	Sequence  uint32
}

// ToInput expands the stub into a full Input with an empty scriptSig.
func (s InputStub) ToInput() Input {
	return Input{PrevHash: s.PrevHash, PrevIndex: s.PrevIndex, Sequence: s.Sequence}
}

// Serialize encodes the transaction into its canonical wire form:
// version(LE32) | varuint(inputs) | input* | varuint(outputs) | output* | locktime(LE32).
func (t *Transaction) Serialize() []byte {
	out := make([]byte, 0, t.byteLengthEstimate())
	var versionBuf [4]byte
	binary.LittleEndian.PutUint32(versionBuf[:], t.Version)
	out = append(out, versionBuf[:]...)

	out = append(out, EncodeVarUInt(uint64(len(t.Inputs)))...)
	for _, in := range t.Inputs {
		out = append(out, in.serialize()...)
	}

	out = append(out, EncodeVarUInt(uint64(len(t.Outputs)))...)
	for _, o := range t.Outputs {
		out = append(out, o.serialize()...)
	}

	var lockBuf [4]byte
	binary.LittleEndian.PutUint32(lockBuf[:], t.LockTime)
	return append(out, lockBuf[:]...)
}

func (t *Transaction) byteLengthEstimate() int {
	n := 8 + VarUIntSize(uint64(len(t.Inputs))) + VarUIntSize(uint64(len(t.Outputs)))
	for _, in := range t.Inputs {
		n += 40 + VarUIntSize(uint64(len(in.Script))) + len(in.Script)
	}
	for _, o := range t.Outputs {
		n += 8 + VarUIntSize(uint64(len(o.Script))) + len(o.Script)
	}
	return n
}

func (in *Input) serialize() []byte {
	out := make([]byte, 0, 40+len(in.Script))
	out = append(out, in.PrevHash[:]...)
	var idxBuf [4]byte
	binary.LittleEndian.PutUint32(idxBuf[:], in.PrevIndex)
	out = append(out, idxBuf[:]...)
	out = append(out, EncodeVarUInt(uint64(len(in.Script)))...)
	out = append(out, in.Script...)
	var seqBuf [4]byte
	binary.LittleEndian.PutUint32(seqBuf[:], in.Sequence)
	return append(out, seqBuf[:]...)
}

func (o *Output) serialize() []byte {
	out := make([]byte, 0, 8+len(o.Script))
	var valBuf [8]byte
	binary.LittleEndian.PutUint64(valBuf[:], o.Value)
	out = append(out, valBuf[:]...)
	out = append(out, EncodeVarUInt(uint64(len(o.Script)))...)
	return append(out, o.Script...)
}

const minTxTailLength = 32 + 4 + 4 + 1

// minTxLength is the size of the smallest transaction: version, two
// one-byte counts, and locktime.
const minTxLength = 4 + 1 + 1 + 4

// ParseTransactionAt parses a Transaction starting at offset in data,
// returning the transaction and the offset immediately past it.
func ParseTransactionAt(data []byte, offset int) (*Transaction, int, error) {
	if len(data)-offset < minTxLength {
		return nil, 0, fmt.Errorf("transaction: input too short: %w", ErrCodec)
	}
	idx := offset

	version := binary.LittleEndian.Uint32(data[idx : idx+4])
	idx += 4

	numInputs, n, err := DecodeVarUInt(data[idx:])
	if err != nil {
		return nil, 0, fmt.Errorf("transaction: input count: %w", err)
	}
	idx += n

	inputs := make([]Input, 0, numInputs)
	for i := uint64(0); i < numInputs; i++ {
		in, next, err := parseInputAt(data, idx)
		if err != nil {
			return nil, 0, fmt.Errorf("transaction: input %d: %w", i, err)
		}
		inputs = append(inputs, in)
		idx = next
	}

	numOutputs, n, err := DecodeVarUInt(data[idx:])
	if err != nil {
		return nil, 0, fmt.Errorf("transaction: output count: %w", err)
	}
	idx += n

	outputs := make([]Output, 0, numOutputs)
	for i := uint64(0); i < numOutputs; i++ {
		o, next, err := parseOutputAt(data, idx)
		if err != nil {
			return nil, 0, fmt.Errorf("transaction: output %d: %w", i, err)
		}
		outputs = append(outputs, o)
		idx = next
	}

	if len(data)-idx < 4 {
		return nil, 0, fmt.Errorf("transaction: truncated locktime: %w", ErrCodec)
	}
	lockTime := binary.LittleEndian.Uint32(data[idx : idx+4])
	idx += 4

	return &Transaction{Version: version, Inputs: inputs, Outputs: outputs, LockTime: lockTime}, idx, nil
}

// ParseTransaction parses a full Transaction from data, requiring the
// entire buffer to be consumed is NOT enforced here (mirroring the source:
// trailing bytes are simply ignored by the caller's offset bookkeeping).
func ParseTransaction(data []byte) (*Transaction, error) {
	tx, _, err := ParseTransactionAt(data, 0)
	return tx, err
}

func parseInputAt(data []byte, offset int) (Input, int, error) {
	if len(data)-offset < minTxTailLength {
		return Input{}, 0, fmt.Errorf("input: truncated: %w", ErrCodec)
	}
	idx := offset
	var hash Hash256
	copy(hash[:], data[idx:idx+32])
	idx += 32
	index := binary.LittleEndian.Uint32(data[idx : idx+4])
	idx += 4
	scriptLen, n, err := DecodeVarUInt(data[idx:])
	if err != nil {
		return Input{}, 0, fmt.Errorf("input: script length: %w", err)
	}
	idx += n
	if uint64(len(data)-idx) < scriptLen+4 {
		return Input{}, 0, fmt.Errorf("input: truncated script/sequence: %w", ErrCodec)
	}
	script := append([]byte(nil), data[idx:idx+int(scriptLen)]...)
	idx += int(scriptLen)
	sequence := binary.LittleEndian.Uint32(data[idx : idx+4])
	idx += 4
	return Input{PrevHash: hash, PrevIndex: index, Script: script, Sequence: sequence}, idx, nil
}

// skipInputAt advances past an input without materializing its script,
// used by the selective output decoder's fast path.
func skipInputAt(data []byte, offset int) (int, error) {
	if len(data)-offset < minTxTailLength {
		return 0, fmt.Errorf("input: truncated: %w", ErrCodec)
	}
	idx := offset + 32 + 4
	scriptLen, n, err := DecodeVarUInt(data[idx:])
	if err != nil {
		return 0, fmt.Errorf("input: script length: %w", err)
	}
	idx += n
	if uint64(len(data)-idx) < scriptLen+4 {
		return 0, fmt.Errorf("input: truncated script/sequence: %w", ErrCodec)
	}
	return idx + int(scriptLen) + 4, nil
}

func parseOutputAt(data []byte, offset int) (Output, int, error) {
	if len(data)-offset < 9 {
		return Output{}, 0, fmt.Errorf("output: truncated: %w", ErrCodec)
	}
	idx := offset
	value := binary.LittleEndian.Uint64(data[idx : idx+8])
	idx += 8
	scriptLen, n, err := DecodeVarUInt(data[idx:])
	if err != nil {
		return Output{}, 0, fmt.Errorf("output: script length: %w", err)
	}
	idx += n
	if uint64(len(data)-idx) < scriptLen {
		return Output{}, 0, fmt.Errorf("output: truncated script: %w", ErrCodec)
	}
	script := append([]byte(nil), data[idx:idx+int(scriptLen)]...)
	idx += int(scriptLen)
	return Output{Value: value, Script: script}, idx, nil
}

// skipOutputAt advances past an output without materializing its script or
// value, used by GetOutputSkipDecode.
func skipOutputAt(data []byte, offset int) (int, error) {
	if len(data)-offset < 9 {
		return 0, fmt.Errorf("output: truncated: %w", ErrCodec)
	}
	idx := offset + 8
	scriptLen, n, err := DecodeVarUInt(data[idx:])
	if err != nil {
		return 0, fmt.Errorf("output: script length: %w", err)
	}
	idx += n
	if uint64(len(data)-idx) < scriptLen {
		return 0, fmt.Errorf("output: truncated script: %w", ErrCodec)
	}
	return idx + int(scriptLen), nil
}

// GetOutputSkipDecode decodes only the version, locktime, and the single
// output at outputIndex from a serialized transaction, skipping over every
// input and every other output without allocating their contents. This is
// the correctness-critical fast path for light-client-style checks that
// only need one output of a large transaction.
func GetOutputSkipDecode(data []byte, startOffset, outputIndex int) (version uint32, lockTime uint32, out Output, err error) {
	if len(data)-startOffset < minTxTailLength {
		return 0, 0, Output{}, fmt.Errorf("skip-decode: input too short: %w", ErrCodec)
	}
	idx := startOffset
	version = binary.LittleEndian.Uint32(data[idx : idx+4])
	idx += 4

	numInputs, n, err := DecodeVarUInt(data[idx:])
	if err != nil {
		return 0, 0, Output{}, fmt.Errorf("skip-decode: input count: %w", err)
	}
	idx += n
	for i := uint64(0); i < numInputs; i++ {
		idx, err = skipInputAt(data, idx)
		if err != nil {
			return 0, 0, Output{}, fmt.Errorf("skip-decode: input %d: %w", i, err)
		}
	}

	numOutputs, n, err := DecodeVarUInt(data[idx:])
	if err != nil {
		return 0, 0, Output{}, fmt.Errorf("skip-decode: output count: %w", err)
	}
	idx += n
	if outputIndex < 0 || uint64(outputIndex) >= numOutputs {
		return 0, 0, Output{}, fmt.Errorf("skip-decode: output index %d out of range (%d outputs): %w", outputIndex, numOutputs, ErrCodec)
	}

	for i := 0; i < outputIndex; i++ {
		idx, err = skipOutputAt(data, idx)
		if err != nil {
			return 0, 0, Output{}, fmt.Errorf("skip-decode: output %d: %w", i, err)
		}
	}
	out, idx, err = parseOutputAt(data, idx)
	if err != nil {
		return 0, 0, Output{}, fmt.Errorf("skip-decode: target output: %w", err)
	}
	for i := outputIndex + 1; i < int(numOutputs); i++ {
		idx, err = skipOutputAt(data, idx)
		if err != nil {
			return 0, 0, Output{}, fmt.Errorf("skip-decode: output %d: %w", i, err)
		}
	}

	if len(data)-idx < 4 {
		return 0, 0, Output{}, fmt.Errorf("skip-decode: truncated locktime: %w", ErrCodec)
	}
	lockTime = binary.LittleEndian.Uint32(data[idx : idx+4])
	idx += 4

	if idx-startOffset != len(data) {
		return 0, 0, Output{}, fmt.Errorf("skip-decode: trailing bytes after transaction (consumed %d of %d): %w", idx-startOffset, len(data), ErrCodec)
	}

	return version, lockTime, out, nil
}

// Hash returns hash256(Serialize(t)), the internal (non-reversed) form used
// for identity, equality, and as the prev_hash written into spending
// inputs.
func (t *Transaction) Hash(p HashProvider) Hash256 {
	return Hash256Of(p, t.Serialize())
}

// Txid returns the byte-reversed display form of Hash, matching the
// convention used by explorers and the indexer HTTP API.
func (t *Transaction) Txid(p HashProvider) Hash256 {
	return t.Hash(p).Reverse()
}

// HasVoutForAddress reports whether outputs[index] exists and carries
// exactly the given address's output script.
func (t *Transaction) HasVoutForAddress(addressScript []byte, index int) bool {
	if index < 0 || index >= len(t.Outputs) {
		return false
	}
	return helpers.BytesEqual(t.Outputs[index].Script, addressScript)
}

// VoutsForAddress returns every output index whose script matches
// addressScript exactly.
func (t *Transaction) VoutsForAddress(addressScript []byte) []int {
	var out []int
	for i, o := range t.Outputs {
		if helpers.BytesEqual(o.Script, addressScript) {
			out = append(out, i)
		}
	}
	return out
}

// HasWitnesses always returns false: Dogecoin pre-segwit carries no
// witness data.
func (t *Transaction) HasWitnesses() bool { return false }

// ByteLength returns the serialized size of t. allowWitness is accepted for
// interface parity with segwit-aware siblings but has no effect since
// HasWitnesses is always false.
func (t *Transaction) ByteLength(allowWitness bool) int {
	_ = allowWitness
	return t.byteLengthEstimate()
}

// Weight returns the BIP-141 transaction weight: 3*base + total. For a
// pre-segwit transaction base == total, so this reduces to 4*size; the
// formula is kept explicit for parity with segwit-capable implementations.
func (t *Transaction) Weight() uint64 {
	base := uint64(t.byteLengthEstimate())
	total := base
	return base*3 + total
}

// VirtualSize returns ceil(Weight()/4).
func (t *Transaction) VirtualSize() uint64 {
	w := t.Weight()
	extra := uint64(0)
	if w&0b11 != 0 {
		extra = 1
	}
	return w>>2 + extra
}
