package dogecoin

import "testing"

func buildTestTx() *Transaction {
	return &Transaction{
		Version: 2,
		Inputs: []Input{
			{PrevHash: Hash256{1}, PrevIndex: 0, Script: []byte{0xAA}, Sequence: 0xFFFFFFFF},
			{PrevHash: Hash256{2}, PrevIndex: 1, Script: []byte{0xBB}, Sequence: 0xFFFFFFFE},
			{PrevHash: Hash256{3}, PrevIndex: 2, Script: []byte{0xCC}, Sequence: 0xFFFFFFFD},
		},
		Outputs: []Output{
			{Value: 100, Script: []byte{0x01}},
			{Value: 200, Script: []byte{0x02}},
		},
		LockTime: 0,
	}
}

func TestSighashNoneAsymmetry(t *testing.T) {
	tx := buildTestTx()
	preimage := PreimageForInput(tx, 1, []byte{0xFE}, SighashNone)

	if len(preimage.Transaction.Outputs) != 0 {
		t.Fatalf("SIGHASH_NONE must clear outputs, got %d", len(preimage.Transaction.Outputs))
	}
	for j, in := range preimage.Transaction.Inputs {
		if j == 1 {
			if in.Sequence != tx.Inputs[1].Sequence {
				t.Errorf("SIGHASH_NONE must NOT zero the signed input's own sequence; input %d sequence = %x, want unchanged %x", j, in.Sequence, tx.Inputs[1].Sequence)
			}
		} else if in.Sequence != 0 {
			t.Errorf("SIGHASH_NONE must zero every OTHER input's sequence; input %d sequence = %x, want 0", j, in.Sequence)
		}
	}
	// original tx is untouched
	if tx.Inputs[0].Sequence != 0xFFFFFFFF || len(tx.Outputs) != 2 {
		t.Errorf("PreimageForInput must not mutate its input transaction")
	}
}

func TestSighashSingleBlankingAndSequence(t *testing.T) {
	tx := buildTestTx()
	preimage := PreimageForInput(tx, 1, []byte{0xFE}, SighashSingle)

	if len(preimage.Transaction.Outputs) != 2 {
		t.Fatalf("SIGHASH_SINGLE(i=1) should truncate to length 2, got %d", len(preimage.Transaction.Outputs))
	}
	if o := preimage.Transaction.Outputs[0]; o.Value != BlankOutput().Value || len(o.Script) != 0 {
		t.Errorf("SIGHASH_SINGLE must blank outputs[j] for j<i; outputs[0] = %+v", preimage.Transaction.Outputs[0])
	}
	if preimage.Transaction.Outputs[1].Value != 200 {
		t.Errorf("SIGHASH_SINGLE must preserve outputs[i]; outputs[1] = %+v", preimage.Transaction.Outputs[1])
	}
	if preimage.Transaction.Inputs[0].Sequence != 0 {
		t.Errorf("SIGHASH_SINGLE must zero sequence for inputs[j], j<i")
	}
	if preimage.Transaction.Inputs[1].Sequence != tx.Inputs[1].Sequence {
		t.Errorf("SIGHASH_SINGLE must not alter input i's own sequence")
	}
}

func TestSighashSingleBugOutOfRange(t *testing.T) {
	tx := buildTestTx() // 3 inputs, 2 outputs
	preimage := PreimageForInput(tx, 2, []byte{0xFE}, SighashSingle)

	// i=2 >= len(outputs)=2: truncate(i+1=3) is a no-op, and the loop for
	// j<i blanks every existing output since i exceeds the output count.
	if len(preimage.Transaction.Outputs) != 2 {
		t.Fatalf("SIGHASH_SINGLE bug must preserve the original output count, got %d", len(preimage.Transaction.Outputs))
	}
	for j, o := range preimage.Transaction.Outputs {
		if o.Value != BlankOutput().Value || len(o.Script) != 0 {
			t.Errorf("SIGHASH_SINGLE bug: output %d should be blanked, got %+v", j, o)
		}
	}
}

func TestSighashAnyoneCanPay(t *testing.T) {
	tx := buildTestTx()
	preimage := PreimageForInput(tx, 1, []byte{0xFE}, SighashAll|SighashAnyoneCanPay)

	if len(preimage.Transaction.Inputs) != 1 {
		t.Fatalf("ANYONECANPAY must reduce to a single input, got %d", len(preimage.Transaction.Inputs))
	}
	if preimage.Transaction.Inputs[0].PrevHash != tx.Inputs[1].PrevHash {
		t.Errorf("ANYONECANPAY must keep input i, got prev hash %x", preimage.Transaction.Inputs[0].PrevHash)
	}
	if preimage.Transaction.Inputs[0].Script[0] != 0xFE {
		t.Errorf("ANYONECANPAY must set the surviving input's script to prevOutScript")
	}
}

func TestSighashAllClearsOtherScripts(t *testing.T) {
	tx := buildTestTx()
	preimage := PreimageForInput(tx, 1, []byte{0xFE}, SighashAll)

	for j, in := range preimage.Transaction.Inputs {
		if j == 1 {
			if len(in.Script) != 1 || in.Script[0] != 0xFE {
				t.Errorf("SIGHASH_ALL must set input i's script to prevOutScript, got %x", in.Script)
			}
		} else if len(in.Script) != 0 {
			t.Errorf("SIGHASH_ALL must clear every other input's script, input %d has %x", j, in.Script)
		}
	}
}

func TestSighashDeterministic(t *testing.T) {
	tx := buildTestTx()
	hp := StdHashProvider{}
	a := SighashForInput(hp, tx, 0, []byte{0x11, 0x22}, SighashAll)
	b := SighashForInput(hp, tx, 0, []byte{0x11, 0x22}, SighashAll)
	if a != b {
		t.Errorf("SighashForInput is not deterministic across calls")
	}
}
