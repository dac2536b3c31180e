// Package dogecoin implements the Dogecoin pre-segwit wire format: the
// compact-size integer codec, hash compositions, output script assembly,
// transaction serialization, and the pre-segwit signature-hash builder.
// Everything in this package is pure and CPU-bound; nothing here performs
// I/O or blocks.
package dogecoin

import "errors"

// Abstract error kinds. Wrap these with fmt.Errorf("...: %w", Err*) at call
// sites so callers can discriminate failures with errors.Is while still
// seeing the concrete detail in logs.
var (
	// ErrCodec covers truncated, malformed, or over-long input to a parser,
	// including a varuint that runs past the end of its buffer.
	ErrCodec = errors.New("dogecoin: codec error")
)
