package wormhole

import "errors"

// Abstract error kinds surfaced by the validator and guardian processor.
// Every one of these wraps additional detail via fmt.Errorf("...: %w", ...)
// at the call site; check with errors.Is against these sentinels, never by
// matching error strings.
var (
	// ErrProvenanceMismatch: the transaction provider returned a
	// transaction whose hash does not match the requested prev_hash.
	ErrProvenanceMismatch = errors.New("wormhole: provenance mismatch")

	// ErrBindingMismatch: a referenced prior output does not pay to the
	// expected P2SH script derived from the VAA metadata.
	ErrBindingMismatch = errors.New("wormhole: binding mismatch")

	// ErrAmountInvariant: output sum doesn't equal metadata total, fee is
	// out of the configured [min, max] band, or u64 arithmetic overflowed
	// or underflowed.
	ErrAmountInvariant = errors.New("wormhole: amount invariant violation")

	// ErrSignerFailure: the signer could not produce a signature for a
	// sighash (threshold not met, key unknown, transport failure, etc).
	ErrSignerFailure = errors.New("wormhole: signer failure")
)
