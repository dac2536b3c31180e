package dogecoin

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // dropped from stdlib; required for hash160
)

// Hash256 is an opaque 32-byte digest. Internally it is always the
// non-reversed hash256 of some serialization; the byte-reversed "display"
// form used by explorers/APIs is produced only by Reverse, never stored.
type Hash256 [32]byte

// Hash160 is an opaque 20-byte digest (ripemd160(sha256(x))).
type Hash160 [20]byte

// Reverse returns the byte-reversed copy of h, used to render a Hash256 as
// a display txid. It does not mutate h.
func (h Hash256) Reverse() Hash256 {
	var out Hash256
	for i, b := range h {
		out[len(h)-1-i] = b
	}
	return out
}

// HashProvider is the capability exposing the two primitive hash functions
// and their Bitcoin-style compositions. Implementations are interchangeable;
// every component in this module that needs hashing depends on this
// interface, never on a concrete hash library directly.
type HashProvider interface {
	SHA256(data []byte) Hash256
	RIPEMD160(data []byte) Hash160
}

// Hash160Of computes ripemd160(sha256(data)) using the given provider.
func Hash160Of(p HashProvider, data []byte) Hash160 {
	first := p.SHA256(data)
	return p.RIPEMD160(first[:])
}

// Hash256Of computes sha256(sha256(data)) using the given provider.
func Hash256Of(p HashProvider, data []byte) Hash256 {
	first := p.SHA256(data)
	return p.SHA256(first[:])
}

// StdHashProvider implements HashProvider with the standard library's
// sha256 and golang.org/x/crypto's ripemd160.
type StdHashProvider struct{}

func (StdHashProvider) SHA256(data []byte) Hash256 {
	return sha256.Sum256(data)
}

func (StdHashProvider) RIPEMD160(data []byte) Hash160 {
	h := ripemd160.New()
	h.Write(data) //nolint:errcheck // ripemd160.Write never errors
	var out Hash160
	copy(out[:], h.Sum(nil))
	return out
}
