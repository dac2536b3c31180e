// Package signer defines the prehash-to-compact-signature capability the
// guardian processor depends on, plus a local single-key implementation
// suitable for development and testing. A production deployment replaces
// Memory with a threshold-signature coordinator that blocks until the
// guardian committee has produced a joint signature; the interface is
// identical either way.
package signer

import (
	"context"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"github.com/klingon-exchange/klingon-v2/internal/dogecoin"
)

// Signer is the capability the guardian processor calls once per input.
// Implementations MUST honor the prehash verbatim — no re-hashing, no
// normalization beyond what is documented.
type Signer interface {
	// Sign returns a compact (r||s) signature over prehash plus the
	// compressed public key under which the signature should be verified.
	Sign(ctx context.Context, prehash dogecoin.Hash256) (dogecoin.CompactSignature, error)
	// PublicKeyHash returns hash160(compressed pubkey) for the signer's
	// key, used by the guardian processor to derive the redeem script.
	PublicKeyHash() dogecoin.Hash160
}

// Memory is a local single-key Signer backed by an in-process secp256k1
// private key. It stands in for a production threshold-signature
// coordinator in development and in tests.
type Memory struct {
	priv   *btcec.PrivateKey
	pubKey [33]byte
	pkHash dogecoin.Hash160
}

// NewMemory builds a Memory signer from a 32-byte private key, deriving
// its compressed public key and hash160 using the given hash provider.
func NewMemory(hp dogecoin.HashProvider, privateKey [32]byte) (*Memory, error) {
	priv, pub := btcec.PrivKeyFromBytes(privateKey[:])
	var compressed [33]byte
	copy(compressed[:], pub.SerializeCompressed())
	return &Memory{
		priv:   priv,
		pubKey: compressed,
		pkHash: dogecoin.Hash160Of(hp, compressed[:]),
	}, nil
}

// Sign implements Signer by signing prehash directly (no additional
// hashing) with the wallet's private key and returning a compact (r||s)
// signature alongside the compressed public key.
func (m *Memory) Sign(_ context.Context, prehash dogecoin.Hash256) (dogecoin.CompactSignature, error) {
	sig := ecdsa.Sign(m.priv, prehash[:])
	r := sig.R()
	s := sig.S()
	rBytes := r.Bytes()
	sBytes := s.Bytes()

	var out dogecoin.CompactSignature
	out.PubKey = m.pubKey
	copy(out.RS[0:32], rBytes[:])
	copy(out.RS[32:64], sBytes[:])
	return out, nil
}

// PublicKeyHash implements Signer.
func (m *Memory) PublicKeyHash() dogecoin.Hash160 {
	return m.pkHash
}
