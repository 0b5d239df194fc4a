// Package crypto wraps the narrow set of cryptographic primitives
// goevm needs — Keccak256 hashing, CREATE/CREATE2 address derivation,
// and ECRECOVER — behind the vetted github.com/ethereum/go-ethereum/crypto
// library rather than hand-rolling them, per spec.md §1's instruction
// that precompile cryptography come from vetted libraries.
package crypto

import (
	gethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/ethform/goevm/core/types"
)

// Keccak256 returns the 32-byte Keccak-256 digest of data.
func Keccak256(data ...[]byte) types.Hash {
	return types.BytesToHash(gethcrypto.Keccak256(data...))
}
