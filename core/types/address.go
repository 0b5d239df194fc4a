// Package types holds the shared value types the rest of goevm
// exchanges: addresses, hashes, the native 256-bit word, accounts,
// logs, access lists, and the transaction/block environment records.
package types

import (
	"encoding/hex"
	"fmt"

	"github.com/holiman/uint256"
)

// AddressLength and HashLength match the wire sizes spec.md §3 fixes.
const (
	AddressLength = 20
	HashLength    = 32
	BloomLength   = 256
)

// Address is a fixed 20-byte account identifier.
type Address [AddressLength]byte

// Hash is a fixed 32-byte digest.
type Hash [HashLength]byte

// Word is the native 256-bit unsigned integer used throughout the
// interpreter: stack entries, storage values, balances, gas prices.
type Word = uint256.Int

// BytesToAddress left-pads or truncates b to AddressLength bytes,
// keeping the rightmost bytes (matching go-ethereum's common.Address
// construction the teacher's geth adapter relies on).
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
	return a
}

// BytesToHash left-pads or truncates b to HashLength bytes.
func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
	return h
}

// HexToAddress parses a hex string (with or without 0x prefix) into an
// Address, ignoring malformed input by zero-filling it.
func HexToAddress(s string) Address {
	return BytesToAddress(fromHex(s))
}

// HexToHash parses a hex string into a Hash.
func HexToHash(s string) Hash {
	return BytesToHash(fromHex(s))
}

func fromHex(s string) []byte {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil
	}
	return b
}

func (a Address) Bytes() []byte { return a[:] }
func (h Hash) Bytes() []byte    { return h[:] }

func (a Address) Hex() string { return "0x" + hex.EncodeToString(a[:]) }
func (h Hash) Hex() string    { return "0x" + hex.EncodeToString(h[:]) }

func (a Address) String() string { return a.Hex() }
func (h Hash) String() string    { return h.Hex() }

// IsZero reports whether the address is all-zero, the sentinel for
// "no account" (e.g. an uninitialized transact_to).
func (a Address) IsZero() bool { return a == Address{} }

// WordFromAddress zero-extends addr into a 256-bit word, as used when
// a CREATE-derived address is pushed onto the stack.
func WordFromAddress(addr Address) *Word {
	var w Word
	w.SetBytes(addr[:])
	return &w
}

// AddressFromWord truncates w to its low 20 bytes.
func AddressFromWord(w *Word) Address {
	b := w.Bytes32()
	return BytesToAddress(b[12:])
}

// Bloom is a 2048-bit (256-byte) log bloom filter.
type Bloom [BloomLength]byte

func (b Bloom) String() string { return fmt.Sprintf("0x%x", b[:]) }
