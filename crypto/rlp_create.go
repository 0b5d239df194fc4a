package crypto

import (
	"github.com/ethform/goevm/core/types"
)

// The core only ever needs rlp([Address, u64]) to derive a CREATE
// address (spec.md §6); every other RLP usage is explicitly out of
// scope, so this is a narrow hand-rolled encoder rather than a general
// RLP library, grounded on the teacher's interpreter.go createAddress
// helpers (encodeRLPBytes/encodeRLPUint/wrapRLPList/uintToMinBytes).

func uintToMinBytes(n uint64) []byte {
	if n == 0 {
		return nil
	}
	var buf [8]byte
	for i := 7; i >= 0; i-- {
		buf[i] = byte(n)
		n >>= 8
	}
	start := 0
	for start < 8 && buf[start] == 0 {
		start++
	}
	return buf[start:]
}

func encodeRLPBytes(b []byte) []byte {
	if len(b) == 1 && b[0] < 0x80 {
		return b
	}
	return append(rlpLenPrefix(0x80, len(b)), b...)
}

func encodeRLPUint(n uint64) []byte {
	return encodeRLPBytes(uintToMinBytes(n))
}

func rlpLenPrefix(base byte, n int) []byte {
	if n < 56 {
		return []byte{base + byte(n)}
	}
	lenBytes := uintToMinBytes(uint64(n))
	return append([]byte{base + 55 + byte(len(lenBytes))}, lenBytes...)
}

func wrapRLPList(items ...[]byte) []byte {
	var payload []byte
	for _, it := range items {
		payload = append(payload, it...)
	}
	return append(rlpLenPrefix(0xc0, len(payload)), payload...)
}

// CreateAddress derives the address of a contract deployed via CREATE:
// keccak256(rlp([sender, nonce]))[12:].
func CreateAddress(sender types.Address, nonce uint64) types.Address {
	encoded := wrapRLPList(encodeRLPBytes(sender.Bytes()), encodeRLPUint(nonce))
	h := Keccak256(encoded)
	return types.BytesToAddress(h[12:])
}

// CreateAddress2 derives the address of a contract deployed via
// CREATE2: keccak256(0xff || sender || salt || keccak256(init_code))[12:].
func CreateAddress2(sender types.Address, salt [32]byte, initCode []byte) types.Address {
	initCodeHash := Keccak256(initCode)
	h := Keccak256([]byte{0xff}, sender.Bytes(), salt[:], initCodeHash.Bytes())
	return types.BytesToAddress(h[12:])
}
