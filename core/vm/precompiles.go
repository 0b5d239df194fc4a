package vm

import (
	"crypto/sha256"
	"math/big"

	"github.com/ethform/goevm/core/types"
	"github.com/ethform/goevm/crypto"
	"github.com/ethform/goevm/params"
	"golang.org/x/crypto/ripemd160"
)

// PrecompiledContract is the interface native precompiled contracts
// satisfy, grounded on the teacher's core/vm/precompiles.go.
type PrecompiledContract interface {
	RequiredGas(input []byte) uint64
	Run(input []byte) ([]byte, error)
}

// PrecompiledContracts returns the address set addresses 0x01-0x05
// resolve to for fork f, per spec.md §4.12's scoped precompile surface
// (the teacher's 0x06-0x0a BN254/BLAKE2/KZG entries are out of scope —
// see DESIGN.md for why). MODEXP's gas divisor is fork-gated (EIP-2565,
// Berlin+); the other four are fork-independent.
func PrecompiledContracts(f params.Fork) map[types.Address]PrecompiledContract {
	return map[types.Address]PrecompiledContract{
		types.BytesToAddress([]byte{1}): ecrecoverPrecompile{},
		types.BytesToAddress([]byte{2}): sha256Precompile{},
		types.BytesToAddress([]byte{3}): ripemd160Precompile{},
		types.BytesToAddress([]byte{4}): identityPrecompile{},
		types.BytesToAddress([]byte{5}): modExpPrecompile{berlin: f.Enabled(params.Berlin)},
	}
}

// IsPrecompiledContract reports whether addr names a precompile under
// fork f.
func IsPrecompiledContract(addr types.Address, f params.Fork) bool {
	_, ok := PrecompiledContracts(f)[addr]
	return ok
}

// RunPrecompiledContract charges the precompile's required gas against
// gas and runs it, returning the output and gas remaining.
func RunPrecompiledContract(addr types.Address, input []byte, gas uint64, f params.Fork) ([]byte, uint64, error) {
	p, ok := PrecompiledContracts(f)[addr]
	if !ok {
		return nil, gas, ErrNoAssociatedBytecode
	}
	cost := p.RequiredGas(input)
	if gas < cost {
		return nil, 0, ErrOutOfGas
	}
	out, err := p.Run(input)
	return out, gas - cost, err
}

// --- ecrecover (0x01) ---

type ecrecoverPrecompile struct{}

func (ecrecoverPrecompile) RequiredGas(input []byte) uint64 { return 3000 }

func (ecrecoverPrecompile) Run(input []byte) ([]byte, error) {
	input = padRight(input, 128)

	hash := input[0:32]
	v := new(big.Int).SetBytes(input[32:64])
	r := new(big.Int).SetBytes(input[64:96])
	s := new(big.Int).SetBytes(input[96:128])

	if v.BitLen() > 8 {
		return nil, nil
	}
	vByte := byte(v.Uint64())
	if vByte >= 27 {
		vByte -= 27
	}
	if vByte != 0 && vByte != 1 {
		return nil, nil
	}
	if !crypto.ValidateSignatureValues(vByte, r, s, true) {
		return nil, nil
	}

	sig := make([]byte, 65)
	rBytes, sBytes := r.Bytes(), s.Bytes()
	copy(sig[32-len(rBytes):32], rBytes)
	copy(sig[64-len(sBytes):64], sBytes)
	sig[64] = vByte

	addr, ok := crypto.Ecrecover(hash, sig)
	if !ok {
		return nil, nil
	}
	out := make([]byte, 32)
	copy(out[12:], addr)
	return out, nil
}

// --- sha256 (0x02) ---

type sha256Precompile struct{}

func (sha256Precompile) RequiredGas(input []byte) uint64 {
	return 60 + 12*wordCount(len(input))
}

func (sha256Precompile) Run(input []byte) ([]byte, error) {
	h := sha256.Sum256(input)
	return h[:], nil
}

// --- ripemd160 (0x03) ---

type ripemd160Precompile struct{}

func (ripemd160Precompile) RequiredGas(input []byte) uint64 {
	return 600 + 120*wordCount(len(input))
}

func (ripemd160Precompile) Run(input []byte) ([]byte, error) {
	h := ripemd160.New()
	h.Write(input)
	digest := h.Sum(nil)
	out := make([]byte, 32)
	copy(out[12:], digest)
	return out, nil
}

// --- identity (0x04) ---

type identityPrecompile struct{}

func (identityPrecompile) RequiredGas(input []byte) uint64 {
	return 15 + 3*wordCount(len(input))
}

func (identityPrecompile) Run(input []byte) ([]byte, error) {
	out := make([]byte, len(input))
	copy(out, input)
	return out, nil
}

// --- modexp (0x05), EIP-198/2565 ---

type modExpPrecompile struct {
	berlin bool
}

func (m modExpPrecompile) RequiredGas(input []byte) uint64 {
	input = padRight(input, 96)
	baseLen := new(big.Int).SetBytes(input[0:32]).Uint64()
	expLen := new(big.Int).SetBytes(input[32:64]).Uint64()
	modLen := new(big.Int).SetBytes(input[64:96]).Uint64()

	adjExpLen := adjustedExpLen(expLen, baseLen, input[96:])

	maxLen := baseLen
	if modLen > maxLen {
		maxLen = modLen
	}
	words := (maxLen + 7) / 8
	multComplexity := words * words

	divisor := uint64(20)
	if m.berlin {
		divisor = 3 // EIP-2565
	}
	gas := multComplexity * maxUint64(adjExpLen, 1) / divisor
	if gas < 200 {
		gas = 200
	}
	return gas
}

func (modExpPrecompile) Run(input []byte) ([]byte, error) {
	input = padRight(input, 96)
	baseLen := new(big.Int).SetBytes(input[0:32])
	expLen := new(big.Int).SetBytes(input[32:64])
	modLen := new(big.Int).SetBytes(input[64:96])

	if baseLen.BitLen() > 32 || expLen.BitLen() > 32 || modLen.BitLen() > 32 {
		return nil, ErrInvalidOffset
	}
	bLen, eLen, mLen := baseLen.Uint64(), expLen.Uint64(), modLen.Uint64()

	data := input[96:]
	base := getDataSlice(data, 0, bLen)
	exp := getDataSlice(data, bLen, eLen)
	mod := getDataSlice(data, bLen+eLen, mLen)

	modVal := new(big.Int).SetBytes(mod)
	if modVal.Sign() == 0 {
		return make([]byte, mLen), nil
	}

	result := new(big.Int).Exp(new(big.Int).SetBytes(base), new(big.Int).SetBytes(exp), modVal)

	out := result.Bytes()
	if uint64(len(out)) < mLen {
		padded := make([]byte, mLen)
		copy(padded[mLen-uint64(len(out)):], out)
		return padded, nil
	}
	return out[:mLen], nil
}

func wordCount(size int) uint64 {
	if size == 0 {
		return 0
	}
	return uint64((size + 31) / 32)
}

func padRight(data []byte, minLen int) []byte {
	if len(data) >= minLen {
		return data
	}
	padded := make([]byte, minLen)
	copy(padded, data)
	return padded
}

func getDataSlice(data []byte, offset, length uint64) []byte {
	if length == 0 {
		return nil
	}
	result := make([]byte, length)
	if offset >= uint64(len(data)) {
		return result
	}
	end := offset + length
	if end > uint64(len(data)) {
		end = uint64(len(data))
	}
	copy(result, data[offset:end])
	return result
}

func adjustedExpLen(expLen, baseLen uint64, data []byte) uint64 {
	if expLen <= 32 {
		exp := new(big.Int).SetBytes(getDataSlice(data, baseLen, expLen))
		if exp.Sign() == 0 {
			return 0
		}
		return uint64(exp.BitLen() - 1)
	}
	firstExp := new(big.Int).SetBytes(getDataSlice(data, baseLen, 32))
	adj := uint64(0)
	if firstExp.Sign() > 0 {
		adj = uint64(firstExp.BitLen() - 1)
	}
	return adj + 8*(expLen-32)
}

func maxUint64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}
