package vm

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/ethform/goevm/core/types"
	"github.com/ethform/goevm/params"
)

func TestPrecompiledContractsSetByFork(t *testing.T) {
	pre := PrecompiledContracts(params.Frontier)
	post := PrecompiledContracts(params.Berlin)
	if len(pre) != 5 || len(post) != 5 {
		t.Fatalf("want exactly 5 precompiles at every fork, got %d/%d", len(pre), len(post))
	}
	if !IsPrecompiledContract(types.BytesToAddress([]byte{4}), params.Frontier) {
		t.Error("0x04 (identity) must be a precompile from Frontier")
	}
	if IsPrecompiledContract(types.BytesToAddress([]byte{6}), params.Cancun) {
		t.Error("0x06 is out of scope and must not resolve as a precompile")
	}
}

func TestIdentityPrecompile(t *testing.T) {
	p := identityPrecompile{}
	in := []byte{1, 2, 3, 4, 5}
	out, err := p.Run(in)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !bytes.Equal(out, in) {
		t.Errorf("identity output = %x, want %x", out, in)
	}
	if got := p.RequiredGas(in); got != 15+3*1 {
		t.Errorf("RequiredGas(5 bytes) = %d, want %d", got, 15+3*1)
	}
}

func TestEcrecoverPrecompileGasAndMalformedInput(t *testing.T) {
	p := ecrecoverPrecompile{}
	if got := p.RequiredGas(nil); got != 3000 {
		t.Errorf("RequiredGas = %d, want 3000 (flat cost)", got)
	}
	// v=5 is neither 27 nor 28: must fail closed with a nil, non-error result.
	in := make([]byte, 128)
	in[63] = 5
	out, err := p.Run(in)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if out != nil {
		t.Errorf("ecrecover with an invalid v must return nil, got %x", out)
	}
}

func TestSha256Precompile(t *testing.T) {
	p := sha256Precompile{}
	out, err := p.Run([]byte("abc"))
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	want, _ := hex.DecodeString("ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad")
	if !bytes.Equal(out, want) {
		t.Errorf("sha256(\"abc\") = %x, want %x", out, want)
	}
}

func TestRipemd160Precompile(t *testing.T) {
	p := ripemd160Precompile{}
	out, err := p.Run([]byte("abc"))
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(out) != 32 {
		t.Fatalf("ripemd160 output len = %d, want 32 (left-padded)", len(out))
	}
	want, _ := hex.DecodeString("8eb208f7e05d987a9b044a8e98c6b087f15a0bfc")
	if !bytes.Equal(out[12:], want) {
		t.Errorf("ripemd160(\"abc\") = %x, want %x", out[12:], want)
	}
	for _, b := range out[:12] {
		if b != 0 {
			t.Fatalf("ripemd160 output must be left-padded with zeros, got %x", out)
		}
	}
}

func word32(v uint64) []byte {
	b := make([]byte, 32)
	b[31] = byte(v)
	return b
}

func TestModExpPrecompile(t *testing.T) {
	// base=2, exp=2, mod=5 -> 4, each length-prefixed as a single byte.
	var in []byte
	in = append(in, word32(1)...) // baseLen
	in = append(in, word32(1)...) // expLen
	in = append(in, word32(1)...) // modLen
	in = append(in, 2, 2, 5)
	p := modExpPrecompile{berlin: true}
	out, err := p.Run(in)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(out) != 1 || out[0] != 4 {
		t.Errorf("modexp(2, 2, 5) = %v, want [4]", out)
	}
}

func TestModExpPrecompileZeroModulusReturnsZero(t *testing.T) {
	var in []byte
	in = append(in, word32(1)...)
	in = append(in, word32(1)...)
	in = append(in, word32(2)...)
	in = append(in, 2, 2, 0, 0)
	p := modExpPrecompile{berlin: true}
	out, err := p.Run(in)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(out) != 2 || out[0] != 0 || out[1] != 0 {
		t.Errorf("modexp with zero modulus = %v, want two zero bytes", out)
	}
}

func TestModExpGasDivisorChangesAtBerlin(t *testing.T) {
	body := make([]byte, 600) // base(200) || exp(200) || mod(200)
	body[200] = 0xFF          // nonzero exponent so adjustedExpLen is nonzero
	in := append(append(append([]byte{}, word32(200)...), word32(200)...), word32(200)...)
	in = append(in, body...)

	pre := modExpPrecompile{berlin: false}
	post := modExpPrecompile{berlin: true}
	if pre.RequiredGas(in) == post.RequiredGas(in) {
		t.Error("the EIP-2565 divisor switch must change MODEXP's gas cost")
	}
}

func TestRunPrecompiledContractChargesGas(t *testing.T) {
	addr := types.BytesToAddress([]byte{4})
	out, remaining, err := RunPrecompiledContract(addr, []byte{1, 2, 3}, 100, params.Cancun)
	if err != nil {
		t.Fatalf("RunPrecompiledContract error: %v", err)
	}
	wantCost := uint64(15 + 3*1)
	if remaining != 100-wantCost {
		t.Errorf("remaining = %d, want %d", remaining, 100-wantCost)
	}
	if !bytes.Equal(out, []byte{1, 2, 3}) {
		t.Errorf("output = %x, want %x", out, []byte{1, 2, 3})
	}
}

func TestRunPrecompiledContractOutOfGas(t *testing.T) {
	addr := types.BytesToAddress([]byte{2}) // sha256
	_, _, err := RunPrecompiledContract(addr, make([]byte, 1000), 10, params.Cancun)
	if err != ErrOutOfGas {
		t.Errorf("RunPrecompiledContract() = %v, want ErrOutOfGas", err)
	}
}

func TestRunPrecompiledContractUnknownAddress(t *testing.T) {
	_, _, err := RunPrecompiledContract(types.BytesToAddress([]byte{6}), nil, 1000, params.Cancun)
	if err != ErrNoAssociatedBytecode {
		t.Errorf("RunPrecompiledContract() = %v, want ErrNoAssociatedBytecode", err)
	}
}
