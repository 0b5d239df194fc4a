package vm

import (
	"testing"

	"github.com/ethform/goevm/params"
)

func TestMemoryExpansionCost(t *testing.T) {
	tests := []struct{ words, want uint64 }{
		{0, 0},
		{1, 3},
		{512, 3*512 + 512},
		{1024, 3*1024 + 2048},
	}
	for _, tt := range tests {
		if got := MemoryExpansionCost(tt.words); got != tt.want {
			t.Errorf("MemoryExpansionCost(%d) = %d, want %d", tt.words, got, tt.want)
		}
	}
}

func TestMemoryGasDeltaNoGrowthIsFree(t *testing.T) {
	if got := MemoryGasDelta(10, 10); got != 0 {
		t.Errorf("MemoryGasDelta with no growth = %d, want 0", got)
	}
	if got := MemoryGasDelta(10, 5); got != 0 {
		t.Errorf("MemoryGasDelta shrinking = %d, want 0", got)
	}
}

func TestForwardedCallGas6364Rule(t *testing.T) {
	tests := []struct {
		name      string
		available uint64
		requested uint64
		expected  uint64
	}{
		{"requested exceeds cap", 6400, 10000, 6300},
		{"requested under cap", 6400, 5000, 5000},
		{"requested exactly at cap", 6400, 6300, 6300},
		{"zero available", 0, 1000, 0},
		{"zero requested", 6400, 0, 0},
		{"small available", 64, 10000, 63},
		{"large available", 10000000, 20000000, 9843750},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForwardedCallGas(tt.available, tt.requested)
			if got != tt.expected {
				t.Errorf("ForwardedCallGas(%d, %d) = %d, want %d", tt.available, tt.requested, got, tt.expected)
			}
		})
	}
}

func TestForwardedCallGasRetainsOneSixtyFourth(t *testing.T) {
	for _, available := range []uint64{64, 128, 6400, 1000000} {
		forwarded := ForwardedCallGas(available, ^uint64(0))
		retained := available - forwarded
		if want := available / 64; retained != want {
			t.Errorf("available=%d retained=%d, want %d", available, retained, want)
		}
	}
}

func TestExpGasByteCostChangesAtSpuriousDragon(t *testing.T) {
	pre := ExpGas(params.Frontier, 4)
	post := ExpGas(params.SpuriousDragon, 4)
	if pre == post {
		t.Error("EXP per-byte cost must change at Spurious Dragon (EIP-160)")
	}
	if pre != params.GasExp+params.GasExpByte*4 {
		t.Errorf("pre-EIP160 ExpGas(4) = %d, want %d", pre, params.GasExp+params.GasExpByte*4)
	}
}

func TestAccountAccessGasColdVsWarm(t *testing.T) {
	cold := AccountAccessGas(params.Berlin, true)
	warm := AccountAccessGas(params.Berlin, false)
	if cold <= warm {
		t.Errorf("cold access (%d) must cost more than warm access (%d) post-Berlin", cold, warm)
	}
}

func TestSloadGasForkProgression(t *testing.T) {
	frontier := SloadGas(params.Frontier, false)
	tangerine := SloadGas(params.TangerineWhistle, false)
	istanbul := SloadGas(params.Istanbul, false)
	if frontier == tangerine || tangerine == istanbul {
		t.Error("SLOAD base cost must change across its three non-Berlin repricings")
	}
}

func TestSstoreGasNoopIsWarmCostOnly(t *testing.T) {
	v := SstoreValueClass{OrigEqCur: true, CurEqNew: true, OrigIsZero: false, CurIsZero: false, NewIsZero: false}
	res := SstoreGas(params.Cancun, v, false)
	if res.Gas != SloadGas(params.Cancun, false) || res.RefundDelta != 0 {
		t.Errorf("no-op SSTORE = %+v, want warm-read cost with no refund", res)
	}
}

func TestSstoreGasFreshZeroToNonZero(t *testing.T) {
	v := SstoreValueClass{OrigEqCur: true, CurEqNew: false, OrigIsZero: true, CurIsZero: true, NewIsZero: false}
	res := SstoreGas(params.Cancun, v, false)
	if res.Gas != params.GasSStoreSet {
		t.Errorf("zero->nonzero first write = %d, want GasSStoreSet (%d)", res.Gas, params.GasSStoreSet)
	}
	if res.RefundDelta != 0 {
		t.Errorf("zero->nonzero must not refund, got %d", res.RefundDelta)
	}
}

func TestSstoreGasFreshNonZeroToZeroRefunds(t *testing.T) {
	v := SstoreValueClass{OrigEqCur: true, CurEqNew: false, OrigIsZero: false, CurIsZero: false, NewIsZero: true}
	res := SstoreGas(params.Cancun, v, false)
	if res.RefundDelta <= 0 {
		t.Errorf("nonzero->zero first write RefundDelta = %d, want a positive clear refund", res.RefundDelta)
	}
}

func TestCreateGasWordCostRoundsUp(t *testing.T) {
	if got := CreateGasWordCost(1); got != params.InitCodeWordGasEIP3860 {
		t.Errorf("CreateGasWordCost(1) = %d, want %d (rounds up to 1 word)", got, params.InitCodeWordGasEIP3860)
	}
	if got := CreateGasWordCost(33); got != 2*params.InitCodeWordGasEIP3860 {
		t.Errorf("CreateGasWordCost(33) = %d, want %d", got, 2*params.InitCodeWordGasEIP3860)
	}
}
