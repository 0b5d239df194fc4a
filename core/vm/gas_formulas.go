package vm

import "github.com/ethform/goevm/params"

// Gas formulas from spec.md §4.7, grounded almost 1:1 on the teacher's
// core/vm/gas_table.go (MemoryGasCost, SstoreGas, CallGas, ExpGas,
// Sha3Gas, LogGas and friends).

// MemoryExpansionCost returns the absolute cost of addressing count
// 32-byte words: 3*count + floor(count^2/512).
func MemoryExpansionCost(words uint64) uint64 {
	return params.GasMemory*words + (words*words)/512
}

// MemoryGasDelta returns the incremental charge to grow from oldWords
// to newWords, saturating at zero if no growth occurred.
func MemoryGasDelta(oldWords, newWords uint64) uint64 {
	if newWords <= oldWords {
		return 0
	}
	return MemoryExpansionCost(newWords) - MemoryExpansionCost(oldWords)
}

// Keccak256Gas returns KECCAK256's cost for a given input word count.
func Keccak256Gas(words uint64) uint64 {
	return params.GasKeccak256 + params.GasKeccak256Word*words
}

// LogGas returns a LOGn's cost: 375 + 8*dataLen + 375*n.
func LogGas(n int, dataLen uint64) uint64 {
	return params.GasLog + params.GasLogData*dataLen + params.GasLogTopic*uint64(n)
}

// ExpGas returns EXP's cost: 10 + gasPerByte*byteLenOfExponent.
func ExpGas(f params.Fork, expByteLen uint64) uint64 {
	perByte := uint64(params.GasExpByte)
	if f.Enabled(params.SpuriousDragon) {
		perByte = params.GasExpByteEIP160
	}
	return params.GasExp + perByte*expByteLen
}

// AccountAccessGas returns the CALL/BALANCE/EXTCODE*-family base access
// cost for fork f, cold/warm depending on isCold (Berlin+).
func AccountAccessGas(f params.Fork, isCold bool) uint64 {
	switch {
	case f.Enabled(params.Berlin):
		if isCold {
			return params.ColdAccountAccessCostEIP2929
		}
		return params.WarmStorageReadCostEIP2929
	case f.Enabled(params.TangerineWhistle):
		return params.GasCallEIP150
	default:
		return params.GasCall
	}
}

// SloadGas returns SLOAD's base cost for fork f, cold/warm for Berlin+.
func SloadGas(f params.Fork, isCold bool) uint64 {
	switch {
	case f.Enabled(params.Berlin):
		if isCold {
			return params.ColdSloadCostEIP2929
		}
		return params.WarmStorageReadCostEIP2929
	case f.Enabled(params.Istanbul):
		return params.GasSLoadEIP1884
	case f.Enabled(params.TangerineWhistle):
		return params.GasSLoadEIP150
	default:
		return params.GasSLoad
	}
}

// SstoreResult carries the gas cost and refund delta for a single
// SSTORE, keyed on (original, current, new) per spec.md §4.7.
type SstoreResult struct {
	Gas          uint64
	RefundDelta  int64
}

// SstoreValueClass describes a slot's three values (original, current,
// new) just enough for the pricing rule: pairwise equality and
// zero-ness. Callers compare the actual 256-bit words with Eq/IsZero
// and pass the results in, so this formula stays independent of the
// Word type.
type SstoreValueClass struct {
	OrigEqCur bool
	CurEqNew  bool
	OrigEqNew bool

	OrigIsZero bool
	CurIsZero  bool
	NewIsZero  bool
}

// SstoreGas implements the Istanbul-and-later EIP-2200/2929 SSTORE
// pricing rule, grounded on the teacher's gasSstoreEIP2929.
func SstoreGas(f params.Fork, v SstoreValueClass, isCold bool) SstoreResult {
	warmCost := SloadGas(f, false)
	coldSurcharge := uint64(0)
	if f.Enabled(params.Berlin) && isCold {
		coldSurcharge = params.ColdSloadCostEIP2929
	}

	if v.CurEqNew {
		return SstoreResult{Gas: warmCost + coldSurcharge}
	}

	if v.OrigEqCur {
		if v.OrigIsZero {
			return SstoreResult{Gas: params.GasSStoreSet + coldSurcharge}
		}
		res := SstoreResult{Gas: sstoreResetCost(f) + coldSurcharge}
		if v.NewIsZero {
			res.RefundDelta = sstoreClearRefund(f)
		}
		return res
	}

	// original != current: a later write in the same transaction.
	res := SstoreResult{Gas: warmCost + coldSurcharge}
	if !v.OrigIsZero {
		if v.CurIsZero {
			res.RefundDelta -= sstoreClearRefund(f)
		}
		if v.NewIsZero {
			res.RefundDelta += sstoreClearRefund(f)
		}
	}
	if v.OrigEqNew {
		if v.OrigIsZero {
			res.RefundDelta += int64(params.GasSStoreSet - warmCost)
		} else {
			res.RefundDelta += int64(sstoreResetCost(f) - warmCost)
		}
	}
	return res
}

func sstoreResetCost(f params.Fork) uint64 {
	if f.Enabled(params.Berlin) {
		return params.GasSStoreReset - params.ColdSloadCostEIP2929
	}
	return params.GasSStoreReset
}

func sstoreClearRefund(f params.Fork) int64 {
	if f.Enabled(params.London) {
		return 4800 // EIP-3529
	}
	return int64(params.GasSStoreClearRefund)
}

// SelfDestructGas returns the SELFDESTRUCT cost: base (Tangerine+) plus
// new-account topup plus cold surcharge (Berlin+).
func SelfDestructGas(f params.Fork, hasValue, targetExists, isCold bool) uint64 {
	var gas uint64
	if f.Enabled(params.TangerineWhistle) {
		gas += 5000
		if !targetExists && (hasValue || !f.Enabled(params.SpuriousDragon)) {
			gas += params.GasNewAccount
		}
	}
	if f.Enabled(params.Berlin) && isCold {
		gas += params.ColdAccountAccessCostEIP2929
	}
	return gas
}

// CallValueTransferGas is CALL's value-transfer surcharge.
const CallValueTransferGas = params.GasCallValue

// CallNewAccountGas is CALL's new-account creation surcharge for a
// non-existent target: charged only when value is transferred on
// Spurious Dragon+, and regardless of value before it.
const CallNewAccountGas = params.GasNewAccount

// CallGasStipend is the free gas stipend forwarded to a callee that
// receives value, so it can at least emit a log or return.
const CallGasStipend = params.GasCallStipend

// ForwardedCallGas applies the EIP-150 63/64 rule: at most
// available - available/64 may be forwarded, capped by requested.
func ForwardedCallGas(available, requested uint64) uint64 {
	capped := available - available/params.CallGasFraction
	if requested < capped {
		return requested
	}
	return capped
}

// CreateGasWordCost is EIP-3860's per-word init-code charge.
func CreateGasWordCost(initCodeLen uint64) uint64 {
	return params.InitCodeWordGasEIP3860 * Words(initCodeLen)
}

// Create2HashGasWordCost is CREATE2's extra per-word hashing charge.
func Create2HashGasWordCost(initCodeLen uint64) uint64 {
	return params.Create2WordGas * Words(initCodeLen)
}
