package validation

import (
	"github.com/ethform/goevm/core/types"
	"github.com/ethform/goevm/params"
)

// IntrinsicGas computes the minimum gas a transaction owes before any
// bytecode runs, per spec.md §4.6: base 21000 + per-byte calldata cost
// + 32000 for creates + the Shanghai init-code word cost + Berlin
// access-list surcharges. Grounded on the teacher's gas_estimator.go
// IntrinsicGas, generalized to the fork-gated byte price (EIP-2028) and
// init-code word charge (EIP-3860) spec.md adds.
func IntrinsicGas(tx *types.Transaction, f params.Fork) (uint64, error) {
	gas := params.TxGas

	nonZeroGas := params.TxDataNonZeroGasFrontier
	if f.Enabled(params.Istanbul) {
		nonZeroGas = params.TxDataNonZeroGasEIP2028
	}

	var zeros, nonZeros uint64
	for _, b := range tx.Data {
		if b == 0 {
			zeros++
		} else {
			nonZeros++
		}
	}

	nzGas := nonZeros * nonZeroGas
	if nonZeros != 0 && nzGas/nonZeros != nonZeroGas {
		return 0, ErrGasUint64Overflow
	}
	gas, ok := checkedAdd(gas, nzGas)
	if !ok {
		return 0, ErrGasUint64Overflow
	}

	zGas := zeros * params.TxDataZeroGas
	gas, ok = checkedAdd(gas, zGas)
	if !ok {
		return 0, ErrGasUint64Overflow
	}

	if tx.IsCreate() {
		gas, ok = checkedAdd(gas, params.GasCreate)
		if !ok {
			return 0, ErrGasUint64Overflow
		}
		if f.Enabled(params.Shanghai) {
			words := (uint64(len(tx.Data)) + 31) / 32
			gas, ok = checkedAdd(gas, words*params.InitCodeWordGasEIP3860)
			if !ok {
				return 0, ErrGasUint64Overflow
			}
		}
	}

	if f.Enabled(params.Berlin) {
		alGas := tx.AccessList.Gas(params.TxAccessListAddressGas, params.TxAccessListStorageKeyGas)
		gas, ok = checkedAdd(gas, alGas)
		if !ok {
			return 0, ErrGasUint64Overflow
		}
	}

	return gas, nil
}

func checkedAdd(a, b uint64) (uint64, bool) {
	sum := a + b
	return sum, sum >= a
}
