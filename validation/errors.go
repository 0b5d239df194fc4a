// Package validation implements the pre-flight checks spec.md §4.6
// describes: block/transaction sanity against the active fork, the
// intrinsic gas formula, and sender-state checks. It runs before any
// bytecode executes, grounded on the teacher's core/state_transition.go
// and core/gas_estimator.go validation patterns.
package validation

import "errors"

var (
	ErrGasUint64Overflow = errors.New("gas uint64 overflow")

	ErrMissingPrevRandao     = errors.New("prevrandao required from the merge onward")
	ErrMissingBlobExcessGas  = errors.New("blob excess gas required from cancun onward")
	ErrAccessListBeforeBerlin = errors.New("access list requires berlin")
	ErrBlobFieldsBeforeCancun = errors.New("blob fields require cancun")
	ErrBlobsOnCreate         = errors.New("blob transactions cannot create a contract")
	ErrPriorityFeeTooHigh    = errors.New("priority fee greater than gas price")
	ErrGasPriceBelowBaseFee  = errors.New("effective gas price below base fee")
	ErrGasLimitAboveBlock    = errors.New("gas limit exceeds block gas limit")
	ErrChainIDMismatch       = errors.New("chain id mismatch")
	ErrInitCodeTooLarge      = errors.New("init code exceeds twice the contract size limit")
	ErrTooManyBlobs          = errors.New("blob count exceeds the per-block maximum")
	ErrInvalidBlobVersion    = errors.New("blob hash has an unrecognized version byte")
	ErrBlobFeeTooLow         = errors.New("max fee per blob gas below blob gas price")

	ErrNonceMismatch      = errors.New("nonce mismatch")
	ErrSenderHasCode      = errors.New("sender is not an eoa")
	ErrInsufficientFunds  = errors.New("insufficient funds for gas * price + value")
)
