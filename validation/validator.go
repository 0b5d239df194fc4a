package validation

import (
	"github.com/ethform/goevm/core/types"
	"github.com/ethform/goevm/params"
)

// BlobGasPerBlob is the fixed gas charge each blob occupies (EIP-4844).
const BlobGasPerBlob = 131072

// Config is the subset of driver configuration the validator consults,
// grounded on spec.md §6's Config fields relevant to pre-flight checks.
type Config struct {
	ChainID              uint64
	Fork                 params.Fork
	LimitContractSize    uint64
	DisableBalanceCheck  bool
	DisableBlockGasLimit bool
	DisableEIP3607       bool
	DisableBaseFee       bool
}

// SenderState is the subset of account state the validator checks the
// transaction against.
type SenderState struct {
	Nonce    uint64
	Balance  types.Word
	CodeHash types.Hash
}

// ValidateTransaction enforces, in order, block-env sanity, tx-type
// checks, and sender-state checks, per spec.md §4.6. It does not touch
// intrinsic gas — callers run IntrinsicGas separately and charge it
// against the interpreter once a frame is open.
func ValidateTransaction(cfg Config, block *types.BlockEnvironment, tx *types.Transaction, sender SenderState) error {
	if err := validateBlockEnv(cfg, block); err != nil {
		return err
	}
	if err := validateTxFields(cfg, block, tx); err != nil {
		return err
	}
	return validateSenderState(cfg, tx, sender)
}

func validateBlockEnv(cfg Config, block *types.BlockEnvironment) error {
	if cfg.Fork.Enabled(params.Paris) && block.PrevRandao == nil {
		return ErrMissingPrevRandao
	}
	if cfg.Fork.Enabled(params.Cancun) && block.BlobGas == nil {
		return ErrMissingBlobExcessGas
	}
	return nil
}

func validateTxFields(cfg Config, block *types.BlockEnvironment, tx *types.Transaction) error {
	if len(tx.AccessList) > 0 && !cfg.Fork.Enabled(params.Berlin) {
		return ErrAccessListBeforeBerlin
	}

	hasBlobFields := len(tx.BlobHashes) > 0 || tx.MaxFeePerBlobGas != nil
	if hasBlobFields {
		if !cfg.Fork.Enabled(params.Cancun) {
			return ErrBlobFieldsBeforeCancun
		}
		if tx.IsCreate() {
			return ErrBlobsOnCreate
		}
	}

	if tx.GasPriorityFee != nil && tx.GasPriorityFee.Gt(&tx.GasPrice) {
		return ErrPriorityFeeTooHigh
	}

	if !cfg.DisableBaseFee {
		effective := effectiveGasPrice(tx, block)
		if effective.Lt(&block.BaseFee) {
			return ErrGasPriceBelowBaseFee
		}
	}

	if !cfg.DisableBlockGasLimit && tx.GasLimit > block.GasLimit {
		return ErrGasLimitAboveBlock
	}

	if tx.ChainID != nil && *tx.ChainID != cfg.ChainID {
		return ErrChainIDMismatch
	}

	if tx.IsCreate() && cfg.Fork.Enabled(params.Shanghai) {
		if uint64(len(tx.Data)) > 2*cfg.LimitContractSize {
			return ErrInitCodeTooLarge
		}
	}

	if len(tx.BlobHashes) > params.MaxBlobNumberPerBlock {
		return ErrTooManyBlobs
	}
	for _, h := range tx.BlobHashes {
		if h[0] != params.BlobVersionHash {
			return ErrInvalidBlobVersion
		}
	}
	if block.BlobGas != nil && tx.MaxFeePerBlobGas != nil {
		if tx.MaxFeePerBlobGas.Lt(&block.BlobGas.BlobGasPrice) {
			return ErrBlobFeeTooLow
		}
	}

	return nil
}

// effectiveGasPrice returns what the sender actually pays per gas unit:
// for a London+ transaction (one carrying a priority fee), the lesser
// of gas_price and base_fee+priority_fee; otherwise gas_price itself.
func effectiveGasPrice(tx *types.Transaction, block *types.BlockEnvironment) types.Word {
	if tx.GasPriorityFee == nil {
		return tx.GasPrice
	}
	var cap types.Word
	cap.Add(&block.BaseFee, tx.GasPriorityFee)
	if cap.Lt(&tx.GasPrice) {
		return cap
	}
	return tx.GasPrice
}

func validateSenderState(cfg Config, tx *types.Transaction, sender SenderState) error {
	if tx.Nonce != nil && *tx.Nonce != sender.Nonce {
		return ErrNonceMismatch
	}

	if !cfg.DisableEIP3607 {
		empty := sender.CodeHash == types.Hash{} || sender.CodeHash == types.EmptyCodeHash
		if !empty {
			return ErrSenderHasCode
		}
	}

	if !cfg.DisableBalanceCheck {
		var limitWord types.Word
		limitWord.SetUint64(tx.GasLimit)
		var cost types.Word
		cost.Mul(&limitWord, &tx.GasPrice)
		cost.Add(&cost, &tx.Value)
		if tx.MaxFeePerBlobGas != nil {
			var blobGas types.Word
			blobGas.SetUint64(uint64(len(tx.BlobHashes)) * BlobGasPerBlob)
			blobGas.Mul(&blobGas, tx.MaxFeePerBlobGas)
			cost.Add(&cost, &blobGas)
		}
		if sender.Balance.Lt(&cost) {
			return ErrInsufficientFunds
		}
	}

	return nil
}
