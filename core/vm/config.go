package vm

import (
	"github.com/ethform/goevm/log"
	"github.com/ethform/goevm/params"
)

// AnalysisMode selects whether bytecode is analyzed (jump bit-vector
// built) on load, or kept raw and validated on the fly.
type AnalysisMode int

const (
	AnalysisAnalyse AnalysisMode = iota
	AnalysisRaw
)

// Config is the recognized configuration surface from spec.md §6.
type Config struct {
	ChainID uint64

	PerformAnalysis AnalysisMode

	LimitContractSize uint64
	MemoryLimit       uint64

	DisableBalanceCheck    bool
	DisableBlockGasLimit   bool
	DisableEIP3607         bool
	DisableGasRefund       bool
	DisableBaseFee         bool
	DisableBeneficiaryReward bool

	SpecID params.Fork

	Logger *log.Logger
}

// DefaultConfig returns mainnet-shaped defaults: chain id 1, analyzed
// bytecode, 24576-byte contract size cap, and the 2^32-1 memory limit.
func DefaultConfig() Config {
	return Config{
		ChainID:           1,
		PerformAnalysis:   AnalysisAnalyse,
		LimitContractSize: params.MaxCodeSize,
		MemoryLimit:       params.MemoryLimitDefault,
		SpecID:            params.Cancun,
	}
}
