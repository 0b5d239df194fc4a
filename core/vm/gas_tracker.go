package vm

import "github.com/ethform/goevm/params"

// GasTracker is the per-frame gas accounting record spec.md §3/§4.4
// defines: a monotonic used counter checked against limit, plus a
// signed refund accumulator. Grounded on the teacher's gas-accounting
// pattern in core/vm/contract.go's UseGas/RefundGas.
type GasTracker struct {
	Limit  uint64
	Used   uint64
	Refund int64
}

// NewGasTracker returns a tracker with the given limit and zeroed
// usage/refund.
func NewGasTracker(limit uint64) *GasTracker {
	return &GasTracker{Limit: limit}
}

// Available returns the gas remaining before limit is reached.
func (g *GasTracker) Available() uint64 {
	return g.Limit - g.Used
}

// Update charges cost against the tracker: checked addition, wrap maps
// to ErrGasOverflow, exceeding limit maps to ErrOutOfGas, otherwise the
// charge commits.
func (g *GasTracker) Update(cost uint64) error {
	used := g.Used + cost
	if used < g.Used {
		return ErrGasOverflow
	}
	if used > g.Limit {
		return ErrOutOfGas
	}
	g.Used = used
	return nil
}

// AddRefund increases the refund accumulator.
func (g *GasTracker) AddRefund(delta int64) {
	g.Refund += delta
}

// SubRefund decreases the refund accumulator, clamping at zero (the
// accumulator must never go negative; callers only subtract amounts
// they previously added).
func (g *GasTracker) SubRefund(delta int64) {
	g.Refund -= delta
	if g.Refund < 0 {
		g.Refund = 0
	}
}

// CappedRefund returns the refund actually paid out at transaction end:
// min(refund, used/quotient), zero if disabled. quotient is
// params.MaxRefundQuotient (EIP-3529, London+) or
// params.MaxRefundQuotientFrontier for pre-London forks.
func (g *GasTracker) CappedRefund(quotient uint64, disabled bool) int64 {
	if disabled || g.Refund <= 0 {
		return 0
	}
	cap := int64(g.Used / quotient)
	if g.Refund > cap {
		return cap
	}
	return g.Refund
}

// RefundQuotient returns the EIP-3529-aware quotient for fork f.
func RefundQuotient(f params.Fork) uint64 {
	if f.Enabled(params.London) {
		return params.MaxRefundQuotient
	}
	return params.MaxRefundQuotientFrontier
}
