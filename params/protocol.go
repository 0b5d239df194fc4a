package params

// Protocol-level size and depth limits, grounded on the teacher's
// core/vm/gas_table.go constants of the same names.
const (
	MaxCodeSize     = 24576            // EIP-170
	MaxInitCodeSize = 2 * MaxCodeSize  // EIP-3860
	MaxCallDepth    = 1024
	MaxStack        = 1024

	// EIP-3529: refunds capped to 1/5 of gas used instead of 1/2.
	MaxRefundQuotient        = 5
	MaxRefundQuotientFrontier = 2

	CallGasFraction = 64 // EIP-150: 63/64 forwarded, 1/64 retained

	MaxBlobNumberPerBlock = 6
	BlobVersionHash       = 0x01

	MemoryLimitDefault = ^uint64(0) >> 32 // 2^32 - 1
)
