package types

// BlobGasParams carries the EIP-4844 excess-blob-gas/blob-gasprice pair,
// present only from Cancun onward.
type BlobGasParams struct {
	BlobGasPrice   Word
	BlobExcessGas  uint64
}

// BlockEnvironment is the block-level record the validator and gas
// formulas read from: number, coinbase, timestamp, gas limit, base
// fee, difficulty/prevrandao, and the optional Cancun blob-gas pair.
type BlockEnvironment struct {
	Number    uint64
	Coinbase  Address
	Timestamp uint64
	GasLimit  uint64
	BaseFee   Word
	Difficulty Word

	PrevRandao *Word // set from Merge (Paris) onward

	BlobGas *BlobGasParams // set from Cancun onward
}
