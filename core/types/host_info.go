package types

// AccountInfo, SelfDestructResult, SstoreInfo, and Checkpoint live here
// rather than in core/vm so that core/state can implement vm.Host's
// method set (structural satisfaction, no vm import) while still
// returning these exact named types — both packages import core/types,
// neither imports the other.

// AccountInfo is the subset of account state the Host exposes to the
// interpreter for BALANCE/EXTCODE*-family opcodes.
type AccountInfo struct {
	Balance  Word
	Nonce    uint64
	CodeHash Hash
	Exists   bool
}

// SelfDestructResult reports what SELFDESTRUCT actually did, so the
// interpreter can charge the right gas and set the right status.
type SelfDestructResult struct {
	HadValue             bool
	TargetExists         bool
	IsCold               bool
	PreviouslyDestructed bool
}

// SstoreInfo reports everything a single SSTORE needs priced: the
// value the slot held at the start of the transaction, the value it
// holds right now, and whether this access was cold.
type SstoreInfo struct {
	Original Word
	Current  Word
	IsCold   bool
}

// Checkpoint identifies a point in the journal that RevertCheckpoint
// can roll back to: the journal depth and the logs length at the time
// the checkpoint was taken.
type Checkpoint struct {
	Segment int
	LogsLen int
}

// Environment bundles the block/tx context the interpreter reads for
// environment opcodes (ORIGIN, GASPRICE, COINBASE, ...). Lives here
// rather than core/vm for the same reason as the structs above: the
// Host interface's GetEnvironment must return a type core/state can
// also produce without importing core/vm.
type Environment struct {
	Block   *BlockEnvironment
	Tx      *TxContext
	ChainID uint64
}

// TxContext is the transaction-scoped context the interpreter reads:
// origin, gas price, and blob hashes, all fixed for the life of the
// transaction.
type TxContext struct {
	Origin     Address
	GasPrice   Word
	BlobHashes []Hash
}
