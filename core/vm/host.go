package vm

import (
	"github.com/ethform/goevm/core/types"
)

// AccountInfo, SelfDestructResult, SstoreInfo, and Checkpoint are
// defined in core/types (not here) so that core/state can implement
// this Host method set without importing core/vm. Aliased here for
// in-package readability.
type AccountInfo = types.AccountInfo
type SelfDestructResult = types.SelfDestructResult
type SstoreInfo = types.SstoreInfo
type Checkpoint = types.Checkpoint
type Environment = types.Environment
type TxContext = types.TxContext

// Host is the capability surface the interpreter uses to touch the
// world, per spec.md §4.11. Two implementations: PlainHost (tests) and
// the state package's JournaledHost (real execution) — core/state
// never imports this package, it only structurally satisfies this
// method set, so there is no import cycle.
type Host interface {
	Balance(addr types.Address) (types.Word, bool)
	Code(addr types.Address) ([]byte, bool)
	CodeHash(addr types.Address) (types.Hash, bool)
	AccountInfo(addr types.Address) AccountInfo
	LoadAccount(addr types.Address) (isCold bool)
	BlockHash(number uint64) types.Hash

	SLoad(addr types.Address, key *types.Word) (types.Word, bool)
	SStore(addr types.Address, key, value *types.Word) (SstoreInfo, error)
	TLoad(addr types.Address, key *types.Word) types.Word
	TStore(addr types.Address, key, value *types.Word)

	SelfDestruct(addr, target types.Address) (SelfDestructResult, error)
	Transfer(from, to types.Address, value *types.Word) error
	SetCode(addr types.Address, code []byte)
	IncrementNonce(addr types.Address) (uint64, error)
	Log(log *types.Log)

	GetEnvironment() *Environment

	Checkpoint() Checkpoint
	CommitCheckpoint()
	RevertCheckpoint(cp Checkpoint)

	CreateAccount(caller, target types.Address, value *types.Word) error

	ClearTransientStorage()
	ClearWarmPreloads()
	PreloadWarmAddress(addr types.Address)
	PreloadWarmStorage(addr types.Address, key *types.Word)
}
