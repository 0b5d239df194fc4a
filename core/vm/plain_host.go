package vm

import "github.com/ethform/goevm/core/types"

// PlainHost is the minimal in-memory Host spec.md §4.11 calls for in
// tests: flat maps for balance/code/storage, a trivial incrementing
// checkpoint counter whose revert only truncates the log list, and a
// self-destruct that moves the balance to the target. It
// exists purely so instruction-level tests can exercise an Interpreter
// without standing up a full JournaledState.
type PlainHost struct {
	Balances map[types.Address]types.Word
	Codes    map[types.Address][]byte
	CodeHashes map[types.Address]types.Hash
	Storage  map[types.Address]map[types.Word]types.Word
	Transient map[types.Address]map[types.Word]types.Word
	Cold     map[types.Address]bool
	ColdSlot map[types.Address]map[types.Word]bool
	Logs     []*types.Log
	Headers  map[uint64]types.Hash
	Env      *Environment
	nextCheckpoint int
}

// NewPlainHost returns an empty PlainHost under env.
func NewPlainHost(env *Environment) *PlainHost {
	return &PlainHost{
		Balances:  make(map[types.Address]types.Word),
		Codes:     make(map[types.Address][]byte),
		CodeHashes: make(map[types.Address]types.Hash),
		Storage:   make(map[types.Address]map[types.Word]types.Word),
		Transient: make(map[types.Address]map[types.Word]types.Word),
		Cold:      make(map[types.Address]bool),
		ColdSlot:  make(map[types.Address]map[types.Word]bool),
		Headers:   make(map[uint64]types.Hash),
		Env:       env,
	}
}

func (h *PlainHost) Balance(addr types.Address) (types.Word, bool) {
	v, ok := h.Balances[addr]
	return v, ok
}

func (h *PlainHost) Code(addr types.Address) ([]byte, bool) {
	c, ok := h.Codes[addr]
	return c, ok
}

func (h *PlainHost) CodeHash(addr types.Address) (types.Hash, bool) {
	c, ok := h.CodeHashes[addr]
	return c, ok
}

func (h *PlainHost) AccountInfo(addr types.Address) AccountInfo {
	bal, exists := h.Balances[addr]
	return AccountInfo{Balance: bal, CodeHash: h.CodeHashes[addr], Exists: exists}
}

func (h *PlainHost) LoadAccount(addr types.Address) bool {
	wasCold := !h.Cold[addr]
	h.Cold[addr] = true
	return wasCold
}

func (h *PlainHost) BlockHash(number uint64) types.Hash { return h.Headers[number] }

func (h *PlainHost) SLoad(addr types.Address, key *types.Word) (types.Word, bool) {
	inner := h.Storage[addr]
	isCold := !h.ColdSlot[addr][*key]
	h.markSlotWarm(addr, *key)
	return inner[*key], isCold
}

func (h *PlainHost) SStore(addr types.Address, key, value *types.Word) (SstoreInfo, error) {
	isCold := !h.ColdSlot[addr][*key]
	h.markSlotWarm(addr, *key)
	inner := h.Storage[addr]
	if inner == nil {
		inner = make(map[types.Word]types.Word)
		h.Storage[addr] = inner
	}
	current := inner[*key]
	info := SstoreInfo{Original: current, Current: current, IsCold: isCold}
	inner[*key] = *value
	return info, nil
}

func (h *PlainHost) markSlotWarm(addr types.Address, key types.Word) {
	inner := h.ColdSlot[addr]
	if inner == nil {
		inner = make(map[types.Word]bool)
		h.ColdSlot[addr] = inner
	}
	inner[key] = true
}

func (h *PlainHost) TLoad(addr types.Address, key *types.Word) types.Word {
	return h.Transient[addr][*key]
}

func (h *PlainHost) TStore(addr types.Address, key, value *types.Word) {
	inner := h.Transient[addr]
	if inner == nil {
		inner = make(map[types.Word]types.Word)
		h.Transient[addr] = inner
	}
	inner[*key] = *value
}

func (h *PlainHost) SelfDestruct(addr, target types.Address) (SelfDestructResult, error) {
	bal := h.Balances[addr]
	_, exists := h.Balances[target]
	h.Balances[target] = addWord(h.Balances[target], &bal)
	h.Balances[addr] = types.Word{}
	return SelfDestructResult{HadValue: !bal.IsZero(), TargetExists: exists}, nil
}

func (h *PlainHost) Transfer(from, to types.Address, value *types.Word) error {
	fromBal := h.Balances[from]
	if fromBal.Lt(value) {
		return ErrInsufficientBalance
	}
	fromBal.Sub(&fromBal, value)
	h.Balances[from] = fromBal
	h.Balances[to] = addWord(h.Balances[to], value)
	return nil
}

func (h *PlainHost) SetCode(addr types.Address, code []byte) {
	h.Codes[addr] = code
}

func (h *PlainHost) IncrementNonce(addr types.Address) (uint64, error) {
	return 1, nil
}

func (h *PlainHost) Log(log *types.Log) { h.Logs = append(h.Logs, log) }

func (h *PlainHost) GetEnvironment() *Environment { return h.Env }

func (h *PlainHost) Checkpoint() Checkpoint {
	h.nextCheckpoint++
	return Checkpoint{Segment: h.nextCheckpoint, LogsLen: len(h.Logs)}
}

func (h *PlainHost) CommitCheckpoint() {}

func (h *PlainHost) RevertCheckpoint(cp Checkpoint) {
	h.Logs = h.Logs[:cp.LogsLen]
}

func (h *PlainHost) CreateAccount(caller, target types.Address, value *types.Word) error {
	return h.Transfer(caller, target, value)
}

func (h *PlainHost) ClearTransientStorage() {
	h.Transient = make(map[types.Address]map[types.Word]types.Word)
}

func (h *PlainHost) ClearWarmPreloads() {
	h.Cold = make(map[types.Address]bool)
	h.ColdSlot = make(map[types.Address]map[types.Word]bool)
}

func (h *PlainHost) PreloadWarmAddress(addr types.Address) { h.Cold[addr] = true }

func (h *PlainHost) PreloadWarmStorage(addr types.Address, key *types.Word) {
	h.markSlotWarm(addr, *key)
}

func addWord(a types.Word, b *types.Word) types.Word {
	var sum types.Word
	sum.Add(&a, b)
	return sum
}
