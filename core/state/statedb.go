package state

import (
	"github.com/ethform/goevm/core/types"
	"github.com/ethform/goevm/crypto"
	"github.com/ethform/goevm/params"
)

// JournaledState is the real-execution world-state implementation,
// grounded on the teacher's core/state/statedb.go StateDB plus
// core/state/journal.go's snapshot/revert machinery, per spec.md §4.10.
type JournaledState struct {
	db       Database
	accounts map[types.Address]*types.Account
	journal  *journal
	logs     []*types.Log
	transient map[types.Address]map[types.Word]types.Word
	fork     params.Fork
}

// NewJournaledState returns a fresh JournaledState over db for fork f.
func NewJournaledState(db Database, f params.Fork) *JournaledState {
	return &JournaledState{
		db:        db,
		accounts:  make(map[types.Address]*types.Account),
		journal:   newJournal(),
		transient: make(map[types.Address]map[types.Word]types.Word),
		fork:      f,
	}
}

// getOrLoad returns the cached account, loading it from the database
// (or materializing a non-existent placeholder) on first touch. The
// account is never itself journaled into existence — individual field
// mutations are journaled, per spec.md §4.10.
func (s *JournaledState) getOrLoad(addr types.Address) *types.Account {
	if acc, ok := s.accounts[addr]; ok {
		return acc
	}
	if dbAcc, ok := s.db.Basic(addr); ok {
		acc := &types.Account{
			Balance:  dbAcc.Balance,
			Nonce:    dbAcc.Nonce,
			CodeHash: dbAcc.CodeHash,
			Code:     dbAcc.Code,
			Storage:  make(map[types.Word]*types.StorageSlot),
			Status:   types.StatusCold,
		}
		s.accounts[addr] = acc
		return acc
	}
	acc := types.NewAccount()
	acc.Status.Set(types.StatusNonExistent)
	s.accounts[addr] = acc
	return acc
}

func (s *JournaledState) touch(addr types.Address) {
	acc := s.getOrLoad(addr)
	if !acc.Status.Has(types.StatusTouched) {
		acc.Status.Set(types.StatusTouched)
		s.journal.append(touchedEntry{addr})
	}
}

// LoadAccount materializes addr and reports whether this access was
// cold (and if so, warms it and journals the transition).
func (s *JournaledState) LoadAccount(addr types.Address) (isCold bool) {
	acc := s.getOrLoad(addr)
	isCold = acc.Status.Has(types.StatusCold)
	if isCold {
		acc.Status.Clear(types.StatusCold)
		s.journal.append(accountWarmedEntry{addr})
	}
	return isCold
}

// LoadCode is like LoadAccount but additionally pulls the account's
// code from the database unless it has the empty code hash.
func (s *JournaledState) LoadCode(addr types.Address) (isCold bool) {
	isCold = s.LoadAccount(addr)
	acc := s.accounts[addr]
	if acc.Code == nil && acc.CodeHash != types.EmptyCodeHash && acc.CodeHash != (types.Hash{}) {
		if code, ok := s.db.CodeByHash(acc.CodeHash); ok {
			acc.Code = code
		}
	}
	return isCold
}

func (s *JournaledState) Balance(addr types.Address) (types.Word, bool) {
	acc := s.getOrLoad(addr)
	return acc.Balance, !acc.Status.Has(types.StatusNonExistent)
}

func (s *JournaledState) Code(addr types.Address) ([]byte, bool) {
	s.LoadCode(addr)
	acc := s.accounts[addr]
	return acc.Code, !acc.Status.Has(types.StatusNonExistent)
}

func (s *JournaledState) CodeHash(addr types.Address) (types.Hash, bool) {
	acc := s.getOrLoad(addr)
	return acc.CodeHash, !acc.Status.Has(types.StatusNonExistent)
}

func (s *JournaledState) AccountInfo(addr types.Address) types.AccountInfo {
	acc := s.getOrLoad(addr)
	return types.AccountInfo{
		Balance:  acc.Balance,
		Nonce:    acc.Nonce,
		CodeHash: acc.CodeHash,
		Exists:   !acc.Status.Has(types.StatusNonExistent),
	}
}

func (s *JournaledState) BlockHash(number uint64) types.Hash {
	return s.db.BlockHash(number)
}

// --- storage ---

func (s *JournaledState) slot(addr types.Address, key *types.Word) *types.StorageSlot {
	acc := s.getOrLoad(addr)
	if slot, ok := acc.Storage[*key]; ok {
		return slot
	}
	v := s.db.Storage(addr, key)
	slot := &types.StorageSlot{Original: v, Present: v, IsCold: true}
	acc.Storage[*key] = slot
	return slot
}

func (s *JournaledState) SLoad(addr types.Address, key *types.Word) (types.Word, bool) {
	slot := s.slot(addr, key)
	isCold := slot.IsCold
	if isCold {
		slot.IsCold = false
		s.journal.append(storageWarmedEntry{addr, *key})
	}
	return slot.Present, isCold
}

func (s *JournaledState) SStore(addr types.Address, key, value *types.Word) (types.SstoreInfo, error) {
	slot := s.slot(addr, key)
	isCold := slot.IsCold
	if isCold {
		slot.IsCold = false
		s.journal.append(storageWarmedEntry{addr, *key})
	}
	info := types.SstoreInfo{Original: slot.Original, Current: slot.Present, IsCold: isCold}
	if slot.Present.Eq(value) {
		return info, nil
	}
	s.journal.append(storageChangedEntry{addr: addr, key: *key, present: slot.Present})
	slot.Present = *value
	return info, nil
}

func (s *JournaledState) TLoad(addr types.Address, key *types.Word) types.Word {
	inner := s.transient[addr]
	if inner == nil {
		return types.Word{}
	}
	return inner[*key]
}

func (s *JournaledState) TStore(addr types.Address, key, value *types.Word) {
	inner := s.transient[addr]
	if inner == nil {
		inner = make(map[types.Word]types.Word)
		s.transient[addr] = inner
	}
	prev := inner[*key]
	if prev.Eq(value) {
		return
	}
	s.journal.append(transientChangedEntry{addr: addr, key: *key, prev: prev})
	if value.IsZero() {
		delete(inner, *key)
		if len(inner) == 0 {
			delete(s.transient, addr)
		}
	} else {
		inner[*key] = *value
	}
}

// --- balance / nonce / code ---

func (s *JournaledState) Transfer(from, to types.Address, value *types.Word) error {
	s.touch(to)
	if value.IsZero() {
		return nil
	}
	fromAcc := s.getOrLoad(from)
	if fromAcc.Balance.Lt(value) {
		return ErrOutOfFunds
	}
	if from == to {
		// Self-transfer: balance is unchanged, but the call still only
		// succeeds if the account can cover value (checked above). The
		// entry carries a zero value so its revert leaves balance as is.
		s.journal.append(balanceTransferEntry{from: from, to: to, distinct: false})
		return nil
	}
	toAcc := s.getOrLoad(to)
	var sum types.Word
	sum.Add(&toAcc.Balance, value)
	if sum.Lt(&toAcc.Balance) {
		return ErrOverflowPayment
	}
	s.journal.append(balanceTransferEntry{from: from, to: to, value: *value, distinct: true})
	fromAcc.Balance.Sub(&fromAcc.Balance, value)
	toAcc.Balance = sum
	return nil
}

func (s *JournaledState) SetCode(addr types.Address, code []byte) {
	acc := s.getOrLoad(addr)
	s.journal.append(codeChangedEntry{addr: addr, prevCode: acc.Code, prevHash: acc.CodeHash})
	acc.Code = code
	acc.CodeHash = crypto.Keccak256(code)
	acc.Status.Clear(types.StatusNonExistent)
}

func (s *JournaledState) IncrementNonce(addr types.Address) (uint64, error) {
	acc := s.getOrLoad(addr)
	if acc.Nonce == ^uint64(0) {
		return 0, ErrNonceOverflow
	}
	s.journal.append(nonceChangedEntry{addr: addr, prev: acc.Nonce})
	acc.Nonce++
	acc.Status.Clear(types.StatusNonExistent)
	return acc.Nonce, nil
}

func (s *JournaledState) SelfDestruct(addr, target types.Address) (types.SelfDestructResult, error) {
	acc := s.getOrLoad(addr)
	isCold := s.LoadAccount(target)
	targetAcc := s.getOrLoad(target)
	result := types.SelfDestructResult{
		HadValue:             !acc.Balance.IsZero(),
		TargetExists:         !targetAcc.Status.Has(types.StatusNonExistent),
		IsCold:               isCold,
		PreviouslyDestructed: acc.Status.Has(types.StatusSelfDestructed),
	}

	prevBalance := acc.Balance
	distinct := addr != target
	createdThisTx := acc.Status.Has(types.StatusCreated)

	if distinct {
		var sum types.Word
		sum.Add(&targetAcc.Balance, &acc.Balance)
		targetAcc.Balance = sum
	}
	s.journal.append(destroyedEntry{
		addr: addr, target: target, prevBalance: prevBalance,
		distinct: distinct, wasDestructed: result.PreviouslyDestructed,
	})
	acc.Balance = types.Word{}

	if createdThisTx && !s.fork.Enabled(params.Cancun) {
		acc.Status.Set(types.StatusSelfDestructed)
	}
	return result, nil
}

// --- creation ---

func (s *JournaledState) CreateAccount(caller, target types.Address, value *types.Word) error {
	callerAcc := s.getOrLoad(caller)
	if callerAcc.Balance.Lt(value) {
		return ErrInsufficientBalance
	}
	targetAcc := s.getOrLoad(target)
	if len(targetAcc.Code) > 0 || targetAcc.Nonce != 0 {
		return ErrCreateCollision
	}

	s.journal.append(nonceChangedEntry{addr: target, prev: targetAcc.Nonce})
	if s.fork.Enabled(params.SpuriousDragon) {
		targetAcc.Nonce = 1
	}
	s.journal.append(createdEntry{addr: target})
	targetAcc.Status.Set(types.StatusCreated)
	targetAcc.Status.Clear(types.StatusNonExistent)

	if !value.IsZero() {
		var sum types.Word
		sum.Add(&targetAcc.Balance, value)
		s.journal.append(balanceTransferEntry{from: caller, to: target, value: *value, distinct: caller != target})
		callerAcc.Balance.Sub(&callerAcc.Balance, value)
		if caller != target {
			targetAcc.Balance = sum
		}
	}
	s.touch(target)
	return nil
}

// --- logs ---

func (s *JournaledState) Log(log *types.Log) {
	s.journal.append(logAddedEntry{prevLen: len(s.logs)})
	s.logs = append(s.logs, log)
}

// Logs returns every log recorded so far.
func (s *JournaledState) Logs() []*types.Log { return s.logs }

// --- checkpoints ---

func (s *JournaledState) Checkpoint() types.Checkpoint {
	cp := types.Checkpoint{Segment: s.journal.depth(), LogsLen: len(s.logs)}
	s.journal.push()
	return cp
}

func (s *JournaledState) CommitCheckpoint() {
	s.journal.commitTo(s.journal.depth() - 1)
}

func (s *JournaledState) RevertCheckpoint(cp types.Checkpoint) {
	s.journal.revertTo(cp.Segment, s)
	s.logs = s.logs[:cp.LogsLen]
}

// --- warm preloads (EIP-2930) ---

func (s *JournaledState) ClearTransientStorage() {
	s.transient = make(map[types.Address]map[types.Word]types.Word)
}

func (s *JournaledState) ClearWarmPreloads() {
	for _, acc := range s.accounts {
		acc.Status.Set(types.StatusCold)
		for _, slot := range acc.Storage {
			slot.IsCold = true
		}
	}
}

func (s *JournaledState) PreloadWarmAddress(addr types.Address) {
	acc := s.getOrLoad(addr)
	acc.Status.Clear(types.StatusCold)
}

func (s *JournaledState) PreloadWarmStorage(addr types.Address, key *types.Word) {
	slot := s.slot(addr, key)
	slot.IsCold = false
}
