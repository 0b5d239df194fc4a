package state

import "github.com/ethform/goevm/core/types"

// journalEntry is a revertible world-state mutation, grounded on the
// teacher's core/state/journal.go journalEntry/revert pattern.
type journalEntry interface {
	revert(s *JournaledState)
}

// journal groups entries into per-depth segments so a checkpoint
// revert can pop exactly the segments opened since that checkpoint,
// per spec.md §4.10.
type journal struct {
	segments [][]journalEntry
}

func newJournal() *journal {
	return &journal{segments: [][]journalEntry{{}}}
}

func (j *journal) push() {
	j.segments = append(j.segments, []journalEntry{})
}

func (j *journal) append(e journalEntry) {
	last := len(j.segments) - 1
	j.segments[last] = append(j.segments[last], e)
}

func (j *journal) depth() int { return len(j.segments) }

// revertTo pops segments until depth segments remain, undoing every
// entry from newest to oldest.
func (j *journal) revertTo(depth int, s *JournaledState) {
	for len(j.segments) > depth {
		last := len(j.segments) - 1
		entries := j.segments[last]
		for i := len(entries) - 1; i >= 0; i-- {
			entries[i].revert(s)
		}
		j.segments = j.segments[:last]
	}
}

// commitTo merges segments down to depth without undoing anything —
// entries become permanent once the outermost commit runs.
func (j *journal) commitTo(depth int) {
	for len(j.segments) > depth && len(j.segments) > 1 {
		last := len(j.segments) - 1
		merged := append(j.segments[last-1], j.segments[last]...)
		j.segments = j.segments[:last]
		j.segments[last-1] = merged
	}
}

// --- concrete entries ---

type accountWarmedEntry struct{ addr types.Address }

func (e accountWarmedEntry) revert(s *JournaledState) {
	if acc := s.accounts[e.addr]; acc != nil {
		acc.Status.Set(types.StatusCold)
	}
}

type storageWarmedEntry struct {
	addr types.Address
	key  types.Word
}

func (e storageWarmedEntry) revert(s *JournaledState) {
	if acc := s.accounts[e.addr]; acc != nil {
		if slot := acc.Storage[e.key]; slot != nil {
			slot.IsCold = true
		}
	}
}

type touchedEntry struct{ addr types.Address }

func (e touchedEntry) revert(s *JournaledState) {
	if acc := s.accounts[e.addr]; acc != nil {
		acc.Status.Clear(types.StatusTouched)
	}
}

// createdEntry undoes create_account_checkpoint: clears the created
// flag, resets nonce to zero, and re-colds every storage slot touched
// since (a freshly-reverted create never had real prior storage).
type createdEntry struct{ addr types.Address }

func (e createdEntry) revert(s *JournaledState) {
	acc := s.accounts[e.addr]
	if acc == nil {
		return
	}
	acc.Status.Clear(types.StatusCreated)
	acc.Nonce = 0
	for _, slot := range acc.Storage {
		slot.IsCold = true
	}
}

type balanceTransferEntry struct {
	from, to     types.Address
	value        types.Word
	distinct     bool
}

func (e balanceTransferEntry) revert(s *JournaledState) {
	if from := s.accounts[e.from]; from != nil {
		from.Balance.Add(&from.Balance, &e.value)
	}
	if e.distinct {
		if to := s.accounts[e.to]; to != nil {
			to.Balance.Sub(&to.Balance, &e.value)
		}
	}
}

// destroyedEntry undoes self_destruct: restores the source account's
// balance and subtracts it back out of the target if distinct.
type destroyedEntry struct {
	addr, target types.Address
	prevBalance  types.Word
	distinct     bool
	wasDestructed bool
}

func (e destroyedEntry) revert(s *JournaledState) {
	if acc := s.accounts[e.addr]; acc != nil {
		if !e.wasDestructed {
			acc.Status.Clear(types.StatusSelfDestructed)
		}
		acc.Balance = e.prevBalance
	}
	if e.distinct {
		if target := s.accounts[e.target]; target != nil {
			target.Balance.Sub(&target.Balance, &e.prevBalance)
		}
	}
}

type codeChangedEntry struct {
	addr     types.Address
	prevCode []byte
	prevHash types.Hash
}

func (e codeChangedEntry) revert(s *JournaledState) {
	if acc := s.accounts[e.addr]; acc != nil {
		acc.Code = e.prevCode
		acc.CodeHash = e.prevHash
	}
}

type storageChangedEntry struct {
	addr    types.Address
	key     types.Word
	present types.Word
}

func (e storageChangedEntry) revert(s *JournaledState) {
	if acc := s.accounts[e.addr]; acc != nil {
		if slot := acc.Storage[e.key]; slot != nil {
			slot.Present = e.present
		}
	}
}

type transientChangedEntry struct {
	addr types.Address
	key  types.Word
	prev types.Word
}

func (e transientChangedEntry) revert(s *JournaledState) {
	inner := s.transient[e.addr]
	if inner == nil {
		return
	}
	if e.prev.IsZero() {
		delete(inner, e.key)
		if len(inner) == 0 {
			delete(s.transient, e.addr)
		}
	} else {
		inner[e.key] = e.prev
	}
}

type nonceChangedEntry struct {
	addr types.Address
	prev uint64
}

func (e nonceChangedEntry) revert(s *JournaledState) {
	if acc := s.accounts[e.addr]; acc != nil {
		acc.Nonce = e.prev
	}
}

type logAddedEntry struct{ prevLen int }

func (e logAddedEntry) revert(s *JournaledState) {
	s.logs = s.logs[:e.prevLen]
}
