package types

// AccountStatus tracks the per-transaction flags spec.md §3 lists on
// Account: cold/warm, self-destructed, touched, created this tx, loaded,
// or confirmed non-existent.
type AccountStatus uint8

const (
	StatusCold AccountStatus = 1 << iota
	StatusSelfDestructed
	StatusTouched
	StatusCreated
	StatusLoaded
	StatusNonExistent
)

func (s AccountStatus) Has(flag AccountStatus) bool { return s&flag != 0 }
func (s *AccountStatus) Set(flag AccountStatus)      { *s |= flag }
func (s *AccountStatus) Clear(flag AccountStatus)    { *s &^= flag }

// EmptyCodeHash is keccak256("") — the code hash of an account with no
// deployed code.
var EmptyCodeHash = HexToHash("0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")

// StorageSlot is a single storage cell's EIP-2929 access-tracking state:
// original is fixed at first load in the transaction, present tracks
// the live value, is_cold drives the warm/cold gas surcharge.
type StorageSlot struct {
	Original Word
	Present  Word
	IsCold   bool
}

// Account is the in-memory representation of a world-state account: a
// balance, nonce, code (by hash, possibly absent), storage map, and
// status flags. The Journaled State is the only writer; the Interpreter
// only observes it through the Host interface.
type Account struct {
	Balance  Word
	Nonce    uint64
	CodeHash Hash
	Code     []byte // nil if no code has been loaded/attached yet
	Storage  map[Word]*StorageSlot
	Status   AccountStatus
}

// NewAccount returns a freshly loaded, cold, empty account.
func NewAccount() *Account {
	return &Account{
		Storage: make(map[Word]*StorageSlot),
		Status:  StatusCold,
	}
}

// Empty reports whether the account has the EIP-161 "empty" shape: zero
// nonce, zero balance, and no code.
func (a *Account) Empty() bool {
	return a.Nonce == 0 && a.Balance.IsZero() && (len(a.Code) == 0)
}
