package vm

import "github.com/ethform/goevm/core/types"

// Status is the interpreter's terminal (or running) state, per
// spec.md §3's Execution Result status enum.
type Status int

const (
	StatusRunning Status = iota
	StatusStopped
	StatusReturned
	StatusReverted
	StatusSelfDestructed
	StatusInvalid
	StatusInvalidJump
	StatusInvalidOffset
	StatusOpcodeNotFound
	StatusCallOrCreate
	StatusCreateCodeSizeLimit
	StatusCallWithValueNotAllowedInStaticCall
)

func (s Status) Terminal() bool { return s != StatusRunning && s != StatusCallOrCreate }

// CallScheme distinguishes the four cross-frame call opcodes' address
// and value semantics.
type CallScheme int

const (
	SchemeCall CallScheme = iota
	SchemeCallCode
	SchemeDelegateCall
	SchemeStaticCall
)

// CreateScheme distinguishes CREATE from CREATE2 address derivation.
type CreateScheme int

const (
	SchemeCreate CreateScheme = iota
	SchemeCreate2
)

// Action is what an interpreter Run loop yields when it stops: a
// terminal return, a cross-frame call, a cross-frame create, or "no
// action" (used by the driver to finalize a frame with no further
// work), per spec.md §4.8.
type Action struct {
	Kind ActionKind

	// ReturnAction fields.
	Result Status
	Output []byte
	Gas    *GasTracker

	// CallAction fields.
	CallScheme  CallScheme
	CallTarget  types.Address
	CallValue   types.Word
	CallGasLimit uint64
	CallInput   []byte
	ReturnOffset uint64
	ReturnLen    uint64
	IsStatic     bool

	// CreateAction fields.
	CreateScheme CreateScheme
	InitCode     []byte
	CreateValue  types.Word
	Salt         [32]byte
}

type ActionKind int

const (
	ActionReturn ActionKind = iota
	ActionCall
	ActionCreate
	ActionNone
)

// CallFrame is a single suspended execution context on the driver's
// call stack, per spec.md §3: the executing Contract, its Interpreter,
// the parent-relative return-data window, whether this frame is a
// CREATE, and its owning journal checkpoint.
type CallFrame struct {
	Contract          *Contract
	Interpreter       *Interpreter
	ReturnMemOffset   uint64
	ReturnMemLen      uint64
	IsCreate          bool
	Checkpoint        Checkpoint
	CallerIsStatic    bool
}
