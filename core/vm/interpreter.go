package vm

import (
	"github.com/ethform/goevm/log"
	"github.com/ethform/goevm/params"
)

// Interpreter is the per-frame execution engine, per spec.md §4.8. It
// runs the contract's analyzed bytecode, owns a 1024-deep stack and a
// gas tracker, addresses its own context of the shared Memory, and
// steps opcode by opcode until it produces an Action.
type Interpreter struct {
	Contract *Contract
	Memory   *Memory
	Stack    *Stack
	Gas      *GasTracker
	Host     Host
	IsStatic bool
	Spec     params.Fork

	PC     uint64
	Status Status

	ReturnData []byte // this frame's own RETURN/REVERT output, pre-Action
	LastCallReturnData []byte // RETURNDATASIZE/RETURNDATACOPY source: child's output

	NextAction Action

	jumpTable *JumpTable
	logger    *log.Logger
}

// NewInterpreter builds a frame interpreter against mem, the Memory
// instance shared across the whole call stack: the driver calls
// mem.NewContext() before handing it to a new frame and mem.FreeContext()
// once that frame pops, per spec.md §4.2's context-checkpoint design.
// logger may be nil.
func NewInterpreter(contract *Contract, gasLimit uint64, host Host, isStatic bool, spec params.Fork, mem *Memory, logger *log.Logger) *Interpreter {
	return &Interpreter{
		Contract:  contract,
		Memory:    mem,
		Stack:     NewStack(),
		Gas:       NewGasTracker(gasLimit),
		Host:      host,
		IsStatic:  isStatic,
		Spec:      spec,
		jumpTable: SelectJumpTable(spec),
		logger:    logger,
	}
}

// staticForbidden is the set the interpreter rejects under a static
// call context, per spec.md §4.8.
var staticForbidden = map[OpCode]bool{
	SSTORE: true, CREATE: true, CREATE2: true, SELFDESTRUCT: true, TSTORE: true,
}

// Run steps the interpreter until it terminates, returning the Action
// the driver must apply.
func (in *Interpreter) Run() Action {
	in.Status = StatusRunning
	for in.Status == StatusRunning {
		in.step()
	}
	if in.Status != StatusCallOrCreate {
		// Terminal status: synthesize the ReturnAction here, replacing any
		// action a call/create handler set before this frame was resumed.
		in.NextAction = Action{Kind: ActionReturn, Result: in.Status, Output: in.ReturnData, Gas: in.Gas}
	}
	return in.NextAction
}

func (in *Interpreter) step() {
	code := in.Contract.Code.Bytes()
	if in.PC >= uint64(len(code)) {
		in.Status = StatusStopped
		return
	}
	op := OpCode(code[in.PC])

	opDef := in.jumpTable[op]
	if opDef == nil {
		in.Status = StatusOpcodeNotFound
		return
	}
	if op == INVALID {
		in.Status = StatusInvalid
		return
	}

	if in.IsStatic && in.writesState(op) {
		in.Status = StatusCallWithValueNotAllowedInStaticCall
		return
	}

	height := in.Stack.Len()
	if height < opDef.minStack {
		in.Status = StatusInvalid
		return
	}
	if height > opDef.maxStack {
		in.Status = StatusInvalid
		return
	}

	if opDef.memorySize != nil {
		size, err := opDef.memorySize(in.Stack)
		if err != nil {
			in.fail(StatusInvalidOffset)
			return
		}
		if size > 0 {
			newWords := Words(size)
			oldWords := Words(uint64(in.Memory.Len()))
			if err := in.Gas.Update(MemoryGasDelta(oldWords, newWords)); err != nil {
				in.fail(StatusInvalid)
				return
			}
			if err := in.Memory.Resize(size); err != nil {
				in.fail(StatusInvalid)
				return
			}
		}
	}

	if opDef.constantGas > 0 {
		if err := in.Gas.Update(opDef.constantGas); err != nil {
			in.fail(StatusInvalid)
			return
		}
	}
	if opDef.dynamicGas != nil {
		cost, err := opDef.dynamicGas(in)
		if err != nil {
			in.fail(StatusInvalid)
			return
		}
		if err := in.Gas.Update(cost); err != nil {
			in.fail(StatusInvalid)
			return
		}
	}

	if op.IsPush() {
		in.execPush(op, opDef)
		return
	}

	if err := opDef.execute(in); err != nil {
		in.fail(StatusInvalid)
		return
	}
	if opDef.jumps {
		return // jump handlers set PC themselves
	}
	if in.Status != StatusRunning {
		return
	}
	in.PC++
}

func (in *Interpreter) execPush(op OpCode, opDef *operation) {
	n := op.PushSize()
	if err := opDef.execute(in); err != nil {
		in.fail(StatusInvalid)
		return
	}
	in.PC += uint64(1 + n)
}

func (in *Interpreter) fail(status Status) {
	in.Status = status
}

func (in *Interpreter) writesState(op OpCode) bool {
	if !staticForbidden[op] {
		if op.IsLog() {
			return true
		}
		return false
	}
	return true
}
