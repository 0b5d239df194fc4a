package vm

import (
	"github.com/ethform/goevm/core/types"
	"github.com/ethform/goevm/crypto"
	"github.com/ethform/goevm/params"
	"github.com/ethform/goevm/validation"
)

// EVM is the driver spec.md §4.9 describes: it owns the suspended call
// stack, the single Memory instance shared across every frame on it,
// and the Host the interpreters read and write world state through.
// Grounded on the teacher's EVM struct in core/vm/evm.go, generalized
// from the teacher's recursive Call/Create methods to an explicit
// frame-stack loop driven by the Action each Interpreter.Run yields.
type EVM struct {
	Host   Host
	Config Config

	callStack []*CallFrame
	memory    *Memory
	lastReturnData []byte
}

// NewEVM returns a driver bound to host under cfg.
func NewEVM(host Host, cfg Config) *EVM {
	return &EVM{Host: host, Config: cfg}
}

// ExecutionResult is what a top-level transaction execution produces,
// per spec.md §3: the terminal status, the top frame's output bytes,
// gas consumed, and gas refunded (already capped by quotient/disabled).
type ExecutionResult struct {
	Status      Status
	Output      []byte
	GasUsed     uint64
	GasRefunded uint64
	ContractAddress *types.Address
}

// Succeeded reports whether the transaction's top frame ended in
// STOP, RETURN, or SELFDESTRUCT rather than a revert or failure.
func (r *ExecutionResult) Succeeded() bool {
	return r.Status == StatusStopped || r.Status == StatusReturned || r.Status == StatusSelfDestructed
}

// ExecuteTransaction runs tx against block, per spec.md §4.9 step 1-3:
// validates the envelope, charges intrinsic gas, bumps the sender's
// nonce, resolves the CALL/CREATE target, and drives frames to
// completion.
func (evm *EVM) ExecuteTransaction(tx *types.Transaction, block *types.BlockEnvironment) (*ExecutionResult, error) {
	senderInfo := evm.Host.AccountInfo(tx.Caller)
	vcfg := validation.Config{
		ChainID:              evm.Config.ChainID,
		Fork:                 evm.Config.SpecID,
		LimitContractSize:    evm.Config.LimitContractSize,
		DisableBalanceCheck:  evm.Config.DisableBalanceCheck,
		DisableBlockGasLimit: evm.Config.DisableBlockGasLimit,
		DisableEIP3607:       evm.Config.DisableEIP3607,
		DisableBaseFee:       evm.Config.DisableBaseFee,
	}
	sender := validation.SenderState{Nonce: senderInfo.Nonce, Balance: senderInfo.Balance, CodeHash: senderInfo.CodeHash}
	if err := validation.ValidateTransaction(vcfg, block, tx, sender); err != nil {
		return nil, err
	}

	intrinsic, err := validation.IntrinsicGas(tx, evm.Config.SpecID)
	if err != nil {
		return nil, err
	}

	nonce, err := evm.Host.IncrementNonce(tx.Caller)
	if err != nil {
		return nil, err
	}

	evm.memory = NewMemory(evm.Config.MemoryLimit)
	evm.callStack = nil
	evm.lastReturnData = nil

	var contractAddr *types.Address
	var target types.Address
	var code []byte
	isCreate := tx.IsCreate()

	if isCreate {
		addr := crypto.CreateAddress(tx.Caller, nonce-1)
		contractAddr = &addr
		target = addr
		code = tx.Data
	} else {
		target = tx.TransactTo.Addr
		c, _ := evm.Host.Code(target)
		code = c
	}

	bytecode := evm.prepareCode(code)
	var input []byte
	if !isCreate {
		input = tx.Data
	}
	contract := NewContract(tx.Caller, target, target, bytecode, tx.Value, input)

	result, err := evm.executeTop(contract, tx.GasLimit, intrinsic, isCreate, tx.Value)
	if err != nil {
		return nil, err
	}
	if isCreate && result.Succeeded() {
		result.ContractAddress = contractAddr
	}
	return result, nil
}

// prepareCode wraps raw bytecode per Config.PerformAnalysis.
func (evm *EVM) prepareCode(code []byte) *Bytecode {
	if evm.Config.PerformAnalysis == AnalysisRaw {
		return NewRawBytecode(code)
	}
	return Analyze(code)
}

// executeTop opens the first frame of a transaction: depth is always
// zero here, so the only failure modes are insufficient sender balance
// for the value transfer, an address collision when creating the
// contract account, and an intrinsic-gas floor the gas limit can't
// clear.
func (evm *EVM) executeTop(contract *Contract, gasLimit, intrinsicGas uint64, isCreate bool, value types.Word) (*ExecutionResult, error) {
	cp := evm.Host.Checkpoint()

	if isCreate {
		if err := evm.Host.CreateAccount(contract.Caller, contract.Address, &value); err != nil {
			evm.Host.RevertCheckpoint(cp)
			return nil, err
		}
	} else if !value.IsZero() {
		if err := evm.Host.Transfer(contract.Caller, contract.Address, &value); err != nil {
			evm.Host.RevertCheckpoint(cp)
			return nil, err
		}
	}

	interp := NewInterpreter(contract, gasLimit, evm.Host, false, evm.Config.SpecID, evm.memory, evm.Config.Logger)
	if err := interp.Gas.Update(intrinsicGas); err != nil {
		evm.Host.RevertCheckpoint(cp)
		return nil, ErrIntrinsicGasTooLow
	}

	frame := &CallFrame{Contract: contract, Interpreter: interp, IsCreate: isCreate, Checkpoint: cp}
	evm.callStack = append(evm.callStack, frame)
	return evm.runLoop()
}

// runLoop drives the top frame until the call stack empties, per
// spec.md §4.9 step 4: run the active frame to its next Action, then
// dispatch on Action.Kind. Interpreter.Run never surfaces a bare Go
// error — every failure mode already collapses into a terminal Status
// the ReturnAction carries — so this loop is a pure switch.
func (evm *EVM) runLoop() (*ExecutionResult, error) {
	for len(evm.callStack) > 0 {
		frame := evm.callStack[len(evm.callStack)-1]
		action := frame.Interpreter.Run()

		switch action.Kind {
		case ActionCall:
			evm.handleCallAction(frame, action)
		case ActionCreate:
			evm.handleCreateAction(frame, action)
		default:
			result := evm.handleReturnAction(frame, action)
			if result != nil {
				return result, nil
			}
		}
	}
	return &ExecutionResult{Status: StatusStopped}, nil
}

// handleReturnAction pops frame, per spec.md §4.9 step 5: commits or
// reverts its checkpoint depending on whether it ended in a success
// status, and either finalizes the transaction (frame was the last on
// the stack) or folds the result back into its parent.
func (evm *EVM) handleReturnAction(frame *CallFrame, action Action) *ExecutionResult {
	evm.callStack = evm.callStack[:len(evm.callStack)-1]

	succeeded := action.Result == StatusStopped || action.Result == StatusReturned || action.Result == StatusSelfDestructed
	if succeeded {
		evm.Host.CommitCheckpoint()
	} else {
		evm.Host.RevertCheckpoint(frame.Checkpoint)
	}

	if len(evm.callStack) == 0 {
		refund := frame.Interpreter.Gas.CappedRefund(RefundQuotient(evm.Config.SpecID), evm.Config.DisableGasRefund)
		out := action.Output
		if !succeeded && action.Result != StatusReverted {
			// A hard failure (invalid opcode, stack error, OOG, bad jump)
			// never returns data, matching spec.md §4.9's distinction
			// between REVERT's explicit output and every other failure.
			out = nil
		}
		return &ExecutionResult{
			Status:      action.Result,
			Output:      out,
			GasUsed:     frame.Interpreter.Gas.Used,
			GasRefunded: uint64(refund),
		}
	}

	parent := evm.callStack[len(evm.callStack)-1]
	evm.handleReturnFromCall(parent, frame, action, succeeded)
	return nil
}

// handleReturnFromCall folds a finished subframe back into its parent,
// per spec.md §4.9 step 5: refund unused gas, expose the child's
// output as RETURNDATA, pop the shared memory context the subframe was
// given, install deployed code or copy return data depending on
// whether the child was a create, push the outcome onto the parent's
// stack, then resume the parent past the opcode that suspended it.
func (evm *EVM) handleReturnFromCall(parent, child *CallFrame, action Action, succeeded bool) {
	out := make([]byte, len(action.Output))
	copy(out, action.Output)
	evm.lastReturnData = out
	parent.Interpreter.LastCallReturnData = out

	evm.memory.FreeContext()

	// Create's code-deposit charge (inside finishCreateReturn) mutates
	// action.Gas — the same tracker child.Interpreter.Gas points at — so
	// it must run before Available() is read below; otherwise a failed
	// deposit's gas would already have been handed back to the parent.
	if child.IsCreate {
		succeeded = evm.finishCreateReturn(parent, child, succeeded, out)
	} else {
		evm.finishCallReturn(parent, child, succeeded, out)
	}

	// The full remaining gas returns to the parent, including any unused
	// portion of a CALL's value-transfer stipend: the stipend is never
	// deducted from the parent to begin with, so giving it back when
	// unspent is net-neutral across the call, matching real CALL gas
	// accounting (it is this detail, not an oversight, that lets a
	// caller forward nearly all its gas and still get a sliver back).
	available := action.Gas.Available()
	if parent.Interpreter.Gas.Used >= available {
		parent.Interpreter.Gas.Used -= available
	} else {
		parent.Interpreter.Gas.Used = 0
	}

	parent.Interpreter.PC++
	parent.Interpreter.Status = StatusRunning
}

// finishCreateReturn applies a CREATE/CREATE2 subframe's outcome:
// failure or an oversized/EIP-3541-banned result pushes 0, otherwise it
// charges the per-byte code-deposit cost against the child's remaining
// gas and, if that also succeeds, installs the code and pushes the new
// address.
func (evm *EVM) finishCreateReturn(parent, child *CallFrame, succeeded bool, out []byte) bool {
	fail := func() bool {
		parent.Interpreter.Stack.Push(&types.Word{})
		return false
	}
	if !succeeded {
		return fail()
	}
	if uint64(len(out)) > evm.Config.LimitContractSize {
		return fail()
	}
	if len(out) > 0 && out[0] == 0xEF && evm.Config.SpecID.Enabled(params.London) {
		return fail()
	}
	depositCost := params.GasCreateData * uint64(len(out))
	if err := child.Interpreter.Gas.Update(depositCost); err != nil {
		child.Interpreter.Gas.Used = child.Interpreter.Gas.Limit
		return fail()
	}
	evm.Host.SetCode(child.Contract.Address, out)
	parent.Interpreter.Stack.Push(types.WordFromAddress(child.Contract.Address))
	return true
}

// finishCallReturn applies a CALL-family subframe's outcome: on
// success, copies up to the caller's requested window of output into
// the parent's memory (already sized before the call was yielded), and
// pushes the 0/1 success flag either way.
func (evm *EVM) finishCallReturn(parent, child *CallFrame, succeeded bool, out []byte) {
	if succeeded && child.ReturnMemLen > 0 {
		n := uint64(len(out))
		if n > child.ReturnMemLen {
			n = child.ReturnMemLen
		}
		if n > 0 {
			parent.Interpreter.Memory.Set(child.ReturnMemOffset, n, 0, out)
		}
	}
	var flag types.Word
	if succeeded {
		flag.SetUint64(1)
	}
	parent.Interpreter.Stack.Push(&flag)
}

// resumeWithFailure pushes 0 onto frame's stack, refunds the gas it had
// set aside for a subframe it never pushed, and resumes it — used by
// call/create-action branches that fail before any subframe is pushed
// (reverting any checkpoint they had already taken first).
func (evm *EVM) resumeWithFailure(frame *CallFrame, reservedGas uint64) {
	frame.Interpreter.Gas.Used -= reservedGas
	frame.Interpreter.Stack.Push(&types.Word{})
	frame.Interpreter.PC++
	frame.Interpreter.Status = StatusRunning
}
