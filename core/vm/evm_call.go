package vm

import (
	"github.com/ethform/goevm/core/types"
	"github.com/ethform/goevm/params"
)

// handleCallAction applies a CallAction the current frame yielded, per
// spec.md §4.9: depth-limited failure, value transfer (a genuine
// balance move for CALL, a balance-sufficiency check only for
// CALLCODE, never for DELEGATECALL/STATICCALL which can't carry
// value), precompile dispatch, a missing-account's trivially
// successful empty execution, or pushing a genuine subframe whose
// caller/target the call scheme selects.
func (evm *EVM) handleCallAction(frame *CallFrame, action Action) {
	// A call that never actually runs only ever took the forwarded 63/64
	// share from the parent; the value-transfer stipend on top of it (if
	// any) was conjured for a child that in these branches never starts,
	// so it must not be handed back too.
	chargedNoStipend := action.CallGasLimit
	if (action.CallScheme == SchemeCall || action.CallScheme == SchemeCallCode) && !action.CallValue.IsZero() {
		chargedNoStipend -= CallGasStipend
	}

	if len(evm.callStack) >= params.MaxCallDepth {
		evm.resumeWithFailure(frame, chargedNoStipend)
		return
	}

	cp := evm.Host.Checkpoint()

	switch action.CallScheme {
	case SchemeCall:
		if !action.CallValue.IsZero() {
			if err := evm.Host.Transfer(frame.Contract.Address, action.CallTarget, &action.CallValue); err != nil {
				evm.Host.RevertCheckpoint(cp)
				evm.resumeWithFailure(frame, chargedNoStipend)
				return
			}
		}
	case SchemeCallCode:
		if !action.CallValue.IsZero() {
			bal, _ := evm.Host.Balance(frame.Contract.Address)
			if bal.Lt(&action.CallValue) {
				evm.Host.RevertCheckpoint(cp)
				evm.resumeWithFailure(frame, chargedNoStipend)
				return
			}
		}
	}

	if IsPrecompiledContract(action.CallTarget, evm.Config.SpecID) {
		// RunPrecompiledContract reports remaining=0 on an outright
		// out-of-gas failure (all forwarded gas consumed, per spec.md
		// §4.12) and remaining=gas-cost when the precompile's own logic
		// rejects the input after its base cost was already charged.
		out, remaining, err := RunPrecompiledContract(action.CallTarget, action.CallInput, action.CallGasLimit, evm.Config.SpecID)
		if err != nil {
			evm.Host.RevertCheckpoint(cp)
			evm.finishInlineCall(frame, action, false, nil, action.CallGasLimit-remaining)
			return
		}
		evm.Host.CommitCheckpoint()
		evm.finishInlineCall(frame, action, true, out, action.CallGasLimit-remaining)
		return
	}

	codeAddr := action.CallTarget
	code, exists := evm.Host.Code(codeAddr)
	if !exists || len(code) == 0 {
		evm.Host.CommitCheckpoint()
		evm.finishInlineCall(frame, action, true, nil, 0)
		return
	}

	var caller, target types.Address
	switch action.CallScheme {
	case SchemeCall, SchemeStaticCall:
		caller = frame.Contract.Address
		target = action.CallTarget
	case SchemeCallCode, SchemeDelegateCall:
		caller = frame.Contract.Caller
		target = frame.Contract.Address
	}

	value := action.CallValue
	if action.CallScheme == SchemeDelegateCall {
		value = frame.Contract.Value
	}

	evm.memory.NewContext()

	codeObj := evm.prepareCode(code)
	contract := NewContract(caller, target, codeAddr, codeObj, value, action.CallInput)
	interp := NewInterpreter(contract, action.CallGasLimit, evm.Host, action.IsStatic, evm.Config.SpecID, evm.memory, evm.Config.Logger)

	child := &CallFrame{
		Contract:        contract,
		Interpreter:     interp,
		ReturnMemOffset: action.ReturnOffset,
		ReturnMemLen:    action.ReturnLen,
		IsCreate:        false,
		Checkpoint:      cp,
		CallerIsStatic:  action.IsStatic,
	}
	evm.callStack = append(evm.callStack, child)
}

// finishInlineCall resumes frame directly for call branches that never
// push a subframe (precompiles, calls to accounts with no code): it
// refunds whatever portion of the reserved gas the callee didn't use,
// copies any output into the caller's requested return window, and
// pushes the success flag.
func (evm *EVM) finishInlineCall(frame *CallFrame, action Action, succeeded bool, out []byte, used uint64) {
	unused := action.CallGasLimit - used
	frame.Interpreter.Gas.Used -= unused
	evm.lastReturnData = out
	frame.Interpreter.LastCallReturnData = out

	if succeeded && action.ReturnLen > 0 && len(out) > 0 {
		n := uint64(len(out))
		if n > action.ReturnLen {
			n = action.ReturnLen
		}
		frame.Interpreter.Memory.Set(action.ReturnOffset, n, 0, out)
	}

	var flag types.Word
	if succeeded {
		flag.SetUint64(1)
	}
	frame.Interpreter.Stack.Push(&flag)
	frame.Interpreter.PC++
	frame.Interpreter.Status = StatusRunning
}
