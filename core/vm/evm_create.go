package vm

import (
	"github.com/ethform/goevm/core/types"
	"github.com/ethform/goevm/crypto"
	"github.com/ethform/goevm/params"
)

// handleCreateAction applies a CreateAction the current frame yielded,
// per spec.md §4.9: depth-limited failure, EIP-150 63/64 gas
// forwarding (never applied by the opcode layer itself, since
// CreateAction carries no gas-limit field of its own), address
// derivation, and pushing the init-code frame.
func (evm *EVM) handleCreateAction(frame *CallFrame, action Action) {
	if len(evm.callStack) >= params.MaxCallDepth {
		evm.resumeWithFailure(frame, 0)
		return
	}

	available := frame.Interpreter.Gas.Available()
	forwarded := ForwardedCallGas(available, available)
	if err := frame.Interpreter.Gas.Update(forwarded); err != nil {
		evm.resumeWithFailure(frame, 0)
		return
	}

	nonce, err := evm.Host.IncrementNonce(frame.Contract.Address)
	if err != nil {
		evm.resumeWithFailure(frame, forwarded)
		return
	}

	var newAddr = deriveCreateAddress(action, frame.Contract.Address, nonce-1)

	cp := evm.Host.Checkpoint()
	if err := evm.Host.CreateAccount(frame.Contract.Address, newAddr, &action.CreateValue); err != nil {
		evm.Host.RevertCheckpoint(cp)
		evm.resumeWithFailure(frame, forwarded)
		return
	}

	evm.memory.NewContext()

	initCode := evm.prepareCode(action.InitCode)
	contract := NewContract(frame.Contract.Address, newAddr, newAddr, initCode, action.CreateValue, nil)
	interp := NewInterpreter(contract, forwarded, evm.Host, frame.Interpreter.IsStatic, evm.Config.SpecID, evm.memory, evm.Config.Logger)

	child := &CallFrame{
		Contract:       contract,
		Interpreter:    interp,
		IsCreate:       true,
		Checkpoint:     cp,
		CallerIsStatic: frame.Interpreter.IsStatic,
	}
	evm.callStack = append(evm.callStack, child)
}

func deriveCreateAddress(action Action, creator types.Address, priorNonce uint64) types.Address {
	if action.CreateScheme == SchemeCreate2 {
		return crypto.CreateAddress2(creator, action.Salt, action.InitCode)
	}
	return crypto.CreateAddress(creator, priorNonce)
}
