package vm

import "github.com/ethform/goevm/core/types"

func opReturn(in *Interpreter) error {
	offset, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	length, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	in.ReturnData = in.Memory.GetCopy(offset.Uint64(), length.Uint64())
	in.Status = StatusReturned
	return nil
}

func opRevert(in *Interpreter) error {
	offset, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	length, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	in.ReturnData = in.Memory.GetCopy(offset.Uint64(), length.Uint64())
	in.Status = StatusReverted
	return nil
}

// opSelfDestruct transfers the contract's entire balance to the target
// and marks the account destroyed; actual removal/fund movement is the
// Host's job (journaled so a later revert undoes it), per spec.md §4.9.
func opSelfDestruct(in *Interpreter) error {
	targetWord, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	target := types.AddressFromWord(&targetWord)
	if _, err := in.Host.SelfDestruct(in.Contract.Address, target); err != nil {
		return err
	}
	in.Status = StatusSelfDestructed
	return nil
}

func gasSelfDestruct(in *Interpreter) (uint64, error) {
	return selfDestructGasFor(in, false)
}

func gasSelfDestructBerlin(in *Interpreter) (uint64, error) {
	return selfDestructGasFor(in, true)
}

func selfDestructGasFor(in *Interpreter, berlin bool) (uint64, error) {
	targetWord, err := in.Stack.PeekN(0)
	if err != nil {
		return 0, err
	}
	target := types.AddressFromWord(targetWord)
	bal, _ := in.Host.Balance(in.Contract.Address)
	hasValue := !bal.IsZero()
	info := in.Host.AccountInfo(target)
	isCold := false
	if berlin {
		isCold = in.Host.LoadAccount(target)
	}
	return SelfDestructGas(in.Spec, hasValue, info.Exists, isCold), nil
}
