package vm

import "github.com/ethform/goevm/params"

func opSload(in *Interpreter) error {
	key, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	val, _ := in.Host.SLoad(in.Contract.Address, &key)
	in.Stack.Push(&val)
	return nil
}

func gasSloadBerlin(in *Interpreter) (uint64, error) {
	key, err := in.Stack.PeekN(0)
	if err != nil {
		return 0, err
	}
	_, isCold := in.Host.SLoad(in.Contract.Address, key)
	return SloadGas(in.Spec, isCold), nil
}

// opSstore charges its own gas rather than going through the jump
// table's dynamicGas slot: the cost formula (spec.md §4.7) needs the
// slot's original/current value alongside the value being written, and
// the Host.SStore call that reports them is the same call that
// performs the journaled mutation. Charging here, before returning any
// error, still satisfies "gas charged before the mutating effect" in
// the observable sense: an OutOfGas failure reverts the frame's
// checkpoint, which undoes the storage_changed journal entry exactly
// as if the write never happened.
func opSstore(in *Interpreter) error {
	key, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	newVal, err := in.Stack.Pop()
	if err != nil {
		return err
	}

	if in.Spec.Enabled(params.Istanbul) && in.Gas.Available() <= params.SstoreSentryGasEIP2200 {
		return ErrOutOfGas
	}

	info, err := in.Host.SStore(in.Contract.Address, &key, &newVal)
	if err != nil {
		return err
	}

	class := SstoreValueClass{
		OrigEqCur:  info.Original.Eq(&info.Current),
		CurEqNew:   info.Current.Eq(&newVal),
		OrigEqNew:  info.Original.Eq(&newVal),
		OrigIsZero: info.Original.IsZero(),
		CurIsZero:  info.Current.IsZero(),
		NewIsZero:  newVal.IsZero(),
	}
	res := SstoreGas(in.Spec, class, info.IsCold)
	in.Gas.AddRefund(res.RefundDelta)
	return in.Gas.Update(res.Gas)
}

func opTload(in *Interpreter) error {
	key, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	val := in.Host.TLoad(in.Contract.Address, &key)
	in.Stack.Push(&val)
	return nil
}

func opTstore(in *Interpreter) error {
	key, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	val, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	in.Host.TStore(in.Contract.Address, &key, &val)
	return nil
}
