package vm

import (
	"github.com/ethform/goevm/core/types"
	"github.com/ethform/goevm/params"
)

// opCall/opCallCode/opDelegateCall/opStaticCall each pop their operands
// and yield a CallAction; they never push the success flag themselves
// — per spec.md §4.9, the driver's handle_return_from_call does that
// once the callee frame actually terminates.

func opCall(in *Interpreter) error {
	return yieldCall(in, SchemeCall, true)
}

func opCallCode(in *Interpreter) error {
	return yieldCall(in, SchemeCallCode, true)
}

func opDelegateCall(in *Interpreter) error {
	return yieldCall(in, SchemeDelegateCall, false)
}

func opStaticCall(in *Interpreter) error {
	return yieldCall(in, SchemeStaticCall, false)
}

func yieldCall(in *Interpreter, scheme CallScheme, hasValue bool) error {
	gasWord, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	addrWord, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	var value types.Word
	if hasValue {
		v, err := in.Stack.Pop()
		if err != nil {
			return err
		}
		value = v
	}
	argsOffset, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	argsLength, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	retOffset, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	retLength, err := in.Stack.Pop()
	if err != nil {
		return err
	}

	if hasValue && !value.IsZero() && in.IsStatic {
		in.Status = StatusCallWithValueNotAllowedInStaticCall
		return nil
	}

	input := in.Memory.GetCopy(argsOffset.Uint64(), argsLength.Uint64())

	isStatic := in.IsStatic || scheme == SchemeStaticCall

	// Gas.Used already reflects this opcode's dynamicGas surcharge
	// (gasCallFamily), charged by the interpreter before execute runs,
	// so Available() here is exactly what EIP-150's 63/64 rule forwards
	// against.
	available := in.Gas.Available()
	requested := gasWord.Uint64()
	if !gasWord.IsUint64() || requested > available {
		requested = available
	}
	forwarded := ForwardedCallGas(available, requested)
	if err := in.Gas.Update(forwarded); err != nil {
		return err
	}
	childGas := forwarded
	if hasValue && !value.IsZero() {
		// The stipend is conjured for the callee, never deducted from
		// the caller.
		childGas += CallGasStipend
	}

	in.Status = StatusCallOrCreate
	in.NextAction = Action{
		Kind:         ActionCall,
		CallScheme:   scheme,
		CallTarget:   types.AddressFromWord(&addrWord),
		CallValue:    value,
		CallGasLimit: childGas,
		CallInput:    input,
		ReturnOffset: retOffset.Uint64(),
		ReturnLen:    retLength.Uint64(),
		IsStatic:     isStatic,
	}
	return nil
}

func gasCall(in *Interpreter) (uint64, error) {
	return gasCallFamily(in, true)
}

func gasCallCode(in *Interpreter) (uint64, error) {
	return gasCallFamily(in, true)
}

func gasDelegateCall(in *Interpreter) (uint64, error) {
	return gasCallFamily(in, false)
}

func gasStaticCall(in *Interpreter) (uint64, error) {
	return gasCallFamily(in, false)
}

// gasCallFamily computes CALL/CALLCODE/DELEGATECALL/STATICCALL's
// non-forwarded surcharge: warm/cold account access plus (CALL/
// CALLCODE only) value-transfer and new-account creation charges. The
// 63/64 forwarding itself is applied in yieldCall against whatever gas
// remains after this surcharge is deducted.
func gasCallFamily(in *Interpreter, hasValue bool) (uint64, error) {
	addrWord, err := in.Stack.PeekN(1)
	if err != nil {
		return 0, err
	}
	addr := types.AddressFromWord(addrWord)
	isCold := in.Host.LoadAccount(addr)
	cost := AccountAccessGas(in.Spec, isCold)

	if hasValue {
		value, err := in.Stack.PeekN(2)
		if err != nil {
			return 0, err
		}
		transfersValue := !value.IsZero()
		if transfersValue {
			cost += CallValueTransferGas
		}
		if transfersValue || !in.Spec.Enabled(params.SpuriousDragon) {
			info := in.Host.AccountInfo(addr)
			if !info.Exists {
				cost += CallNewAccountGas
			}
		}
	}
	return cost, nil
}

func memorySizeCallValue(stack *Stack) (uint64, error) {
	return callMemSize(stack, 3, 4, 5, 6)
}

func memorySizeCallNoValue(stack *Stack) (uint64, error) {
	return callMemSize(stack, 2, 3, 4, 5)
}

func callMemSize(stack *Stack, argsOffIdx, argsLenIdx, retOffIdx, retLenIdx int) (uint64, error) {
	argsEnd, err := memorySizeCopy(argsOffIdx, argsLenIdx)(stack)
	if err != nil {
		return 0, err
	}
	retEnd, err := memorySizeCopy(retOffIdx, retLenIdx)(stack)
	if err != nil {
		return 0, err
	}
	if argsEnd > retEnd {
		return argsEnd, nil
	}
	return retEnd, nil
}
