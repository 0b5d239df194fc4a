package vm

import "github.com/ethform/goevm/core/types"

func opStop(in *Interpreter) error {
	in.Status = StatusStopped
	return nil
}

func opPop(in *Interpreter) error {
	_, err := in.Stack.Pop()
	return err
}

func opJump(in *Interpreter) error {
	dest, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	target := dest.Uint64()
	if !dest.IsUint64() || !in.Contract.IsValidJump(target) {
		in.Status = StatusInvalidJump
		return nil
	}
	in.PC = target
	return nil
}

func opJumpi(in *Interpreter) error {
	dest, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	cond, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	if cond.IsZero() {
		in.PC++
		return nil
	}
	target := dest.Uint64()
	if !dest.IsUint64() || !in.Contract.IsValidJump(target) {
		in.Status = StatusInvalidJump
		return nil
	}
	in.PC = target
	return nil
}

func opPc(in *Interpreter) error {
	var w types.Word
	w.SetUint64(in.PC)
	in.Stack.Push(&w)
	return nil
}

func opGas(in *Interpreter) error {
	var w types.Word
	w.SetUint64(in.Gas.Available())
	in.Stack.Push(&w)
	return nil
}

func opJumpdest(in *Interpreter) error { return nil }

func opInvalid(in *Interpreter) error {
	in.Status = StatusInvalid
	return nil
}

// makePush returns a handler reading the n immediate bytes following
// the current PC (already-padded bytecode guarantees an in-bounds
// read even for PUSH32 at the very end) and pushing them as a
// big-endian word. The PC advance itself happens in the interpreter's
// execPush wrapper, not here.
func makePush(n int) executionFunc {
	return func(in *Interpreter) error {
		code := in.Contract.Code.Bytes()
		start := in.PC + 1
		var w types.Word
		w.SetBytes(code[start : start+uint64(n)])
		in.Stack.Push(&w)
		return nil
	}
}

func opPush0(in *Interpreter) error {
	var w types.Word
	in.Stack.Push(&w)
	return nil
}

func makeDup(n int) executionFunc {
	return func(in *Interpreter) error {
		return in.Stack.DupN(n)
	}
}

func makeSwap(n int) executionFunc {
	return func(in *Interpreter) error {
		return in.Stack.SwapToTopN(n)
	}
}
