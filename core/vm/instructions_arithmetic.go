package vm

import (
	"github.com/ethform/goevm/core/types"
	"github.com/ethform/goevm/params"
)

// Arithmetic opcode handlers. Grounded on the teacher's
// core/vm/instructions.go opAdd/opMul/.../opAddmod family; the pop/push
// mechanics are identical, only the operand type changed from *big.Int
// to uint256.Int.

func opAdd(in *Interpreter) error {
	y, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	x, err := in.Stack.Peek()
	if err != nil {
		return err
	}
	x.Add(x, &y)
	return nil
}

func opMul(in *Interpreter) error {
	y, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	x, err := in.Stack.Peek()
	if err != nil {
		return err
	}
	x.Mul(x, &y)
	return nil
}

func opSub(in *Interpreter) error {
	y, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	x, err := in.Stack.Peek()
	if err != nil {
		return err
	}
	x.Sub(&y, x)
	return nil
}

func opDiv(in *Interpreter) error {
	y, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	x, err := in.Stack.Peek()
	if err != nil {
		return err
	}
	x.Div(&y, x)
	return nil
}

func opSdiv(in *Interpreter) error {
	y, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	x, err := in.Stack.Peek()
	if err != nil {
		return err
	}
	x.SDiv(&y, x)
	return nil
}

func opMod(in *Interpreter) error {
	y, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	x, err := in.Stack.Peek()
	if err != nil {
		return err
	}
	x.Mod(&y, x)
	return nil
}

func opSmod(in *Interpreter) error {
	y, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	x, err := in.Stack.Peek()
	if err != nil {
		return err
	}
	x.SMod(&y, x)
	return nil
}

func opAddmod(in *Interpreter) error {
	z, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	y, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	x, err := in.Stack.Peek()
	if err != nil {
		return err
	}
	x.AddMod(&z, &y, x)
	return nil
}

func opMulmod(in *Interpreter) error {
	z, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	y, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	x, err := in.Stack.Peek()
	if err != nil {
		return err
	}
	x.MulMod(&z, &y, x)
	return nil
}

func opExp(in *Interpreter) error {
	base, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	exp, err := in.Stack.Peek()
	if err != nil {
		return err
	}
	exp.Exp(&base, exp)
	return nil
}

func opSignExtend(in *Interpreter) error {
	back, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	num, err := in.Stack.Peek()
	if err != nil {
		return err
	}
	num.ExtendSign(num, &back)
	return nil
}

func gasExpFrontier(in *Interpreter) (uint64, error) {
	exp, err := in.Stack.PeekN(1)
	if err != nil {
		return 0, err
	}
	byteLen := uint64(byteLenOf(exp))
	perByte := uint64(params.GasExpByte)
	if in.Spec.Enabled(params.SpuriousDragon) {
		perByte = params.GasExpByteEIP160
	}
	return perByte * byteLen, nil
}

func byteLenOf(w *types.Word) int {
	b := w.Bytes()
	return len(b)
}
