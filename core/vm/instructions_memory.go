package vm

import (
	"github.com/ethform/goevm/core/types"
	"github.com/ethform/goevm/params"
)

func opMload(in *Interpreter) error {
	offset, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	v := in.Memory.WordToInt(offset.Uint64())
	in.Stack.Push(v)
	return nil
}

func opMstore(in *Interpreter) error {
	offset, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	val, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	in.Memory.WriteWord(offset.Uint64(), &val)
	return nil
}

func opMstore8(in *Interpreter) error {
	offset, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	val, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	in.Memory.WriteByte(offset.Uint64(), byte(val.Uint64()))
	return nil
}

func opMsize(in *Interpreter) error {
	var w types.Word
	w.SetUint64(uint64(in.Memory.Len()))
	in.Stack.Push(&w)
	return nil
}

func opMcopy(in *Interpreter) error {
	dst, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	src, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	length, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	n := length.Uint64()
	if n == 0 {
		return nil
	}
	data := in.Memory.GetCopy(src.Uint64(), n)
	in.Memory.Write(dst.Uint64(), data)
	return nil
}

func gasMemExpand(in *Interpreter) (uint64, error) { return 0, nil }

func gasMemExpandOnly(in *Interpreter) (uint64, error) { return 0, nil }

func gasMcopy(in *Interpreter) (uint64, error) {
	length, err := in.Stack.PeekN(2)
	if err != nil {
		return 0, err
	}
	return params.GasVeryLow * Words(length.Uint64()), nil
}

func memorySizeWord(idx int) memorySizeFunc {
	return func(stack *Stack) (uint64, error) {
		offset, err := stack.PeekN(idx)
		if err != nil {
			return 0, err
		}
		return addUint64Checked(offset.Uint64(), 32)
	}
}

func memorySizeByte(idx int) memorySizeFunc {
	return func(stack *Stack) (uint64, error) {
		offset, err := stack.PeekN(idx)
		if err != nil {
			return 0, err
		}
		return addUint64Checked(offset.Uint64(), 1)
	}
}

// memorySizeCopy returns a memorySizeFunc for the common
// "memOffset ... length" stack shape: the byte window needed is
// [stack[offsetIdx], stack[offsetIdx]+stack[lenIdx]).
func memorySizeCopy(offsetIdx, lenIdx int) memorySizeFunc {
	return func(stack *Stack) (uint64, error) {
		length, err := stack.PeekN(lenIdx)
		if err != nil {
			return 0, err
		}
		if length.IsZero() {
			return 0, nil
		}
		offset, err := stack.PeekN(offsetIdx)
		if err != nil {
			return 0, err
		}
		return addUint64Checked(offset.Uint64(), length.Uint64())
	}
}

func memorySizeMcopy(stack *Stack) (uint64, error) {
	length, err := stack.PeekN(2)
	if err != nil {
		return 0, err
	}
	if length.IsZero() {
		return 0, nil
	}
	dst, err := stack.PeekN(0)
	if err != nil {
		return 0, err
	}
	src, err := stack.PeekN(1)
	if err != nil {
		return 0, err
	}
	dstEnd, err := addUint64Checked(dst.Uint64(), length.Uint64())
	if err != nil {
		return 0, err
	}
	srcEnd, err := addUint64Checked(src.Uint64(), length.Uint64())
	if err != nil {
		return 0, err
	}
	if dstEnd > srcEnd {
		return dstEnd, nil
	}
	return srcEnd, nil
}

func addUint64Checked(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, ErrInvalidOffset
	}
	return sum, nil
}
