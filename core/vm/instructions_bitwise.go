package vm

func opLt(in *Interpreter) error {
	y, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	x, err := in.Stack.Peek()
	if err != nil {
		return err
	}
	if y.Lt(x) {
		x.SetOne()
	} else {
		x.Clear()
	}
	return nil
}

func opGt(in *Interpreter) error {
	y, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	x, err := in.Stack.Peek()
	if err != nil {
		return err
	}
	if y.Gt(x) {
		x.SetOne()
	} else {
		x.Clear()
	}
	return nil
}

func opSlt(in *Interpreter) error {
	y, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	x, err := in.Stack.Peek()
	if err != nil {
		return err
	}
	if y.Slt(x) {
		x.SetOne()
	} else {
		x.Clear()
	}
	return nil
}

func opSgt(in *Interpreter) error {
	y, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	x, err := in.Stack.Peek()
	if err != nil {
		return err
	}
	if y.Sgt(x) {
		x.SetOne()
	} else {
		x.Clear()
	}
	return nil
}

func opEq(in *Interpreter) error {
	y, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	x, err := in.Stack.Peek()
	if err != nil {
		return err
	}
	if x.Eq(&y) {
		x.SetOne()
	} else {
		x.Clear()
	}
	return nil
}

func opIszero(in *Interpreter) error {
	x, err := in.Stack.Peek()
	if err != nil {
		return err
	}
	if x.IsZero() {
		x.SetOne()
	} else {
		x.Clear()
	}
	return nil
}

func opAnd(in *Interpreter) error {
	y, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	x, err := in.Stack.Peek()
	if err != nil {
		return err
	}
	x.And(x, &y)
	return nil
}

func opOr(in *Interpreter) error {
	y, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	x, err := in.Stack.Peek()
	if err != nil {
		return err
	}
	x.Or(x, &y)
	return nil
}

func opXor(in *Interpreter) error {
	y, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	x, err := in.Stack.Peek()
	if err != nil {
		return err
	}
	x.Xor(x, &y)
	return nil
}

func opNot(in *Interpreter) error {
	x, err := in.Stack.Peek()
	if err != nil {
		return err
	}
	x.Not(x)
	return nil
}

func opByte(in *Interpreter) error {
	th, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	val, err := in.Stack.Peek()
	if err != nil {
		return err
	}
	val.Byte(&th)
	return nil
}

func opShl(in *Interpreter) error {
	shift, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	value, err := in.Stack.Peek()
	if err != nil {
		return err
	}
	if shift.LtUint64(256) {
		value.Lsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil
}

func opShr(in *Interpreter) error {
	shift, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	value, err := in.Stack.Peek()
	if err != nil {
		return err
	}
	if shift.LtUint64(256) {
		value.Rsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil
}

func opSar(in *Interpreter) error {
	shift, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	value, err := in.Stack.Peek()
	if err != nil {
		return err
	}
	if shift.GtUint64(256) {
		if value.Sign() >= 0 {
			value.Clear()
		} else {
			value.SetAllOne()
		}
		return nil
	}
	n := uint(shift.Uint64())
	value.SRsh(value, n)
	return nil
}
