package vm

import (
	"github.com/ethform/goevm/params"
)

// opCreate/opCreate2 pop their operands, read the init code out of
// memory, and yield a CreateAction — the driver derives the new
// contract's address, runs its init code as a fresh frame, and resumes
// this interpreter with the outcome.
func opCreate(in *Interpreter) error {
	return yieldCreate(in, SchemeCreate)
}

func opCreate2(in *Interpreter) error {
	return yieldCreate(in, SchemeCreate2)
}

func yieldCreate(in *Interpreter, scheme CreateScheme) error {
	if in.IsStatic {
		in.Status = StatusCallWithValueNotAllowedInStaticCall
		return nil
	}

	value, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	offset, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	length, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	var salt [32]byte
	if scheme == SchemeCreate2 {
		s, err := in.Stack.Pop()
		if err != nil {
			return err
		}
		salt = s.Bytes32()
	}

	n := length.Uint64()
	if in.Spec.Enabled(params.Shanghai) && n > params.MaxInitCodeSize {
		in.Status = StatusCreateCodeSizeLimit
		return nil
	}
	initCode := in.Memory.GetCopy(offset.Uint64(), n)

	in.Status = StatusCallOrCreate
	in.NextAction = Action{
		Kind:         ActionCreate,
		CreateScheme: scheme,
		InitCode:     initCode,
		CreateValue:  value,
		Salt:         salt,
	}
	return nil
}

// gasCreate covers CREATE's EIP-3860 init-code word charge (Shanghai+);
// CREATE2 adds its own per-word hashing charge on top.
func gasCreate(in *Interpreter) (uint64, error) {
	length, err := in.Stack.PeekN(2)
	if err != nil {
		return 0, err
	}
	if !in.Spec.Enabled(params.Shanghai) {
		return 0, nil
	}
	return CreateGasWordCost(length.Uint64()), nil
}

func gasCreate2(in *Interpreter) (uint64, error) {
	length, err := in.Stack.PeekN(2)
	if err != nil {
		return 0, err
	}
	cost := Create2HashGasWordCost(length.Uint64())
	if in.Spec.Enabled(params.Shanghai) {
		cost += CreateGasWordCost(length.Uint64())
	}
	return cost, nil
}
