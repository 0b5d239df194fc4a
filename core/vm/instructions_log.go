package vm

import "github.com/ethform/goevm/core/types"

// makeLog returns a LOGn handler: pop offset/length, then n topics,
// and emit a Log through the Host.
func makeLog(n int) executionFunc {
	return func(in *Interpreter) error {
		offset, err := in.Stack.Pop()
		if err != nil {
			return err
		}
		length, err := in.Stack.Pop()
		if err != nil {
			return err
		}
		topics := make([]types.Hash, n)
		for i := 0; i < n; i++ {
			t, err := in.Stack.Pop()
			if err != nil {
				return err
			}
			topics[i] = types.BytesToHash(t.Bytes())
		}
		data := in.Memory.GetCopy(offset.Uint64(), length.Uint64())
		in.Host.Log(&types.Log{Address: in.Contract.Address, Topics: topics, Data: data})
		return nil
	}
}

func gasLogDynamic(n int) dynamicGasFunc {
	return func(in *Interpreter) (uint64, error) {
		length, err := in.Stack.PeekN(1)
		if err != nil {
			return 0, err
		}
		return LogGas(n, length.Uint64()) - GasLogBase(), nil
	}
}

// GasLogBase returns LOGn's constant component (375), already charged
// via the jump table's constantGas field; gasLogDynamic only needs the
// data/topic-dependent remainder.
func GasLogBase() uint64 { return 375 }
