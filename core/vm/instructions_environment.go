package vm

import (
	"github.com/ethform/goevm/core/types"
	"github.com/ethform/goevm/crypto"
	"github.com/ethform/goevm/params"
)

func opAddress(in *Interpreter) error {
	in.Stack.Push(types.WordFromAddress(in.Contract.Address))
	return nil
}

func opBalance(in *Interpreter) error {
	addrWord, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	addr := types.AddressFromWord(&addrWord)
	bal, _ := in.Host.Balance(addr)
	in.Stack.Push(&bal)
	return nil
}

func gasAccountAccess(in *Interpreter) (uint64, error) {
	addrWord, err := in.Stack.PeekN(0)
	if err != nil {
		return 0, err
	}
	addr := types.AddressFromWord(addrWord)
	isCold := in.Host.LoadAccount(addr)
	return AccountAccessGas(in.Spec, isCold), nil
}

func opOrigin(in *Interpreter) error {
	env := in.Host.GetEnvironment()
	in.Stack.Push(types.WordFromAddress(env.Tx.Origin))
	return nil
}

func opCaller(in *Interpreter) error {
	in.Stack.Push(types.WordFromAddress(in.Contract.Caller))
	return nil
}

func opCallValue(in *Interpreter) error {
	v := in.Contract.Value
	in.Stack.Push(&v)
	return nil
}

func opCallDataLoad(in *Interpreter) error {
	offset, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	var w types.Word
	w.SetBytes(paddedSlice(in.Contract.Input, offset.Uint64(), 32))
	in.Stack.Push(&w)
	return nil
}

func opCallDataSize(in *Interpreter) error {
	var w types.Word
	w.SetUint64(uint64(len(in.Contract.Input)))
	in.Stack.Push(&w)
	return nil
}

func opCallDataCopy(in *Interpreter) error {
	return memCopyOp(in, in.Contract.Input)
}

func opCodeSize(in *Interpreter) error {
	var w types.Word
	w.SetUint64(uint64(in.Contract.Code.Len()))
	in.Stack.Push(&w)
	return nil
}

func opCodeCopy(in *Interpreter) error {
	return memCopyOp(in, in.Contract.Code.Bytes()[:in.Contract.Code.Len()])
}

func opGasPrice(in *Interpreter) error {
	env := in.Host.GetEnvironment()
	v := env.Tx.GasPrice
	in.Stack.Push(&v)
	return nil
}

func opExtCodeSize(in *Interpreter) error {
	addrWord, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	addr := types.AddressFromWord(&addrWord)
	code, _ := in.Host.Code(addr)
	var w types.Word
	w.SetUint64(uint64(len(code)))
	in.Stack.Push(&w)
	return nil
}

func opExtCodeCopy(in *Interpreter) error {
	addrWord, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	addr := types.AddressFromWord(&addrWord)
	code, _ := in.Host.Code(addr)
	return memCopyOp(in, code)
}

func gasExtCodeCopyBerlin(in *Interpreter) (uint64, error) {
	addrWord, err := in.Stack.PeekN(0)
	if err != nil {
		return 0, err
	}
	addr := types.AddressFromWord(addrWord)
	isCold := in.Host.LoadAccount(addr)
	copyCost, err := gasMemCopyAt(in, 1, 3)
	if err != nil {
		return 0, err
	}
	return AccountAccessGas(in.Spec, isCold) + copyCost, nil
}

func opExtCodeHash(in *Interpreter) error {
	addrWord, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	addr := types.AddressFromWord(&addrWord)
	info := in.Host.AccountInfo(addr)
	var w types.Word
	if info.Exists {
		w.SetBytes(info.CodeHash.Bytes())
	}
	in.Stack.Push(&w)
	return nil
}

func opReturnDataSize(in *Interpreter) error {
	var w types.Word
	w.SetUint64(uint64(len(in.LastCallReturnData)))
	in.Stack.Push(&w)
	return nil
}

func opReturnDataCopy(in *Interpreter) error {
	destOffset, err := in.Stack.Pop()
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
	end, err := addUint64Checked(offset.Uint64(), length.Uint64())
	if err != nil || end > uint64(len(in.LastCallReturnData)) {
		return ErrInvalidOffset
	}
	in.Memory.Set(destOffset.Uint64(), length.Uint64(), offset.Uint64(), in.LastCallReturnData)
	return nil
}

func gasReturnDataCopy(in *Interpreter) (uint64, error) {
	return gasMemCopyAt(in, 0, 2)
}

func opKeccak256(in *Interpreter) error {
	offset, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	length, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	data := in.Memory.GetCopy(offset.Uint64(), length.Uint64())
	h := crypto.Keccak256(data)
	var w types.Word
	w.SetBytes(h.Bytes())
	in.Stack.Push(&w)
	return nil
}

func gasKeccak256(in *Interpreter) (uint64, error) {
	length, err := in.Stack.PeekN(1)
	if err != nil {
		return 0, err
	}
	return params.GasKeccak256Word * Words(length.Uint64()), nil
}

func opBlockHash(in *Interpreter) error {
	num, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	// Only the 256 blocks before the current one are answerable; any
	// other number yields zero.
	var w types.Word
	current := in.Host.GetEnvironment().Block.Number
	if num.IsUint64() && num.Uint64() < current && current-num.Uint64() <= 256 {
		h := in.Host.BlockHash(num.Uint64())
		w.SetBytes(h.Bytes())
	}
	in.Stack.Push(&w)
	return nil
}

func opCoinbase(in *Interpreter) error {
	env := in.Host.GetEnvironment()
	in.Stack.Push(types.WordFromAddress(env.Block.Coinbase))
	return nil
}

func opTimestamp(in *Interpreter) error {
	env := in.Host.GetEnvironment()
	var w types.Word
	w.SetUint64(env.Block.Timestamp)
	in.Stack.Push(&w)
	return nil
}

func opNumber(in *Interpreter) error {
	env := in.Host.GetEnvironment()
	var w types.Word
	w.SetUint64(env.Block.Number)
	in.Stack.Push(&w)
	return nil
}

func opDifficulty(in *Interpreter) error {
	env := in.Host.GetEnvironment()
	var w types.Word
	if env.Block.PrevRandao != nil {
		w = *env.Block.PrevRandao
	} else {
		w = env.Block.Difficulty
	}
	in.Stack.Push(&w)
	return nil
}

func opGasLimit(in *Interpreter) error {
	env := in.Host.GetEnvironment()
	var w types.Word
	w.SetUint64(env.Block.GasLimit)
	in.Stack.Push(&w)
	return nil
}

func opChainID(in *Interpreter) error {
	env := in.Host.GetEnvironment()
	var w types.Word
	w.SetUint64(env.ChainID)
	in.Stack.Push(&w)
	return nil
}

func opSelfBalance(in *Interpreter) error {
	bal, _ := in.Host.Balance(in.Contract.Address)
	in.Stack.Push(&bal)
	return nil
}

func opBaseFee(in *Interpreter) error {
	env := in.Host.GetEnvironment()
	v := env.Block.BaseFee
	in.Stack.Push(&v)
	return nil
}

func opBlobHash(in *Interpreter) error {
	idx, err := in.Stack.Pop()
	if err != nil {
		return err
	}
	env := in.Host.GetEnvironment()
	var w types.Word
	if i := idx.Uint64(); idx.IsUint64() && env.Tx != nil && i < uint64(len(env.Tx.BlobHashes)) {
		w.SetBytes(env.Tx.BlobHashes[i].Bytes())
	}
	in.Stack.Push(&w)
	return nil
}

func opBlobBaseFee(in *Interpreter) error {
	env := in.Host.GetEnvironment()
	var w types.Word
	if env.Block.BlobGas != nil {
		w = env.Block.BlobGas.BlobGasPrice
	}
	in.Stack.Push(&w)
	return nil
}

// memCopyOp implements the shared dest/offset/length-from-stack,
// write-into-memory pattern behind CALLDATACOPY/CODECOPY/EXTCODECOPY.
func memCopyOp(in *Interpreter, source []byte) error {
	destOffset, err := in.Stack.Pop()
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
	in.Memory.Set(destOffset.Uint64(), length.Uint64(), offset.Uint64(), source)
	return nil
}

func gasMemCopy(in *Interpreter) (uint64, error) {
	return gasMemCopyAt(in, 0, 2)
}

func gasExtCodeCopy(in *Interpreter) (uint64, error) {
	return gasMemCopyAt(in, 1, 3)
}

func gasMemCopyAt(in *Interpreter, destIdx, lenIdx int) (uint64, error) {
	length, err := in.Stack.PeekN(lenIdx)
	if err != nil {
		return 0, err
	}
	return params.GasCopy * Words(length.Uint64()), nil
}

// paddedSlice returns length bytes from data starting at offset,
// zero-filling past the end, used by CALLDATALOAD's always-32-byte
// read.
func paddedSlice(data []byte, offset uint64, length int) []byte {
	out := make([]byte, length)
	if offset >= uint64(len(data)) {
		return out
	}
	copy(out, data[offset:])
	return out
}
