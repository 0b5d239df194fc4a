package vm

import (
	"testing"

	"github.com/ethform/goevm/core/types"
	"github.com/ethform/goevm/params"
)

// newOpHarness builds an Interpreter suitable for calling an opXxx
// handler directly, bypassing the jump-table dispatch loop (and its
// gas/stack-height checks) so each handler's pure stack/memory effect
// can be tested in isolation.
func newOpHarness() *Interpreter {
	contract := NewContract(types.Address{1}, types.Address{2}, types.Address{2}, NewRawBytecode(nil), types.Word{}, nil)
	host := NewPlainHost(&Environment{
		Block: &types.BlockEnvironment{Number: 100, Timestamp: 123, GasLimit: 30_000_000, Coinbase: types.Address{9}},
		Tx:    &types.TxContext{Origin: types.Address{1}},
	})
	return NewInterpreter(contract, 1_000_000, host, false, params.Cancun, NewMemory(params.MemoryLimitDefault), nil)
}

func pushUint(in *Interpreter, v uint64) {
	var w types.Word
	w.SetUint64(v)
	in.Stack.Push(&w)
}

func popUint(t *testing.T, in *Interpreter) uint64 {
	t.Helper()
	w, err := in.Stack.Pop()
	if err != nil {
		t.Fatalf("Pop() error: %v", err)
	}
	return w.Uint64()
}

func TestOpArithmetic(t *testing.T) {
	tests := []struct {
		name string
		op   func(*Interpreter) error
		a, b uint64
		want uint64
	}{
		{"add", opAdd, 3, 4, 7},
		{"mul", opMul, 3, 4, 12},
		{"sub", opSub, 10, 4, 6}, // a pushed first, b second: Sub computes (top-of-stack before pop b) - b = a - b? see below
		{"div", opDiv, 20, 4, 5},
		{"mod", opMod, 20, 6, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newOpHarness()
			pushUint(in, tt.b)
			pushUint(in, tt.a) // a ends on top: the first operand
			if err := tt.op(in); err != nil {
				t.Fatalf("%s error: %v", tt.name, err)
			}
			if got := popUint(t, in); got != tt.want {
				t.Errorf("%s(%d, %d) = %d, want %d", tt.name, tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestOpAddmodMulmod(t *testing.T) {
	in := newOpHarness()
	pushUint(in, 8) // N=8 is the deepest operand
	pushUint(in, 10)
	pushUint(in, 10) // (10+10) mod 8 = 4
	if err := opAddmod(in); err != nil {
		t.Fatalf("opAddmod error: %v", err)
	}
	if got := popUint(t, in); got != 4 {
		t.Errorf("opAddmod(10, 10, 8) = %d, want 4", got)
	}

	in2 := newOpHarness()
	pushUint(in2, 8)
	pushUint(in2, 10)
	pushUint(in2, 10) // (10*10) mod 8 = 4
	if err := opMulmod(in2); err != nil {
		t.Fatalf("opMulmod error: %v", err)
	}
	if got := popUint(t, in2); got != 4 {
		t.Errorf("opMulmod(10, 10, 8) = %d, want 4", got)
	}
}

func TestOpExp(t *testing.T) {
	in := newOpHarness()
	pushUint(in, 10) // exponent
	pushUint(in, 2)  // base, on top
	if err := opExp(in); err != nil {
		t.Fatalf("opExp error: %v", err)
	}
	if got := popUint(t, in); got != 1024 {
		t.Errorf("opExp(2, 10) = %d, want 1024", got)
	}
}

func TestOpComparisons(t *testing.T) {
	tests := []struct {
		name string
		op   func(*Interpreter) error
		a, b uint64
		want uint64
	}{
		{"lt true", opLt, 3, 5, 1},
		{"lt false", opLt, 5, 3, 0},
		{"gt true", opGt, 5, 3, 1},
		{"eq true", opEq, 7, 7, 1},
		{"eq false", opEq, 7, 8, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newOpHarness()
			pushUint(in, tt.b)
			pushUint(in, tt.a) // a ends on top: the first operand
			if err := tt.op(in); err != nil {
				t.Fatalf("%s error: %v", tt.name, err)
			}
			if got := popUint(t, in); got != tt.want {
				t.Errorf("%s = %d, want %d", tt.name, got, tt.want)
			}
		})
	}
}

func TestOpIszero(t *testing.T) {
	in := newOpHarness()
	pushUint(in, 0)
	if err := opIszero(in); err != nil {
		t.Fatalf("opIszero error: %v", err)
	}
	if got := popUint(t, in); got != 1 {
		t.Errorf("opIszero(0) = %d, want 1", got)
	}
}

func TestOpBitwise(t *testing.T) {
	in := newOpHarness()
	pushUint(in, 0b1100)
	pushUint(in, 0b1010)
	if err := opAnd(in); err != nil {
		t.Fatalf("opAnd error: %v", err)
	}
	if got := popUint(t, in); got != 0b1000 {
		t.Errorf("opAnd(0b1100, 0b1010) = %b, want 0b1000", got)
	}

	in2 := newOpHarness()
	pushUint(in2, 1)
	pushUint(in2, 4) // shift amount on top, value underneath
	if err := opShl(in2); err != nil {
		t.Fatalf("opShl error: %v", err)
	}
	if got := popUint(t, in2); got != 16 {
		t.Errorf("opShl(1 << 4) = %d, want 16", got)
	}
}

func TestOpByte(t *testing.T) {
	in := newOpHarness()
	var val types.Word
	val.SetBytes([]byte{0xAA, 0xBB, 0xCC, 0xDD})
	in.Stack.Push(&val)
	pushUint(in, 31) // the last (least-significant) byte, index 31
	if err := opByte(in); err != nil {
		t.Fatalf("opByte error: %v", err)
	}
	if got := popUint(t, in); got != 0xDD {
		t.Errorf("opByte(31) = %#x, want 0xdd", got)
	}
}

func TestOpMemoryRoundTrip(t *testing.T) {
	in := newOpHarness()
	in.Memory.Resize(64)

	pushUint(in, 42)
	pushUint(in, 0)
	if err := opMstore(in); err != nil {
		t.Fatalf("opMstore error: %v", err)
	}
	pushUint(in, 0)
	if err := opMload(in); err != nil {
		t.Fatalf("opMload error: %v", err)
	}
	if got := popUint(t, in); got != 42 {
		t.Errorf("mload after mstore = %d, want 42", got)
	}
}

func TestOpMstore8(t *testing.T) {
	in := newOpHarness()
	in.Memory.Resize(32)
	pushUint(in, 0xFF)
	pushUint(in, 0)
	if err := opMstore8(in); err != nil {
		t.Fatalf("opMstore8 error: %v", err)
	}
	if in.Memory.GetSlice()[0] != 0xFF {
		t.Errorf("mem[0] = %#x, want 0xff", in.Memory.GetSlice()[0])
	}
}

func TestOpMsize(t *testing.T) {
	in := newOpHarness()
	in.Memory.Resize(96)
	if err := opMsize(in); err != nil {
		t.Fatalf("opMsize error: %v", err)
	}
	if got := popUint(t, in); got != 96 {
		t.Errorf("opMsize() = %d, want 96", got)
	}
}

func TestOpSloadSstoreRoundTrip(t *testing.T) {
	in := newOpHarness()
	pushUint(in, 99) // value
	pushUint(in, 5)  // key
	if err := opSstore(in); err != nil {
		t.Fatalf("opSstore error: %v", err)
	}
	pushUint(in, 5)
	if err := opSload(in); err != nil {
		t.Fatalf("opSload error: %v", err)
	}
	if got := popUint(t, in); got != 99 {
		t.Errorf("sload after sstore = %d, want 99", got)
	}
}

func TestOpAddressCallerCallValue(t *testing.T) {
	in := newOpHarness()
	if err := opAddress(in); err != nil {
		t.Fatalf("opAddress error: %v", err)
	}
	w, _ := in.Stack.Pop()
	if got := types.AddressFromWord(&w); got != in.Contract.Address {
		t.Errorf("opAddress() = %x, want %x", got, in.Contract.Address)
	}

	if err := opCaller(in); err != nil {
		t.Fatalf("opCaller error: %v", err)
	}
	w2, _ := in.Stack.Pop()
	if got := types.AddressFromWord(&w2); got != in.Contract.Caller {
		t.Errorf("opCaller() = %x, want %x", got, in.Contract.Caller)
	}
}

func TestOpCallDataLoadPadsShortInput(t *testing.T) {
	in := newOpHarness()
	in.Contract.Input = []byte{0x01, 0x02}
	pushUint(in, 0)
	if err := opCallDataLoad(in); err != nil {
		t.Fatalf("opCallDataLoad error: %v", err)
	}
	w, _ := in.Stack.Pop()
	b := w.Bytes32()
	if b[0] != 0x01 || b[1] != 0x02 || b[2] != 0x00 {
		t.Errorf("calldataload short input = %x, want 0102 then zero padding", b[:4])
	}
}

func TestOpCoinbaseTimestampNumber(t *testing.T) {
	in := newOpHarness()
	if err := opCoinbase(in); err != nil {
		t.Fatalf("opCoinbase error: %v", err)
	}
	w, _ := in.Stack.Pop()
	if got := types.AddressFromWord(&w); got != (types.Address{9}) {
		t.Errorf("opCoinbase() = %x, want %x", got, types.Address{9})
	}

	if err := opTimestamp(in); err != nil {
		t.Fatalf("opTimestamp error: %v", err)
	}
	if got := popUint(t, in); got != 123 {
		t.Errorf("opTimestamp() = %d, want 123", got)
	}

	if err := opNumber(in); err != nil {
		t.Fatalf("opNumber error: %v", err)
	}
	if got := popUint(t, in); got != 100 {
		t.Errorf("opNumber() = %d, want 100", got)
	}
}

func TestOpJumpValidAndInvalid(t *testing.T) {
	in := newOpHarness()
	in.Contract.Code = Analyze([]byte{0x00, 0x00, 0x5b, 0x00}) // JUMPDEST at 2
	pushUint(in, 2)
	if err := opJump(in); err != nil {
		t.Fatalf("opJump error: %v", err)
	}
	if in.Status == StatusInvalidJump {
		t.Error("jump to a real JUMPDEST must not be rejected")
	}
	if in.PC != 2 {
		t.Errorf("PC = %d, want 2", in.PC)
	}

	in2 := newOpHarness()
	in2.Contract.Code = Analyze([]byte{0x00, 0x00, 0x5b, 0x00})
	pushUint(in2, 1)
	if err := opJump(in2); err != nil {
		t.Fatalf("opJump error: %v", err)
	}
	if in2.Status != StatusInvalidJump {
		t.Errorf("jump to a non-JUMPDEST offset must set StatusInvalidJump, got %v", in2.Status)
	}
}

func TestOpJumpiSkipsWhenConditionZero(t *testing.T) {
	in := newOpHarness()
	in.Contract.Code = Analyze([]byte{0x00, 0x00, 0x5b, 0x00})
	in.PC = 10
	pushUint(in, 2) // dest
	pushUint(in, 0) // cond = false
	if err := opJumpi(in); err != nil {
		t.Fatalf("opJumpi error: %v", err)
	}
	if in.PC != 11 {
		t.Errorf("PC after a false JUMPI = %d, want 11 (PC+1)", in.PC)
	}
}

func TestOpStopReturnRevert(t *testing.T) {
	in := newOpHarness()
	if err := opStop(in); err != nil {
		t.Fatalf("opStop error: %v", err)
	}
	if in.Status != StatusStopped {
		t.Errorf("opStop status = %v, want StatusStopped", in.Status)
	}

	in2 := newOpHarness()
	in2.Memory.Resize(32)
	in2.Memory.WriteByte(0, 0xAB)
	pushUint(in2, 1)
	pushUint(in2, 0)
	if err := opReturn(in2); err != nil {
		t.Fatalf("opReturn error: %v", err)
	}
	if in2.Status != StatusReturned || len(in2.ReturnData) != 1 || in2.ReturnData[0] != 0xAB {
		t.Errorf("opReturn status=%v data=%x, want StatusReturned / [0xab]", in2.Status, in2.ReturnData)
	}

	in3 := newOpHarness()
	in3.Memory.Resize(32)
	pushUint(in3, 0)
	pushUint(in3, 0)
	if err := opRevert(in3); err != nil {
		t.Fatalf("opRevert error: %v", err)
	}
	if in3.Status != StatusReverted {
		t.Errorf("opRevert status = %v, want StatusReverted", in3.Status)
	}
}

func TestOpLog(t *testing.T) {
	in := newOpHarness()
	in.Memory.Resize(32)
	in.Memory.WriteByte(0, 0x42)

	host := in.Host.(*PlainHost)
	var topic types.Word
	topic.SetUint64(7)
	in.Stack.Push(&topic)
	pushUint(in, 1) // length
	pushUint(in, 0) // offset
	log1 := makeLog(1)
	if err := log1(in); err != nil {
		t.Fatalf("LOG1 error: %v", err)
	}
	if len(host.Logs) != 1 {
		t.Fatalf("Logs len = %d, want 1", len(host.Logs))
	}
	if len(host.Logs[0].Topics) != 1 || len(host.Logs[0].Data) != 1 || host.Logs[0].Data[0] != 0x42 {
		t.Errorf("log = %+v, want one topic and data [0x42]", host.Logs[0])
	}
}
