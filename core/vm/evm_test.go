package vm

import (
	"bytes"
	"testing"

	"github.com/ethform/goevm/core/state"
	"github.com/ethform/goevm/core/types"
	"github.com/ethform/goevm/crypto"
	"github.com/ethform/goevm/params"
)

// newDriverHarness builds an EVM over a fully journaled Host, giving
// these tests real checkpoint/revert and nonce-sequencing semantics
// rather than PlainHost's stubbed-out versions of both.
func newDriverHarness() (*EVM, *state.JournaledState, *state.MemDatabase) {
	db := state.NewMemDatabase()
	st := state.NewJournaledState(db, params.Cancun)
	randao := types.Word{}
	env := &types.Environment{
		Block: &types.BlockEnvironment{
			GasLimit:   30_000_000,
			PrevRandao: &randao,
			BlobGas:    &types.BlobGasParams{},
		},
		Tx:      &types.TxContext{},
		ChainID: 1,
	}
	host := state.NewJournaledHost(st, env)
	cfg := Config{
		ChainID:           1,
		LimitContractSize: params.MaxCodeSize,
		MemoryLimit:       params.MemoryLimitDefault,
		SpecID:            params.Cancun,
	}
	return NewEVM(host, cfg), st, db
}

func fundSender(db *state.MemDatabase, addr types.Address, balance uint64) {
	var v types.Word
	v.SetUint64(balance)
	db.Accounts[addr] = &types.Account{Balance: v}
}

func TestExecuteTransactionSimpleArithmetic(t *testing.T) {
	evm, _, db := newDriverHarness()
	sender := types.Address{0xAA}
	fundSender(db, sender, 1_000_000)

	target := types.Address{0xBB}
	// PUSH1 3, PUSH1 4, ADD, PUSH1 0, MSTORE, PUSH1 32, PUSH1 0, RETURN
	code := []byte{
		0x60, 0x03,
		0x60, 0x04,
		0x01,
		0x60, 0x00,
		0x52,
		0x60, 0x20,
		0x60, 0x00,
		0xf3,
	}
	db.Accounts[target] = &types.Account{Code: code}

	tx := &types.Transaction{
		Caller:     sender,
		GasLimit:   100000,
		TransactTo: types.CallTo(target),
	}
	res, err := evm.ExecuteTransaction(tx, &types.BlockEnvironment{GasLimit: 30_000_000, PrevRandao: &types.Word{}, BlobGas: &types.BlobGasParams{}})
	if err != nil {
		t.Fatalf("ExecuteTransaction error: %v", err)
	}
	if !res.Succeeded() {
		t.Fatalf("status = %v, want success", res.Status)
	}
	if len(res.Output) != 32 || res.Output[31] != 7 {
		t.Fatalf("output = %x, want word(7)", res.Output)
	}
}

func TestExecuteTransactionInvalidJump(t *testing.T) {
	evm, _, db := newDriverHarness()
	sender := types.Address{0xAA}
	fundSender(db, sender, 1_000_000)

	target := types.Address{0xBB}
	// PUSH1 5, JUMP -- offset 5 lies past the end of this 3-byte code.
	code := []byte{0x60, 0x05, 0x56}
	db.Accounts[target] = &types.Account{Code: code}

	tx := &types.Transaction{
		Caller:     sender,
		GasLimit:   100000,
		TransactTo: types.CallTo(target),
	}
	res, err := evm.ExecuteTransaction(tx, &types.BlockEnvironment{GasLimit: 30_000_000, PrevRandao: &types.Word{}, BlobGas: &types.BlobGasParams{}})
	if err != nil {
		t.Fatalf("ExecuteTransaction error: %v", err)
	}
	if res.Status != StatusInvalidJump {
		t.Errorf("status = %v, want StatusInvalidJump", res.Status)
	}
}

func TestExecuteTransactionCreateDepositGas(t *testing.T) {
	evm, st, db := newDriverHarness()
	sender := types.Address{0xAA}
	fundSender(db, sender, 1_000_000)

	// Init code returns a single zero byte (decodes as STOP) as the
	// deployed contract: PUSH1 1 (length), PUSH1 0 (offset), RETURN.
	initCode := []byte{0x60, 0x01, 0x60, 0x00, 0xf3}

	tx := &types.Transaction{
		Caller:     sender,
		GasLimit:   200000,
		TransactTo: types.CreateTo(),
		Data:       initCode,
	}
	res, err := evm.ExecuteTransaction(tx, &types.BlockEnvironment{GasLimit: 30_000_000, PrevRandao: &types.Word{}, BlobGas: &types.BlobGasParams{}})
	if err != nil {
		t.Fatalf("ExecuteTransaction error: %v", err)
	}
	if !res.Succeeded() {
		t.Fatalf("status = %v, want success", res.Status)
	}
	if res.ContractAddress == nil {
		t.Fatal("ContractAddress must be set on a successful create")
	}
	wantAddr := crypto.CreateAddress(sender, 0)
	if *res.ContractAddress != wantAddr {
		t.Errorf("ContractAddress = %x, want %x", *res.ContractAddress, wantAddr)
	}
	code, _ := st.Code(wantAddr)
	if !bytes.Equal(code, []byte{0x00}) {
		t.Errorf("installed code = %x, want a single zero byte", code)
	}
}

func TestExecuteTransactionCreate2ViaFactory(t *testing.T) {
	evm, st, db := newDriverHarness()
	sender := types.Address{0xAA}
	fundSender(db, sender, 1_000_000)

	factory := types.Address{0xCC}
	// MSTORE8 a 0x00 byte at mem[0] as the future init code, then
	// CREATE2(value=0, offset=0, length=1, salt=0), MSTORE the
	// resulting address and RETURN it.
	factoryCode := []byte{
		0x60, 0x00, // PUSH1 0  (byte to store)
		0x60, 0x00, // PUSH1 0  (mem offset)
		0x53,       // MSTORE8
		0x60, 0x00, // PUSH1 0  (salt)
		0x60, 0x01, // PUSH1 1  (length)
		0x60, 0x00, // PUSH1 0  (offset)
		0x60, 0x00, // PUSH1 0  (value)
		0xf5,       // CREATE2
		0x60, 0x00, // PUSH1 0  (mem offset)
		0x52,       // MSTORE
		0x60, 0x20, // PUSH1 32
		0x60, 0x00, // PUSH1 0
		0xf3,       // RETURN
	}
	db.Accounts[factory] = &types.Account{Code: factoryCode}

	tx := &types.Transaction{
		Caller:     sender,
		GasLimit:   300000,
		TransactTo: types.CallTo(factory),
	}
	res, err := evm.ExecuteTransaction(tx, &types.BlockEnvironment{GasLimit: 30_000_000, PrevRandao: &types.Word{}, BlobGas: &types.BlobGasParams{}})
	if err != nil {
		t.Fatalf("ExecuteTransaction error: %v", err)
	}
	if !res.Succeeded() {
		t.Fatalf("status = %v, want success", res.Status)
	}
	if len(res.Output) != 32 {
		t.Fatalf("output len = %d, want 32", len(res.Output))
	}
	got := types.BytesToAddress(res.Output[12:])
	want := crypto.CreateAddress2(factory, [32]byte{}, []byte{0x00})
	if got != want {
		t.Errorf("CREATE2 address = %x, want %x", got, want)
	}
	// The init code is a lone STOP, which returns nothing, so the
	// deployed runtime code is empty.
	code, _ := st.Code(want)
	if len(code) != 0 {
		t.Errorf("CREATE2-deployed code = %x, want empty", code)
	}
}

func TestExecuteTransactionIntrinsicGasFloor(t *testing.T) {
	evm, _, db := newDriverHarness()
	sender := types.Address{0xAA}
	fundSender(db, sender, 1_000_000)

	tx := &types.Transaction{
		Caller:     sender,
		GasLimit:   params.TxGas - 1,
		TransactTo: types.CallTo(types.Address{0xBB}),
	}
	_, err := evm.ExecuteTransaction(tx, &types.BlockEnvironment{GasLimit: 30_000_000, PrevRandao: &types.Word{}, BlobGas: &types.BlobGasParams{}})
	if err != ErrIntrinsicGasTooLow {
		t.Errorf("ExecuteTransaction() = %v, want ErrIntrinsicGasTooLow", err)
	}
}

func TestExecuteTransactionStaticCallSstoreFails(t *testing.T) {
	evm, _, db := newDriverHarness()
	sender := types.Address{0xAA}
	fundSender(db, sender, 1_000_000)

	callee := types.Address{0xDD}
	// PUSH1 1, PUSH1 0, SSTORE -- a state-mutating opcode, forbidden
	// in the static sub-context a STATICCALL opens.
	calleeCode := []byte{0x60, 0x01, 0x60, 0x00, 0x55}
	db.Accounts[callee] = &types.Account{Code: calleeCode}

	caller := types.Address{0xEE}
	// PUSH1 0 (retLen), PUSH1 0 (retOff), PUSH1 0 (argsLen),
	// PUSH1 0 (argsOff), PUSH20 callee, PUSH gas, STATICCALL,
	// PUSH1 0, MSTORE, PUSH1 32, PUSH1 0, RETURN.
	var callerCode []byte
	push := func(b ...byte) { callerCode = append(callerCode, b...) }
	push(0x60, 0x00) // retLen
	push(0x60, 0x00) // retOff
	push(0x60, 0x00) // argsLen
	push(0x60, 0x00) // argsOff
	push(0x73)       // PUSH20
	callerCode = append(callerCode, callee[:]...)
	push(0x61, 0x27, 0x10) // PUSH2 10000 (gas)
	push(0xfa)             // STATICCALL
	push(0x60, 0x00)
	push(0x52) // MSTORE
	push(0x60, 0x20)
	push(0x60, 0x00)
	push(0xf3) // RETURN
	db.Accounts[caller] = &types.Account{Code: callerCode}

	tx := &types.Transaction{
		Caller:     sender,
		GasLimit:   300000,
		TransactTo: types.CallTo(caller),
	}
	res, err := evm.ExecuteTransaction(tx, &types.BlockEnvironment{GasLimit: 30_000_000, PrevRandao: &types.Word{}, BlobGas: &types.BlobGasParams{}})
	if err != nil {
		t.Fatalf("ExecuteTransaction error: %v", err)
	}
	if !res.Succeeded() {
		t.Fatalf("outer call status = %v, want success (it only forwards a failure flag)", res.Status)
	}
	if len(res.Output) != 32 || res.Output[31] != 0 {
		t.Errorf("output = %x, want word(0): the STATICCALL must report failure", res.Output)
	}
}
