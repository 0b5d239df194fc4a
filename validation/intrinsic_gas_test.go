package validation

import (
	"testing"

	"github.com/ethform/goevm/core/types"
	"github.com/ethform/goevm/params"
)

func TestIntrinsicGasPlainCall(t *testing.T) {
	tx := &types.Transaction{TransactTo: types.CallTo(types.Address{})}
	got, err := IntrinsicGas(tx, params.Cancun)
	if err != nil {
		t.Fatalf("IntrinsicGas error: %v", err)
	}
	if got != params.TxGas {
		t.Errorf("IntrinsicGas(no calldata) = %d, want %d", got, params.TxGas)
	}
}

func TestIntrinsicGasCountsZeroAndNonZeroBytes(t *testing.T) {
	tx := &types.Transaction{
		TransactTo: types.CallTo(types.Address{}),
		Data:       []byte{0x00, 0x00, 0x01, 0x02},
	}
	got, err := IntrinsicGas(tx, params.Frontier)
	if err != nil {
		t.Fatalf("IntrinsicGas error: %v", err)
	}
	want := params.TxGas + 2*params.TxDataZeroGas + 2*params.TxDataNonZeroGasFrontier
	if got != want {
		t.Errorf("IntrinsicGas = %d, want %d", got, want)
	}
}

func TestIntrinsicGasEIP2028NonZeroByteIsCheaper(t *testing.T) {
	tx := &types.Transaction{TransactTo: types.CallTo(types.Address{}), Data: []byte{0x01}}
	pre, _ := IntrinsicGas(tx, params.Homestead)
	post, _ := IntrinsicGas(tx, params.Istanbul)
	if post >= pre {
		t.Errorf("EIP-2028 must make non-zero calldata cheaper: pre=%d post=%d", pre, post)
	}
}

func TestIntrinsicGasCreateSurcharge(t *testing.T) {
	tx := &types.Transaction{TransactTo: types.CreateTo()}
	got, err := IntrinsicGas(tx, params.Frontier)
	if err != nil {
		t.Fatalf("IntrinsicGas error: %v", err)
	}
	if got != params.TxGas+params.GasCreate {
		t.Errorf("IntrinsicGas(create, no data) = %d, want %d", got, params.TxGas+params.GasCreate)
	}
}

func TestIntrinsicGasShanghaiInitCodeWordCost(t *testing.T) {
	tx := &types.Transaction{TransactTo: types.CreateTo(), Data: make([]byte, 33)}
	pre, _ := IntrinsicGas(tx, params.London)
	post, _ := IntrinsicGas(tx, params.Shanghai)
	if post <= pre {
		t.Errorf("Shanghai must add EIP-3860 init-code word cost: pre=%d post=%d", pre, post)
	}
}

func TestIntrinsicGasAccessListSurcharge(t *testing.T) {
	tx := &types.Transaction{
		TransactTo: types.CallTo(types.Address{}),
		AccessList: types.AccessList{
			{Address: types.Address{1}, StorageKeys: []types.Word{{}, {}}},
		},
	}
	got, err := IntrinsicGas(tx, params.Berlin)
	if err != nil {
		t.Fatalf("IntrinsicGas error: %v", err)
	}
	want := params.TxGas + params.TxAccessListAddressGas + 2*params.TxAccessListStorageKeyGas
	if got != want {
		t.Errorf("IntrinsicGas with access list = %d, want %d", got, want)
	}
}
