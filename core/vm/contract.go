package vm

import "github.com/ethform/goevm/core/types"

// Contract is the executing code context a frame's interpreter runs
// against: which address's code is running, who called it, under
// whose storage address, with what value and input. Grounded on the
// teacher's core/vm/contract.go Contract struct.
type Contract struct {
	Caller  types.Address
	Address types.Address // storage/self address (differs from CodeAddress under DELEGATECALL/CALLCODE)
	CodeAddress types.Address

	Code  *Bytecode
	Value types.Word
	Input []byte
}

// NewContract returns a Contract ready to execute code on behalf of
// address, invoked by caller, carrying value and input.
func NewContract(caller, address, codeAddress types.Address, code *Bytecode, value types.Word, input []byte) *Contract {
	return &Contract{
		Caller:      caller,
		Address:     address,
		CodeAddress: codeAddress,
		Code:        code,
		Value:       value,
		Input:       input,
	}
}

// IsValidJump delegates to the underlying analyzed/raw bytecode.
func (c *Contract) IsValidJump(dest uint64) bool {
	return c.Code.IsValidJump(dest)
}
