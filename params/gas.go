package params

// Gas tier constants, named after the teacher's core/vm/gas.go tiering.
const (
	GasQuickStep   uint64 = 2
	GasFastestStep uint64 = 3
	GasFastStep    uint64 = 5
	GasMidStep     uint64 = 8
	GasSlowStep    uint64 = 10
	GasExtStep     uint64 = 20

	GasZero     uint64 = 0
	GasBase     uint64 = 2
	GasVeryLow  uint64 = 3
	GasLow      uint64 = 5
	GasMid      uint64 = 8
	GasHigh     uint64 = 10
	GasExtcode  uint64 = 700
	GasBalance  uint64 = 700
	GasSLoad    uint64 = 50
	GasJumpDest uint64 = 1
	GasSStoreSet      uint64 = 20000
	GasSStoreReset    uint64 = 5000
	GasSStoreClearRefund uint64 = 15000
	GasSStoreRefund   uint64 = 15000

	GasSelfDestruct uint64 = 0
	GasCreate       uint64 = 32000
	GasCreateData   uint64 = 200
	GasCall         uint64 = 40
	GasCallValue    uint64 = 9000
	GasCallStipend  uint64 = 2300
	GasNewAccount   uint64 = 25000
	GasExp          uint64 = 10
	GasExpByte      uint64 = 10 // pre-Spurious-Dragon
	GasExpByteEIP158 uint64 = 50
	GasMemory       uint64 = 3
	GasLog          uint64 = 375
	GasLogData      uint64 = 8
	GasLogTopic     uint64 = 375
	GasKeccak256       uint64 = 30
	GasKeccak256Word   uint64 = 6
	GasCopy         uint64 = 3
	GasBlockhash    uint64 = 20

	// Tangerine Whistle (EIP-150) re-pricing.
	GasExtcodeSizeEIP150  uint64 = 700
	GasExtcodeCopyEIP150  uint64 = 700
	GasExtcodeHashEIP1052 uint64 = 400
	GasBalanceEIP150      uint64 = 400
	GasSLoadEIP150        uint64 = 200
	GasCallEIP150         uint64 = 700
	GasExpByteEIP160      uint64 = 50

	// Istanbul (EIP-1884) re-pricing.
	GasSLoadEIP1884    uint64 = 800
	GasBalanceEIP1884  uint64 = 700
	GasExtcodeHashEIP1884 uint64 = 700

	// Berlin (EIP-2929) access-list accounting.
	ColdAccountAccessCostEIP2929 uint64 = 2600
	ColdSloadCostEIP2929         uint64 = 2100
	WarmStorageReadCostEIP2929   uint64 = 100

	SstoreSentryGasEIP2200 uint64 = 2300

	TxGas                     uint64 = 21000
	TxGasContractCreation     uint64 = 53000
	TxDataZeroGas             uint64 = 4
	TxDataNonZeroGasFrontier  uint64 = 68
	TxDataNonZeroGasEIP2028   uint64 = 16
	TxAccessListAddressGas    uint64 = 2400
	TxAccessListStorageKeyGas uint64 = 1900

	InitCodeWordGasEIP3860 uint64 = 2
	Create2WordGas         uint64 = 6
)
