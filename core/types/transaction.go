package types

// TxType distinguishes the transaction envelope shapes spec.md §6
// requires the validator to branch on.
type TxType int

const (
	LegacyTxType TxType = iota
	BerlinTxType
	LondonTxType
	CancunTxType
)

// TransactTo selects between calling an existing address and deploying
// new code via CREATE.
type TransactToKind int

const (
	TransactCall TransactToKind = iota
	TransactCreate
)

type TransactTo struct {
	Kind TransactToKind
	Addr Address // meaningful only when Kind == TransactCall
}

func CallTo(addr Address) TransactTo { return TransactTo{Kind: TransactCall, Addr: addr} }
func CreateTo() TransactTo           { return TransactTo{Kind: TransactCreate} }

// OptimismFields carries the optional OP-stack system-transaction
// metadata spec.md's transaction envelope reserves a slot for; nil
// unless the chain configuration enables it.
type OptimismFields struct {
	SourceHash   Hash
	Mint         *Word
	IsSystemTx   bool
	EnvelopedTx  []byte
}

// Transaction is the in-memory transaction envelope record spec.md §6
// defines; it is not a wire format, only what the validator and driver
// consume.
type Transaction struct {
	TxType TxType

	Caller     Address
	GasLimit   uint64
	GasPrice   Word
	TransactTo TransactTo
	Value      Word
	Data       []byte

	Nonce   *uint64
	ChainID *uint64

	AccessList AccessList

	GasPriorityFee *Word

	BlobHashes        []Hash
	MaxFeePerBlobGas  *Word

	Optimism *OptimismFields
}

// IsCreate reports whether this transaction deploys new code.
func (t *Transaction) IsCreate() bool { return t.TransactTo.Kind == TransactCreate }
