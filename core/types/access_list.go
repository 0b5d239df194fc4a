package types

// AccessTuple is a single EIP-2930 access-list entry: an address and
// the storage keys within it to pre-warm.
type AccessTuple struct {
	Address     Address
	StorageKeys []Word
}

// AccessList is the full EIP-2930 access list carried by a transaction.
type AccessList []AccessTuple

// Gas returns the surcharge this access list owes under Berlin pricing:
// TxAccessListAddressGas per address plus TxAccessListStorageKeyGas per
// storage key, per spec.md §4.6.
func (al AccessList) Gas(addressGas, storageKeyGas uint64) uint64 {
	var total uint64
	for _, tuple := range al {
		total += addressGas
		total += storageKeyGas * uint64(len(tuple.StorageKeys))
	}
	return total
}
