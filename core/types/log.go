package types

// Log is an event record emitted by LOGn. Grounded on the teacher's
// core/types/log.go Log struct, trimmed to the fields the interpreter
// itself produces (block/tx indexing metadata belongs to a layer this
// module does not implement).
type Log struct {
	Address Address
	Topics  []Hash
	Data    []byte
}

// bloom9 computes the 3-bits-per-item bloom contribution of b and ORs
// it into the target bloom filter, following the classic Ethereum
// bloom construction (3 positions from a Keccak256 digest of b).
func bloom9(b []byte, keccak func([]byte) []byte, target *Bloom) {
	hash := keccak(b)
	for i := 0; i < 3; i++ {
		bit := (uint(hash[i*2])<<8 | uint(hash[i*2+1])) & 2047
		target[BloomLength-1-bit/8] |= 1 << (bit % 8)
	}
}

// LogsBloom folds every log's address and topics into a single Bloom
// filter, used to let callers cheaply pre-filter for logs of interest.
func LogsBloom(logs []*Log, keccak func([]byte) []byte) Bloom {
	var b Bloom
	for _, l := range logs {
		bloom9(l.Address.Bytes(), keccak, &b)
		for _, t := range l.Topics {
			bloom9(t.Bytes(), keccak, &b)
		}
	}
	return b
}
