package state

import "github.com/ethform/goevm/core/types"

// Database is the abstract backing store the Journaled State falls
// through to on a cache miss, per spec.md §4.10. A production driver
// backs this with a real trie/db; tests back it with an in-memory map.
type Database interface {
	Basic(addr types.Address) (*types.Account, bool)
	CodeByHash(hash types.Hash) ([]byte, bool)
	Storage(addr types.Address, key *types.Word) types.Word
	BlockHash(number uint64) types.Hash
}

// MemDatabase is a Database backed by plain maps, grounded on the
// teacher's core/state/memory_statedb.go in-memory backing store.
type MemDatabase struct {
	Accounts map[types.Address]*types.Account
	Codes    map[types.Hash][]byte
	Storages map[types.Address]map[types.Word]types.Word
	Headers  map[uint64]types.Hash
}

// NewMemDatabase returns an empty in-memory Database.
func NewMemDatabase() *MemDatabase {
	return &MemDatabase{
		Accounts: make(map[types.Address]*types.Account),
		Codes:    make(map[types.Hash][]byte),
		Storages: make(map[types.Address]map[types.Word]types.Word),
		Headers:  make(map[uint64]types.Hash),
	}
}

func (d *MemDatabase) Basic(addr types.Address) (*types.Account, bool) {
	a, ok := d.Accounts[addr]
	return a, ok
}

func (d *MemDatabase) CodeByHash(hash types.Hash) ([]byte, bool) {
	c, ok := d.Codes[hash]
	return c, ok
}

func (d *MemDatabase) Storage(addr types.Address, key *types.Word) types.Word {
	slots, ok := d.Storages[addr]
	if !ok {
		return types.Word{}
	}
	return slots[*key]
}

func (d *MemDatabase) BlockHash(number uint64) types.Hash {
	return d.Headers[number]
}
