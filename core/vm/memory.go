package vm

import "github.com/ethform/goevm/core/types"

// Memory is a growable byte buffer with an explicit stack of per-call
// context checkpoints, per spec.md §4.2. Grounded on the teacher's
// core/vm/memory.go flat buffer, extended with the checkpoint stack
// the teacher's single-context Memory lacks: each CALL/CREATE subframe
// gets its own addressable window via NewContext/FreeContext instead
// of a brand-new Memory value.
type Memory struct {
	store       []byte
	checkpoints []int
	limit       uint64
}

// NewMemory returns an empty Memory capped at limit bytes.
func NewMemory(limit uint64) *Memory {
	return &Memory{checkpoints: []int{0}, limit: limit}
}

// currentCheckpoint is the offset the active context's addressing
// starts from.
func (m *Memory) currentCheckpoint() int {
	return m.checkpoints[len(m.checkpoints)-1]
}

// Len returns the number of bytes addressable in the current context.
func (m *Memory) Len() int {
	return len(m.store) - m.currentCheckpoint()
}

// NewContext pushes the current length as a new checkpoint, opening a
// fresh addressable window for a nested frame.
func (m *Memory) NewContext() {
	m.checkpoints = append(m.checkpoints, len(m.store))
}

// FreeContext pops the most recent checkpoint and truncates the
// underlying buffer back to it.
func (m *Memory) FreeContext() {
	if len(m.checkpoints) <= 1 {
		return
	}
	cp := m.checkpoints[len(m.checkpoints)-1]
	m.checkpoints = m.checkpoints[:len(m.checkpoints)-1]
	m.store = m.store[:cp]
}

// GetSlice returns the region from the last checkpoint to the current
// length: the bytes in-frame instructions address starting at offset 0.
func (m *Memory) GetSlice() []byte {
	return m.store[m.currentCheckpoint():]
}

// Resize ensures the current context addresses at least newLen bytes,
// zero-extending as needed. Fails if checkpoint+newLen would exceed the
// memory limit.
func (m *Memory) Resize(newLen uint64) error {
	if newLen <= uint64(m.Len()) {
		return nil
	}
	abs := uint64(m.currentCheckpoint()) + newLen
	if abs > m.limit {
		return ErrMaxMemoryReached
	}
	if abs > uint64(len(m.store)) {
		grown := make([]byte, abs)
		copy(grown, m.store)
		m.store = grown
	}
	return nil
}

// Words returns the number of 32-byte words needed to address offset
// bytes of the current context — the unit memory-expansion gas is
// charged in.
func Words(bytes uint64) uint64 {
	return (bytes + 31) / 32
}

// Write copies data into the current context at offset.
func (m *Memory) Write(offset uint64, data []byte) {
	copy(m.GetSlice()[offset:], data)
}

// WriteByte writes a single byte at offset.
func (m *Memory) WriteByte(offset uint64, b byte) {
	m.GetSlice()[offset] = b
}

// WriteWord writes a big-endian 32-byte word at offset.
func (m *Memory) WriteWord(offset uint64, w *types.Word) {
	b := w.Bytes32()
	copy(m.GetSlice()[offset:], b[:])
}

// WriteInt writes n big-endian bytes of v (left-padded with zero) at
// offset; used for small fixed-width environment fields.
func (m *Memory) WriteInt(offset uint64, v uint64, n int) {
	slice := m.GetSlice()[offset : offset+uint64(n)]
	for i := n - 1; i >= 0; i-- {
		slice[i] = byte(v)
		v >>= 8
	}
}

// WordToInt reads 32 bytes big-endian starting at offset.
func (m *Memory) WordToInt(offset uint64) *types.Word {
	var w types.Word
	w.SetBytes(m.GetSlice()[offset : offset+32])
	return &w
}

// GetCopy returns a copy of length bytes starting at offset, following
// the resolved writeData semantics from spec.md §9: callers must
// Resize first; this only reads within the current in-bounds region.
func (m *Memory) GetCopy(offset, length uint64) []byte {
	if length == 0 {
		return nil
	}
	out := make([]byte, length)
	copy(out, m.GetSlice()[offset:offset+length])
	return out
}

// Set copies min(len(data)-dataOffset, length) bytes from data starting
// at dataOffset into memory at offset, zero-filling the remainder, per
// spec.md §9's resolution of the writeData ambiguity.
func (m *Memory) Set(offset, length, dataOffset uint64, data []byte) {
	if length == 0 {
		return
	}
	dst := m.GetSlice()[offset : offset+length]
	if dataOffset >= uint64(len(data)) {
		for i := range dst {
			dst[i] = 0
		}
		return
	}
	avail := uint64(len(data)) - dataOffset
	n := length
	if avail < n {
		n = avail
	}
	copy(dst, data[dataOffset:dataOffset+n])
	for i := n; i < length; i++ {
		dst[i] = 0
	}
}
