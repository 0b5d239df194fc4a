package vm

// Bytecode is the tagged variant spec.md §3/§4.1 describes: either raw
// bytes validated on the fly, or an analyzed form carrying a padded
// byte buffer and a JUMPDEST bit-vector built in a single forward
// scan. Grounded on the teacher's core/vm/contract.go analyzeJumpdests,
// generalized from its map[uint64]bool to a true bit-vector with the
// 33-byte trailing pad spec.md requires (resolving the Open Question
// in spec.md §9 on bit indexing: bit i set iff offset i is a valid
// JUMPDEST, bounds-checked i < original_length).
type Bytecode struct {
	raw bool

	paddedBytes    []byte
	originalLength int
	jumpBits       []byte // bitset, one bit per padded-byte offset
}

// bytecodePad is the number of trailing zero bytes appended after
// analysis: enough to let a PUSH32 at the very end read in-bounds and
// to guarantee a terminating STOP.
const bytecodePad = 33

// NewRawBytecode wraps code without analysis; is_valid_jump falls back
// to an on-the-fly scan.
func NewRawBytecode(code []byte) *Bytecode {
	return &Bytecode{raw: true, paddedBytes: code, originalLength: len(code)}
}

// Analyze pads code with 33 trailing zero bytes and builds the
// JUMPDEST bit-vector in one forward scan, skipping PUSH immediates.
// Analysis is idempotent: re-analyzing an already-analyzed Bytecode's
// original bytes yields bit-identical output.
func Analyze(code []byte) *Bytecode {
	n := len(code)
	padded := make([]byte, n+bytecodePad)
	copy(padded, code)

	bits := make([]byte, (len(padded)+7)/8)
	for i := 0; i < n; {
		op := OpCode(code[i])
		if op == JUMPDEST {
			bits[i/8] |= 1 << (uint(i) % 8)
			i++
			continue
		}
		if op.IsPush() {
			i += 1 + op.PushSize()
			continue
		}
		i++
	}

	return &Bytecode{
		paddedBytes:    padded,
		originalLength: n,
		jumpBits:       bits,
	}
}

// Bytes returns the padded byte buffer the interpreter fetches opcodes
// from.
func (b *Bytecode) Bytes() []byte { return b.paddedBytes }

// Len returns the original, unpadded code length.
func (b *Bytecode) Len() int { return b.originalLength }

// IsValidJump reports whether target is a legal JUMP/JUMPI destination:
// in-bounds and a JUMPDEST not inside a preceding PUSH's immediate
// window.
func (b *Bytecode) IsValidJump(target uint64) bool {
	if target >= uint64(b.originalLength) {
		return false
	}
	if b.raw {
		return b.scanValidJump(target)
	}
	idx := target / 8
	if int(idx) >= len(b.jumpBits) {
		return false
	}
	return b.jumpBits[idx]&(1<<(target%8)) != 0
}

func (b *Bytecode) scanValidJump(target uint64) bool {
	code := b.paddedBytes
	for i := uint64(0); i < target; {
		op := OpCode(code[i])
		if op.IsPush() {
			i += uint64(1 + op.PushSize())
			continue
		}
		i++
	}
	return OpCode(code[target]) == JUMPDEST
}

// AsAnalyzed returns an analyzed copy of b, analyzing it now if it was
// raw. Used when config.PerformAnalysis requests analysis at load time.
func (b *Bytecode) AsAnalyzed() *Bytecode {
	if !b.raw {
		return b
	}
	return Analyze(b.paddedBytes[:b.originalLength])
}
