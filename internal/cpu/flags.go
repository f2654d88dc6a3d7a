package cpu

// Bits of the packed flags byte as stored by PUSHF and loaded by POPF.
const (
	flagBitZero     = 1 << 0
	flagBitNegative = 1 << 1
	flagBitOverflow = 1 << 6
	flagBitCarry    = 1 << 7
)

// Flags contains the processor status flags.
type Flags struct {
	Carry    bool
	Zero     bool
	Overflow bool
	Negative bool
}

// Pack encodes the flags into a single byte.
func (f Flags) Pack() byte {
	var b byte
	if f.Carry {
		b |= flagBitCarry
	}
	if f.Overflow {
		b |= flagBitOverflow
	}
	if f.Negative {
		b |= flagBitNegative
	}
	if f.Zero {
		b |= flagBitZero
	}
	return b
}

// Unpack sets all flags from a packed flags byte. Unused bits are ignored.
func (f *Flags) Unpack(b byte) {
	f.Carry = b&flagBitCarry != 0
	f.Overflow = b&flagBitOverflow != 0
	f.Negative = b&flagBitNegative != 0
	f.Zero = b&flagBitZero != 0
}

// setZN sets zero and negative from a 16-bit result.
func (f *Flags) setZN(result uint16) {
	f.Zero = result == 0
	f.Negative = result&0x8000 != 0
}

// Condition is the 4-bit condition code used by conditional jumps and calls.
type Condition uint8

// Condition codes.
const (
	CondZ Condition = iota
	CondNZ
	CondN
	CondNN
	CondP
	CondO
	CondNO
	CondA
	CondAE
	CondB
	CondBE
	CondG
	CondGE
	CondL
	CondLE
	CondReserved
)

var conditionNames = [16]string{
	"Z", "NZ", "N", "NN", "P", "O", "NO", "A",
	"AE", "B", "BE", "G", "GE", "L", "LE", "RES",
}

// String returns the mnemonic suffix of the condition, for example "NZ".
func (c Condition) String() string {
	return conditionNames[c&0x0F]
}

// Check returns whether the condition holds for the current flags.
// The reserved code 15 never holds.
func (f Flags) Check(cond Condition) bool {
	switch cond & 0x0F {
	case CondZ:
		return f.Zero
	case CondNZ:
		return !f.Zero
	case CondN:
		return f.Negative
	case CondNN:
		return !f.Negative
	case CondP:
		return !f.Negative && !f.Zero
	case CondO:
		return f.Overflow
	case CondNO:
		return !f.Overflow
	case CondA:
		return f.Carry && !f.Zero
	case CondAE:
		return f.Carry || f.Zero
	case CondB:
		return !f.Carry
	case CondBE:
		return !f.Carry || f.Zero
	case CondG:
		return !f.Zero && f.Overflow == f.Negative
	case CondGE:
		return f.Overflow == f.Negative
	case CondL:
		return f.Overflow != f.Negative
	case CondLE:
		return f.Zero || f.Overflow != f.Negative
	default:
		return false
	}
}
