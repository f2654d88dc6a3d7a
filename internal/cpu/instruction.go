package cpu

// InstructionSize is the size of every Chip16 instruction in bytes.
const InstructionSize = 4

// Instruction contains the decoded fields of a 4 byte instruction word.
type Instruction struct {
	Opcode byte
	X      byte // low nibble of the YX byte
	Y      byte // high nibble of the YX byte
	YX     byte
	LL     byte
	HH     byte
	HHLL   uint16
}

// Decode reads the instruction at the given address. The bytes are read
// one at a time so that an instruction at the end of memory wraps to 0.
func Decode(mem *Memory, address uint16) Instruction {
	yx := mem.Read8(address + 1)
	ll := mem.Read8(address + 2)
	hh := mem.Read8(address + 3)

	return Instruction{
		Opcode: mem.Read8(address),
		X:      yx & 0x0F,
		Y:      yx >> 4,
		YX:     yx,
		LL:     ll,
		HH:     hh,
		HHLL:   uint16(hh)<<8 | uint16(ll),
	}
}

// Z returns the target register of three-register forms.
func (i Instruction) Z() byte {
	return i.LL & 0x0F
}

// N returns the 4-bit immediate of shift and BGC instructions.
func (i Instruction) N() byte {
	return i.LL & 0x0F
}

// Condition returns the condition code of conditional jumps and calls.
func (i Instruction) Condition() Condition {
	return Condition(i.X)
}

// Bytes returns the raw encoding of the instruction.
func (i Instruction) Bytes() [InstructionSize]byte {
	return [InstructionSize]byte{i.Opcode, i.YX, i.LL, i.HH}
}
