package cpu

// Operands describes the operand layout of an instruction, used to format
// it in assembly syntax.
type Operands int

// Operand layouts.
const (
	NoOperands       Operands = iota
	OperandsN                 // BGC N
	OperandsHHLL              // JMP HHLL
	OperandsRX                // PUSH RX
	OperandsRXHHLL            // LDI RX, HHLL
	OperandsSPHHLL            // LDI SP, HHLL
	OperandsRXRY              // ADD RX, RY
	OperandsRXRYRZ            // ADD RX, RY, RZ
	OperandsRXRYHHLL          // JME RX, RY, HHLL
	OperandsRXN               // SHL RX, N
	OperandsFlip              // FLIP H, V
	OperandsSound             // SNG AD, VTSR
)

// Flow describes how an instruction affects the program counter.
type Flow int

// Control flow kinds.
const (
	FlowNext     Flow = iota // continues with the next instruction
	FlowJump                 // unconditional jump to HHLL
	FlowBranch               // conditional jump to HHLL
	FlowCall                 // call of HHLL, unconditional or conditional
	FlowReturn               // return from a call
	FlowIndirect             // jump or call to a register value
)

type handler func(c *CPU, ins Instruction) error

// Opcode describes a single opcode of the instruction set.
type Opcode struct {
	Code        byte
	Name        string
	Operands    Operands
	Flow        Flow
	Conditional bool // Name is a prefix completed by the condition code in X

	execute handler
}

// Opcode bytes.
const (
	NOP     = 0x00
	CLS     = 0x01
	VBLNK   = 0x02
	BGC     = 0x03
	SPR     = 0x04
	DRWI    = 0x05
	DRWR    = 0x06
	RND     = 0x07
	FLIP    = 0x08
	SND0    = 0x09
	SND1    = 0x0A
	SND2    = 0x0B
	SND3    = 0x0C
	SNP     = 0x0D
	SNG     = 0x0E
	JMP     = 0x10
	JMC     = 0x11
	JX      = 0x12
	JME     = 0x13
	CALL    = 0x14
	RET     = 0x15
	JMPR    = 0x16
	CX      = 0x17
	CALLR   = 0x18
	LDIR    = 0x20
	LDISP   = 0x21
	LDMI    = 0x22
	LDMR    = 0x23
	MOV     = 0x24
	STMI    = 0x30
	STMR    = 0x31
	ADDI    = 0x40
	ADD     = 0x41
	ADD3    = 0x42
	SUBI    = 0x50
	SUB     = 0x51
	SUB3    = 0x52
	CMPI    = 0x53
	CMP     = 0x54
	ANDI    = 0x60
	AND     = 0x61
	AND3    = 0x62
	TSTI    = 0x63
	TST     = 0x64
	ORI     = 0x70
	OR      = 0x71
	OR3     = 0x72
	XORI    = 0x80
	XOR     = 0x81
	XOR3    = 0x82
	MULI    = 0x90
	MUL     = 0x91
	MUL3    = 0x92
	DIVI    = 0xA0
	DIV     = 0xA1
	DIV3    = 0xA2
	MODI    = 0xA3
	MOD     = 0xA4
	MOD3    = 0xA5
	SHLN    = 0xB0
	SHRN    = 0xB1
	SARN    = 0xB2
	SHLR    = 0xB3
	SHRR    = 0xB4
	SARR    = 0xB5
	PUSH    = 0xC0
	POP     = 0xC1
	PUSHALL = 0xC2
	POPALL  = 0xC3
	PUSHF   = 0xC4
	POPF    = 0xC5
	PALI    = 0xD0
	PALR    = 0xD1
	NOTI    = 0xE0
	NOT     = 0xE1
	NOTR    = 0xE2
	NEGI    = 0xE3
	NEG     = 0xE4
	NEGR    = 0xE5
)

var opcodeList = []Opcode{
	{Code: NOP, Name: "NOP", execute: (*CPU).nop},
	{Code: CLS, Name: "CLS", execute: (*CPU).cls},
	{Code: VBLNK, Name: "VBLNK", execute: (*CPU).vblnk},
	{Code: BGC, Name: "BGC", Operands: OperandsN, execute: (*CPU).bgc},
	{Code: SPR, Name: "SPR", Operands: OperandsHHLL, execute: (*CPU).spr},
	{Code: DRWI, Name: "DRW", Operands: OperandsRXRYHHLL, execute: (*CPU).drwImmediate},
	{Code: DRWR, Name: "DRW", Operands: OperandsRXRYRZ, execute: (*CPU).drwRegister},
	{Code: RND, Name: "RND", Operands: OperandsRXHHLL, execute: (*CPU).rnd},
	{Code: FLIP, Name: "FLIP", Operands: OperandsFlip, execute: (*CPU).flip},
	{Code: SND0, Name: "SND0", execute: (*CPU).snd0},
	{Code: SND1, Name: "SND1", Operands: OperandsHHLL, execute: (*CPU).snd1},
	{Code: SND2, Name: "SND2", Operands: OperandsHHLL, execute: (*CPU).snd2},
	{Code: SND3, Name: "SND3", Operands: OperandsHHLL, execute: (*CPU).snd3},
	{Code: SNP, Name: "SNP", Operands: OperandsRXHHLL, execute: (*CPU).snp},
	{Code: SNG, Name: "SNG", Operands: OperandsSound, execute: (*CPU).sng},

	{Code: JMP, Name: "JMP", Operands: OperandsHHLL, Flow: FlowJump, execute: (*CPU).jmp},
	{Code: JMC, Name: "JMC", Operands: OperandsHHLL, Flow: FlowBranch, execute: (*CPU).jmc},
	{Code: JX, Name: "J", Operands: OperandsHHLL, Flow: FlowBranch, Conditional: true, execute: (*CPU).jx},
	{Code: JME, Name: "JME", Operands: OperandsRXRYHHLL, Flow: FlowBranch, execute: (*CPU).jme},
	{Code: CALL, Name: "CALL", Operands: OperandsHHLL, Flow: FlowCall, execute: (*CPU).callImmediate},
	{Code: RET, Name: "RET", Flow: FlowReturn, execute: (*CPU).ret},
	{Code: JMPR, Name: "JMP", Operands: OperandsRX, Flow: FlowIndirect, execute: (*CPU).jmpRegister},
	{Code: CX, Name: "C", Operands: OperandsHHLL, Flow: FlowCall, Conditional: true, execute: (*CPU).cx},
	{Code: CALLR, Name: "CALL", Operands: OperandsRX, Flow: FlowIndirect, execute: (*CPU).callRegister},

	{Code: LDIR, Name: "LDI", Operands: OperandsRXHHLL, execute: (*CPU).ldi},
	{Code: LDISP, Name: "LDI", Operands: OperandsSPHHLL, execute: (*CPU).ldiSP},
	{Code: LDMI, Name: "LDM", Operands: OperandsRXHHLL, execute: (*CPU).ldmImmediate},
	{Code: LDMR, Name: "LDM", Operands: OperandsRXRY, execute: (*CPU).ldmRegister},
	{Code: MOV, Name: "MOV", Operands: OperandsRXRY, execute: (*CPU).mov},
	{Code: STMI, Name: "STM", Operands: OperandsRXHHLL, execute: (*CPU).stmImmediate},
	{Code: STMR, Name: "STM", Operands: OperandsRXRY, execute: (*CPU).stmRegister},

	{Code: ADDI, Name: "ADDI", Operands: OperandsRXHHLL, execute: immediate(add)},
	{Code: ADD, Name: "ADD", Operands: OperandsRXRY, execute: register(add)},
	{Code: ADD3, Name: "ADD", Operands: OperandsRXRYRZ, execute: threeRegister(add)},
	{Code: SUBI, Name: "SUBI", Operands: OperandsRXHHLL, execute: immediate(sub)},
	{Code: SUB, Name: "SUB", Operands: OperandsRXRY, execute: register(sub)},
	{Code: SUB3, Name: "SUB", Operands: OperandsRXRYRZ, execute: threeRegister(sub)},
	{Code: CMPI, Name: "CMPI", Operands: OperandsRXHHLL, execute: compareImmediate(sub)},
	{Code: CMP, Name: "CMP", Operands: OperandsRXRY, execute: compareRegister(sub)},
	{Code: ANDI, Name: "ANDI", Operands: OperandsRXHHLL, execute: immediate(and)},
	{Code: AND, Name: "AND", Operands: OperandsRXRY, execute: register(and)},
	{Code: AND3, Name: "AND", Operands: OperandsRXRYRZ, execute: threeRegister(and)},
	{Code: TSTI, Name: "TSTI", Operands: OperandsRXHHLL, execute: compareImmediate(and)},
	{Code: TST, Name: "TST", Operands: OperandsRXRY, execute: compareRegister(and)},
	{Code: ORI, Name: "ORI", Operands: OperandsRXHHLL, execute: immediate(or)},
	{Code: OR, Name: "OR", Operands: OperandsRXRY, execute: register(or)},
	{Code: OR3, Name: "OR", Operands: OperandsRXRYRZ, execute: threeRegister(or)},
	{Code: XORI, Name: "XORI", Operands: OperandsRXHHLL, execute: immediate(xor)},
	{Code: XOR, Name: "XOR", Operands: OperandsRXRY, execute: register(xor)},
	{Code: XOR3, Name: "XOR", Operands: OperandsRXRYRZ, execute: threeRegister(xor)},
	{Code: MULI, Name: "MULI", Operands: OperandsRXHHLL, execute: immediate(mul)},
	{Code: MUL, Name: "MUL", Operands: OperandsRXRY, execute: register(mul)},
	{Code: MUL3, Name: "MUL", Operands: OperandsRXRYRZ, execute: threeRegister(mul)},
	{Code: DIVI, Name: "DIVI", Operands: OperandsRXHHLL, execute: immediate(div)},
	{Code: DIV, Name: "DIV", Operands: OperandsRXRY, execute: register(div)},
	{Code: DIV3, Name: "DIV", Operands: OperandsRXRYRZ, execute: threeRegister(div)},
	{Code: MODI, Name: "MODI", Operands: OperandsRXHHLL, execute: immediate(mod)},
	{Code: MOD, Name: "MOD", Operands: OperandsRXRY, execute: register(mod)},
	{Code: MOD3, Name: "MOD", Operands: OperandsRXRYRZ, execute: threeRegister(mod)},

	{Code: SHLN, Name: "SHL", Operands: OperandsRXN, execute: shiftImmediate(shl)},
	{Code: SHRN, Name: "SHR", Operands: OperandsRXN, execute: shiftImmediate(shr)},
	{Code: SARN, Name: "SAR", Operands: OperandsRXN, execute: shiftImmediate(sar)},
	{Code: SHLR, Name: "SHL", Operands: OperandsRXRY, execute: shiftRegister(shl)},
	{Code: SHRR, Name: "SHR", Operands: OperandsRXRY, execute: shiftRegister(shr)},
	{Code: SARR, Name: "SAR", Operands: OperandsRXRY, execute: shiftRegister(sar)},

	{Code: PUSH, Name: "PUSH", Operands: OperandsRX, execute: (*CPU).pushRegister},
	{Code: POP, Name: "POP", Operands: OperandsRX, execute: (*CPU).popRegister},
	{Code: PUSHALL, Name: "PUSHALL", execute: (*CPU).pushAll},
	{Code: POPALL, Name: "POPALL", execute: (*CPU).popAll},
	{Code: PUSHF, Name: "PUSHF", execute: (*CPU).pushFlags},
	{Code: POPF, Name: "POPF", execute: (*CPU).popFlags},

	{Code: PALI, Name: "PAL", Operands: OperandsHHLL, execute: (*CPU).palImmediate},
	{Code: PALR, Name: "PAL", Operands: OperandsRX, execute: (*CPU).palRegister},

	{Code: NOTI, Name: "NOTI", Operands: OperandsRXHHLL, execute: unaryImmediate(not)},
	{Code: NOT, Name: "NOT", Operands: OperandsRX, execute: unarySelf(not)},
	{Code: NOTR, Name: "NOT", Operands: OperandsRXRY, execute: unaryRegister(not)},
	{Code: NEGI, Name: "NEGI", Operands: OperandsRXHHLL, execute: unaryImmediate(neg)},
	{Code: NEG, Name: "NEG", Operands: OperandsRX, execute: unarySelf(neg)},
	{Code: NEGR, Name: "NEG", Operands: OperandsRXRY, execute: unaryRegister(neg)},
}

// opcodes maps every opcode byte to its definition, nil for invalid opcodes.
var opcodes = buildOpcodeTable(opcodeList)

func buildOpcodeTable(list []Opcode) [256]*Opcode {
	var table [256]*Opcode
	for i := range list {
		op := &list[i]
		if table[op.Code] != nil {
			panic("duplicate opcode " + op.Name)
		}
		table[op.Code] = op
	}
	return table
}

// Lookup returns the opcode definition for the given opcode byte.
func Lookup(code byte) (*Opcode, bool) {
	op := opcodes[code]
	return op, op != nil
}

// Opcodes returns all defined opcodes ordered by opcode byte.
func Opcodes() []*Opcode {
	result := make([]*Opcode, 0, len(opcodeList))
	for _, op := range opcodes {
		if op != nil {
			result = append(result, op)
		}
	}
	return result
}
