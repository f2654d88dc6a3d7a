package cpu

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newTestCPU(t *testing.T) (*CPU, *mockGPU, *mockSPU, *mockRNG) {
	t.Helper()
	gpu := &mockGPU{}
	spu := &mockSPU{}
	rng := &mockRNG{}
	c := New(log.NewTestLogger(t), Dependencies{GPU: gpu, SPU: spu, RNG: rng})
	return c, gpu, spu, rng
}

// writeInstruction stores an instruction in OP YX LL HH byte order.
func writeInstruction(c *CPU, address uint16, opcode, yx, ll, hh byte) {
	c.Memory().Load(address, []byte{opcode, yx, ll, hh})
}

func step(t *testing.T, c *CPU) {
	t.Helper()
	assert.NoError(t, c.Step())
}

func TestNew(t *testing.T) {
	c, _, _, _ := newTestCPU(t)

	assert.Equal(t, uint16(StackStart), c.SP)
	assert.Equal(t, uint16(0), c.PC)
	assert.Equal(t, uint64(0), c.Cycles)
	assert.Equal(t, Flags{}, c.Flags)
	assert.Equal(t, [RegisterCount]uint16{}, c.R)
}

func TestCPU_Registers(t *testing.T) {
	c, _, _, _ := newTestCPU(t)

	c.PC = 0xCAFE
	c.SP = 0xCAFE
	assert.Equal(t, uint16(0xCAFE), c.PC)
	assert.Equal(t, uint16(0xCAFE), c.SP)

	for i := range c.R {
		c.R[i] = 0x00FA
	}
	for i := range c.R {
		assert.Equal(t, uint16(0x00FA), c.R[i])
	}

	value := 0x1FFFF
	c.R[0xF] = uint16(value)
	assert.Equal(t, uint16(0xFFFF), c.R[0xF])
}

func TestCPU_Reset(t *testing.T) {
	c, _, _, _ := newTestCPU(t)
	c.R[3] = 7
	c.PC = 0x100
	c.SP = 0x200
	c.Carry = true
	c.Cycles = 10
	c.Write8(0x1234, 0xFF)

	c.Reset()
	assert.Equal(t, uint16(0), c.R[3])
	assert.Equal(t, uint16(0), c.PC)
	assert.Equal(t, uint16(StackStart), c.SP)
	assert.False(t, c.Carry)
	assert.Equal(t, uint64(0), c.Cycles)
	assert.Equal(t, byte(0), c.Read8(0x1234))
}

func TestStep_AdvancesPCAndCycles(t *testing.T) {
	c, _, _, _ := newTestCPU(t)
	writeInstruction(c, 0x0000, ADDI, 0x01, 0x03, 0x00)
	c.R[1] = 3

	step(t, c)
	assert.Equal(t, uint16(6), c.R[1])
	assert.Equal(t, uint16(4), c.PC)
	assert.Equal(t, uint64(1), c.Cycles)

	step(t, c) // NOP
	assert.Equal(t, uint16(8), c.PC)
	assert.Equal(t, uint64(2), c.Cycles)
}

func TestStep_InvalidOpcode(t *testing.T) {
	c, _, _, _ := newTestCPU(t)
	c.PC = 0x0100
	writeInstruction(c, 0x0100, 0xFF, 0x00, 0x00, 0x00)

	err := c.Step()
	assert.True(t, errors.Is(err, ErrInvalidOpcode))
	assert.ErrorContains(t, err, "0xFF")
	assert.Equal(t, uint16(0x0100), c.PC)
	assert.Equal(t, uint64(1), c.Cycles)
}

func TestStep_DivisionByZero(t *testing.T) {
	tests := []struct {
		name   string
		opcode byte
		ll     byte
	}{
		{"DIVI", DIVI, 0x00},
		{"DIV", DIV, 0x00},
		{"DIV3", DIV3, 0x03},
		{"MODI", MODI, 0x00},
		{"MOD", MOD, 0x00},
		{"MOD3", MOD3, 0x03},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _, _ := newTestCPU(t)
			writeInstruction(c, 0x0000, tt.opcode, 0x21, tt.ll, 0x00)
			c.R[1] = 0x1234
			c.R[3] = 0x5678
			c.Negative = true

			err := c.Step()
			assert.True(t, errors.Is(err, ErrDivisionByZero))
			assert.Equal(t, uint16(0x1234), c.R[1])
			assert.Equal(t, uint16(0x5678), c.R[3])
			assert.True(t, c.Negative)
			assert.Equal(t, uint16(0), c.PC)
		})
	}
}

func TestStep_MissingDevice(t *testing.T) {
	opcodes := []byte{CLS, VBLNK, BGC, SPR, DRWI, DRWR, RND, FLIP, SND0, SND1, SND2, SND3, SNP, SNG, PALI, PALR}

	for _, opcode := range opcodes {
		c := New(log.NewTestLogger(t), Dependencies{})
		writeInstruction(c, 0x0000, opcode, 0x00, 0x00, 0x00)

		err := c.Step()
		assert.True(t, errors.Is(err, ErrNoDevice), "opcode %02X", opcode)
		assert.Equal(t, uint16(0), c.PC)
	}
}

func TestStep_PeripheralErrorPropagates(t *testing.T) {
	errDevice := errors.New("device failure")

	tests := []struct {
		name   string
		opcode byte
	}{
		{"DRW HHLL", DRWI},
		{"DRW RZ", DRWR},
		{"SND0", SND0},
		{"SND1", SND1},
		{"SND2", SND2},
		{"SND3", SND3},
		{"SNP", SNP},
		{"SNG", SNG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, gpu, spu, _ := newTestCPU(t)
			gpu.drawErr = errDevice
			spu.err = errDevice
			writeInstruction(c, 0x0000, tt.opcode, 0x12, 0x21, 0x42)

			err := c.Step()
			assert.True(t, errors.Is(err, errDevice))
			// the device error is wrapped once with the instruction context
			assert.True(t, errors.Unwrap(err) == errDevice)
			assert.ErrorContains(t, err, "at address 0x0000")
			assert.Equal(t, uint16(0), c.PC)
		})
	}
}

func TestStep_DataMovement(t *testing.T) {
	c, _, _, _ := newTestCPU(t)

	// STM RX, HHLL
	writeInstruction(c, 0x0000, STMI, 0x00, 0xFF, 0xAA)
	c.R[0] = 0xBABE
	c.Write16(0xAAFF, 0xF00D)
	step(t, c)
	assert.Equal(t, uint16(0xBABE), c.Read16(0xAAFF))

	// STM RX, RY
	writeInstruction(c, 0x0004, STMR, 0x32, 0x00, 0x00)
	c.R[2] = 0xAAAA
	c.R[3] = 0x0007
	c.Write16(0x0007, 0x1010)
	step(t, c)
	assert.Equal(t, uint16(0xAAAA), c.Read16(0x0007))

	// LDI RX, HHLL
	writeInstruction(c, 0x0008, LDIR, 0x00, 0xFF, 0xAA)
	step(t, c)
	assert.Equal(t, uint16(0xAAFF), c.R[0])

	// LDI SP, HHLL
	writeInstruction(c, 0x000C, LDISP, 0x00, 0xFF, 0xAA)
	step(t, c)
	assert.Equal(t, uint16(0xAAFF), c.SP)

	// LDM RX, HHLL
	writeInstruction(c, 0x0010, LDMI, 0x02, 0x00, 0x20)
	c.Write16(0x2000, 0xABCC)
	step(t, c)
	assert.Equal(t, uint16(0xABCC), c.R[2])

	// LDM RX, RY
	writeInstruction(c, 0x0014, LDMR, 0x12, 0x00, 0x00)
	c.R[1] = 0x00CD
	c.Write8(0x00CD, 0xEF)
	c.Write8(0x00CE, 0xBE)
	step(t, c)
	assert.Equal(t, uint16(0xBEEF), c.R[2])

	// MOV RX, RY
	writeInstruction(c, 0x0018, MOV, 0x25, 0x00, 0x00)
	step(t, c)
	assert.Equal(t, uint16(0xBEEF), c.R[5])

	assert.Equal(t, uint16(0x001C), c.PC)
	assert.Equal(t, uint64(7), c.Cycles)
	assert.Equal(t, Flags{}, c.Flags)
}

func TestStep_Graphics(t *testing.T) {
	c, gpu, _, _ := newTestCPU(t)

	writeInstruction(c, 0x0000, CLS, 0x00, 0x00, 0x00)
	writeInstruction(c, 0x0004, BGC, 0x00, 0b00000100, 0x00)
	writeInstruction(c, 0x0008, SPR, 0x00, 0x21, 0x42)
	for range 3 {
		step(t, c)
	}

	assert.Equal(t, 1, gpu.clearFgCalls)
	assert.Equal(t, 1, gpu.clearBgCalls)
	assert.Equal(t, uint8(0b0100), gpu.background)
	assert.Equal(t, uint8(0x21), gpu.spriteWidth)
	assert.Equal(t, uint8(0x42), gpu.spriteHeight)
	assert.Equal(t, uint16(0x000C), c.PC)
}

func TestStep_VBlank(t *testing.T) {
	c, gpu, _, _ := newTestCPU(t)
	writeInstruction(c, 0x0000, VBLNK, 0x00, 0x00, 0x00)

	gpu.vblank = false
	step(t, c)
	assert.Equal(t, uint16(0x0000), c.PC)
	assert.Equal(t, uint64(1), c.Cycles)

	gpu.vblank = true
	step(t, c)
	assert.Equal(t, uint16(0x0004), c.PC)
	assert.Equal(t, uint64(2), c.Cycles)
}

func TestStep_Draw(t *testing.T) {
	tests := []struct {
		name    string
		opcode  byte
		overlap bool
	}{
		{"immediate no overlap", DRWI, false},
		{"immediate overlap", DRWI, true},
		{"register no overlap", DRWR, false},
		{"register overlap", DRWR, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, gpu, _, _ := newTestCPU(t)
			gpu.overlap = tt.overlap
			c.Carry = !tt.overlap

			if tt.opcode == DRWI {
				writeInstruction(c, 0x0000, DRWI, 0b00010010, 0x21, 0x42)
			} else {
				writeInstruction(c, 0x0000, DRWR, 0b00010010, 0b00000011, 0x42)
				c.R[3] = 0x4000
				c.Write8(0x4000, 0x21)
				c.Write8(0x4001, 0x42)
			}
			c.R[1] = 0x10
			c.R[2] = 0x20

			step(t, c)
			assert.Len(t, gpu.draws, 1)
			assert.Equal(t, drawCall{address: 0x4221, x: 0x20, y: 0x10}, gpu.draws[0])
			assert.Equal(t, tt.overlap, c.Carry)
		})
	}
}

func TestStep_Random(t *testing.T) {
	c, _, _, rng := newTestCPU(t)
	rng.value = 0xFFFF
	writeInstruction(c, 0x0000, RND, 0b00010010, 0x10, 0x01)
	writeInstruction(c, 0x0004, RND, 0b00010010, 0x05, 0x00)

	step(t, c)
	assert.Equal(t, uint16(0x0110), rng.max)
	assert.Equal(t, uint16(0x0110), c.R[2])

	step(t, c)
	assert.Equal(t, uint16(0x0005), rng.max)
	assert.Equal(t, uint16(0x0005), c.R[2])
}

func TestStep_Flip(t *testing.T) {
	tests := []struct {
		hh           byte
		hflip, vflip bool
	}{
		{0b00, false, false},
		{0b01, false, true},
		{0b10, true, false},
		{0b11, true, true},
	}

	c, gpu, _, _ := newTestCPU(t)
	for _, tt := range tests {
		c.PC = 0
		writeInstruction(c, 0x0000, FLIP, 0x00, 0x00, tt.hh)
		step(t, c)
		assert.Equal(t, tt.hflip, gpu.hflip)
		assert.Equal(t, tt.vflip, gpu.vflip)
	}
}

func TestStep_Sound(t *testing.T) {
	c, _, spu, _ := newTestCPU(t)

	writeInstruction(c, 0x0000, SND0, 0x00, 0x00, 0x00)
	writeInstruction(c, 0x0004, SND1, 0x00, 0xBB, 0x10)
	writeInstruction(c, 0x0008, SND2, 0x00, 0xBB, 0x10)
	writeInstruction(c, 0x000C, SND3, 0x00, 0xBB, 0x10)
	writeInstruction(c, 0x0010, SNP, 0x03, 0xBB, 0x10)
	writeInstruction(c, 0x0014, SNG, 0x33, 0xBB, 0x10)
	c.R[3] = 0x2000
	c.Write16(0x2000, 440)

	for range 6 {
		step(t, c)
	}

	expected := []soundCall{
		{name: "stop"},
		{name: "play500", duration: 0x10BB},
		{name: "play1000", duration: 0x10BB},
		{name: "play1500", duration: 0x10BB},
		{name: "tone", frequency: 440, duration: 0x10BB},
		{name: "setup", attackDecay: 0x33, duration: 0x10BB},
	}
	assert.Equal(t, expected, spu.calls)
}

func TestStep_Jumps(t *testing.T) {
	t.Run("JMP", func(t *testing.T) {
		c, _, _, _ := newTestCPU(t)
		writeInstruction(c, 0x0000, JMP, 0x00, 0xBB, 0x10)
		step(t, c)
		assert.Equal(t, uint16(0x10BB), c.PC)
	})

	t.Run("Jx", func(t *testing.T) {
		c, _, _, _ := newTestCPU(t)
		writeInstruction(c, 0x0000, JX, byte(CondZ), 0xBB, 0x10)
		writeInstruction(c, 0x0004, JX, byte(CondNZ), 0xBB, 0x10)

		step(t, c)
		assert.Equal(t, uint16(0x0004), c.PC)
		step(t, c)
		assert.Equal(t, uint16(0x10BB), c.PC)
	})

	t.Run("JMC", func(t *testing.T) {
		c, _, _, _ := newTestCPU(t)
		writeInstruction(c, 0x0000, JMC, 0x00, 0xBB, 0x10)
		writeInstruction(c, 0x0004, JMC, 0x00, 0xBB, 0x10)

		step(t, c)
		assert.Equal(t, uint16(0x0004), c.PC)
		c.Carry = true
		step(t, c)
		assert.Equal(t, uint16(0x10BB), c.PC)
	})

	t.Run("JME", func(t *testing.T) {
		c, _, _, _ := newTestCPU(t)
		writeInstruction(c, 0x0000, JME, 0b00010010, 0xBB, 0x10)
		writeInstruction(c, 0x10BB, JME, 0b00010010, 0x00, 0x20)
		c.R[1] = 0xF
		c.R[2] = 0xF

		step(t, c)
		assert.Equal(t, uint16(0x10BB), c.PC)

		c.R[2] = 0xE
		step(t, c)
		assert.Equal(t, uint16(0x10BF), c.PC)
	})

	t.Run("JMP RX", func(t *testing.T) {
		c, _, _, _ := newTestCPU(t)
		writeInstruction(c, 0x0000, JMPR, 0x00, 0x00, 0x00)
		c.R[0] = 0xFACA
		step(t, c)
		assert.Equal(t, uint16(0xFACA), c.PC)
	})
}

func TestStep_CallAndReturn(t *testing.T) {
	c, _, _, _ := newTestCPU(t)
	writeInstruction(c, 0x0000, CALL, 0x00, 0xBB, 0x10)
	writeInstruction(c, 0x10BB, RET, 0x00, 0x00, 0x00)

	step(t, c)
	assert.Equal(t, uint16(StackStart+2), c.SP)
	assert.Equal(t, uint16(0x0004), c.Read16(c.SP-2))
	assert.Equal(t, uint16(0x10BB), c.PC)

	step(t, c)
	assert.Equal(t, uint16(0x0004), c.PC)
	assert.Equal(t, uint16(StackStart), c.SP)
}

func TestStep_ConditionalCall(t *testing.T) {
	c, _, _, _ := newTestCPU(t)
	writeInstruction(c, 0x0000, CX, byte(CondZ), 0xFA, 0xCA)
	writeInstruction(c, 0x0004, CX, byte(CondNZ), 0xFA, 0xCA)

	step(t, c)
	assert.Equal(t, uint16(0x0004), c.PC)
	assert.Equal(t, uint16(StackStart), c.SP)

	step(t, c)
	assert.Equal(t, uint16(0xCAFA), c.PC)
	assert.Equal(t, uint16(StackStart+2), c.SP)
	assert.Equal(t, uint16(0x0008), c.Read16(c.SP-2))
}

func TestStep_CallRegister(t *testing.T) {
	c, _, _, _ := newTestCPU(t)
	writeInstruction(c, 0x0000, CALLR, 0b00000001, 0xFA, 0xCA)
	c.R[1] = 0xFACA

	step(t, c)
	assert.Equal(t, uint16(0xFACA), c.PC)
	assert.Equal(t, uint16(StackStart+2), c.SP)
	assert.Equal(t, uint16(0x0004), c.Read16(c.SP-2))
}

//nolint:funlen // table driven test
func TestStep_Arithmetic(t *testing.T) {
	tests := []struct {
		name     string
		opcode   byte
		yx, ll   byte
		hh       byte
		r1, r2   uint16
		target   int
		expected uint16
	}{
		{"ADDI", ADDI, 0x01, 0x03, 0x00, 3, 0, 1, 6},
		{"ADD", ADD, 0x21, 0x00, 0x00, 3, 5, 1, 8},
		{"ADD3", ADD3, 0x21, 0x03, 0x00, 3, 4, 3, 7},
		{"SUBI", SUBI, 0x01, 0x02, 0x00, 3, 0, 1, 1},
		{"SUB", SUB, 0x21, 0x00, 0x00, 2, 2, 1, 0},
		{"SUB3", SUB3, 0x21, 0x03, 0x00, 7, 3, 3, 4},
		{"ANDI", ANDI, 0x01, 0b0011, 0x00, 0b0110, 0, 1, 0b0010},
		{"AND", AND, 0x21, 0x00, 0x00, 0b0111, 0b1101, 1, 0b0101},
		{"AND3", AND3, 0x21, 0x03, 0x00, 0b0111, 0b1101, 3, 0b0101},
		{"ORI", ORI, 0x01, 0b0010, 0x00, 0b0101, 0, 1, 0b0111},
		{"OR", OR, 0x21, 0x00, 0x00, 0b00000101, 0b00100010, 1, 0b00100111},
		{"OR3", OR3, 0x21, 0x03, 0x00, 0b00000101, 0b00100010, 3, 0b00100111},
		{"XORI", XORI, 0x01, 0b0010, 0x00, 0b0110, 0, 1, 0b0100},
		{"XOR", XOR, 0x21, 0x00, 0x00, 0b00000110, 0b00100101, 1, 0b00100011},
		{"XOR3", XOR3, 0x21, 0x03, 0x00, 0b00000110, 0b00100101, 3, 0b00100011},
		{"MULI", MULI, 0x21, 0x04, 0x00, 4, 0, 1, 16},
		{"MUL", MUL, 0x21, 0x04, 0x00, 4, 2, 1, 8},
		{"MUL3", MUL3, 0x21, 0x04, 0x00, 0xFFFF, 2, 4, 0xFFFE},
		{"DIVI", DIVI, 0x21, 0x04, 0x00, 4, 0, 1, 1},
		{"DIV", DIV, 0x21, 0x00, 0x00, 5, 4, 1, 1},
		{"DIV3", DIV3, 0x21, 0x04, 0x00, 5, 4, 4, 1},
		{"MODI", MODI, 0x01, 0x03, 0x00, 4, 0, 1, 1},
		{"MOD", MOD, 0x21, 0x00, 0x00, 4, 3, 1, 1},
		{"MOD3", MOD3, 0x21, 0x03, 0x00, 4, 3, 3, 1},
		{"SHL", SHLN, 0x01, 0x02, 0x00, 0b0010, 0, 1, 0b1000},
		{"SHR", SHRN, 0x01, 0x02, 0x00, 0b1000, 0, 1, 0b0010},
		{"SAR", SARN, 0x01, 0x04, 0x00, 0x8000, 0, 1, 0xF800},
		{"SHL RX, RY", SHLR, 0x21, 0x00, 0x00, 0b0001, 3, 1, 0b1000},
		{"SHR RX, RY", SHRR, 0x21, 0x00, 0x00, 0b1000, 3, 1, 0b0001},
		{"SAR RX, RY", SARR, 0x21, 0x00, 0x00, 0x8000, 1, 1, 0xC000},
		{"NOTI", NOTI, 0x01, 0b11001100, 0b00110011, 0xFACA, 0, 1, 0b1100110000110011},
		{"NOT", NOT, 0x01, 0x00, 0x00, 0b0011001111001100, 0, 1, 0b1100110000110011},
		{"NOT RX, RY", NOTR, 0x21, 0x00, 0x00, 0xFACA, 0b0011001111001100, 1, 0b1100110000110011},
		{"NEGI", NEGI, 0x01, 0x02, 0x00, 0, 0, 1, 0xFFFE},
		{"NEG", NEG, 0x01, 0x00, 0x00, 0xFFFE, 0, 1, 2},
		{"NEG RX, RY", NEGR, 0x21, 0x00, 0x00, 0, 0xFFFE, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _, _ := newTestCPU(t)
			writeInstruction(c, 0x0000, tt.opcode, tt.yx, tt.ll, tt.hh)
			c.R[1] = tt.r1
			c.R[2] = tt.r2

			step(t, c)
			assert.Equal(t, tt.expected, c.R[tt.target])
			assert.Equal(t, uint16(4), c.PC)
		})
	}
}

func TestStep_MultiplyFlags(t *testing.T) {
	c, _, _, _ := newTestCPU(t)
	writeInstruction(c, 0x0000, MUL3, 0b00100001, 0x04, 0x00)
	c.R[1] = 0xFFFF
	c.R[2] = 0x2

	step(t, c)
	assert.Equal(t, uint16((0xFFFF*0x2)&0xFFFF), c.R[4])
	assert.True(t, c.Carry)
	assert.False(t, c.Negative)
}

func TestStep_DivideFlags(t *testing.T) {
	c, _, _, _ := newTestCPU(t)
	writeInstruction(c, 0x0000, DIVI, 0b00100001, 0x04, 0x00)
	writeInstruction(c, 0x0004, DIVI, 0b00100001, 0x04, 0x00)
	c.R[1] = 0x4

	step(t, c)
	assert.Equal(t, uint16(1), c.R[1])
	assert.False(t, c.Carry)
	assert.False(t, c.Negative)

	c.R[1] = 0b10001
	step(t, c)
	assert.Equal(t, uint16(0b100), c.R[1])
	assert.True(t, c.Carry)
}

func TestStep_Compare(t *testing.T) {
	c, _, _, _ := newTestCPU(t)
	writeInstruction(c, 0x0000, CMPI, 0x01, 0x11, 0x00)
	writeInstruction(c, 0x0004, CMP, 0x21, 0x00, 0x00)
	c.R[1] = 0x11

	step(t, c)
	assert.True(t, c.Zero)
	assert.Equal(t, uint16(0x11), c.R[1])

	c.R[2] = 0x12
	step(t, c)
	assert.False(t, c.Zero)
	assert.True(t, c.Negative)
	assert.False(t, c.Carry)
	assert.Equal(t, uint16(0x11), c.R[1])
}

func TestStep_Test(t *testing.T) {
	c, _, _, _ := newTestCPU(t)
	writeInstruction(c, 0x0000, TSTI, 0x01, 0b0100, 0x00)
	writeInstruction(c, 0x0004, TST, 0x21, 0x00, 0x00)
	c.R[1] = 0b0011
	c.Carry = true

	step(t, c)
	assert.True(t, c.Zero)
	assert.True(t, c.Carry)
	assert.Equal(t, uint16(0b0011), c.R[1])

	c.R[1] = 0x8001
	c.R[2] = 0x8000
	step(t, c)
	assert.False(t, c.Zero)
	assert.True(t, c.Negative)
	assert.Equal(t, uint16(0x8001), c.R[1])
}

func TestStep_UnaryFlags(t *testing.T) {
	c, _, _, _ := newTestCPU(t)
	writeInstruction(c, 0x0000, NOTI, 0x01, 0b11001100, 0b00110011)
	writeInstruction(c, 0x0004, NOTI, 0x01, 0xFF, 0xFF)

	step(t, c)
	assert.False(t, c.Zero)
	assert.True(t, c.Negative)

	step(t, c)
	assert.Equal(t, uint16(0), c.R[1])
	assert.True(t, c.Zero)
	assert.False(t, c.Negative)
}

func TestStep_PushPop(t *testing.T) {
	c, _, _, _ := newTestCPU(t)
	writeInstruction(c, 0x0000, PUSH, 0b00110001, 0x00, 0x00)
	writeInstruction(c, 0x0004, POP, 0b00100011, 0x00, 0x00)
	c.R[1] = 0xFFAA
	originalSP := c.SP

	step(t, c)
	assert.Equal(t, originalSP+2, c.SP)
	assert.Equal(t, uint16(0xFFAA), c.Read16(originalSP))

	step(t, c)
	assert.Equal(t, originalSP, c.SP)
	assert.Equal(t, uint16(0xFFAA), c.R[3])
}

func TestStep_PushAllPopAll(t *testing.T) {
	c, _, _, _ := newTestCPU(t)
	writeInstruction(c, 0x0000, PUSHALL, 0x00, 0x00, 0x00)
	writeInstruction(c, 0x0004, POPALL, 0x00, 0x00, 0x00)
	originalSP := c.SP

	for i := range c.R {
		c.R[i] = uint16(rand.IntN(0x10000))
	}
	original := c.R

	step(t, c)
	assert.Equal(t, originalSP+32, c.SP)
	for i := range c.R {
		assert.Equal(t, original[i], c.Read16(originalSP+uint16(2*i)))
	}

	for i := range c.R {
		c.R[i] = uint16(rand.IntN(0x10000))
	}

	step(t, c)
	assert.Equal(t, originalSP, c.SP)
	assert.Equal(t, original, c.R)
}

func TestStep_PushFlagsPopFlags(t *testing.T) {
	const carryNegative = 0b10000010
	const carryNegativeOverflow = 0b11000010

	c, _, _, _ := newTestCPU(t)
	writeInstruction(c, 0x0000, POPF, 0x00, 0x00, 0x00)
	writeInstruction(c, 0x0004, PUSHF, 0x00, 0x00, 0x00)

	// simulate a previous PUSHF
	c.Write16(c.SP, carryNegative)
	c.SP += 2

	step(t, c)
	assert.Equal(t, uint16(StackStart), c.SP)
	assert.True(t, c.Carry)
	assert.True(t, c.Negative)
	assert.False(t, c.Zero)
	assert.False(t, c.Overflow)

	c.Overflow = true
	step(t, c)
	assert.Equal(t, uint16(StackStart+2), c.SP)
	assert.Equal(t, uint16(carryNegativeOverflow), c.Read16(StackStart))
}

func TestStep_Palette(t *testing.T) {
	const paletteAddress = 0xBAF0

	tests := []struct {
		name  string
		setup func(c *CPU)
	}{
		{
			name: "PAL HHLL",
			setup: func(c *CPU) {
				writeInstruction(c, 0x0000, PALI, 0x00, 0xF0, 0xBA)
			},
		},
		{
			name: "PAL RX",
			setup: func(c *CPU) {
				writeInstruction(c, 0x0000, PALR, 0x03, 0xCA, 0xFA)
				c.R[3] = paletteAddress
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, gpu, _, _ := newTestCPU(t)
			tt.setup(c)

			c.Memory().Load(paletteAddress, []byte{25, 50, 100})
			for i := uint16(3); i < 45; i++ {
				c.Write8(paletteAddress+i, 225)
			}
			c.Memory().Load(paletteAddress+45, []byte{125, 150, 200})

			step(t, c)
			assert.True(t, gpu.paletteSet)
			assert.Equal(t, Color{R: 25.0 / 255, G: 50.0 / 255, B: 100.0 / 255}, gpu.palette[0])
			assert.Equal(t, 225.0/255, gpu.palette[10].R)
			assert.Equal(t, 225.0/255, gpu.palette[11].G)
			assert.Equal(t, 225.0/255, gpu.palette[12].B)
			assert.Equal(t, Color{R: 125.0 / 255, G: 150.0 / 255, B: 200.0 / 255}, gpu.palette[0xF])
		})
	}
}
