package cpu

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		code        byte
		name        string
		operands    Operands
		flow        Flow
		conditional bool
	}{
		{NOP, "NOP", NoOperands, FlowNext, false},
		{DRWR, "DRW", OperandsRXRYRZ, FlowNext, false},
		{JX, "J", OperandsHHLL, FlowBranch, true},
		{CX, "C", OperandsHHLL, FlowCall, true},
		{CALLR, "CALL", OperandsRX, FlowIndirect, false},
		{RET, "RET", NoOperands, FlowReturn, false},
		{LDISP, "LDI", OperandsSPHHLL, FlowNext, false},
		{MUL3, "MUL", OperandsRXRYRZ, FlowNext, false},
		{SARN, "SAR", OperandsRXN, FlowNext, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, ok := Lookup(tt.code)
			assert.True(t, ok)
			assert.Equal(t, tt.code, op.Code)
			assert.Equal(t, tt.name, op.Name)
			assert.Equal(t, tt.operands, op.Operands)
			assert.Equal(t, tt.flow, op.Flow)
			assert.Equal(t, tt.conditional, op.Conditional)
		})
	}
}

func TestLookup_Invalid(t *testing.T) {
	for _, code := range []byte{0x0F, 0x19, 0x25, 0x32, 0x43, 0x55, 0xB6, 0xC6, 0xD2, 0xE6, 0xFF} {
		op, ok := Lookup(code)
		assert.False(t, ok, "opcode %02X", code)
		assert.True(t, op == nil)
	}
}

func TestOpcodes(t *testing.T) {
	ops := Opcodes()
	assert.Len(t, ops, 79)

	for i := 1; i < len(ops); i++ {
		assert.True(t, ops[i-1].Code < ops[i].Code, "opcodes not ordered at %d", i)
	}
	for _, op := range ops {
		assert.True(t, op.execute != nil, "opcode %s has no handler", op.Name)
	}
}
