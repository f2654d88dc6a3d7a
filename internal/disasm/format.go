package disasm

import (
	"fmt"

	"github.com/retroenv/chip16emu/internal/cpu"
)

// Format returns the instruction in assembly syntax, or an empty string for
// an invalid opcode.
func Format(ins cpu.Instruction) string {
	return formatInstruction(ins, "")
}

// Mnemonic returns the instruction name including the condition suffix of
// conditional jumps and calls.
func Mnemonic(ins cpu.Instruction) string {
	op, ok := cpu.Lookup(ins.Opcode)
	if !ok {
		return ""
	}
	if op.Conditional {
		return op.Name + ins.Condition().String()
	}
	return op.Name
}

// formatInstruction formats the instruction, using target instead of the
// HHLL value for jump and call destinations if it is set.
func formatInstruction(ins cpu.Instruction, target string) string {
	op, ok := cpu.Lookup(ins.Opcode)
	if !ok {
		return ""
	}

	name := Mnemonic(ins)
	address := fmt.Sprintf("0x%04X", ins.HHLL)
	if target != "" {
		address = target
	}

	switch op.Operands {
	case cpu.NoOperands:
		return name
	case cpu.OperandsN:
		return fmt.Sprintf("%s 0x%X", name, ins.N())
	case cpu.OperandsHHLL:
		return fmt.Sprintf("%s %s", name, address)
	case cpu.OperandsRX:
		return fmt.Sprintf("%s R%X", name, ins.X)
	case cpu.OperandsRXHHLL:
		return fmt.Sprintf("%s R%X, 0x%04X", name, ins.X, ins.HHLL)
	case cpu.OperandsSPHHLL:
		return fmt.Sprintf("%s SP, 0x%04X", name, ins.HHLL)
	case cpu.OperandsRXRY:
		return fmt.Sprintf("%s R%X, R%X", name, ins.X, ins.Y)
	case cpu.OperandsRXRYRZ:
		return fmt.Sprintf("%s R%X, R%X, R%X", name, ins.X, ins.Y, ins.Z())
	case cpu.OperandsRXRYHHLL:
		return fmt.Sprintf("%s R%X, R%X, %s", name, ins.X, ins.Y, address)
	case cpu.OperandsRXN:
		return fmt.Sprintf("%s R%X, 0x%X", name, ins.X, ins.N())
	case cpu.OperandsFlip:
		return fmt.Sprintf("%s %d, %d", name, ins.HH>>1&1, ins.HH&1)
	case cpu.OperandsSound:
		return fmt.Sprintf("%s 0x%02X, 0x%04X", name, ins.YX, ins.HHLL)
	}
	return name
}
