package cpu

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// StackStart is the initial stack pointer value after reset.
const StackStart = 0xFDF0

// RegisterCount is the number of general-purpose registers.
const RegisterCount = 16

// CPU implements the Chip16 processor. It exclusively owns registers,
// flags and memory; peripherals are referenced, not owned.
type CPU struct {
	R  [RegisterCount]uint16 // general-purpose registers
	PC uint16                // program counter
	SP uint16                // stack pointer

	Flags

	Cycles uint64 // number of executed Step calls

	logger *log.Logger
	memory Memory

	gpu GPU
	spu SPU
	rng RNG
}

// New returns a new processor in reset state, connected to the given
// peripherals.
func New(logger *log.Logger, deps Dependencies) *CPU {
	c := &CPU{
		logger: logger,
	}
	c.InjectDependencies(deps)
	c.Reset()
	return c
}

// InjectDependencies replaces the connected peripherals.
func (c *CPU) InjectDependencies(deps Dependencies) {
	c.gpu = deps.GPU
	c.spu = deps.SPU
	c.rng = deps.RNG
}

// Reset clears registers, flags, memory and the cycle counter and sets the
// stack pointer to its origin.
func (c *CPU) Reset() {
	c.R = [RegisterCount]uint16{}
	c.PC = 0
	c.SP = StackStart
	c.Flags = Flags{}
	c.Cycles = 0
	c.memory = Memory{}
}

// Memory returns the processor memory.
func (c *CPU) Memory() *Memory {
	return &c.memory
}

// Read8 reads a byte from memory.
func (c *CPU) Read8(address uint16) byte {
	return c.memory.Read8(address)
}

// Write8 writes a byte to memory.
func (c *CPU) Write8(address uint16, value byte) {
	c.memory.Write8(address, value)
}

// Read16 reads a little-endian word from memory.
func (c *CPU) Read16(address uint16) uint16 {
	return c.memory.Read16(address)
}

// Write16 writes a little-endian word to memory.
func (c *CPU) Write16(address, value uint16) {
	c.memory.Write16(address, value)
}

// Step fetches, decodes and executes a single instruction.
// The cycle counter is incremented on every call. On error the program
// counter still points at the failing instruction.
func (c *CPU) Step() error {
	c.Cycles++

	pc := c.PC
	ins := Decode(&c.memory, pc)
	op := opcodes[ins.Opcode]
	if op == nil {
		c.logger.Debug("Invalid opcode",
			log.Hex("address", pc),
			log.Hex("opcode", ins.Opcode))
		return fmt.Errorf("%w 0x%02X at address 0x%04X", ErrInvalidOpcode, ins.Opcode, pc)
	}

	c.PC = pc + InstructionSize
	if err := op.execute(c, ins); err != nil {
		c.PC = pc
		return fmt.Errorf("executing %s at address 0x%04X: %w", op.Name, pc, err)
	}
	return nil
}

// Fetch decodes the instruction at the program counter without executing it.
func (c *CPU) Fetch() Instruction {
	return Decode(&c.memory, c.PC)
}
