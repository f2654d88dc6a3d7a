package cpu

import (
	"fmt"
)

var (
	errNoGPU = fmt.Errorf("gpu: %w", ErrNoDevice)
	errNoSPU = fmt.Errorf("spu: %w", ErrNoDevice)
	errNoRNG = fmt.Errorf("rng: %w", ErrNoDevice)
)

func (c *CPU) nop(Instruction) error {
	return nil
}

func (c *CPU) cls(Instruction) error {
	if c.gpu == nil {
		return errNoGPU
	}
	c.gpu.ClearForeground()
	c.gpu.ClearBackground()
	return nil
}

// vblnk repeats itself until the GPU signals the vertical blank period.
func (c *CPU) vblnk(Instruction) error {
	if c.gpu == nil {
		return errNoGPU
	}
	if !c.gpu.VBlank() {
		c.PC -= InstructionSize
	}
	return nil
}

func (c *CPU) bgc(ins Instruction) error {
	if c.gpu == nil {
		return errNoGPU
	}
	c.gpu.SetBackground(ins.N())
	return nil
}

func (c *CPU) spr(ins Instruction) error {
	if c.gpu == nil {
		return errNoGPU
	}
	c.gpu.SetSpriteSize(ins.LL, ins.HH)
	return nil
}

func (c *CPU) drwImmediate(ins Instruction) error {
	return c.draw(ins.HHLL, ins)
}

// drwRegister draws the sprite whose address is stored in memory at RZ.
func (c *CPU) drwRegister(ins Instruction) error {
	address := c.memory.Read16(c.R[ins.Z()])
	return c.draw(address, ins)
}

func (c *CPU) draw(address uint16, ins Instruction) error {
	if c.gpu == nil {
		return errNoGPU
	}
	overlap, err := c.gpu.Draw(address, c.R[ins.X], c.R[ins.Y])
	if err != nil {
		return err
	}
	c.Carry = overlap
	return nil
}

func (c *CPU) rnd(ins Instruction) error {
	if c.rng == nil {
		return errNoRNG
	}
	c.R[ins.X] = c.rng.NextInRange(ins.HHLL)
	return nil
}

func (c *CPU) flip(ins Instruction) error {
	if c.gpu == nil {
		return errNoGPU
	}
	c.gpu.SetFlip(ins.HH&0x02 != 0, ins.HH&0x01 != 0)
	return nil
}

func (c *CPU) snd0(Instruction) error {
	if c.spu == nil {
		return errNoSPU
	}
	return c.spu.Stop()
}

func (c *CPU) snd1(ins Instruction) error {
	if c.spu == nil {
		return errNoSPU
	}
	return c.spu.Play500Hz(ins.HHLL)
}

func (c *CPU) snd2(ins Instruction) error {
	if c.spu == nil {
		return errNoSPU
	}
	return c.spu.Play1000Hz(ins.HHLL)
}

func (c *CPU) snd3(ins Instruction) error {
	if c.spu == nil {
		return errNoSPU
	}
	return c.spu.Play1500Hz(ins.HHLL)
}

// snp plays a tone with the frequency stored in memory at RX.
func (c *CPU) snp(ins Instruction) error {
	if c.spu == nil {
		return errNoSPU
	}
	frequency := c.memory.Read16(c.R[ins.X])
	return c.spu.PlayTone(frequency, ins.HHLL)
}

func (c *CPU) sng(ins Instruction) error {
	if c.spu == nil {
		return errNoSPU
	}
	return c.spu.Setup(ins.YX, ins.HHLL)
}

func (c *CPU) jmp(ins Instruction) error {
	c.PC = ins.HHLL
	return nil
}

func (c *CPU) jmc(ins Instruction) error {
	if c.Carry {
		c.PC = ins.HHLL
	}
	return nil
}

func (c *CPU) jx(ins Instruction) error {
	if c.Check(ins.Condition()) {
		c.PC = ins.HHLL
	}
	return nil
}

func (c *CPU) jme(ins Instruction) error {
	if c.R[ins.X] == c.R[ins.Y] {
		c.PC = ins.HHLL
	}
	return nil
}

func (c *CPU) callImmediate(ins Instruction) error {
	c.call(ins.HHLL)
	return nil
}

func (c *CPU) ret(Instruction) error {
	c.PC = c.pop()
	return nil
}

func (c *CPU) jmpRegister(ins Instruction) error {
	c.PC = c.R[ins.X]
	return nil
}

func (c *CPU) cx(ins Instruction) error {
	if c.Check(ins.Condition()) {
		c.call(ins.HHLL)
	}
	return nil
}

func (c *CPU) callRegister(ins Instruction) error {
	c.call(c.R[ins.X])
	return nil
}

// call pushes the address of the next instruction and jumps to target.
// The program counter already points at the next instruction.
func (c *CPU) call(target uint16) {
	c.push(c.PC)
	c.PC = target
}

func (c *CPU) ldi(ins Instruction) error {
	c.R[ins.X] = ins.HHLL
	return nil
}

func (c *CPU) ldiSP(ins Instruction) error {
	c.SP = ins.HHLL
	return nil
}

func (c *CPU) ldmImmediate(ins Instruction) error {
	c.R[ins.X] = c.memory.Read16(ins.HHLL)
	return nil
}

func (c *CPU) ldmRegister(ins Instruction) error {
	c.R[ins.X] = c.memory.Read16(c.R[ins.Y])
	return nil
}

func (c *CPU) mov(ins Instruction) error {
	c.R[ins.X] = c.R[ins.Y]
	return nil
}

func (c *CPU) stmImmediate(ins Instruction) error {
	c.memory.Write16(ins.HHLL, c.R[ins.X])
	return nil
}

func (c *CPU) stmRegister(ins Instruction) error {
	c.memory.Write16(c.R[ins.Y], c.R[ins.X])
	return nil
}

func (c *CPU) push(value uint16) {
	c.memory.Write16(c.SP, value)
	c.SP += 2
}

func (c *CPU) pop() uint16 {
	c.SP -= 2
	return c.memory.Read16(c.SP)
}

func (c *CPU) pushRegister(ins Instruction) error {
	c.push(c.R[ins.X])
	return nil
}

func (c *CPU) popRegister(ins Instruction) error {
	c.R[ins.X] = c.pop()
	return nil
}

// pushAll stores R0 to RF in ascending order starting at SP.
func (c *CPU) pushAll(Instruction) error {
	for _, value := range c.R {
		c.push(value)
	}
	return nil
}

// popAll restores R0 to RF from the block stored by pushAll.
func (c *CPU) popAll(Instruction) error {
	c.SP -= 2 * RegisterCount
	for i := range c.R {
		c.R[i] = c.memory.Read16(c.SP + uint16(2*i))
	}
	return nil
}

func (c *CPU) pushFlags(Instruction) error {
	c.push(uint16(c.Pack()))
	return nil
}

func (c *CPU) popFlags(Instruction) error {
	c.Unpack(byte(c.pop()))
	return nil
}

func (c *CPU) palImmediate(ins Instruction) error {
	return c.loadPalette(ins.HHLL)
}

func (c *CPU) palRegister(ins Instruction) error {
	return c.loadPalette(c.R[ins.X])
}

// loadPalette reads 16 RGB byte triplets and passes them as normalized
// colors to the GPU.
func (c *CPU) loadPalette(address uint16) error {
	if c.gpu == nil {
		return errNoGPU
	}

	var palette Palette
	for i := range palette {
		base := address + uint16(3*i)
		palette[i] = Color{
			R: float64(c.memory.Read8(base)) / 255,
			G: float64(c.memory.Read8(base+1)) / 255,
			B: float64(c.memory.Read8(base+2)) / 255,
		}
	}
	c.gpu.SetPalette(palette)
	return nil
}
