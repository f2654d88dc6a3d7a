package cpu

// aluOp computes a binary operation and updates the flags it defines.
// Flags are only modified once the operation can no longer fail.
type aluOp func(f *Flags, a, b uint16) (uint16, error)

// unaryOp computes a single operand operation and updates zero and negative.
type unaryOp func(f *Flags, v uint16) uint16

// shiftOp shifts v by n bits and updates zero and negative.
type shiftOp func(f *Flags, v uint16, n byte) uint16

func add(f *Flags, a, b uint16) (uint16, error) {
	sum := uint32(a) + uint32(b)
	result := uint16(sum)
	f.Carry = sum > 0xFFFF
	// both operands have the same sign and the result has the other one
	f.Overflow = (a^result)&(b^result)&0x8000 != 0
	f.setZN(result)
	return result, nil
}

func sub(f *Flags, a, b uint16) (uint16, error) {
	result := a - b
	f.Carry = a >= b
	f.Overflow = (a^b)&(a^result)&0x8000 != 0
	f.setZN(result)
	return result, nil
}

func and(f *Flags, a, b uint16) (uint16, error) {
	result := a & b
	f.setZN(result)
	return result, nil
}

func or(f *Flags, a, b uint16) (uint16, error) {
	result := a | b
	f.setZN(result)
	return result, nil
}

func xor(f *Flags, a, b uint16) (uint16, error) {
	result := a ^ b
	f.setZN(result)
	return result, nil
}

// mul sets carry if the product does not fit into 16 bits and takes the
// negative flag from the upper word of the product.
func mul(f *Flags, a, b uint16) (uint16, error) {
	product := uint32(a) * uint32(b)
	result := uint16(product)
	upper := uint16(product >> 16)
	f.Carry = upper != 0
	f.Zero = result == 0
	f.Negative = upper&0x8000 != 0
	return result, nil
}

// div sets carry if the division leaves a remainder.
func div(f *Flags, a, b uint16) (uint16, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	result := a / b
	f.Carry = a%b != 0
	f.setZN(result)
	return result, nil
}

// mod sets carry if the remainder is not zero.
func mod(f *Flags, a, b uint16) (uint16, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	result := a % b
	f.Carry = result != 0
	f.setZN(result)
	return result, nil
}

func not(f *Flags, v uint16) uint16 {
	result := ^v
	f.setZN(result)
	return result
}

func neg(f *Flags, v uint16) uint16 {
	result := -v
	f.setZN(result)
	return result
}

func shl(f *Flags, v uint16, n byte) uint16 {
	result := v << (n & 0x0F)
	f.setZN(result)
	return result
}

func shr(f *Flags, v uint16, n byte) uint16 {
	result := v >> (n & 0x0F)
	f.setZN(result)
	return result
}

func sar(f *Flags, v uint16, n byte) uint16 {
	result := uint16(int16(v) >> (n & 0x0F))
	f.setZN(result)
	return result
}

func immediate(op aluOp) handler {
	return func(c *CPU, ins Instruction) error {
		result, err := op(&c.Flags, c.R[ins.X], ins.HHLL)
		if err != nil {
			return err
		}
		c.R[ins.X] = result
		return nil
	}
}

func register(op aluOp) handler {
	return func(c *CPU, ins Instruction) error {
		result, err := op(&c.Flags, c.R[ins.X], c.R[ins.Y])
		if err != nil {
			return err
		}
		c.R[ins.X] = result
		return nil
	}
}

func threeRegister(op aluOp) handler {
	return func(c *CPU, ins Instruction) error {
		result, err := op(&c.Flags, c.R[ins.X], c.R[ins.Y])
		if err != nil {
			return err
		}
		c.R[ins.Z()] = result
		return nil
	}
}

// compareImmediate updates the flags only, the result is discarded.
func compareImmediate(op aluOp) handler {
	return func(c *CPU, ins Instruction) error {
		_, err := op(&c.Flags, c.R[ins.X], ins.HHLL)
		return err
	}
}

func compareRegister(op aluOp) handler {
	return func(c *CPU, ins Instruction) error {
		_, err := op(&c.Flags, c.R[ins.X], c.R[ins.Y])
		return err
	}
}

func unaryImmediate(op unaryOp) handler {
	return func(c *CPU, ins Instruction) error {
		c.R[ins.X] = op(&c.Flags, ins.HHLL)
		return nil
	}
}

func unarySelf(op unaryOp) handler {
	return func(c *CPU, ins Instruction) error {
		c.R[ins.X] = op(&c.Flags, c.R[ins.X])
		return nil
	}
}

func unaryRegister(op unaryOp) handler {
	return func(c *CPU, ins Instruction) error {
		c.R[ins.X] = op(&c.Flags, c.R[ins.Y])
		return nil
	}
}

func shiftImmediate(op shiftOp) handler {
	return func(c *CPU, ins Instruction) error {
		c.R[ins.X] = op(&c.Flags, c.R[ins.X], ins.N())
		return nil
	}
}

func shiftRegister(op shiftOp) handler {
	return func(c *CPU, ins Instruction) error {
		c.R[ins.X] = op(&c.Flags, c.R[ins.X], byte(c.R[ins.Y]))
		return nil
	}
}
