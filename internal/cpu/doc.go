// Package cpu implements the Chip16 processor core.
//
// # Architecture Overview
//
// Chip16 is a 16-bit fantasy console. The processor has:
//   - 16 general-purpose 16-bit registers (R0-RF)
//   - a 16-bit program counter and stack pointer
//   - four flags: carry, zero, overflow and negative
//   - 64KB of byte addressable, little-endian memory
//
// # Instruction Format
//
// Every instruction is 4 bytes long:
//
//	OP YX LL HH
//
// OP selects the opcode, the YX byte packs two register nibbles (or a
// condition code in X), and LL/HH form the little-endian 16-bit immediate
// HHLL. Three-register forms take the target register Z from the low nibble
// of LL, shift forms take the shift amount N from the same place.
//
// # Memory Layout
//
//	0x0000-0xFDEF: ROM and work RAM
//	0xFDF0-0xFFEF: Stack (512 bytes, grows upwards)
//	0xFFF0-0xFFF9: I/O ports (not modelled by this core)
//
// # Peripherals
//
// The core drives the video and sound hardware through the GPU and SPU
// interfaces and obtains random numbers through RNG. All three are injected
// by the host, the core never constructs them.
//
// # Usage Example
//
//	c := cpu.New(logger, cpu.Dependencies{})
//	c.InjectDependencies(cpu.Dependencies{
//		GPU: gpu.New(logger, c.Memory()),
//		SPU: spu.New(logger),
//		RNG: rng.New(seed),
//	})
//	c.Memory().Load(0, rom)
//	for {
//		if err := c.Step(); err != nil {
//			return fmt.Errorf("executing instruction: %w", err)
//		}
//	}
package cpu
