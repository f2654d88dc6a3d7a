// Package machine wires the processor to its peripherals and runs programs
// without a display or audio output.
package machine

import (
	"context"
	"fmt"

	"github.com/retroenv/chip16emu/internal/cpu"
	"github.com/retroenv/chip16emu/internal/disasm"
	"github.com/retroenv/chip16emu/internal/gpu"
	"github.com/retroenv/chip16emu/internal/loader"
	"github.com/retroenv/chip16emu/internal/rng"
	"github.com/retroenv/chip16emu/internal/spu"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// DefaultCyclesPerFrame is the number of instructions executed per frame at
// 1MHz and 60 frames per second.
const DefaultCyclesPerFrame = 1_000_000 / 60

// Options configure a machine run.
type Options struct {
	MaxCycles      uint64 // stop after this many cycles, 0 for no limit
	CyclesPerFrame uint64 // cycles between two vertical blanks
	Breakpoints    set.Set[uint16]
	Trace          bool // log every executed instruction
	Seed           uint64
}

// StopReason describes why a run ended.
type StopReason int

// Reasons for a run to stop.
const (
	CycleLimit StopReason = iota
	Breakpoint
	Cancelled
	Failed
)

func (r StopReason) String() string {
	switch r {
	case CycleLimit:
		return "cycle limit"
	case Breakpoint:
		return "breakpoint"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result of a run.
type Result struct {
	Reason StopReason
	PC     uint16
	Cycles uint64
}

// Machine is a headless Chip16 system.
type Machine struct {
	logger  *log.Logger
	options Options

	cpu *cpu.CPU
	gpu *gpu.GPU
	spu *spu.SPU
	rng *rng.RNG
}

// New creates a new machine with all peripherals connected.
func New(logger *log.Logger, options Options) *Machine {
	if options.CyclesPerFrame == 0 {
		options.CyclesPerFrame = DefaultCyclesPerFrame
	}
	if options.Breakpoints == nil {
		options.Breakpoints = set.New[uint16]()
	}

	m := &Machine{
		logger:  logger,
		options: options,
		spu:     spu.New(logger),
		rng:     rng.New(options.Seed),
	}
	m.cpu = cpu.New(logger, cpu.Dependencies{})
	m.gpu = gpu.New(logger, m.cpu.Memory())
	m.cpu.InjectDependencies(cpu.Dependencies{
		GPU: m.gpu,
		SPU: m.spu,
		RNG: m.rng,
	})
	return m
}

// Load resets the processor and all peripherals, copies the ROM to address 0 and sets the program
// counter to the ROM start address.
func (m *Machine) Load(rom *loader.ROM) {
	m.cpu.Reset()
	m.gpu.Reset()
	m.spu.Reset()
	m.rng.Reset()
	m.cpu.Memory().Load(0, rom.Data)
	m.cpu.PC = rom.Start

	m.logger.Debug("ROM loaded",
		log.Int("size", len(rom.Data)),
		log.Hex("start", rom.Start))
}

// Run executes instructions until the cycle limit or a breakpoint is
// reached, an instruction fails or the context is cancelled. A breakpoint
// at the address the run starts from is ignored so that a stopped run can
// be resumed.
func (m *Machine) Run(ctx context.Context) (Result, error) {
	c := m.cpu
	first := true

	for {
		if err := ctx.Err(); err != nil {
			return m.result(Cancelled), fmt.Errorf("running at address 0x%04X: %w", c.PC, err)
		}
		if m.options.MaxCycles > 0 && c.Cycles >= m.options.MaxCycles {
			m.logger.Debug("Cycle limit reached", log.Hex("pc", c.PC))
			return m.result(CycleLimit), nil
		}
		if m.options.Breakpoints.Contains(c.PC) && !first {
			m.logger.Info("Breakpoint reached", log.Hex("pc", c.PC))
			return m.result(Breakpoint), nil
		}
		first = false

		if m.options.Trace {
			ins := c.Fetch()
			m.logger.Info("Trace",
				log.Hex("pc", c.PC),
				log.String("instruction", disasm.Format(ins)))
		}

		if err := c.Step(); err != nil {
			return m.result(Failed), fmt.Errorf("executing instruction: %w", err)
		}

		if c.Cycles%m.options.CyclesPerFrame == 0 {
			m.gpu.RaiseVBlank()
		}
	}
}

func (m *Machine) result(reason StopReason) Result {
	return Result{
		Reason: reason,
		PC:     m.cpu.PC,
		Cycles: m.cpu.Cycles,
	}
}

// CPU returns the processor.
func (m *Machine) CPU() *cpu.CPU {
	return m.cpu
}

// GPU returns the graphics processor.
func (m *Machine) GPU() *gpu.GPU {
	return m.gpu
}

// Seed returns the seed of the random number generator.
func (m *Machine) Seed() uint64 {
	return m.rng.Seed()
}

// SPU returns the sound processor.
func (m *Machine) SPU() *spu.SPU {
	return m.spu
}
