// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/retroenv/chip16emu/internal/cpu"
	"github.com/retroenv/chip16emu/internal/detector"
	"github.com/retroenv/chip16emu/internal/disasm"
	"github.com/retroenv/chip16emu/internal/loader"
	"github.com/retroenv/chip16emu/internal/machine"
	"github.com/retroenv/chip16emu/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile loads the ROM file named in the options and either runs or
// disassembles it.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, disasmOptions options.Disassembler) error {
	rom, err := loadROM(logger, opts)
	if err != nil {
		return err
	}
	printInfo(logger, opts, rom)

	if opts.Disasm {
		writer, err := createWriter(opts)
		if err != nil {
			return fmt.Errorf("creating writer: %w", err)
		}
		defer func() {
			if closer, ok := writer.(io.Closer); ok && writer != os.Stdout {
				_ = closer.Close()
			}
		}()
		return Disassemble(ctx, logger, rom, disasmOptions, writer)
	}

	machineOptions, err := createMachineOptions(opts)
	if err != nil {
		return err
	}
	_, err = Run(ctx, logger, rom, machineOptions)
	return err
}

// Run executes the ROM on a new machine.
func Run(ctx context.Context, logger *log.Logger, rom *loader.ROM, opts machine.Options) (machine.Result, error) {
	m := machine.New(logger, opts)
	m.Load(rom)
	logger.Debug("Random number generator", log.Hex("seed", m.Seed()))

	result, err := m.Run(ctx)
	if err != nil {
		return result, fmt.Errorf("running ROM: %w", err)
	}

	logger.Info("Execution stopped",
		log.Stringer("reason", result.Reason),
		log.Hex("pc", result.PC),
		log.Int("cycles", int(result.Cycles)))
	return result, nil
}

// Disassemble writes the disassembly of the ROM to the writer.
func Disassemble(ctx context.Context, logger *log.Logger, rom *loader.ROM,
	opts options.Disassembler, writer io.Writer) error {

	memory := &cpu.Memory{}
	memory.Load(0, rom.Data)

	dis := disasm.New(logger, memory, len(rom.Data), opts)
	lines, err := dis.Process(ctx, rom.Start)
	if err != nil {
		return fmt.Errorf("disassembling: %w", err)
	}
	if err := dis.Write(writer, lines); err != nil {
		return fmt.Errorf("writing disassembly: %w", err)
	}
	return nil
}

// loadROM loads the ROM in the format detected from the options.
func loadROM(logger *log.Logger, opts options.Program) (*loader.ROM, error) {
	format := detector.New(logger).Detect(opts)
	opts.Binary = format == detector.Binary

	rom, err := loader.New().Load(opts)
	if err != nil {
		return nil, fmt.Errorf("loading ROM: %w", err)
	}
	if format == detector.C16 && !rom.Header {
		return nil, fmt.Errorf("loading ROM %s: %w: missing CH16 magic", opts.Input, loader.ErrInvalidHeader)
	}
	return rom, nil
}

func createMachineOptions(opts options.Program) (machine.Options, error) {
	breakpoints, err := machine.ParseBreakpoints(opts.Breakpoints)
	if err != nil {
		return machine.Options{}, fmt.Errorf("parsing breakpoints: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	return machine.Options{
		MaxCycles:   opts.Cycles,
		Breakpoints: breakpoints,
		Trace:       opts.Trace,
		Seed:        seed,
	}, nil
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// printInfo prints information about the ROM being processed.
func printInfo(logger *log.Logger, opts options.Program, rom *loader.ROM) {
	if opts.Quiet {
		return
	}

	if rom.Header {
		logger.Info("Processing Chip16 ROM",
			log.String("file", opts.Input),
			log.String("version", rom.VersionString()),
			log.Int("size", len(rom.Data)),
			log.Hex("start", rom.Start))
		return
	}
	logger.Info("Processing raw Chip16 binary",
		log.String("file", opts.Input),
		log.Int("size", len(rom.Data)))
}

// PrintBanner logs the emulator name and build version.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}
	logger.Info("chip16emu - Chip16 emulator", log.String("version", buildinfo.Version(version, commit, date)))
}
