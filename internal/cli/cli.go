// Package cli handles command line interface logic
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/chip16emu/internal/machine"
	"github.com/retroenv/chip16emu/internal/options"
	retrocli "github.com/retroenv/retrogolib/cli"
)

const programName = "chip16emu"

// positional holds the ROM file passed without the -i flag.
type positional struct {
	File string `arg:"positional" usage:"ROM file to run or disassemble"`
}

// ParseFlags parses command line flags and returns program and disassembler options
func ParseFlags() (options.Program, options.Disassembler, error) {
	var opts options.Program
	var pos positional
	flags := newFlagSet(&opts, &pos)
	disasmOptions := options.NewDisassembler()

	args, err := flags.Parse(os.Args[1:])
	if err != nil {
		// the flag package already printed the usage for parse errors and -h
		return opts, disasmOptions, &UsageError{msg: err.Error(), err: err}
	}

	if pos.File != "" {
		opts.Input = pos.File
	}
	if opts.Input == "" {
		return opts, disasmOptions, &UsageError{flags: flags, msg: "no ROM file given"}
	}

	if err := validateArgs(args); err != nil {
		return opts, disasmOptions, err
	}

	if err := validateOptionCombinations(opts); err != nil {
		return opts, disasmOptions, err
	}

	disasmOptions.HexComments = !opts.NoHexComments
	disasmOptions.OffsetComments = !opts.NoOffsets

	return opts, disasmOptions, nil
}

// newFlagSet registers all option sections, the flag names and usage texts
// are read from the struct tags of the options types.
func newFlagSet(opts *options.Program, pos *positional) *retrocli.FlagSet {
	flags := retrocli.NewFlagSet(programName)
	flags.AddSection("Parameters", &opts.Parameters)
	flags.AddSection("Flags", &opts.Flags)
	flags.AddSection("Emulation", &opts.Emulation)
	flags.AddSection("Disassembly output", &opts.OutputFlags)
	flags.AddPositional(pos)
	return flags
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *retrocli.FlagSet
	msg   string
	err   error
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) Unwrap() error {
	return e.err
}

// HelpRequested returns whether the user asked for the usage with -h.
func (e *UsageError) HelpRequested() bool {
	return errors.Is(e.err, retrocli.ErrHelpRequested)
}

func (e *UsageError) ShowUsage() {
	if e.flags != nil {
		e.flags.ShowUsage()
	}
}

// validateArgs checks that no flags follow the ROM file
func validateArgs(args []string) error {
	for _, arg := range args {
		if arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// validateOptionCombinations checks for options that can not be used together
func validateOptionCombinations(opts options.Program) error {
	if opts.Output != "" && !opts.Disasm {
		return errors.New("output file can only be used with -disasm")
	}
	if opts.Disasm && (opts.Trace || opts.Breakpoints != "" || opts.Cycles != 0) {
		return errors.New("-disasm can not be combined with -trace, -break or -cycles")
	}
	if _, err := machine.ParseBreakpoints(opts.Breakpoints); err != nil {
		return fmt.Errorf("invalid breakpoints: %w", err)
	}
	return nil
}
