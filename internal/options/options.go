// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"name of the input ROM file"`
	Output string `flag:"o" usage:"name of the output .asm file for -disasm, printed on console if no name given"`
}

// Flags contains behavior options.
type Flags struct {
	Binary bool `flag:"binary" usage:"read input file as raw binary file without any header"`
	Disasm bool `flag:"disasm" usage:"disassemble the ROM instead of running it"`
	Debug  bool `flag:"debug" usage:"enable debugging options for extended logging"`
	Quiet  bool `flag:"q" usage:"perform operations quietly"`
}

// Emulation contains options that control a ROM run.
type Emulation struct {
	Cycles      uint64 `flag:"cycles" usage:"stop after the given number of cycles, 0 runs until interrupted"`
	Seed        uint64 `flag:"seed" usage:"seed of the random number generator, a random seed is used if not set"`
	Breakpoints string `flag:"break" usage:"comma separated list of hex addresses to stop execution at, for example 0x0100,0x0200"`
	Trace       bool   `flag:"trace" usage:"log every executed instruction"`
}

// OutputFlags contains disassembly output formatting options.
type OutputFlags struct {
	NoHexComments bool `flag:"nohexcomments" usage:"do not output opcode bytes as hex values in comments"`
	NoOffsets     bool `flag:"nooffsets" usage:"do not output addresses in comments"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	Emulation
	OutputFlags
}

// Disassembler defines options to control the disassembler output.
type Disassembler struct {
	HexComments    bool
	OffsetComments bool
}

// NewDisassembler returns a new options instance with default options.
func NewDisassembler() Disassembler {
	return Disassembler{
		HexComments:    true,
		OffsetComments: true,
	}
}
