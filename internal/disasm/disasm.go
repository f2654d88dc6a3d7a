// Package disasm implements a Chip16 disassembler that follows the
// execution flow from the program start to separate code from data.
package disasm

import (
	"context"
	"fmt"
	"slices"

	"github.com/retroenv/chip16emu/internal/cpu"
	"github.com/retroenv/chip16emu/internal/options"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

const (
	startLabel  = "Start"
	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"
)

// Line is a single line of the disassembly, either an instruction or a run
// of data bytes.
type Line struct {
	Address uint16
	Label   string // set if the address is a branch destination
	Code    string // formatted instruction, empty for data
	Data    []byte // instruction or data bytes
}

// IsCode returns whether the line contains an instruction.
func (l Line) IsCode() bool {
	return l.Code != ""
}

// Disasm implements a disassembler.
type Disasm struct {
	logger  *log.Logger
	options options.Disassembler
	memory  *cpu.Memory
	size    int // number of bytes starting at address 0 that belong to the program

	code                set.Set[uint16] // addresses of decoded instructions
	codeBytes           set.Set[uint16] // all addresses covered by decoded instructions
	branchDestinations  set.Set[uint16]
	callDestinations    set.Set[uint16]
	offsetsToParse      []uint16
	offsetsToParseAdded set.Set[uint16]
}

// New creates a new disassembler for a program of the given size that is
// loaded at address 0 of memory.
func New(logger *log.Logger, memory *cpu.Memory, size int, options options.Disassembler) *Disasm {
	return &Disasm{
		logger:              logger,
		options:             options,
		memory:              memory,
		size:                min(size, cpu.MemorySize),
		code:                set.New[uint16](),
		codeBytes:           set.New[uint16](),
		branchDestinations:  set.New[uint16](),
		callDestinations:    set.New[uint16](),
		offsetsToParseAdded: set.New[uint16](),
	}
}

// Process follows the execution flow starting at the given address and
// returns the disassembly of the whole program.
func (dis *Disasm) Process(ctx context.Context, start uint16) ([]Line, error) {
	dis.addAddressToParse(start)
	if err := dis.followExecutionFlow(ctx); err != nil {
		return nil, err
	}

	dis.logger.Debug("Execution flow followed",
		log.Int("instructions", len(dis.code)),
		log.Int("branch_destinations", len(dis.branchDestinations)))

	return dis.lines(start), nil
}

// followExecutionFlow decodes all instructions that are reachable from the
// queued addresses.
func (dis *Disasm) followExecutionFlow(ctx context.Context) error {
	for len(dis.offsetsToParse) > 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("following execution flow: %w", err)
		}

		address := dis.offsetsToParse[0]
		dis.offsetsToParse = dis.offsetsToParse[1:]

		if !dis.fits(address) || dis.overlapsCode(address) {
			continue
		}

		ins := cpu.Decode(dis.memory, address)
		op, ok := cpu.Lookup(ins.Opcode)
		if !ok {
			dis.logger.Debug("Invalid opcode reached",
				log.Hex("address", address),
				log.Hex("opcode", ins.Opcode))
			continue
		}

		dis.code.Add(address)
		for i := range uint16(cpu.InstructionSize) {
			dis.codeBytes.Add(address + i)
		}
		dis.processFlow(address, op, ins)
	}
	return nil
}

// processFlow queues the addresses that can be executed after the
// instruction at the given address.
func (dis *Disasm) processFlow(address uint16, op *cpu.Opcode, ins cpu.Instruction) {
	next := address + cpu.InstructionSize

	switch op.Flow {
	case cpu.FlowNext:
		dis.addAddressToParse(next)

	case cpu.FlowJump:
		dis.addBranchDestination(ins.HHLL, false)

	case cpu.FlowBranch:
		dis.addBranchDestination(ins.HHLL, false)
		dis.addAddressToParse(next)

	case cpu.FlowCall:
		dis.addBranchDestination(ins.HHLL, true)
		dis.addAddressToParse(next)

	case cpu.FlowIndirect:
		// the target is only known at runtime, a call still returns
		if op.Code == cpu.CALLR {
			dis.addAddressToParse(next)
		}

	case cpu.FlowReturn:
	}
}

func (dis *Disasm) addBranchDestination(address uint16, call bool) {
	if !dis.fits(address) {
		return
	}
	dis.branchDestinations.Add(address)
	if call {
		dis.callDestinations.Add(address)
	}
	dis.addAddressToParse(address)
}

func (dis *Disasm) addAddressToParse(address uint16) {
	if dis.offsetsToParseAdded.Contains(address) {
		return
	}
	dis.offsetsToParseAdded.Add(address)
	dis.offsetsToParse = append(dis.offsetsToParse, address)
}

// fits returns whether a complete instruction at address is inside the
// program.
func (dis *Disasm) fits(address uint16) bool {
	return int(address)+cpu.InstructionSize <= dis.size
}

// overlapsCode returns whether an instruction at address would share bytes
// with an already decoded instruction.
func (dis *Disasm) overlapsCode(address uint16) bool {
	for i := range uint16(cpu.InstructionSize) {
		if dis.codeBytes.Contains(address + i) {
			return true
		}
	}
	return false
}

// labels returns the label names of all branch destinations.
func (dis *Disasm) labels(start uint16) map[uint16]string {
	labels := make(map[uint16]string, len(dis.branchDestinations)+1)
	for address := range dis.branchDestinations {
		if dis.codeBytes.Contains(address) && !dis.code.Contains(address) {
			dis.logger.Debug("Branch into instruction detected", log.Hex("address", address))
			continue
		}
		if dis.callDestinations.Contains(address) {
			labels[address] = fmt.Sprintf(funcNaming, address)
		} else {
			labels[address] = fmt.Sprintf(labelNaming, address)
		}
	}
	if dis.code.Contains(start) {
		labels[start] = startLabel
	}
	return labels
}

// lines converts the processed program into disassembly lines. Bytes that
// are not part of an instruction are bundled into data lines that end at
// the next label or instruction.
func (dis *Disasm) lines(start uint16) []Line {
	labels := dis.labels(start)

	var lines []Line
	for address := 0; address < dis.size; {
		addr := uint16(address)

		if dis.code.Contains(addr) {
			ins := cpu.Decode(dis.memory, addr)
			target := ""
			if isBranch(ins) {
				target = labels[ins.HHLL]
			}
			data := ins.Bytes()
			lines = append(lines, Line{
				Address: addr,
				Label:   labels[addr],
				Code:    formatInstruction(ins, target),
				Data:    data[:],
			})
			address += cpu.InstructionSize
			continue
		}

		end := address + 1
		for end < dis.size && end-address < dataBytesPerLine &&
			!dis.code.Contains(uint16(end)) && labels[uint16(end)] == "" {
			end++
		}
		data := make([]byte, 0, end-address)
		for i := address; i < end; i++ {
			data = append(data, dis.memory.Read8(uint16(i)))
		}
		lines = append(lines, Line{
			Address: addr,
			Label:   labels[addr],
			Data:    data,
		})
		address = end
	}
	return lines
}

// isBranch returns whether the HHLL value of the instruction is a jump or
// call destination.
func isBranch(ins cpu.Instruction) bool {
	op, ok := cpu.Lookup(ins.Opcode)
	if !ok {
		return false
	}
	return slices.Contains([]cpu.Flow{cpu.FlowJump, cpu.FlowBranch, cpu.FlowCall}, op.Flow)
}
