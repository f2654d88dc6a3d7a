// Package loader handles Chip16 ROM file loading operations.
package loader

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"os"

	"github.com/retroenv/chip16emu/internal/cpu"
	"github.com/retroenv/chip16emu/internal/options"
)

// HeaderSize is the size of the .c16 file header.
const HeaderSize = 16

var magic = []byte("CH16")

var (
	// ErrInvalidHeader is returned for a .c16 file with a truncated header.
	ErrInvalidHeader = errors.New("invalid ROM header")
	// ErrSizeMismatch is returned if the header size does not match the ROM data.
	ErrSizeMismatch = errors.New("ROM size mismatch")
	// ErrChecksumMismatch is returned if the header checksum does not match the ROM data.
	ErrChecksumMismatch = errors.New("ROM checksum mismatch")
	// ErrTooLarge is returned for ROMs that do not fit into memory.
	ErrTooLarge = errors.New("ROM exceeds memory size")
)

// ROM is a loaded program image.
type ROM struct {
	Data     []byte
	Start    uint16 // initial program counter
	Version  uint8  // specification version, major in the high nibble, 0 for raw binaries
	Checksum uint32 // CRC32 of Data
	Header   bool   // loaded from a file with .c16 header
}

// VersionString returns the specification version as major.minor.
func (r *ROM) VersionString() string {
	return fmt.Sprintf("%d.%d", r.Version>>4, r.Version&0x0F)
}

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load loads and parses the ROM file named in the options.
func (l *Loader) Load(opts options.Program) (*ROM, error) {
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", opts.Input, err)
	}

	rom, err := l.LoadFromBytes(data, opts.Binary)
	if err != nil {
		return nil, fmt.Errorf("loading ROM %s: %w", opts.Input, err)
	}
	return rom, nil
}

// LoadFromBytes parses a ROM image. Data starting with the CH16 magic is
// parsed as .c16 file unless raw is set, all other data is treated as
// raw program loaded at address 0.
func (l *Loader) LoadFromBytes(data []byte, raw bool) (*ROM, error) {
	if !raw && bytes.HasPrefix(data, magic) {
		return parseHeader(data)
	}

	if len(data) > cpu.MemorySize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(data))
	}
	return &ROM{
		Data:     data,
		Checksum: crc32.ChecksumIEEE(data),
	}, nil
}

// parseHeader parses a .c16 file. The header layout is:
//
//	0x00 magic "CH16"
//	0x04 reserved
//	0x05 specification version
//	0x06 ROM size, uint32
//	0x0A start address, uint16
//	0x0C CRC32 of the ROM data, uint32
//
// All values are little endian.
func parseHeader(data []byte) (*ROM, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidHeader, len(data))
	}

	rom := &ROM{
		Data:     data[HeaderSize:],
		Version:  data[5],
		Start:    binary.LittleEndian.Uint16(data[10:12]),
		Checksum: binary.LittleEndian.Uint32(data[12:16]),
		Header:   true,
	}

	size := binary.LittleEndian.Uint32(data[6:10])
	if int64(size) != int64(len(rom.Data)) {
		return nil, fmt.Errorf("%w: header %d, data %d bytes", ErrSizeMismatch, size, len(rom.Data))
	}
	if len(rom.Data) > cpu.MemorySize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(rom.Data))
	}
	if checksum := crc32.ChecksumIEEE(rom.Data); checksum != rom.Checksum {
		return nil, fmt.Errorf("%w: header 0x%08X, data 0x%08X", ErrChecksumMismatch, rom.Checksum, checksum)
	}
	return rom, nil
}
