package cpu

// MemorySize is the size of the Chip16 address space in bytes.
const MemorySize = 0x10000

// Memory is the flat 64KB address space of the processor.
// All addresses wrap at 16 bits, there is no out of bounds access.
type Memory [MemorySize]byte

// Read8 reads a byte from the given address.
func (m *Memory) Read8(address uint16) byte {
	return m[address]
}

// Write8 writes a byte to the given address.
func (m *Memory) Write8(address uint16, value byte) {
	m[address] = value
}

// Read16 reads a little-endian word from the given address.
func (m *Memory) Read16(address uint16) uint16 {
	low := uint16(m[address])
	high := uint16(m[address+1])
	return high<<8 | low
}

// Write16 writes a little-endian word, low byte first.
func (m *Memory) Write16(address, value uint16) {
	m[address] = byte(value)
	m[address+1] = byte(value >> 8)
}

// Load copies data into memory starting at the given address, wrapping at
// the end of the address space.
func (m *Memory) Load(address uint16, data []byte) {
	for i, b := range data {
		m[address+uint16(i)] = b
	}
}
