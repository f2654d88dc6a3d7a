package cpu

type drawCall struct {
	address uint16
	x, y    uint16
}

// mockGPU records the calls of the processor.
type mockGPU struct {
	vblank  bool
	overlap bool
	drawErr error

	clearFgCalls int
	clearBgCalls int
	background   uint8
	spriteWidth  uint8
	spriteHeight uint8
	hflip, vflip bool
	draws        []drawCall
	palette      Palette
	paletteSet   bool
}

func (m *mockGPU) ClearForeground() { m.clearFgCalls++ }
func (m *mockGPU) ClearBackground() { m.clearBgCalls++ }
func (m *mockGPU) VBlank() bool     { return m.vblank }

func (m *mockGPU) SetBackground(index uint8) {
	m.background = index
}

func (m *mockGPU) SetSpriteSize(width, height uint8) {
	m.spriteWidth = width
	m.spriteHeight = height
}

func (m *mockGPU) SetFlip(horizontal, vertical bool) {
	m.hflip = horizontal
	m.vflip = vertical
}

func (m *mockGPU) Draw(address, x, y uint16) (bool, error) {
	if m.drawErr != nil {
		return false, m.drawErr
	}
	m.draws = append(m.draws, drawCall{address: address, x: x, y: y})
	return m.overlap, nil
}

func (m *mockGPU) SetPalette(palette Palette) {
	m.palette = palette
	m.paletteSet = true
}

type soundCall struct {
	name        string
	frequency   uint16
	duration    uint16
	attackDecay uint8
}

// mockSPU records the calls of the processor.
type mockSPU struct {
	err   error
	calls []soundCall
}

func (m *mockSPU) record(call soundCall) error {
	if m.err != nil {
		return m.err
	}
	m.calls = append(m.calls, call)
	return nil
}

func (m *mockSPU) Stop() error {
	return m.record(soundCall{name: "stop"})
}

func (m *mockSPU) Play500Hz(duration uint16) error {
	return m.record(soundCall{name: "play500", duration: duration})
}

func (m *mockSPU) Play1000Hz(duration uint16) error {
	return m.record(soundCall{name: "play1000", duration: duration})
}

func (m *mockSPU) Play1500Hz(duration uint16) error {
	return m.record(soundCall{name: "play1500", duration: duration})
}

func (m *mockSPU) PlayTone(frequency, duration uint16) error {
	return m.record(soundCall{name: "tone", frequency: frequency, duration: duration})
}

func (m *mockSPU) Setup(attackDecay uint8, sustainReleaseVolume uint16) error {
	return m.record(soundCall{name: "setup", attackDecay: attackDecay, duration: sustainReleaseVolume})
}

// mockRNG returns a fixed value clamped to the requested maximum.
type mockRNG struct {
	value uint16
	max   uint16
}

func (m *mockRNG) NextInRange(max uint16) uint16 {
	m.max = max
	return min(m.value, max)
}
