package cpu

// PaletteSize is the number of colors in the GPU palette.
const PaletteSize = 16

// Color is a palette entry with normalized components in the range 0-1.
type Color struct {
	R float64
	G float64
	B float64
}

// Palette contains all colors the GPU can display.
type Palette [PaletteSize]Color

// GPU is the video capability used by the graphics opcodes.
type GPU interface {
	// ClearForeground clears the sprite layer.
	ClearForeground()
	// ClearBackground resets the background color index to 0.
	ClearBackground()
	// VBlank returns whether the display is in the vertical blank period.
	VBlank() bool
	// SetBackground sets the background color index (0-15).
	SetBackground(index uint8)
	// SetSpriteSize sets the sprite dimensions used by Draw.
	SetSpriteSize(width, height uint8)
	// SetFlip sets the flip state used by Draw.
	SetFlip(horizontal, vertical bool)
	// Draw draws the sprite with pixel data starting at address at the
	// given screen position and returns whether it overlapped non-zero pixels.
	Draw(address, x, y uint16) (bool, error)
	// SetPalette replaces the palette.
	SetPalette(palette Palette)
}

// SPU is the sound capability used by the sound opcodes.
// Durations are in milliseconds.
type SPU interface {
	Stop() error
	Play500Hz(duration uint16) error
	Play1000Hz(duration uint16) error
	Play1500Hz(duration uint16) error
	PlayTone(frequency, duration uint16) error
	// Setup configures the sound generator: attack/decay in attackDecay,
	// volume, type, sustain and release packed into sustainReleaseVolume.
	Setup(attackDecay uint8, sustainReleaseVolume uint16) error
}

// RNG is the random number source used by RND.
type RNG interface {
	// NextInRange returns a uniformly distributed value in [0, max].
	NextInRange(max uint16) uint16
}

// Dependencies contains the peripherals the processor drives.
// A nil device makes its opcodes fail with ErrNoDevice.
type Dependencies struct {
	GPU GPU
	SPU SPU
	RNG RNG
}
