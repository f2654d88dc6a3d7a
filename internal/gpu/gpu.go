// Package gpu implements a headless Chip16 graphics processor. It keeps the
// foreground layer as color indices so that sprite collisions can be
// detected, without rendering anything to a display.
package gpu

import (
	"github.com/retroenv/chip16emu/internal/cpu"
	"github.com/retroenv/retrogolib/log"
)

// Screen dimensions in pixels.
const (
	Width  = 320
	Height = 240
)

// transparent is the color index that is never drawn.
const transparent = 0

var _ cpu.GPU = (*GPU)(nil)

// GPU implements cpu.GPU.
type GPU struct {
	logger *log.Logger
	memory *cpu.Memory

	screen [Height][Width]uint8

	background   uint8
	spriteWidth  uint8 // in bytes, every byte holds 2 pixels
	spriteHeight uint8
	hflip        bool
	vflip        bool
	vblank       bool
	palette      cpu.Palette
}

// New returns a new GPU that reads sprite data from the given memory.
func New(logger *log.Logger, memory *cpu.Memory) *GPU {
	return &GPU{
		logger:  logger,
		memory:  memory,
		palette: DefaultPalette(),
	}
}

// Reset restores the power-on state: an empty screen, background index 0,
// the default palette and no pending vblank.
func (g *GPU) Reset() {
	g.screen = [Height][Width]uint8{}
	g.background = 0
	g.spriteWidth = 0
	g.spriteHeight = 0
	g.hflip = false
	g.vflip = false
	g.vblank = false
	g.palette = DefaultPalette()
}

// ClearForeground erases all drawn sprites.
func (g *GPU) ClearForeground() {
	g.screen = [Height][Width]uint8{}
}

// ClearBackground resets the background color index to 0.
func (g *GPU) ClearBackground() {
	g.background = 0
}

// VBlank returns whether a vertical blank occurred since the last call and
// acknowledges it.
func (g *GPU) VBlank() bool {
	v := g.vblank
	g.vblank = false
	return v
}

// RaiseVBlank signals the start of a vertical blank period.
func (g *GPU) RaiseVBlank() {
	g.vblank = true
}

// SetBackground sets the background color index.
func (g *GPU) SetBackground(index uint8) {
	g.background = index & 0x0F
}

// SetSpriteSize sets the size of sprites drawn by following Draw calls.
// The width is given in bytes, the height in pixel rows.
func (g *GPU) SetSpriteSize(width, height uint8) {
	g.spriteWidth = width
	g.spriteHeight = height
}

// SetFlip sets the orientation of sprites drawn by following Draw calls.
func (g *GPU) SetFlip(horizontal, vertical bool) {
	g.hflip = horizontal
	g.vflip = vertical
}

// SetPalette replaces the active palette.
func (g *GPU) SetPalette(palette cpu.Palette) {
	g.palette = palette
}

// Draw draws the sprite stored at address with its top left corner at x, y.
// Coordinates are interpreted as signed values and pixels outside of the
// screen are clipped. It returns whether a non transparent pixel of the
// sprite was drawn over another non transparent pixel.
func (g *GPU) Draw(address, x, y uint16) (bool, error) {
	width := int(g.spriteWidth) * 2
	height := int(g.spriteHeight)
	left := int(int16(x))
	top := int(int16(y))

	var overlap bool
	for row := range height {
		for col := range width {
			color := g.spritePixel(address, row, col)
			if color == transparent {
				continue
			}

			px, py := col, row
			if g.hflip {
				px = width - 1 - col
			}
			if g.vflip {
				py = height - 1 - row
			}
			px += left
			py += top
			if px < 0 || px >= Width || py < 0 || py >= Height {
				continue
			}

			if g.screen[py][px] != transparent {
				overlap = true
			}
			g.screen[py][px] = color
		}
	}

	g.logger.Debug("Sprite drawn",
		log.Hex("address", address),
		log.Int("x", left),
		log.Int("y", top),
		log.Uint8("width", g.spriteWidth),
		log.Uint8("height", g.spriteHeight))
	return overlap, nil
}

// spritePixel returns the color index of a sprite pixel. The high nibble of
// a byte holds the left pixel.
func (g *GPU) spritePixel(address uint16, row, col int) uint8 {
	offset := row*int(g.spriteWidth) + col/2
	b := g.memory.Read8(address + uint16(offset))
	if col%2 == 0 {
		return b >> 4
	}
	return b & 0x0F
}

// Pixel returns the foreground color index at the given position,
// 0 if nothing was drawn there or the position is outside of the screen.
func (g *GPU) Pixel(x, y int) uint8 {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return transparent
	}
	return g.screen[y][x]
}

// Color returns the visible color at the given position, taking the
// background color into account for transparent foreground pixels.
func (g *GPU) Color(x, y int) cpu.Color {
	index := g.Pixel(x, y)
	if index == transparent {
		index = g.background
	}
	return g.palette[index]
}

// Background returns the background color index.
func (g *GPU) Background() uint8 {
	return g.background
}

// Palette returns the active palette.
func (g *GPU) Palette() cpu.Palette {
	return g.palette
}
