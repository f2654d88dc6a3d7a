package gpu

import "github.com/retroenv/chip16emu/internal/cpu"

// defaultColors is the Chip16 power-on palette as 0xRRGGBB values.
var defaultColors = [cpu.PaletteSize]uint32{
	0x000000, // transparent black
	0x000000,
	0x888888,
	0xBF3932,
	0xDE7AAE,
	0x4C3D21,
	0x905F25,
	0xE49452,
	0xEAD979,
	0x537A3B,
	0xABD54A,
	0x252E38,
	0x00467F,
	0x68ABCC,
	0xBCDEE4,
	0xFFFFFF,
}

// DefaultPalette returns the palette that is active after power on.
func DefaultPalette() cpu.Palette {
	var palette cpu.Palette
	for i, rgb := range defaultColors {
		palette[i] = cpu.Color{
			R: float64(rgb>>16&0xFF) / 255,
			G: float64(rgb>>8&0xFF) / 255,
			B: float64(rgb&0xFF) / 255,
		}
	}
	return palette
}
