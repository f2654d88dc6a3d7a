// Package detector handles ROM file format detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/chip16emu/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Format of a ROM file.
type Format int

// Supported ROM file formats.
const (
	Auto   Format = iota // decided by the file content
	C16                  // file with CH16 header
	Binary               // raw program without header
)

func (f Format) String() string {
	switch f {
	case C16:
		return "c16"
	case Binary:
		return "binary"
	default:
		return "auto"
	}
}

// Detector handles ROM format detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new format detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the ROM format from options or the file extension.
// The binary option takes precedence over the extension.
func (d *Detector) Detect(opts options.Program) Format {
	if opts.Binary {
		return Binary
	}

	format := d.detectFromFile(opts.Input)
	d.logger.Debug("Detected ROM format",
		log.Stringer("format", format),
		log.String("file", opts.Input))
	return format
}

// detectFromFile determines the format based on file extension.
func (d *Detector) detectFromFile(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".c16":
		return C16
	case ".bin":
		return Binary
	default:
		return Auto
	}
}
