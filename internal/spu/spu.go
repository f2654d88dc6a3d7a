// Package spu implements a headless Chip16 sound processor that tracks the
// requested tone and envelope without producing audio.
package spu

import (
	"github.com/retroenv/chip16emu/internal/cpu"
	"github.com/retroenv/retrogolib/log"
)

var _ cpu.SPU = (*SPU)(nil)

// Envelope holds the ADSR sound generator parameters set by SNG.
type Envelope struct {
	Attack   uint8
	Decay    uint8
	Sustain  uint8
	Release  uint8
	Volume   uint8
	Waveform Waveform
}

// Waveform of the sound generator.
type Waveform uint8

// Waveforms supported by the sound generator.
const (
	Triangle Waveform = iota
	Sawtooth
	Pulse
	Noise
)

var waveformNames = map[Waveform]string{
	Triangle: "triangle",
	Sawtooth: "sawtooth",
	Pulse:    "pulse",
	Noise:    "noise",
}

func (w Waveform) String() string {
	if name, ok := waveformNames[w]; ok {
		return name
	}
	return "unknown"
}

// Tone describes the currently playing tone.
type Tone struct {
	Frequency uint16 // in Hz
	Duration  uint16 // in milliseconds
}

// SPU implements cpu.SPU.
type SPU struct {
	logger *log.Logger

	playing  bool
	tone     Tone
	envelope Envelope
}

// New returns a new silent SPU.
func New(logger *log.Logger) *SPU {
	return &SPU{
		logger: logger,
	}
}

// Reset silences the SPU and clears the envelope.
func (s *SPU) Reset() {
	s.playing = false
	s.tone = Tone{}
	s.envelope = Envelope{}
}

// Stop stops the playing tone.
func (s *SPU) Stop() error {
	s.playing = false
	s.logger.Debug("Sound stopped")
	return nil
}

// Play500Hz plays a 500Hz tone for the given duration.
func (s *SPU) Play500Hz(duration uint16) error {
	return s.PlayTone(500, duration)
}

// Play1000Hz plays a 1000Hz tone for the given duration.
func (s *SPU) Play1000Hz(duration uint16) error {
	return s.PlayTone(1000, duration)
}

// Play1500Hz plays a 1500Hz tone for the given duration.
func (s *SPU) Play1500Hz(duration uint16) error {
	return s.PlayTone(1500, duration)
}

// PlayTone plays a tone of the given frequency using the current envelope.
func (s *SPU) PlayTone(frequency, duration uint16) error {
	s.playing = true
	s.tone = Tone{Frequency: frequency, Duration: duration}
	s.logger.Debug("Playing tone",
		log.Uint16("frequency", frequency),
		log.Uint16("duration", duration))
	return nil
}

// Setup sets the sound generator envelope. attackDecay holds the attack in
// the high and the decay in the low nibble, sustainReleaseVolume holds from
// high to low nibble the volume, waveform, sustain and release.
func (s *SPU) Setup(attackDecay uint8, sustainReleaseVolume uint16) error {
	s.envelope = Envelope{
		Attack:   attackDecay >> 4,
		Decay:    attackDecay & 0x0F,
		Volume:   uint8(sustainReleaseVolume >> 12),
		Waveform: Waveform(sustainReleaseVolume >> 8 & 0x0F),
		Sustain:  uint8(sustainReleaseVolume >> 4 & 0x0F),
		Release:  uint8(sustainReleaseVolume & 0x0F),
	}
	s.logger.Debug("Sound generator set up",
		log.Uint8("attack", s.envelope.Attack),
		log.Uint8("decay", s.envelope.Decay),
		log.Uint8("sustain", s.envelope.Sustain),
		log.Uint8("release", s.envelope.Release),
		log.Uint8("volume", s.envelope.Volume),
		log.Stringer("waveform", s.envelope.Waveform))
	return nil
}

// Playing returns whether a tone is playing and which one.
func (s *SPU) Playing() (Tone, bool) {
	return s.tone, s.playing
}

// Envelope returns the current sound generator envelope.
func (s *SPU) Envelope() Envelope {
	return s.envelope
}
