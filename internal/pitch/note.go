package pitch

import (
	"fmt"
	"math"
)

// Reference pitch: A4 = 440Hz is MIDI note 69
const (
	referenceFrequency = 440.0
	referenceNote      = 69
)

// All note names in chromatic order, indexed by note number mod 12
var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Detune describes which side of the nearest note a frequency falls on
type Detune int

const (
	InTune Detune = iota
	Flat
	Sharp
)

func (d Detune) String() string {
	switch d {
	case Flat:
		return "flat"
	case Sharp:
		return "sharp"
	default:
		return "in tune"
	}
}

// Note represents a musical note reading
type Note struct {
	Name      string  // e.g., "A", "A#", "B"
	Number    int     // MIDI note number, 69 == A4
	Octave    int     // e.g., 4 for A4
	Frequency float64 // Measured frequency in Hz
	Cents     int     // Cents deviation from the nearest note, floored
}

// String returns the note name with its octave, e.g. "A#4"
func (n Note) String() string {
	return fmt.Sprintf("%s%d", n.Name, n.Octave)
}

// Detune reports whether the reading is flat, sharp or in tune
func (n Note) Detune() Detune {
	switch {
	case n.Cents < 0:
		return Flat
	case n.Cents > 0:
		return Sharp
	default:
		return InTune
	}
}

// NoteNumber returns the nearest note number for a frequency.
// The frequency must be positive.
func NoteNumber(frequency float64) int {
	semitones := 12 * math.Log2(frequency/referenceFrequency)
	return int(math.Floor(semitones+0.5)) + referenceNote
}

// FrequencyOf returns the equal-tempered frequency of a note number
func FrequencyOf(note int) float64 {
	return referenceFrequency * math.Pow(2, float64(note-referenceNote)/12)
}

// CentsOff returns how far frequency is from note, in whole cents.
// Positive is sharp, negative is flat.
func CentsOff(frequency float64, note int) int {
	return int(math.Floor(1200 * math.Log2(frequency/FrequencyOf(note))))
}

// NoteName returns the pitch-class name of a note number
func NoteName(note int) string {
	return noteNames[pitchClass(note)]
}

func pitchClass(note int) int {
	pc := note % 12
	if pc < 0 {
		pc += 12
	}
	return pc
}

func octaveOf(note int) int {
	return int(math.Floor(float64(note)/12)) - 1
}

// NewReading converts a frequency to the nearest note and its detune
func NewReading(frequency float64) Note {
	n := NoteNumber(frequency)
	return Note{
		Name:      NoteName(n),
		Number:    n,
		Octave:    octaveOf(n),
		Frequency: frequency,
		Cents:     CentsOff(frequency, n),
	}
}
