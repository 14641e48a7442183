package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// ToneGenerator generates a pure sine tone as a beep.Streamer
type ToneGenerator struct {
	sr        beep.SampleRate
	freq      float64
	amplitude float64
	pos       int
	total     int // Number of samples to generate, negative for endless
}

// NewToneGenerator creates a sine generator producing total samples of freq Hz
func NewToneGenerator(sr beep.SampleRate, freq, amplitude float64, total int) *ToneGenerator {
	return &ToneGenerator{
		sr:        sr,
		freq:      freq,
		amplitude: amplitude,
		total:     total,
	}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.total >= 0 && g.pos >= g.total {
			return i, i > 0
		}

		t := float64(g.pos) / float64(g.sr)
		sample := g.amplitude * math.Sin(2*math.Pi*g.freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}

// Sine returns n samples of a sine wave at freq Hz
func Sine(freq float64, sampleRate, n int, amplitude float64) []float32 {
	samples := make([]float32, n)
	for i := range samples {
		t := float64(i) / float64(sampleRate)
		samples[i] = float32(amplitude * math.Sin(2*math.Pi*freq*t))
	}
	return samples
}
