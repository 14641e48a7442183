package pitch

import (
	"math"
	"math/cmplx"
	"sync"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// SpectrumAnalyzer computes a smoothed magnitude spectrum in decibels,
// one value per bin up to Nyquist.
type SpectrumAnalyzer struct {
	windowSize int
	smoothing  float64 // Weight of the previous frame (0.0-1.0)
	minDB      float64 // Floor for silent bins
	maxDB      float64

	mu       sync.Mutex
	window   []float64
	previous []float64
}

// NewSpectrumAnalyzer creates a spectrum analyzer for windowSize samples
func NewSpectrumAnalyzer(windowSize int, smoothing, minDB, maxDB float64) *SpectrumAnalyzer {
	return &SpectrumAnalyzer{
		windowSize: windowSize,
		smoothing:  smoothing,
		minDB:      minDB,
		maxDB:      maxDB,
		window:     window.Blackman(windowSize),
		previous:   make([]float64, windowSize/2),
	}
}

// Bins returns the number of frequency bins produced by Analyze
func (s *SpectrumAnalyzer) Bins() int {
	return s.windowSize / 2
}

// BinFrequency returns the centre frequency of bin for a sample rate
func (s *SpectrumAnalyzer) BinFrequency(bin int, sampleRate float64) float64 {
	return float64(bin) * sampleRate / float64(s.windowSize)
}

// Analyze applies a Blackman window to the latest windowSize samples and
// returns the smoothed spectrum in dB, clamped to [minDB, maxDB]. Shorter
// inputs are zero-padded.
func (s *SpectrumAnalyzer) Analyze(samples []float32) []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(samples) > s.windowSize {
		samples = samples[len(samples)-s.windowSize:]
	}

	windowed := make([]float64, s.windowSize)
	for i, sample := range samples {
		windowed[i] = float64(sample) * s.window[i]
	}

	spectrum := fft.FFTReal(windowed)

	db := make([]float64, len(s.previous))
	for i := range db {
		magnitude := cmplx.Abs(spectrum[i]) / float64(s.windowSize)
		s.previous[i] = s.smoothing*s.previous[i] + (1-s.smoothing)*magnitude
		db[i] = s.toDB(s.previous[i])
	}
	return db
}

// Reset clears the smoothing history
func (s *SpectrumAnalyzer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.previous {
		s.previous[i] = 0
	}
}

func (s *SpectrumAnalyzer) toDB(magnitude float64) float64 {
	if magnitude <= 0 {
		return s.minDB
	}
	return math.Max(s.minDB, math.Min(s.maxDB, 20*math.Log10(magnitude)))
}
