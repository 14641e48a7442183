package pitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpectrumAnalyzerPeakBin(t *testing.T) {
	const size = 2048
	analyzer := NewSpectrumAnalyzer(size, 0, -140, 0)

	spectrum := analyzer.Analyze(sine(1000, 44100, size))
	assert.Len(t, spectrum, analyzer.Bins())

	peak := 0
	for i, db := range spectrum {
		if db > spectrum[peak] {
			peak = i
		}
	}
	assert.InDelta(t, 1000, analyzer.BinFrequency(peak, 44100), 44100.0/size)
	for _, db := range spectrum {
		assert.GreaterOrEqual(t, db, -140.0)
		assert.LessOrEqual(t, db, 0.0)
	}
}

func TestSpectrumAnalyzerSilenceIsFloor(t *testing.T) {
	analyzer := NewSpectrumAnalyzer(256, 0.8, -100, 0)
	for _, db := range analyzer.Analyze(make([]float32, 256)) {
		assert.Equal(t, -100.0, db)
	}
}

func TestSpectrumAnalyzerSmoothing(t *testing.T) {
	const size = 1024
	analyzer := NewSpectrumAnalyzer(size, 0.5, -140, 0)
	bin := 1000 * size / 44100

	first := analyzer.Analyze(sine(1000, 44100, size))
	second := analyzer.Analyze(sine(1000, 44100, size))
	assert.Greater(t, second[bin], first[bin])

	analyzer.Reset()
	assert.InDelta(t, first[bin], analyzer.Analyze(sine(1000, 44100, size))[bin], 1e-9)
}

func TestSpectrumAnalyzerPadsShortInput(t *testing.T) {
	analyzer := NewSpectrumAnalyzer(512, 0, -140, 0)
	assert.NotPanics(t, func() {
		analyzer.Analyze(sine(440, 44100, 100))
		analyzer.Analyze(sine(440, 44100, 1000))
	})
}
