package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
)

func TestToneGeneratorMatchesSine(t *testing.T) {
	gen := NewToneGenerator(beep.SampleRate(8000), 440, 0.5, -1)
	want := Sine(440, 8000, 64, 0.5)

	samples := make([][2]float64, 64)
	n, ok := gen.Stream(samples)
	assert.True(t, ok)
	assert.Equal(t, 64, n)
	for i := range samples {
		assert.Equal(t, samples[i][0], samples[i][1])
		assert.Equal(t, want[i], float32(samples[i][0]))
	}
	assert.NoError(t, gen.Err())
}

func TestToneGeneratorStopsAfterTotal(t *testing.T) {
	gen := NewToneGenerator(beep.SampleRate(8000), 440, 0.5, 10)

	samples := make([][2]float64, 8)
	n, ok := gen.Stream(samples)
	assert.Equal(t, 8, n)
	assert.True(t, ok)

	n, ok = gen.Stream(samples)
	assert.Equal(t, 2, n)
	assert.True(t, ok)

	n, ok = gen.Stream(samples)
	assert.Equal(t, 0, n)
	assert.False(t, ok)
}

func TestSine(t *testing.T) {
	samples := Sine(1000, 4000, 8, 1)
	assert.Len(t, samples, 8)
	assert.Equal(t, float32(0), samples[0])
	assert.InDelta(t, 1, samples[1], 1e-6)
	assert.InDelta(t, 0, samples[2], 1e-6)
	assert.InDelta(t, -1, samples[3], 1e-6)

	for _, s := range Sine(440, 44100, 1024, 0.5) {
		assert.LessOrEqual(t, math.Abs(float64(s)), 0.5)
	}
}
