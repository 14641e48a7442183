package pitch

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/0xlemi/acftune/internal/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sine(freq float64, sampleRate, n int) []float32 {
	return audio.Sine(freq, sampleRate, n, 0.5)
}

func TestEstimatePitchSilence(t *testing.T) {
	cases := []struct {
		name string
		buf  []float32
	}{
		{"all zero", make([]float32, 2048)},
		{"constant below threshold", constant(0.001, 2048)},
		{"quiet sine", audio.Sine(440, 44100, 2048, 0.01)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			est, err := EstimatePitch(c.buf, 44100)
			require.NoError(t, err)

			assert := assert.New(t)
			assert.True(est.Indeterminate())
			assert.Equal(Silent, est.Reason())
			_, ok := est.Frequency()
			assert.False(ok)
			_, ok = est.Reading()
			assert.False(ok)
		})
	}
}

func TestEstimatePitchJustAboveSilence(t *testing.T) {
	buf := audio.Sine(440, 44100, 2048, 0.015)
	require.Greater(t, RMS(buf), SilenceRMS)

	est, err := EstimatePitch(buf, 44100)
	require.NoError(t, err)

	freq, ok := est.Frequency()
	require.True(t, ok)
	assert.InDelta(t, 440, freq, 1.0)
}

func TestEstimatePitchSine(t *testing.T) {
	cases := []struct {
		freq       float64
		sampleRate int
		size       int
		name       string
	}{
		{440, 44100, 2048, "A"},
		{466.16, 44100, 2048, "A#"},
		{220, 48000, 2048, "A"},
		{82.41, 44100, 2048, "E"},
		{440, 44100, 1024, "A"},
		{440, 44100, 4096, "A"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			est, err := EstimatePitch(sine(c.freq, c.sampleRate, c.size), float64(c.sampleRate))
			require.NoError(t, err)

			freq, ok := est.Frequency()
			require.True(t, ok)
			assert.InDelta(t, c.freq, freq, 1.0)

			note, ok := est.Reading()
			require.True(t, ok)
			assert.Equal(t, c.name, note.Name)
			assert.InDelta(t, 0, note.Cents, 5)
		})
	}
}

func TestEstimatePitchFloat64Samples(t *testing.T) {
	buf32 := sine(440, 44100, 2048)
	buf64 := make([]float64, len(buf32))
	for i, s := range buf32 {
		buf64[i] = float64(s)
	}

	want, err := EstimatePitch(buf32, 44100)
	require.NoError(t, err)
	got, err := EstimatePitch(buf64, 44100)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEstimatePitchIsDeterministic(t *testing.T) {
	buf := sine(440, 44100, 2048)
	first, err := EstimatePitch(buf, 44100)
	require.NoError(t, err)
	second, err := EstimatePitch(buf, 44100)
	require.NoError(t, err)

	f1, _ := first.Frequency()
	f2, _ := second.Frequency()
	assert.Equal(t, math.Float64bits(f1), math.Float64bits(f2))
}

func TestEstimatePitchDoesNotModifyInput(t *testing.T) {
	buf := sine(440, 44100, 1024)
	orig := append([]float32(nil), buf...)

	_, err := EstimatePitch(buf, 44100)
	require.NoError(t, err)
	assert.Equal(t, orig, buf)
}

func TestEstimatePitchConcurrent(t *testing.T) {
	want, err := EstimatePitch(sine(440, 44100, 1024), 44100)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]Estimate, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = EstimatePitch(sine(440, 44100, 1024), 44100)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestEstimatePitchDegenerateRegions(t *testing.T) {
	t.Run("constant signal uses the clamped lag", func(t *testing.T) {
		est, err := EstimatePitch(constant(0.5, 64), 8000)
		require.NoError(t, err)

		freq, ok := est.Frequency()
		require.True(t, ok)
		assert.InDelta(t, 8000.0/61, freq, 1e-9)
	})

	t.Run("silent stable region has no period", func(t *testing.T) {
		buf := []float32{0.9, 0.9, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0.9, 0.9}
		est, err := EstimatePitch(buf, 8000)
		require.NoError(t, err)
		assert.Equal(t, NoPeriod, est.Reason())
	})

	t.Run("single sample has no period", func(t *testing.T) {
		est, err := EstimatePitch([]float32{0.5}, 8000)
		require.NoError(t, err)
		assert.Equal(t, NoPeriod, est.Reason())
	})
}

func TestEstimatePitchInvalidInput(t *testing.T) {
	cases := []struct {
		name       string
		buf        []float64
		sampleRate float64
		want       error
	}{
		{"empty buffer", nil, 44100, ErrEmptyBuffer},
		{"zero sample rate", []float64{0.5, -0.5}, 0, ErrInvalidSampleRate},
		{"negative sample rate", []float64{0.5, -0.5}, -44100, ErrInvalidSampleRate},
		{"NaN sample rate", []float64{0.5, -0.5}, math.NaN(), ErrInvalidSampleRate},
		{"infinite sample rate", []float64{0.5, -0.5}, math.Inf(1), ErrInvalidSampleRate},
		{"NaN sample", []float64{0.5, math.NaN()}, 44100, ErrNonFiniteSample},
		{"infinite sample", []float64{math.Inf(-1), 0.5}, 44100, ErrNonFiniteSample},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := EstimatePitch(c.buf, c.sampleRate)
			assert.True(t, errors.Is(err, c.want), "got %v", err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestEstimateString(t *testing.T) {
	assert.Equal(t, "440.000 Hz", Determinate(440).String())
	assert.Equal(t, "silent", Indeterminate(Silent).String())
	assert.Equal(t, "no period", Indeterminate(NoPeriod).String())
}

func constant(v float32, n int) []float32 {
	buf := make([]float32, n)
	for i := range buf {
		buf[i] = v
	}
	return buf
}
