package audio

import (
	"errors"
)

// Errors
var (
	ErrAlreadyCapturing = errors.New("audio capture already started")
	ErrNotCapturing     = errors.New("audio capture not started")
)

// AudioBuffer represents a buffer of audio samples
type AudioBuffer struct {
	Samples    []float32
	SampleRate int
}

// Duration returns the length of the buffer in seconds
func (b *AudioBuffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate)
}

// Capturer defines the interface for audio capture
type Capturer interface {
	// Start begins audio capture
	Start() error

	// Stop ends audio capture
	Stop() error

	// GetBuffer returns the current audio buffer
	GetBuffer() (*AudioBuffer, error)

	// IsCapturing returns true if currently capturing audio
	IsCapturing() bool
}

// MixDown averages interleaved multi-channel samples into dst, scaling each
// result by gain. dst must hold len(in)/channels samples.
func MixDown(dst, in []float32, channels int, gain float32) {
	if channels <= 1 {
		for i := range dst {
			dst[i] = in[i] * gain
		}
		return
	}

	for i := range dst {
		sum := float32(0)
		for ch := 0; ch < channels; ch++ {
			sum += in[i*channels+ch]
		}
		dst[i] = (sum / float32(channels)) * gain
	}
}
