package pitch

import (
	"errors"
	"fmt"

	"github.com/0xlemi/acftune/internal/audio"
)

// Errors
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrEmptyBuffer       = fmt.Errorf("%w: empty audio buffer", ErrInvalidInput)
	ErrInvalidSampleRate = fmt.Errorf("%w: sample rate must be positive and finite", ErrInvalidInput)
	ErrNonFiniteSample   = fmt.Errorf("%w: non-finite sample", ErrInvalidInput)

	ErrVolumeThreshold = errors.New("volume below threshold")
	ErrNoPeriod        = errors.New("no stable period")
)

// Detector defines the interface for pitch detection
type Detector interface {
	// DetectPitch analyzes an audio buffer and returns the detected note
	DetectPitch(buffer *audio.AudioBuffer) (*Note, error)
}

// ACFDetector detects pitch with the autocorrelation estimator
type ACFDetector struct{}

// NewACFDetector creates a new autocorrelation pitch detector
func NewACFDetector() *ACFDetector {
	return &ACFDetector{}
}

// DetectPitch analyzes an audio buffer and returns the detected note.
// Indeterminate estimates are reported as ErrVolumeThreshold or ErrNoPeriod.
func (d *ACFDetector) DetectPitch(buffer *audio.AudioBuffer) (*Note, error) {
	if buffer == nil {
		return nil, ErrEmptyBuffer
	}

	est, err := EstimatePitch(buffer.Samples, float64(buffer.SampleRate))
	if err != nil {
		return nil, err
	}

	switch est.Reason() {
	case Silent:
		return nil, ErrVolumeThreshold
	case NoPeriod:
		return nil, ErrNoPeriod
	}

	note, _ := est.Reading()
	return &note, nil
}
