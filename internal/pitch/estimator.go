package pitch

import (
	"fmt"
	"math"
)

// Reason explains why an Estimate carries no frequency
type Reason int

const (
	// Determined means the estimate holds a frequency
	Determined Reason = iota
	// Silent means the buffer RMS was below SilenceRMS
	Silent
	// NoPeriod means the stable region was too short or flat to form a period
	NoPeriod
)

func (r Reason) String() string {
	switch r {
	case Determined:
		return "determined"
	case Silent:
		return "silent"
	case NoPeriod:
		return "no period"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// Estimate is the result of one pitch estimation: either a positive
// frequency or an indeterminate value with a Reason.
type Estimate struct {
	frequency float64
	reason    Reason
}

// Determinate returns an estimate holding frequency
func Determinate(frequency float64) Estimate {
	return Estimate{frequency: frequency, reason: Determined}
}

// Indeterminate returns an estimate with no frequency
func Indeterminate(reason Reason) Estimate {
	return Estimate{reason: reason}
}

// Frequency returns the estimated frequency in Hz and whether there is one
func (e Estimate) Frequency() (float64, bool) {
	return e.frequency, e.reason == Determined
}

// Indeterminate reports whether no reliable pitch was found
func (e Estimate) Indeterminate() bool {
	return e.reason != Determined
}

// Reason returns why the estimate is indeterminate, or Determined
func (e Estimate) Reason() Reason {
	return e.reason
}

// Reading converts a determinate estimate to a Note
func (e Estimate) Reading() (Note, bool) {
	if e.Indeterminate() {
		return Note{}, false
	}
	return NewReading(e.frequency), true
}

func (e Estimate) String() string {
	if e.Indeterminate() {
		return e.reason.String()
	}
	return fmt.Sprintf("%.3f Hz", e.frequency)
}

// EstimatePitch estimates the fundamental frequency of a monophonic buffer
// sampled at sampleRate Hz using autocorrelation with parabolic peak
// refinement.
//
// Quiet buffers yield an indeterminate estimate, not an error. Errors are
// only returned for invalid input and wrap ErrInvalidInput. EstimatePitch
// keeps no state and does not modify buf, so it is safe for concurrent use.
func EstimatePitch[S Sample](buf []S, sampleRate float64) (Estimate, error) {
	if err := validate(buf, sampleRate); err != nil {
		return Estimate{}, err
	}

	if RMS(buf) < SilenceRMS {
		return Indeterminate(Silent), nil
	}

	lag, ok := FindPeriod(Autocorrelate(TrimEdges(buf)))
	if !ok || lag <= 0 || math.IsInf(lag, 0) || math.IsNaN(lag) {
		return Indeterminate(NoPeriod), nil
	}

	return Determinate(sampleRate / lag), nil
}

func validate[S Sample](buf []S, sampleRate float64) error {
	if len(buf) == 0 {
		return ErrEmptyBuffer
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	for i, s := range buf {
		v := float64(s)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: sample %d is %v", ErrNonFiniteSample, i, v)
		}
	}
	return nil
}
