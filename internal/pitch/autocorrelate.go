package pitch

import "math"

const (
	// SilenceRMS is the RMS level below which a buffer has no usable pitch
	SilenceRMS = 0.01

	// EdgeThreshold bounds the stable region kept by TrimEdges, as a fraction of full scale
	EdgeThreshold = 0.2
)

// Sample is the element type of a time-domain audio buffer
type Sample interface {
	~float32 | ~float64
}

// RMS returns the root-mean-square amplitude of buf
func RMS[S Sample](buf []S) float64 {
	if len(buf) == 0 {
		return 0
	}

	sumSquares := 0.0
	for _, s := range buf {
		v := float64(s)
		sumSquares += v * v
	}
	return math.Sqrt(sumSquares / float64(len(buf)))
}

// TrimEdges returns a float64 copy of the stable region of buf.
//
// The left bound is the first sample in the first half whose magnitude is
// below EdgeThreshold; the right bound (exclusive) is the last such sample
// in the second half, scanning back from the end. Bounds that are never
// found default to 0 and len(buf)-1.
func TrimEdges[S Sample](buf []S) []float64 {
	size := len(buf)
	left, right := 0, size-1

	for i := 0; 2*i < size; i++ {
		if math.Abs(float64(buf[i])) < EdgeThreshold {
			left = i
			break
		}
	}
	for i := 1; 2*i < size; i++ {
		if math.Abs(float64(buf[size-i])) < EdgeThreshold {
			right = size - i
			break
		}
	}

	if right <= left {
		return nil
	}

	trimmed := make([]float64, right-left)
	for i := range trimmed {
		trimmed[i] = float64(buf[left+i])
	}
	return trimmed
}

// Autocorrelate returns the unnormalized autocorrelation of buf for every
// lag 0..len(buf)-1: c[k] = sum of buf[j]*buf[j+k].
func Autocorrelate(buf []float64) []float64 {
	size := len(buf)
	c := make([]float64, size)
	for lag := 0; lag < size; lag++ {
		sum := 0.0
		for j := 0; j < size-lag; j++ {
			sum += buf[j] * buf[j+lag]
		}
		c[lag] = sum
	}
	return c
}
