package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/gopxl/beep"
)

// FrameReader slices a beep.Streamer into overlapping mono analysis windows
type FrameReader struct {
	streamer beep.Streamer
	format   beep.Format
	size     int
	hop      int

	window  []float32
	filled  bool
	start   int // Index of the first sample of the current window
	scratch [][2]float64
}

// NewFrameReader creates a reader yielding windows of size samples,
// advancing hop samples between windows.
func NewFrameReader(streamer beep.Streamer, format beep.Format, size, hop int) (*FrameReader, error) {
	if size <= 0 || hop <= 0 {
		return nil, fmt.Errorf("invalid frame size %d or hop %d", size, hop)
	}
	if format.SampleRate <= 0 {
		return nil, errors.New("invalid stream sample rate")
	}

	return &FrameReader{
		streamer: streamer,
		format:   format,
		size:     size,
		hop:      hop,
		window:   make([]float32, size),
		start:    -hop,
	}, nil
}

// Next returns the next analysis window. It returns io.EOF once the stream
// cannot fill another complete window.
func (r *FrameReader) Next() (*AudioBuffer, error) {
	if !r.filled {
		if err := r.read(r.window); err != nil {
			return nil, err
		}
		r.filled = true
		r.start = 0
	} else {
		keep := max(r.size-r.hop, 0)
		copy(r.window, r.window[r.size-keep:])
		if r.hop > r.size {
			if err := r.skip(r.hop - r.size); err != nil {
				return nil, err
			}
		}
		if err := r.read(r.window[keep:]); err != nil {
			return nil, err
		}
		r.start += r.hop
	}

	buffer := &AudioBuffer{
		Samples:    make([]float32, r.size),
		SampleRate: int(r.format.SampleRate),
	}
	copy(buffer.Samples, r.window)
	return buffer, nil
}

// Offset returns the start time of the last returned window in seconds
func (r *FrameReader) Offset() float64 {
	return float64(r.start) / float64(r.format.SampleRate)
}

// read fills dst with mono samples from the stream
func (r *FrameReader) read(dst []float32) error {
	for len(dst) > 0 {
		if cap(r.scratch) < len(dst) {
			r.scratch = make([][2]float64, len(dst))
		}
		chunk := r.scratch[:len(dst)]

		n, ok := r.streamer.Stream(chunk)
		for i := 0; i < n; i++ {
			if r.format.NumChannels == 1 {
				dst[i] = float32(chunk[i][0])
			} else {
				dst[i] = float32((chunk[i][0] + chunk[i][1]) / 2)
			}
		}
		dst = dst[n:]

		if !ok || n == 0 {
			if err := r.streamer.Err(); err != nil {
				return fmt.Errorf("read stream: %w", err)
			}
			if len(dst) > 0 {
				return io.EOF
			}
		}
	}
	return nil
}

func (r *FrameReader) skip(n int) error {
	return r.read(make([]float32, n))
}
