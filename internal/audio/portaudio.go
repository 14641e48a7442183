package audio

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// Swapped in tests
var terminatePortAudio = portaudio.Terminate

// PortAudioCapturer implements audio capture using PortAudio
type PortAudioCapturer struct {
	isCapturing   bool
	released      bool
	stream        *portaudio.Stream
	buffer        *AudioBuffer
	bufferSize    int
	sampleRate    int
	channels      int
	bufferMutex   sync.Mutex
	amplification float32 // Audio signal amplification factor
	logger        *slog.Logger
}

// NewPortAudioCapturer creates a new audio capturer using PortAudio.
// bufferSize is the number of mono frames delivered per GetBuffer.
func NewPortAudioCapturer(bufferSize, sampleRate, channels int, logger *slog.Logger) (*PortAudioCapturer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}

	return &PortAudioCapturer{
		buffer: &AudioBuffer{
			Samples:    make([]float32, 0, bufferSize),
			SampleRate: sampleRate,
		},
		bufferSize:    bufferSize,
		sampleRate:    sampleRate,
		channels:      channels,
		amplification: 1.0,
		logger:        logger.With("component", "portaudio"),
	}, nil
}

// Start begins audio capture
func (c *PortAudioCapturer) Start() error {
	if c.isCapturing {
		return ErrAlreadyCapturing
	}

	var err error
	c.stream, err = portaudio.OpenDefaultStream(
		c.channels, // input channels
		0,          // no output
		float64(c.sampleRate),
		c.bufferSize,
		c.processAudio,
	)
	if err != nil {
		return fmt.Errorf("open input stream: %w", err)
	}

	if err := c.stream.Start(); err != nil {
		c.stream.Close()
		return fmt.Errorf("start input stream: %w", err)
	}

	c.logger.Info("capture started",
		"sample_rate", c.sampleRate,
		"channels", c.channels,
		"frames_per_buffer", c.bufferSize)
	c.isCapturing = true
	return nil
}

// Stop ends audio capture and releases PortAudio
func (c *PortAudioCapturer) Stop() error {
	if !c.isCapturing {
		return ErrNotCapturing
	}

	if err := c.stream.Stop(); err != nil {
		return fmt.Errorf("stop input stream: %w", err)
	}
	if err := c.stream.Close(); err != nil {
		return fmt.Errorf("close input stream: %w", err)
	}
	c.isCapturing = false
	c.logger.Info("capture stopped")
	return c.Release()
}

// Release terminates PortAudio without a running stream, e.g. after Start
// failed. It is a no-op once PortAudio has been released.
func (c *PortAudioCapturer) Release() error {
	if c.isCapturing {
		return ErrAlreadyCapturing
	}
	if c.released {
		return nil
	}

	c.released = true
	if err := terminatePortAudio(); err != nil {
		return fmt.Errorf("terminate portaudio: %w", err)
	}
	return nil
}

// processAudio is the PortAudio stream callback
func (c *PortAudioCapturer) processAudio(in, _ []float32) {
	c.bufferMutex.Lock()
	defer c.bufferMutex.Unlock()

	mono := make([]float32, len(in)/max(c.channels, 1))
	MixDown(mono, in, c.channels, c.amplification)
	c.buffer.Samples = mono
}

// GetBuffer returns a copy of the most recent audio buffer
func (c *PortAudioCapturer) GetBuffer() (*AudioBuffer, error) {
	if !c.isCapturing {
		return nil, ErrNotCapturing
	}

	c.bufferMutex.Lock()
	defer c.bufferMutex.Unlock()

	bufferCopy := &AudioBuffer{
		Samples:    make([]float32, len(c.buffer.Samples)),
		SampleRate: c.buffer.SampleRate,
	}
	copy(bufferCopy.Samples, c.buffer.Samples)

	return bufferCopy, nil
}

// IsCapturing returns true if currently capturing audio
func (c *PortAudioCapturer) IsCapturing() bool {
	return c.isCapturing
}

// SetAmplification sets the audio amplification factor
func (c *PortAudioCapturer) SetAmplification(factor float32) {
	c.bufferMutex.Lock()
	defer c.bufferMutex.Unlock()

	// Ensure amplification is positive
	if factor < 0.1 {
		factor = 0.1
	}

	c.amplification = factor
}
