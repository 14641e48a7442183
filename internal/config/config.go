package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// ErrInvalidConfig is returned by Validate for out-of-range settings
var ErrInvalidConfig = errors.New("invalid config")

// MinBufferSize is the shortest analysis window the commands accept
const MinBufferSize = 512

// Config holds the runtime settings shared by the commands
type Config struct {
	// Audio settings
	BufferSize    int
	SampleRate    int
	Channels      int
	Amplification float64

	// File analysis
	HopSize int

	// UI settings
	RefreshInterval  time.Duration
	EnableLevelDebug bool

	// Spectrum settings
	Smoothing float64
	MinDB     float64
	MaxDB     float64

	// Logging
	Debug   bool
	LogFile string
}

// Default returns the default configuration
func Default() Config {
	return Config{
		BufferSize:       2048,
		SampleRate:       44100,
		Channels:         1,
		Amplification:    1.0,
		HopSize:          0, // 0 means BufferSize / 4
		RefreshInterval:  80 * time.Millisecond,
		EnableLevelDebug: true,
		Smoothing:        0.8,
		MinDB:            -140,
		MaxDB:            0,
	}
}

// BindFlags registers the configuration as flags on fs
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.IntVarP(&c.BufferSize, "buffer-size", "b", c.BufferSize, "samples per analysis window")
	fs.IntVarP(&c.SampleRate, "sample-rate", "r", c.SampleRate, "capture sample rate in Hz")
	fs.IntVar(&c.Channels, "channels", c.Channels, "input channels, averaged to mono")
	fs.Float64Var(&c.Amplification, "amplification", c.Amplification, "input gain applied to captured samples")
	fs.IntVar(&c.HopSize, "hop", c.HopSize, "samples between analysis windows (default buffer-size/4)")
	fs.DurationVar(&c.RefreshInterval, "refresh", c.RefreshInterval, "minimum interval between display updates")
	fs.BoolVar(&c.EnableLevelDebug, "levels", c.EnableLevelDebug, "show input RMS and dB level")
	fs.Float64Var(&c.Smoothing, "smoothing", c.Smoothing, "spectrum smoothing time constant (0-1)")
	fs.Float64Var(&c.MinDB, "min-db", c.MinDB, "spectrum floor in dB")
	fs.Float64Var(&c.MaxDB, "max-db", c.MaxDB, "spectrum ceiling in dB")
	fs.BoolVarP(&c.Debug, "debug", "d", c.Debug, "enable debug logging")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "write logs to this file")
}

// Hop returns the effective hop size
func (c Config) Hop() int {
	if c.HopSize > 0 {
		return c.HopSize
	}
	return max(c.BufferSize/4, 1)
}

// Validate checks that every setting is usable
func (c Config) Validate() error {
	switch {
	case c.BufferSize < MinBufferSize:
		return fmt.Errorf("%w: buffer size %d must be at least %d", ErrInvalidConfig, c.BufferSize, MinBufferSize)
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d must be positive", ErrInvalidConfig, c.SampleRate)
	case c.Channels <= 0:
		return fmt.Errorf("%w: channels %d must be positive", ErrInvalidConfig, c.Channels)
	case c.Amplification <= 0:
		return fmt.Errorf("%w: amplification %v must be positive", ErrInvalidConfig, c.Amplification)
	case c.HopSize < 0:
		return fmt.Errorf("%w: hop %d must not be negative", ErrInvalidConfig, c.HopSize)
	case c.Smoothing < 0 || c.Smoothing >= 1:
		return fmt.Errorf("%w: smoothing %v must be in [0, 1)", ErrInvalidConfig, c.Smoothing)
	case c.MinDB >= c.MaxDB:
		return fmt.Errorf("%w: min-db %v must be below max-db %v", ErrInvalidConfig, c.MinDB, c.MaxDB)
	}
	return nil
}
