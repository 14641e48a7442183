package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 2048, cfg.BufferSize)
	assert.Equal(t, 512, cfg.Hop())
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(*Config)
	}{
		{"tiny buffer", func(c *Config) { c.BufferSize = 2 }},
		{"buffer below minimum", func(c *Config) { c.BufferSize = MinBufferSize - 1 }},
		{"zero sample rate", func(c *Config) { c.SampleRate = 0 }},
		{"no channels", func(c *Config) { c.Channels = 0 }},
		{"zero amplification", func(c *Config) { c.Amplification = 0 }},
		{"negative hop", func(c *Config) { c.HopSize = -1 }},
		{"smoothing of one", func(c *Config) { c.Smoothing = 1 }},
		{"inverted dB range", func(c *Config) { c.MinDB, c.MaxDB = 0, -10 }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := Default()
			c.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestValidateAcceptsMinimumBuffer(t *testing.T) {
	cfg := Default()
	cfg.BufferSize = MinBufferSize
	assert.NoError(t, cfg.Validate())
}

func TestBindFlags(t *testing.T) {
	cfg := Default()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.BindFlags(fs)

	err := fs.Parse([]string{"-b", "1024", "--hop", "100", "--refresh", "50ms", "--debug", "--log-file", "out.log"})
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(1024, cfg.BufferSize)
	assert.Equal(100, cfg.Hop())
	assert.Equal(50*time.Millisecond, cfg.RefreshInterval)
	assert.True(cfg.Debug)
	assert.Equal("out.log", cfg.LogFile)
	assert.Equal(44100, cfg.SampleRate)
}
