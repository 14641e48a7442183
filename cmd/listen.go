package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/0xlemi/acftune/internal/audio"
	"github.com/0xlemi/acftune/internal/config"
	"github.com/0xlemi/acftune/internal/pitch"
	"github.com/0xlemi/acftune/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const (
	debugInterval = time.Millisecond * 200 // How often to update level info
	pollInterval  = time.Millisecond * 10
)

func newListenCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "listen",
		Short: "Detect the pitch of the default input device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The terminal belongs to the UI, so logs only go to --log-file.
			logger, closeLog, err := initLogger(cfg.Debug, cfg.LogFile, io.Discard)
			if err != nil {
				return err
			}
			defer closeLog()
			return listen(*cfg, logger)
		},
	}
}

// getAudioLevel calculates RMS and dB level
func getAudioLevel(buffer *audio.AudioBuffer) (rms, db float32) {
	if buffer == nil || len(buffer.Samples) == 0 {
		return 0, -100
	}

	rms = float32(pitch.RMS(buffer.Samples))

	// Avoid log(0)
	if rms > 0.0000001 {
		db = 20 * float32(math.Log10(float64(rms)))
	} else {
		db = -100
	}
	return rms, db
}

func listen(cfg config.Config, logger *slog.Logger) error {
	capturer, err := audio.NewPortAudioCapturer(cfg.BufferSize, cfg.SampleRate, cfg.Channels, logger)
	if err != nil {
		return fmt.Errorf("create audio capturer: %w", err)
	}
	capturer.SetAmplification(float32(cfg.Amplification))

	if err := capturer.Start(); err != nil {
		if rerr := capturer.Release(); rerr != nil {
			logger.Error("release portaudio", "err", rerr)
		}
		return fmt.Errorf("start audio capture: %w", err)
	}
	defer func() {
		if err := capturer.Stop(); err != nil {
			logger.Error("stop audio capture", "err", err)
		}
	}()

	detector := pitch.NewACFDetector()
	spectrum := pitch.NewSpectrumAnalyzer(cfg.BufferSize, cfg.Smoothing, cfg.MinDB, cfg.MaxDB)

	p := tea.NewProgram(ui.NewModel(cfg.EnableLevelDebug, cfg.MinDB, cfg.MaxDB), tea.WithAltScreen())

	done := make(chan struct{})
	go func() {
		processAudio(cfg, capturer, detector, spectrum, p, logger, done)
	}()

	_, err = p.Run()
	close(done)
	if err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// processAudio runs one estimation per captured frame until done is closed
func processAudio(
	cfg config.Config,
	capturer audio.Capturer,
	detector pitch.Detector,
	spectrum *pitch.SpectrumAnalyzer,
	p *tea.Program,
	logger *slog.Logger,
	done <-chan struct{},
) {
	lastDebugTime := time.Now()
	lastNoteTime := time.Now()

	for {
		select {
		case <-done:
			return
		default:
		}

		buffer, err := capturer.GetBuffer()
		if err != nil || len(buffer.Samples) < config.MinBufferSize {
			time.Sleep(pollInterval)
			continue
		}

		if cfg.EnableLevelDebug && time.Since(lastDebugTime) > debugInterval {
			rms, db := getAudioLevel(buffer)
			p.Send(ui.UpdateAudioLevelMsg{RMS: rms, DB: db})
			lastDebugTime = time.Now()
		}

		note, err := detector.DetectPitch(buffer)
		switch {
		case errors.Is(err, pitch.ErrVolumeThreshold), errors.Is(err, pitch.ErrNoPeriod):
			p.Send(ui.ClearNoteMsg{})
		case err != nil:
			logger.Warn("pitch detection failed", "err", err)
			p.Send(ui.ClearNoteMsg{})
		case time.Since(lastNoteTime) > cfg.RefreshInterval:
			logger.Debug("note", "note", note.String(), "hz", note.Frequency, "cents", note.Cents)
			p.Send(ui.UpdateNoteMsg(*note))
			lastNoteTime = time.Now()
		}

		p.Send(ui.UpdateSpectrumMsg(spectrum.Analyze(buffer.Samples)))

		time.Sleep(cfg.RefreshInterval / 2)
	}
}
