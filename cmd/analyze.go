package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/0xlemi/acftune/internal/audio"
	"github.com/0xlemi/acftune/internal/config"
	"github.com/0xlemi/acftune/internal/pitch"
	"github.com/gopxl/beep"
	"github.com/spf13/cobra"
)

type analyzeOptions struct {
	tone      float64
	duration  time.Duration
	amplitude float64
}

// frameStats summarises one analysis run
type frameStats struct {
	frames     int
	determined int
}

func newAnalyzeCmd(cfg *config.Config) *cobra.Command {
	opts := analyzeOptions{duration: time.Second, amplitude: 0.5}

	cmd := &cobra.Command{
		Use:   "analyze [file.wav]",
		Short: "Report the pitch of every frame of a WAV file or a generated tone",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog, err := initLogger(cfg.Debug, cfg.LogFile, os.Stderr)
			if err != nil {
				return err
			}
			defer closeLog()

			var (
				streamer beep.Streamer
				format   beep.Format
			)
			switch {
			case len(args) == 1:
				s, f, err := audio.OpenWAV(args[0])
				if err != nil {
					return err
				}
				defer s.Close()
				logger.Info("decoded wav", "path", args[0], "sample_rate", int(f.SampleRate), "channels", f.NumChannels)
				streamer, format = s, f
			case opts.tone > 0:
				format = beep.Format{SampleRate: beep.SampleRate(cfg.SampleRate), NumChannels: 1, Precision: 2}
				total := format.SampleRate.N(opts.duration)
				streamer = audio.NewToneGenerator(format.SampleRate, opts.tone, opts.amplitude, total)
				logger.Info("generated tone", "hz", opts.tone, "samples", total)
			default:
				return errors.New("need a WAV file or --tone")
			}

			stats, err := analyzeStream(streamer, format, cfg.BufferSize, cfg.Hop(), cmd.OutOrStdout(), logger)
			if err != nil {
				return err
			}
			logger.Info("analysis done", "frames", stats.frames, "pitched", stats.determined)
			return nil
		},
	}

	cmd.Flags().Float64Var(&opts.tone, "tone", opts.tone, "analyze a generated sine tone of this frequency instead of a file")
	cmd.Flags().DurationVar(&opts.duration, "duration", opts.duration, "length of the generated tone")
	cmd.Flags().Float64Var(&opts.amplitude, "amplitude", opts.amplitude, "amplitude of the generated tone")
	return cmd
}

// analyzeStream estimates the pitch of every window of streamer and writes
// one line per window to w.
func analyzeStream(streamer beep.Streamer, format beep.Format, size, hop int, w io.Writer, logger *slog.Logger) (frameStats, error) {
	var stats frameStats

	reader, err := audio.NewFrameReader(streamer, format, size, hop)
	if err != nil {
		return stats, err
	}

	fmt.Fprintf(w, "%9s  %12s  %5s  %6s\n", "time", "frequency", "note", "cents")
	for {
		buffer, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			return stats, err
		}
		stats.frames++

		est, err := pitch.EstimatePitch(buffer.Samples, float64(buffer.SampleRate))
		if err != nil {
			return stats, fmt.Errorf("frame at %.3fs: %w", reader.Offset(), err)
		}

		note, ok := est.Reading()
		if !ok {
			logger.Debug("indeterminate frame", "offset", reader.Offset(), "reason", est.Reason())
			fmt.Fprintf(w, "%8.3fs  %12s  %5s  %6s\n", reader.Offset(), "--", "-", "--")
			continue
		}

		stats.determined++
		fmt.Fprintf(w, "%8.3fs  %9.3f Hz  %5s  %+6d\n", reader.Offset(), note.Frequency, note.String(), note.Cents)
	}
}
