package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/0xlemi/acftune/internal/config"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cfg := config.Default()

	rootCmd := &cobra.Command{
		Use:          "acftune",
		Short:        "Monophonic pitch detector and tuner",
		Long:         `Estimates the pitch of a monophonic signal with autocorrelation and shows the nearest note and its detune in cents.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.Validate()
		},
	}
	cfg.BindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newListenCmd(&cfg))
	rootCmd.AddCommand(newAnalyzeCmd(&cfg))
	return rootCmd
}

// initLogger configures the shared slog logger and sets it as the default.
// When path is set logs are appended to that file; otherwise they go to w.
func initLogger(debug bool, path string, w io.Writer) (*slog.Logger, func(), error) {
	closer := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	}))
	slog.SetDefault(logger)
	return logger, closer, nil
}
