// Package cli defines the command-line interface for reopenwarn.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vulpin/reopenwarn/internal/config"
	"github.com/vulpin/reopenwarn/internal/logging"
)

// Options stores global CLI options shared between commands.
type Options struct {
	ConfigPath string
	EnvFiles   []string
	LogLevel   string
	Timeout    time.Duration
	Cookie     string

	// Config is populated before any subcommand runs.
	Config *config.Config
	// Environ replaces the process environment when set, for tests.
	Environ config.Vars
}

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	return execute(context.Background(), args, logger, os.Stdout, &Options{})
}

func execute(ctx context.Context, args []string, logger *slog.Logger, out io.Writer, opts *Options) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	rootCmd := newRootCommand(opts, logger)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	return rootCmd.ExecuteContext(ctx)
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
func newRootCommand(opts *Options, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "reopenwarn",
		Short:         "Warn about reopen reviews on closed Stack Exchange questions",
		Long:          "reopenwarn inspects a closed question's timeline and reports whether a reopen review has run since the question was last closed.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.LoadOptions{
				Path:     opts.ConfigPath,
				EnvFiles: opts.EnvFiles,
				Environ:  opts.Environ,
			})
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cmd.Flags().Changed("timeout") {
				cfg.Timeout = opts.Timeout
			}
			if cmd.Flags().Changed("cookie") {
				cfg.Cookie = opts.Cookie
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = opts.LogLevel
			}
			opts.Config = cfg

			level := logging.ParseLevel(cfg.LogLevel)
			logger = logging.NewLogger(os.Stderr, level)
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
			logger.Debug("logger initialized", "level", level, "base_url", cfg.BaseURL)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to config file (default "+config.DefaultPath+" if present)")
	cmd.PersistentFlags().StringSliceVar(&opts.EnvFiles, "env-file", nil, "Additional .env files with "+config.EnvPrefix+"* settings")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 0, "HTTP request timeout (e.g. 10s)")
	cmd.PersistentFlags().StringVar(&opts.Cookie, "cookie", "", "Session cookie header sent to the site")

	cmd.AddCommand(
		newCheckCommand(opts),
		newTimelineCommand(opts),
		newAnnotateCommand(opts),
	)

	return cmd
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}
