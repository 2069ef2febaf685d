package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hupe1980/quanta"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	logLevel  string
	logFormat string
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "quanta",
		Short:         "Unit conversion and sample interpolation",
		SilenceUsage:  true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			logger, err := flags.logger(errOut)
			if err != nil {
				return err
			}
			quanta.SetLogger(logger)
			return nil
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "minimum log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "text", "log output format (text, json)")

	cmd.AddCommand(
		newConvertCmd(),
		newDimensionCmd(),
		newInterpCmd(),
	)
	return cmd
}

func (f *globalFlags) logger(w io.Writer) (*quanta.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(f.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", f.logLevel)
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(f.logFormat) {
	case "text":
		return quanta.NewLogger(slog.NewTextHandler(w, opts)), nil
	case "json":
		return quanta.NewLogger(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q: want text or json", f.logFormat)
	}
}
