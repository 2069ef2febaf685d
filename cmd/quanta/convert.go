package main

import (
	"fmt"
	"strconv"

	"github.com/hupe1980/quanta"
	"github.com/spf13/cobra"
)

var convertExample = `  # wind speed in km/h
  quanta convert 12.5 m/s km/h

  # surface pressure in pascal
  quanta convert 1013.25 hPa Pa`

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "convert <value> <from> <to>",
		Short:   "Convert a value between units",
		Example: convertExample,
		Args:    cobra.ExactArgs(3),
		RunE: func(c *cobra.Command, args []string) error {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[0], err)
			}
			out, err := quanta.Convert(c.Context(), []float64{v}, args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "%s %s\n", strconv.FormatFloat(out[0], 'g', -1, 64), args[2])
			return nil
		},
	}
}
