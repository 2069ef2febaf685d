package main

import (
	"fmt"
	"strconv"

	"github.com/hupe1980/quanta"
	"github.com/hupe1980/quanta/set"
	"github.com/spf13/cobra"
)

func newInterpCmd() *cobra.Command {
	var samples []float64

	cmd := &cobra.Command{
		Use:     "interp --samples <s1,s2,...> <x>...",
		Short:   "Interpolate values in unordered 1-D samples",
		Example: "  quanta interp --samples 130,55,37,28,61 60 100",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			s, err := set.NewIrregular1D(samples)
			if err != nil {
				return err
			}
			values := make([]float64, len(args))
			for i, a := range args {
				if values[i], err = strconv.ParseFloat(a, 64); err != nil {
					return fmt.Errorf("invalid value %q: %w", a, err)
				}
			}

			indices, weights, err := s.ValueToInterp([][]float64{values})
			if err != nil {
				return err
			}
			misses := 0
			w := c.OutOrStdout()
			for i, v := range values {
				if indices[i] == nil {
					misses++
					fmt.Fprintf(w, "%g: outside\n", v)
					continue
				}
				fmt.Fprintf(w, "%g:", v)
				for k, idx := range indices[i] {
					fmt.Fprintf(w, " %d(%.6g)", idx, weights[i][k])
				}
				fmt.Fprintln(w)
			}
			quanta.CurrentLogger().WithKind("irregular1d").LogInterp(c.Context(), len(values), misses)
			return nil
		},
	}
	cmd.Flags().Float64SliceVar(&samples, "samples", nil, "comma-separated sample values")
	_ = cmd.MarkFlagRequired("samples")
	return cmd
}
