package main

import (
	"fmt"
	"strings"

	"github.com/hupe1980/quanta"
	"github.com/spf13/cobra"
)

func newDimensionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dimension <unit>",
		Short: "Show the definition and dimension of a unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			d, err := quanta.Describe(args[0])
			if err != nil {
				return err
			}
			w := c.OutOrStdout()
			fmt.Fprintf(w, "unit:       %s\n", d.Unit)
			fmt.Fprintf(w, "definition: %s\n", d.Definition)
			if d.Dimension == nil {
				fmt.Fprintln(w, "dimension:  any")
				return nil
			}
			fmt.Fprintf(w, "dimension:  %s\n", d.Dimension)
			if len(d.Quantities) > 0 {
				names := make([]string, len(d.Quantities))
				for i, q := range d.Quantities {
					names[i] = q.Name()
				}
				fmt.Fprintf(w, "quantities: %s\n", strings.Join(names, ", "))
			}
			return nil
		},
	}
}
