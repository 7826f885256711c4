package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CycloDisc/internal/engine"
)

func newCompareCmd(opts *rootOptions) *cobra.Command {
	var densities []int

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare uniform and adaptive sampling of a design",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := opts.viperFor(cmd)
			if err != nil {
				return err
			}
			d, err := opts.resolveDesign(v)
			if err != nil {
				return err
			}

			rows, err := engine.CompareSampling(d.Params, d.Engine, densities)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "Density\tUniform pts\tAdaptive pts\tMax deviation\tMax chord\t")
			for _, r := range rows {
				fmt.Fprintf(tw, "%d\t%d\t%d\t%.6f\t%.4f\t\n",
					r.Density, r.UniformPoints, r.AdaptivePoints, r.MaxDeviation, r.MaxChord)
			}
			return tw.Flush()
		},
	}

	addParamFlags(cmd.Flags())
	cmd.Flags().IntSliceVar(&densities, "densities", engine.DefaultComparisonDensities(), "samples per lobe to compare")
	return cmd
}
