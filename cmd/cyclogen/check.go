package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CycloDisc/internal/engine"
	"github.com/piwi3910/CycloDisc/internal/gcode"
	"github.com/piwi3910/CycloDisc/internal/importer"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var (
		against   string
		tolerance float64
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report clearance, intersections and tool fit for a design",
		Long: `Generates the design and prints its diagnostics. With --against the
discs are compared to the outlines of an existing DXF drawing.

Exits non-zero when the profile self-intersects, a disc has no matching
outline, or a deviation exceeds --tolerance.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := opts.viperFor(cmd)
			if err != nil {
				return err
			}
			d, err := opts.resolveDesign(v)
			if err != nil {
				return err
			}
			res, err := engine.GenerateDesign(d)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, res.Summary.StatusText())
			fmt.Fprintf(w, "min gap: %.4f mm (guard %.3f mm, %d iterations)\n",
				res.MinGap(), res.Guard, res.Iterations)
			fmt.Fprintf(w, "self-intersection: %t\n", res.SelfIntersects)
			for _, warn := range res.Warnings {
				fmt.Fprintf(w, "warning: %s\n", warn)
			}
			for _, warn := range gcode.FormatToolFitWarnings(gcode.CheckToolFit(res, d.Machining)) {
				fmt.Fprintf(w, "tool: %s\n", warn)
			}

			var problems []string
			if res.SelfIntersects {
				problems = append(problems, "profile self-intersects")
			}

			if against != "" {
				drawing := importer.ImportDXF(against)
				if len(drawing.Errors) > 0 {
					return errors.New(strings.Join(drawing.Errors, "; "))
				}
				for _, warn := range drawing.Warnings {
					opts.logger.Warn(warn, "file", against)
				}
				for _, r := range importer.CompareDrawing(res, drawing) {
					if !r.Found {
						fmt.Fprintf(w, "%s: no matching outline\n", r.Disc)
						problems = append(problems, fmt.Sprintf("%s not found in %s", r.Disc, against))
						continue
					}
					fmt.Fprintf(w, "%s: max deviation %.5f mm (layer %s)\n", r.Disc, r.Deviation, r.Layer)
					if r.Deviation > tolerance {
						problems = append(problems,
							fmt.Sprintf("%s deviates %.5f mm, tolerance %.5f mm", r.Disc, r.Deviation, tolerance))
					}
				}
			}

			if len(problems) > 0 {
				return errors.New(strings.Join(problems, "; "))
			}
			return nil
		},
	}

	addParamFlags(cmd.Flags())
	cmd.Flags().StringVar(&against, "against", "", "DXF drawing to compare the discs with")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0.01, "allowed deviation from the drawing in mm")
	return cmd
}
