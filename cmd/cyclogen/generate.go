package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/piwi3910/CycloDisc/internal/engine"
	"github.com/piwi3910/CycloDisc/internal/export"
	"github.com/piwi3910/CycloDisc/internal/model"
)

// outputFlags selects which files a command writes.
type outputFlags struct {
	dir    string
	out    export.Outputs
	labels bool
}

func (o *outputFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&o.dir, "out", "o", ".", "output directory")
	fs.BoolVar(&o.out.DXF, "dxf", false, "write the DXF drawing")
	fs.BoolVar(&o.out.PDF, "pdf", false, "write the PDF sheet")
	fs.BoolVar(&o.out.PNG, "png", false, "write a PNG plot")
	fs.BoolVar(&o.out.SVG, "svg", false, "write an SVG plot")
	fs.BoolVar(&o.out.XLSX, "xlsx", false, "write the coordinate workbook")
	fs.BoolVar(&o.out.GCode, "gcode", false, "write one G-code program per disc")
	fs.BoolVar(&o.labels, "labels", false, "write a QR label sheet")
}

// selected returns the chosen outputs, DXF when nothing was chosen.
func (o *outputFlags) selected() export.Outputs {
	if !o.out.Any() && !o.labels {
		return export.Outputs{DXF: true}
	}
	return o.out
}

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var outs outputFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one design and write its files",
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

			res, err := engine.GenerateDesign(d)
			if err != nil {
				return err
			}
			for _, w := range res.Warnings {
				opts.logger.Warn(w, "design", d.Name)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, res.Summary.StatusText())

			base := export.FileBase(d.Name)
			files, err := export.WriteDesign(outs.dir, base, d, res, outs.selected())
			if err != nil {
				return err
			}
			if outs.labels {
				path := filepath.Join(outs.dir, base+"_label.pdf")
				if err := export.ExportLabels(path, []model.Design{d}); err != nil {
					return err
				}
				files = append(files, path)
			}
			for _, f := range files {
				fmt.Fprintf(w, "wrote %s\n", f)
			}
			return nil
		},
	}

	addParamFlags(cmd.Flags())
	outs.register(cmd.Flags())
	return cmd
}
