package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CycloDisc/internal/export"
	"github.com/piwi3910/CycloDisc/internal/importer"
	"github.com/piwi3910/CycloDisc/internal/model"
	"github.com/piwi3910/CycloDisc/internal/project"
)

func newBatchCmd(opts *rootOptions) *cobra.Command {
	var (
		outs    outputFlags
		workers int
	)

	cmd := &cobra.Command{
		Use:   "batch <designs.csv|designs.xlsx>",
		Short: "Generate every design of a CSV or Excel sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			var imported importer.ImportResult
			switch strings.ToLower(filepath.Ext(path)) {
			case ".csv", ".txt", ".tsv":
				imported = importer.ImportCSV(path)
			case ".xlsx", ".xlsm":
				imported = importer.ImportExcel(path)
			default:
				return fmt.Errorf("unsupported sheet %s: want .csv or .xlsx", path)
			}
			for _, e := range imported.Errors {
				opts.logger.Error(e, "file", path)
			}
			for _, w := range imported.Warnings {
				opts.logger.Warn(w, "file", path)
			}
			if len(imported.Designs) == 0 {
				return errors.New("no designs imported")
			}

			cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
			if err != nil {
				opts.logger.Warn("ignoring unreadable app config", "err", err)
				cfg = model.DefaultAppConfig()
			}
			designs := imported.Designs
			for i := range designs {
				exact := designs[i].Options.ExactGeometry
				cfg.ApplyToDesign(&designs[i])
				designs[i].Options.ExactGeometry = exact
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			opts.logger.Debug("batch start", "designs", len(designs), "workers", workers, "dir", outs.dir)
			results, err := export.Batch(ctx, outs.dir, designs, outs.selected(), workers)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					fmt.Fprintf(w, "FAIL %s: %v\n", r.Design.Name, r.Err)
					continue
				}
				for _, warn := range r.Warnings {
					opts.logger.Warn(warn, "design", r.Design.Name)
				}
				fmt.Fprintf(w, "ok   %s (%d files)\n", r.Design.Name, len(r.Files))
			}
			if outs.labels {
				labels := filepath.Join(outs.dir, "labels.pdf")
				if err := export.ExportLabels(labels, designs); err != nil {
					return err
				}
				fmt.Fprintf(w, "wrote %s\n", labels)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d designs failed", failed, len(results))
			}
			if n := len(imported.Errors); n > 0 {
				return fmt.Errorf("%d rows of %s were rejected", n, filepath.Base(path))
			}
			return nil
		},
	}

	outs.register(cmd.Flags())
	cmd.Flags().IntVarP(&workers, "workers", "j", runtime.NumCPU(), "designs generated in parallel")
	return cmd
}
