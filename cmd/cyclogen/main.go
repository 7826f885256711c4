// cyclogen: headless cycloidal disc generator.
//
// Generates disc profiles from flags, a config file or CYCLODISC_*
// environment variables and writes the same outputs as the desktop app.
//
//   cyclogen generate --pins 9 --pcd 76 --pin-d 6 --e 1.5 --dxf --gcode
//   cyclogen check --design reducer.cyclo --against shop.dxf
//   cyclogen batch designs.csv --out build --pdf
//   cyclogen compare --pins 31 --pcd 120 --pin-d 5 --e 1.2

package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configFile string
	designFile string
	verbose    bool
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{logger: slog.New(slog.NewTextHandler(os.Stderr, nil))}

	root := &cobra.Command{
		Use:           "cyclogen",
		Short:         "Generate cycloidal reducer discs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "config file with parameter keys (yaml, json or toml)")
	pf.StringVar(&opts.designFile, "design", "", "saved design file (.cyclo, .json, .yaml) used as the base")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging on stderr")

	root.AddCommand(
		newGenerateCmd(opts),
		newCheckCmd(opts),
		newBatchCmd(opts),
		newCompareCmd(opts),
	)
	return root
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("cyclogen failed", "err", err)
		os.Exit(1)
	}
}
