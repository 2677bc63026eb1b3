// Command markerconf inspects camera-calibration marker layout files.
//
// Exit status is 0 when the file decodes cleanly and 1 otherwise; decode
// diagnostics go to stderr.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	markercfg "github.com/arloliu/markercfg"
	"github.com/arloliu/markercfg/layout"
)

var (
	flagTokenBudget int
	flagMaxSize     int64
	flagCompressed  bool
	flagVerbose     bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "markerconf",
		Short:         "Inspect camera-calibration marker layout files",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logrus.SetOutput(os.Stderr)
			if flagVerbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	pf := root.PersistentFlags()
	pf.IntVar(&flagTokenBudget, "token-budget", markercfg.DefaultTokenBudget, "maximum number of JSON tokens to accept")
	pf.Int64Var(&flagMaxSize, "max-size", 0, "reject files larger than this many bytes (0 disables the guard)")
	pf.BoolVar(&flagCompressed, "compressed", false, "sniff and decompress zstd/s2/lz4/gzip files")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "log unknown and skipped keys")

	root.AddCommand(newValidateCmd(), newDumpCmd(), newHashCmd())

	return root
}

func load(path string) (*layout.MarkerConfig, error) {
	opts := []markercfg.Option{
		markercfg.WithTokenBudget(flagTokenBudget),
		markercfg.WithLogger(logrus.StandardLogger()),
	}
	if flagMaxSize > 0 {
		opts = append(opts, markercfg.WithMaxSize(flagMaxSize))
	}
	if flagCompressed {
		opts = append(opts, markercfg.WithDecompression())
	}

	return markercfg.Load(path, opts...)
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Decode a layout file and report whether it is well-formed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d angles, %d markers)\n", args[0], cfg.NumAngles, cfg.NumMarkers)

			return nil
		},
	}
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file>",
		Short: "Print the decoded layout in a human-readable form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "angles:  %d %v\n", cfg.NumAngles, cfg.Angles)
			fmt.Fprintf(out, "markers: %d colors=%v\n", cfg.NumMarkers, cfg.MarkerColors)
			for j := 0; j < cfg.NumAngles; j++ {
				fmt.Fprintf(out, "angle[%d]:\n", j)
				for m := 0; m < cfg.NumMarkers; m++ {
					sx, sy := cfg.StartAt(j, m)
					mx, my := cfg.MidAt(j, m)
					ex, ey := cfg.EndAt(j, m)
					fmt.Fprintf(out, "  marker[%d]: start=(%d,%d) mid=(%d,%d) end=(%d,%d)\n",
						m, sx, sy, mx, my, ex, ey)
				}
			}

			return nil
		},
	}
}

func newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <file>",
		Short: "Print the xxHash64 fingerprint of a layout file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%016x\n", cfg.SourceHash)

			return nil
		},
	}
}
