package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/lenient/internal/platform"
)

var (
	verbose    bool
	configFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lenient",
	Short: "Present JS and JSON files in a concise lenient dialect",
	Long: `Lenient converts documents between their canonical syntax (JS or JSON)
and a concise lenient dialect. Saves are transactional: content is converted
before the destination is touched, so a failed conversion never loses data.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if cfg, err := platform.LoadConfig(configFile); err == nil {
			level = cfg.Level()
		}
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", platform.DefaultConfigFile, "Path to the config file")
}

// newRuntime wires the subsystem with the CLI's config file and logger.
func newRuntime(opts ...platform.Option) (*platform.Runtime, error) {
	base := []platform.Option{
		platform.WithConfigFile(configFile),
		platform.WithLogger(slog.Default()),
	}
	return platform.New(append(base, opts...)...)
}
