// Command pricemap classifies regions by natural gas and electricity prices
// and renders the result as a map, a text report, and optional Kafka messages.
package main

import (
	"fmt"
	"log/slog"
	"os"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/spf13/cobra"

	"github.com/anantsinghal-found/natgas-pricevis/internal/config"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pricemap",
		Short:         "Regional energy price classification and map rendering",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg = c
			logger = sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
			return nil
		},
	}

	rootCmd.AddCommand(
		newReportCmd(),
		newServeCmd(),
		newValidateCmd(),
	)
	return rootCmd
}
