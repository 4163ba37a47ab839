package main

import (
	"github.com/spf13/cobra"

	"github.com/anantsinghal-found/natgas-pricevis/internal/observability"
	"github.com/anantsinghal-found/natgas-pricevis/internal/pipeline"
)

func newReportCmd() *cobra.Command {
	var flags renderFlags
	var out string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render once and deliver to every configured sink",
		Long: `Load the price tables, classify each region and deliver the render.

The text report always goes to stdout. The map is written when --out or
RENDER_OUTPUT names a .png or .svg file, and classifications are published
when KAFKA_BROKERS is set.

Example: pricemap report --gas-threshold 25 --mode three-way --out map.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(cmd, cfg)
			if err != nil {
				return err
			}

			metrics := observability.NewMetrics()
			sources, err := buildSources(cfg, metrics)
			if err != nil {
				return err
			}
			sinks, closers := buildSinks(cfg, out, metrics)
			defer closeAll(closers)

			p := pipeline.New(sources, sinks, pipelineOptions(cfg), logger, metrics)
			_, err = p.Run(cmd.Context(), req)
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&out, "out", "", "write the map to this .png or .svg file")
	return cmd
}
