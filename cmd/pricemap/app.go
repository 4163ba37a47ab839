package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anantsinghal-found/natgas-pricevis/internal/adapter/console"
	"github.com/anantsinghal-found/natgas-pricevis/internal/adapter/kafka"
	"github.com/anantsinghal-found/natgas-pricevis/internal/adapter/mapbox"
	"github.com/anantsinghal-found/natgas-pricevis/internal/adapter/plot"
	"github.com/anantsinghal-found/natgas-pricevis/internal/adapter/shapefile"
	"github.com/anantsinghal-found/natgas-pricevis/internal/adapter/spreadsheet"
	"github.com/anantsinghal-found/natgas-pricevis/internal/config"
	"github.com/anantsinghal-found/natgas-pricevis/internal/domain"
	"github.com/anantsinghal-found/natgas-pricevis/internal/observability"
	"github.com/anantsinghal-found/natgas-pricevis/internal/pipeline"
)

// renderFlags are the per-run overrides shared by report and serve.
type renderFlags struct {
	gasThreshold  float64
	elecThreshold float64
	mode          string
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.gasThreshold, "gas-threshold", 0, "natural gas threshold in $/MWh (default from GAS_THRESHOLD)")
	cmd.Flags().Float64Var(&f.elecThreshold, "elec-threshold", 0, "electricity threshold in $/MWh (default from ELEC_THRESHOLD)")
	cmd.Flags().StringVar(&f.mode, "mode", "", "classification mode: two-way or three-way (default from CLASSIFY_MODE)")
}

// thresholds merges changed flags over the configured thresholds.
func (f *renderFlags) thresholds(cmd *cobra.Command, base domain.ThresholdConfig) (domain.ThresholdConfig, error) {
	out := make(domain.ThresholdConfig, len(base))
	for m, v := range base {
		out[m] = v
	}
	if cmd.Flags().Changed("gas-threshold") {
		if !domain.ValidThreshold(f.gasThreshold) {
			return nil, fmt.Errorf("--gas-threshold must be a finite non-negative number")
		}
		out[domain.MetricNaturalGas] = f.gasThreshold
	}
	if cmd.Flags().Changed("elec-threshold") {
		if !domain.ValidThreshold(f.elecThreshold) {
			return nil, fmt.Errorf("--elec-threshold must be a finite non-negative number")
		}
		out[domain.MetricElectricity] = f.elecThreshold
	}
	return out, nil
}

func (f *renderFlags) request(cmd *cobra.Command, c *config.Config) (pipeline.Request, error) {
	thresholds, err := f.thresholds(cmd, c.Thresholds)
	if err != nil {
		return pipeline.Request{}, err
	}
	req := pipeline.Request{Thresholds: thresholds}
	if f.mode != "" {
		mode, err := domain.ParseMode(f.mode)
		if err != nil {
			return pipeline.Request{}, err
		}
		req.Mode = mode
	}
	return req, nil
}

// closer releases a sink's resources on exit.
type closer interface {
	Close() error
}

// buildSources wires the spreadsheet readers, the optional boundary shapefile
// and the optional Mapbox centroid lookup.
func buildSources(c *config.Config, metrics *observability.Metrics) (pipeline.Sources, error) {
	src := pipeline.Sources{
		Gas:         spreadsheet.NewGasSource(c.GasSourcePath, c.GasSheet, c.GasHeaderRow, logger),
		Electricity: spreadsheet.NewElectricitySource(c.ElecSourcePath, c.ElecSheet, c.ElecHeaderRow, logger),
	}
	if c.SitesSourcePath != "" {
		src.Sites = spreadsheet.NewSiteSource(c.SitesSourcePath, "", logger)
	}
	if c.BoundariesPath != "" {
		src.Boundaries = shapefile.NewBoundarySource(c.BoundariesPath, logger)
	}

	if c.MapboxEnabled {
		client := mapbox.NewClient(c.MapboxToken, c.MapboxTimeout, logger, metrics)
		locator, err := mapbox.NewCachedLocator(client, c.MapboxCacheSize, metrics)
		if err != nil {
			return pipeline.Sources{}, fmt.Errorf("mapbox cache: %w", err)
		}
		src.Locator = locator
		metrics.CentroidLookupOn.Set(1)
		logger.Info("mapbox centroid lookup enabled", "cache_size", c.MapboxCacheSize, "timeout", c.MapboxTimeout)
	} else {
		logger.Info("mapbox centroid lookup disabled")
	}
	return src, nil
}

// buildSinks returns the console sink plus any configured file and Kafka sinks.
func buildSinks(c *config.Config, out string, metrics *observability.Metrics) ([]pipeline.RenderSink, []closer) {
	sinks := []pipeline.RenderSink{console.NewSink(os.Stdout)}
	var closers []closer

	if out == "" {
		out = c.RenderOutput
	}
	if out != "" {
		sinks = append(sinks, plot.NewFileSink(out, logger))
	}
	if c.KafkaEnabled() {
		pub := kafka.NewPublisher(c, logger, metrics)
		sinks = append(sinks, pub)
		closers = append(closers, pub)
		logger.Info("kafka publishing enabled", "brokers", c.KafkaBrokers, "topic", c.KafkaSinkTopic)
	}
	return sinks, closers
}

func pipelineOptions(c *config.Config) pipeline.Options {
	opts := pipeline.DefaultOptions()
	opts.Window = c.Window
	opts.Mode = c.ClassifyMode
	opts.ReportMetric = c.ReportMetric
	opts.ClusterHighCut = c.ClusterHighCut
	return opts
}

func closeAll(closers []closer) {
	for _, c := range closers {
		if err := c.Close(); err != nil {
			logger.Error("sink close error", "error", err)
		}
	}
}
