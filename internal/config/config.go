package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/anantsinghal-found/natgas-pricevis/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	GasSourcePath   string
	GasSheet        string
	GasHeaderRow    int
	ElecSourcePath  string
	ElecSheet       string
	ElecHeaderRow   int
	SitesSourcePath string
	BoundariesPath  string

	Window         domain.Window
	Thresholds     domain.ThresholdConfig
	ClassifyMode   domain.Mode
	ReportMetric   domain.Metric
	ClusterHighCut float64
	RenderOutput   string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Kafka publishing is enabled when KafkaBrokers is non-empty.
	KafkaBrokers       []string
	KafkaSinkTopic     string
	BatchSize          int
	BatchFlushInterval time.Duration

	// Mapbox geocoding configuration.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int
}

// KafkaEnabled reports whether classifications should be published.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	mapboxTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("MAPBOX_TIMEOUT", "5s"))
	if err != nil || mapboxTimeout <= 0 {
		return nil, errors.New("invalid MAPBOX_TIMEOUT")
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	gasHeaderRow, err := parsePositiveInt("GAS_HEADER_ROW", 3)
	if err != nil {
		return nil, err
	}
	elecHeaderRow, err := parsePositiveInt("ELEC_HEADER_ROW", 3)
	if err != nil {
		return nil, err
	}

	window, err := parseWindow()
	if err != nil {
		return nil, err
	}

	gasThreshold, err := parseThreshold("GAS_THRESHOLD", 30)
	if err != nil {
		return nil, err
	}
	elecThreshold, err := parseThreshold("ELEC_THRESHOLD", 105)
	if err != nil {
		return nil, err
	}

	mode, err := domain.ParseMode(os.Getenv("CLASSIFY_MODE"))
	if err != nil {
		return nil, fmt.Errorf("invalid CLASSIFY_MODE: %w", err)
	}

	highCut, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("CLUSTER_HIGH_CUT", "50"), 64)
	if err != nil || math.IsNaN(highCut) || math.IsInf(highCut, 0) {
		return nil, errors.New("invalid CLUSTER_HIGH_CUT")
	}

	reportMetric := domain.Metric(sharedcfg.EnvOrDefault("REPORT_METRIC", string(domain.MetricNaturalGas)))
	if reportMetric != domain.MetricNaturalGas && reportMetric != domain.MetricElectricity {
		return nil, fmt.Errorf("invalid REPORT_METRIC %q", reportMetric)
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		GasSourcePath:   sharedcfg.EnvOrDefault("GAS_SOURCE_PATH", "data/natural_gas.xlsx"),
		GasSheet:        sharedcfg.EnvOrDefault("GAS_SHEET", "Data 1"),
		GasHeaderRow:    gasHeaderRow,
		ElecSourcePath:  sharedcfg.EnvOrDefault("ELEC_SOURCE_PATH", "data/electricity_price_avg.xlsx"),
		ElecSheet:       os.Getenv("ELEC_SHEET"),
		ElecHeaderRow:   elecHeaderRow,
		SitesSourcePath: os.Getenv("SITES_SOURCE_PATH"),
		BoundariesPath:  os.Getenv("BOUNDARIES_PATH"),

		Window: window,
		Thresholds: domain.ThresholdConfig{
			domain.MetricNaturalGas:  gasThreshold,
			domain.MetricElectricity: elecThreshold,
		},
		ClassifyMode:   mode,
		ReportMetric:   reportMetric,
		ClusterHighCut: highCut,
		RenderOutput:   os.Getenv("RENDER_OUTPUT"),

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		KafkaBrokers:       sharedcfg.ParseBrokers(os.Getenv("KAFKA_BROKERS")),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "region-price-classifications"),
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parseMapboxCacheSize(),
	}

	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}

	return cfg, nil
}

func parseWindow() (domain.Window, error) {
	start, err := time.Parse(time.DateOnly, sharedcfg.EnvOrDefault("WINDOW_START", "2020-01-01"))
	if err != nil {
		return domain.Window{}, errors.New("invalid WINDOW_START: want YYYY-MM-DD")
	}
	end, err := time.Parse(time.DateOnly, sharedcfg.EnvOrDefault("WINDOW_END", "2025-12-31"))
	if err != nil {
		return domain.Window{}, errors.New("invalid WINDOW_END: want YYYY-MM-DD")
	}
	if end.Before(start) {
		return domain.Window{}, errors.New("WINDOW_END is before WINDOW_START")
	}
	return domain.Window{Start: start, End: end}, nil
}

func parseThreshold(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !domain.ValidThreshold(v) {
		return 0, fmt.Errorf("invalid %s: must be a finite non-negative number", key)
	}
	return v, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", key)
	}
	return n, nil
}

func parseMapboxCacheSize() int {
	if s := os.Getenv("MAPBOX_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
