package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pricemap"

// Metrics holds the Prometheus counters, histograms, and gauges for the price map pipeline.
type Metrics struct {
	RendersTotal   prometheus.Counter
	RenderErrors   prometheus.Counter
	RenderDuration prometheus.Histogram
	InputsLoaded   prometheus.Gauge

	// Source and join metrics.
	RowsDropped        *prometheus.CounterVec // labels: source, reason={unresolved,out_of_window,blank}
	SourceLoadFailures *prometheus.CounterVec // labels: source
	JoinedRegions      prometheus.Gauge
	JoinGaps           prometheus.Gauge

	// Sink metrics.
	SinkDeliveries    *prometheus.CounterVec // labels: sink, outcome={success,error}
	MessagesPublished prometheus.Counter

	// Centroid lookup metrics.
	CentroidLookups     *prometheus.CounterVec // labels: outcome={success,error,empty}
	CentroidCache       *prometheus.CounterVec // labels: result={hit,miss}
	CentroidAPIDuration prometheus.Histogram
	CentroidLookupOn    prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RendersTotal,
		m.RenderErrors,
		m.RenderDuration,
		m.InputsLoaded,
		m.RowsDropped,
		m.SourceLoadFailures,
		m.JoinedRegions,
		m.JoinGaps,
		m.SinkDeliveries,
		m.MessagesPublished,
		m.CentroidLookups,
		m.CentroidCache,
		m.CentroidAPIDuration,
		m.CentroidLookupOn,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RendersTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Total completed map renders.",
		}),
		RenderErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_errors_total",
			Help:      "Total renders aborted by an error.",
		}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Duration of one normalize-join-classify-layout pass.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		InputsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "inputs_loaded",
			Help:      "1 once source tables are loaded, 0 before.",
		}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_dropped_total",
			Help:      "Source rows excluded from aggregation by source and reason.",
		}, []string{"source", "reason"}),
		SourceLoadFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_load_failures_total",
			Help:      "Source load failures by source.",
		}, []string{"source"}),
		JoinedRegions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "joined_regions",
			Help:      "Regions present in every joined table in the last render.",
		}),
		JoinGaps: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "join_gaps",
			Help:      "Regions excluded from the last render because a table lacked them.",
		}),
		SinkDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sink_deliveries_total",
			Help:      "Render deliveries by sink and outcome.",
		}, []string{"sink", "outcome"}),
		MessagesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_published_total",
			Help:      "Classification messages written to Kafka.",
		}),
		CentroidLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "centroid_lookups_total",
			Help:      "Centroid geocoding requests by outcome.",
		}, []string{"outcome"}),
		CentroidCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "centroid_cache_total",
			Help:      "Centroid cache lookups by result.",
		}, []string{"result"}),
		CentroidAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "centroid_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		CentroidLookupOn: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "centroid_lookup_enabled",
			Help:      "1 when Mapbox centroid lookup is enabled, 0 otherwise.",
		}),
	}
}
