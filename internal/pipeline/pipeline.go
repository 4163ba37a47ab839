package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"
	"golang.org/x/sync/errgroup"

	"github.com/anantsinghal-found/natgas-pricevis/internal/domain"
	"github.com/anantsinghal-found/natgas-pricevis/internal/observability"
)

// ErrNotLoaded is returned when rendering before a successful Load.
var ErrNotLoaded = errors.New("source tables have not been loaded yet")

// ObservationSource loads the raw rows of one price table.
type ObservationSource interface {
	Load(ctx context.Context) ([]domain.RawObservation, error)
}

// SiteSource loads industrial-site counts for the marker overlay.
type SiteSource interface {
	LoadSites(ctx context.Context) ([]domain.SiteCount, error)
}

// BoundarySource loads region outlines and their area centroids.
type BoundarySource interface {
	LoadBoundaries(ctx context.Context) (domain.Boundaries, error)
}

// RenderSink receives each finished render.
type RenderSink interface {
	Name() string
	Deliver(ctx context.Context, r domain.Render) error
}

// Sources groups the pipeline inputs. Sites, Boundaries and Locator are optional.
type Sources struct {
	Gas         ObservationSource
	Electricity ObservationSource
	Sites       SiteSource
	Boundaries  BoundarySource
	Locator     domain.CentroidLocator
}

// Options are the render settings that do not change per request.
type Options struct {
	Window         domain.Window
	Mode           domain.Mode
	ReportMetric   domain.Metric
	ClusterHighCut float64
	Palette        domain.Palette
	// DeliveryAttempts bounds retries per sink; values below 1 mean 1.
	DeliveryAttempts int
}

// DefaultOptions returns the stock window, mode, metric and cluster cut.
func DefaultOptions() Options {
	return Options{
		Window:           domain.DefaultWindow(),
		Mode:             domain.ModeTwoWay,
		ReportMetric:     domain.MetricNaturalGas,
		ClusterHighCut:   domain.DefaultHighCut,
		Palette:          domain.DefaultPalette(),
		DeliveryAttempts: 3,
	}
}

// Request carries the per-render parameters supplied by the CLI or HTTP UI.
// An empty Mode falls back to Options.Mode.
type Request struct {
	Thresholds domain.ThresholdConfig
	Mode       domain.Mode
}

// Inputs is everything loaded from sources. It is read-only once built.
type Inputs struct {
	Gas         []domain.RawObservation
	Electricity []domain.RawObservation
	Sites       []domain.SiteCount
	Boundaries  *domain.Boundaries
	// Centroids are the leader line origins, including any looked up.
	Centroids map[domain.RegionCode]domain.Geo
	// Anchors are the default label and marker positions.
	Anchors map[domain.RegionCode]domain.Geo
}

// Pipeline loads sources once and renders on demand.
type Pipeline struct {
	sources Sources
	sinks   []RenderSink
	opts    Options
	logger  *slog.Logger
	metrics *observability.Metrics
	inputs  atomic.Pointer[Inputs]
}

// New creates a Pipeline with the given sources, sinks, and observability.
func New(sources Sources, sinks []RenderSink, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		sources: sources,
		sinks:   sinks,
		opts:    opts,
		logger:  logger,
		metrics: metrics,
	}
}

// CheckReadiness returns nil once source tables are loaded.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if p.inputs.Load() == nil {
		return ErrNotLoaded
	}
	return nil
}

// Inputs returns the most recently loaded inputs, or nil before Load succeeds.
func (p *Pipeline) Inputs() *Inputs {
	return p.inputs.Load()
}

// Load reads every source concurrently. Gas and electricity failures are
// fatal; site and boundary failures only drop the overlay.
func (p *Pipeline) Load(ctx context.Context) (*Inputs, error) {
	in := &Inputs{}
	var boundaries domain.Boundaries
	var haveBoundaries bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := p.sources.Gas.Load(gctx)
		if err != nil {
			p.metrics.SourceLoadFailures.WithLabelValues(string(domain.MetricNaturalGas)).Inc()
			return fmt.Errorf("load gas source: %w", err)
		}
		in.Gas = rows
		return nil
	})
	g.Go(func() error {
		rows, err := p.sources.Electricity.Load(gctx)
		if err != nil {
			p.metrics.SourceLoadFailures.WithLabelValues(string(domain.MetricElectricity)).Inc()
			return fmt.Errorf("load electricity source: %w", err)
		}
		in.Electricity = rows
		return nil
	})
	if p.sources.Sites != nil {
		g.Go(func() error {
			sites, err := p.sources.Sites.LoadSites(gctx)
			if err != nil {
				p.metrics.SourceLoadFailures.WithLabelValues("sites").Inc()
				p.logger.Warn("site source failed, overlay omitted", "error", err)
				return nil
			}
			in.Sites = sites
			return nil
		})
	}
	if p.sources.Boundaries != nil {
		g.Go(func() error {
			b, err := p.sources.Boundaries.LoadBoundaries(gctx)
			if err != nil {
				p.metrics.SourceLoadFailures.WithLabelValues("boundaries").Inc()
				p.logger.Warn("boundary source failed, using static positions", "error", err)
				return nil
			}
			boundaries, haveBoundaries = b, true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	crowded := domain.CrowdedLabelPositions()
	known := domain.LeaderCentroids()
	in.Anchors = domain.DefaultPositions()
	if haveBoundaries {
		in.Boundaries = &boundaries
		in.Anchors = domain.MergePositions(in.Anchors, boundaries.Centroids)
		for code := range crowded {
			if c, ok := boundaries.Centroids[code]; ok {
				known[code] = c
			}
		}
	}
	in.Centroids = domain.ResolveCentroids(ctx, crowded, known, p.sources.Locator, p.logger)

	p.inputs.Store(in)
	p.metrics.InputsLoaded.Set(1)
	p.logger.Info("sources loaded",
		"gas_rows", len(in.Gas),
		"electricity_rows", len(in.Electricity),
		"site_rows", len(in.Sites),
		"boundaries", haveBoundaries,
	)
	return in, nil
}

// Render runs the core stages over in. Every call recomputes everything.
func (p *Pipeline) Render(ctx context.Context, in *Inputs, req Request) (domain.Render, error) {
	start := time.Now()
	r, err := p.render(ctx, in, req)
	if err != nil {
		p.metrics.RenderErrors.Inc()
		return domain.Render{}, err
	}
	p.metrics.RendersTotal.Inc()
	p.metrics.RenderDuration.Observe(time.Since(start).Seconds())
	return r, nil
}

// RenderLoaded renders against the inputs kept by the last successful Load.
func (p *Pipeline) RenderLoaded(ctx context.Context, req Request) (domain.Render, error) {
	in := p.inputs.Load()
	if in == nil {
		return domain.Render{}, ErrNotLoaded
	}
	return p.Render(ctx, in, req)
}

// Run loads sources, renders once, and delivers the render to every sink.
func (p *Pipeline) Run(ctx context.Context, req Request) (domain.Render, error) {
	in, err := p.Load(ctx)
	if err != nil {
		return domain.Render{}, err
	}
	r, err := p.Render(ctx, in, req)
	if err != nil {
		return domain.Render{}, err
	}

	var errs []error
	for _, s := range p.sinks {
		if err := p.deliver(ctx, s, r); err != nil {
			errs = append(errs, fmt.Errorf("sink %s: %w", s.Name(), err))
		}
	}
	return r, errors.Join(errs...)
}

// deliver retries a sink with exponential backoff: 200ms doubling to a 5s cap.
func (p *Pipeline) deliver(ctx context.Context, s RenderSink, r domain.Render) error {
	attempts := max(p.opts.DeliveryAttempts, 1)
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	var err error
	for i := 1; i <= attempts; i++ {
		if err = s.Deliver(ctx, r); err == nil {
			p.metrics.SinkDeliveries.WithLabelValues(s.Name(), "success").Inc()
			return nil
		}
		p.metrics.SinkDeliveries.WithLabelValues(s.Name(), "error").Inc()
		p.logger.Warn("sink delivery failed",
			"sink", s.Name(),
			"attempt", i,
			"error", err,
		)
		if i == attempts || !retry.SleepWithContext(ctx, backoff) {
			break
		}
		backoff = retry.NextBackoff(backoff, maxBackoff)
	}
	return err
}
