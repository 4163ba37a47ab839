package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/anantsinghal-found/natgas-pricevis/internal/domain"
)

// Normalized is the output of the aggregate and convert stages.
type Normalized struct {
	Gas         domain.RegionTable
	Electricity domain.RegionTable
	// Unresolved lists the distinct dropped labels per metric.
	Unresolved map[domain.Metric][]string
	// Dropped counts dropped rows per metric.
	Dropped map[domain.Metric]domain.DroppedRows
}

// Normalize aggregates both tables and converts them to $/MWh. Gas is
// averaged over window; electricity rows are averaged without one.
func Normalize(in *Inputs, window domain.Window) (Normalized, error) {
	resolver := domain.DefaultResolver()

	gas, err := domain.Aggregate(in.Gas, resolver, &window)
	if err != nil {
		return Normalized{}, fmt.Errorf("aggregate gas: %w", err)
	}
	elec, err := domain.Aggregate(in.Electricity, resolver, nil)
	if err != nil {
		return Normalized{}, fmt.Errorf("aggregate electricity: %w", err)
	}

	return Normalized{
		Gas: domain.ConvertTable(
			domain.RegionTable{Metric: domain.MetricNaturalGas, Values: gas.Values},
			domain.KcfToMWh,
		),
		Electricity: domain.ConvertTable(
			domain.RegionTable{Metric: domain.MetricElectricity, Values: elec.Values},
			domain.CentsPerKWhToMWh,
		),
		Unresolved: map[domain.Metric][]string{
			domain.MetricNaturalGas:  gas.Unresolved,
			domain.MetricElectricity: elec.Unresolved,
		},
		Dropped: map[domain.Metric]domain.DroppedRows{
			domain.MetricNaturalGas:  gas.Dropped,
			domain.MetricElectricity: elec.Dropped,
		},
	}, nil
}

// Table returns the normalized table for m.
func (n Normalized) Table(m domain.Metric) (domain.RegionTable, bool) {
	switch m {
	case domain.MetricNaturalGas:
		return n.Gas, true
	case domain.MetricElectricity:
		return n.Electricity, true
	default:
		return domain.RegionTable{}, false
	}
}

func (p *Pipeline) render(ctx context.Context, in *Inputs, req Request) (domain.Render, error) {
	if in == nil {
		return domain.Render{}, errors.New("render: inputs not loaded")
	}
	if err := ctx.Err(); err != nil {
		return domain.Render{}, err
	}

	norm, err := Normalize(in, p.opts.Window)
	if err != nil {
		return domain.Render{}, err
	}
	for metric, labels := range norm.Unresolved {
		for _, label := range labels {
			p.logger.Debug("unresolved region label dropped", "metric", metric, "label", label)
		}
	}
	for metric, d := range norm.Dropped {
		p.metrics.RowsDropped.WithLabelValues(string(metric), "unresolved").Add(float64(d.Unresolved))
		p.metrics.RowsDropped.WithLabelValues(string(metric), "out_of_window").Add(float64(d.OutOfWindow))
		p.metrics.RowsDropped.WithLabelValues(string(metric), "blank").Add(float64(d.Blank))
	}

	joined := domain.Join(norm.Gas, norm.Electricity)
	gaps := domain.JoinGaps(norm.Gas, norm.Electricity)
	p.metrics.JoinedRegions.Set(float64(len(joined)))
	p.metrics.JoinGaps.Set(float64(len(gaps)))
	if len(gaps) > 0 {
		p.logger.Debug("regions excluded from join", "regions", gaps)
	}

	classifier := p.classifier(req)
	records := classifier.ClassifyAll(joined)

	var report *domain.Report
	if table, ok := norm.Table(p.opts.ReportMetric); ok {
		rep, err := domain.BuildReport(table, p.opts.ClusterHighCut)
		switch {
		case err == nil:
			report = &rep
		case errors.Is(err, domain.ErrNoValues):
			p.logger.Warn("no values for report", "metric", p.opts.ReportMetric)
		default:
			return domain.Render{}, err
		}
	}

	layout := domain.LabelLayout{
		Metric:    p.opts.ReportMetric,
		Crowded:   domain.CrowdedLabelPositions(),
		Centroids: in.Centroids,
		Defaults:  in.Anchors,
	}
	placements := layout.Place(records)

	var markers []domain.MarkerCommand
	if len(in.Sites) > 0 {
		markers = domain.SiteMarkers(in.Sites, domain.DefaultResolver(), in.Anchors)
	}

	r := domain.BuildRender(records, placements, markers, report, p.opts.Palette)
	r.Title = classifier.Title()
	r.Legend = classifier.Mode.Categories()
	for i := range r.Fills {
		code := r.Fills[i].Region
		if a, ok := in.Anchors[code]; ok {
			r.Fills[i].Anchor = a
		}
		if in.Boundaries != nil {
			r.Fills[i].Rings = in.Boundaries.Rings[code]
		}
	}
	return r, nil
}

func (p *Pipeline) classifier(req Request) domain.Classifier {
	mode := req.Mode
	if mode == "" {
		mode = p.opts.Mode
	}
	if mode == "" {
		mode = domain.ModeTwoWay
	}
	thresholds := req.Thresholds
	if thresholds == nil {
		thresholds = domain.DefaultThresholds()
	}
	return domain.Classifier{Mode: mode, Thresholds: thresholds}
}
