// Package console prints the statistics report as plain text.
package console

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/anantsinghal-found/natgas-pricevis/internal/domain"
)

// FormatReport renders r as the multi-section text report.
func FormatReport(r domain.Report) string {
	var b strings.Builder
	s := r.Summary
	d := domain.FormatDollars

	fmt.Fprintf(&b, "Regional average price (%s, $/MWh, %d regions):\n", r.Metric, s.Count)
	fmt.Fprintf(&b, "  Low:    %s\n", d(s.Min))
	fmt.Fprintf(&b, "  Median: %s\n", d(s.Median))
	fmt.Fprintf(&b, "  High:   %s\n", d(s.Max))

	b.WriteString("\nQuartiles ($/MWh):\n")
	fmt.Fprintf(&b, "  25th: %s\n", d(s.Q1))
	fmt.Fprintf(&b, "  50th: %s\n", d(s.Q2))
	fmt.Fprintf(&b, "  75th: %s\n", d(s.Q3))
	fmt.Fprintf(&b, "  95th: %s (color scale cap)\n", d(s.P95))

	b.WriteString("\nPercentiles ($/MWh):\n")
	for _, rung := range s.Ladder {
		fmt.Fprintf(&b, "  %3dth: %s\n", rung.Percentile, d(rung.Value))
	}

	c := r.Clusters
	b.WriteString("\nRegion clusters ($/MWh):\n")
	fmt.Fprintf(&b, "Low    (<= %s): %s\n", d(c.LowCut), joinCodes(c.Low))
	fmt.Fprintf(&b, "Median (>  %s and <= %s): %s\n", d(c.LowCut), d(c.HighCut), joinCodes(c.Median))
	fmt.Fprintf(&b, "High   (>  %s): %s\n", d(c.HighCut), joinCodes(c.High))
	return b.String()
}

func joinCodes(codes []domain.RegionCode) string {
	if len(codes) == 0 {
		return "(none)"
	}
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}

// Sink prints each render's report to an io.Writer.
type Sink struct {
	w io.Writer
}

// NewSink creates a Sink writing to w.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

// Name implements pipeline.RenderSink.
func (s *Sink) Name() string { return "console" }

// Deliver writes the title, the join size and the report.
func (s *Sink) Deliver(_ context.Context, r domain.Render) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.Title)
	fmt.Fprintf(&b, "Generated %s, %d regions joined\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05 MST"), len(r.Records))
	if r.Report != nil {
		b.WriteString(FormatReport(*r.Report))
	} else {
		b.WriteString("No values to summarize.\n")
	}
	if _, err := io.WriteString(s.w, b.String()); err != nil {
		return eris.Wrap(err, "console: write report")
	}
	return nil
}
