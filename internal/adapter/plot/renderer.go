// Package plot draws a domain.Render as a PNG or SVG map with gonum/plot.
package plot

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	gonumplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/anantsinghal-found/natgas-pricevis/internal/domain"
)

// Supported output formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

var (
	leaderColor = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	markerColor = color.RGBA{R: 31, G: 119, B: 180, A: 160}
	edgeColor   = color.White
)

// Renderer lays draw commands out on a longitude/latitude plane.
type Renderer struct {
	Width  vg.Length
	Height vg.Length
}

// NewRenderer returns a renderer sized for a national map.
func NewRenderer() *Renderer {
	return &Renderer{Width: 16 * vg.Inch, Height: 10 * vg.Inch}
}

// Plot builds the plot for r. Regions with outlines are filled polygons;
// the rest are category-colored glyphs at their anchor.
func (rd *Renderer) Plot(r domain.Render) (*gonumplot.Plot, error) {
	p := gonumplot.New()
	p.Title.Text = r.Title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.HideAxes()

	for _, f := range r.Fills {
		fill, err := parseHex(f.Color)
		if err != nil {
			return nil, err
		}
		if len(f.Rings) > 0 {
			poly, err := plotter.NewPolygon(ringsToXYs(f.Rings)...)
			if err != nil {
				return nil, eris.Wrapf(err, "plot: outline %s", f.Region)
			}
			poly.Color = fill
			poly.LineStyle.Color = edgeColor
			poly.LineStyle.Width = vg.Points(0.5)
			p.Add(poly)
			continue
		}
		glyph, err := plotter.NewScatter(plotter.XYs{toXY(f.Anchor)})
		if err != nil {
			return nil, eris.Wrapf(err, "plot: glyph %s", f.Region)
		}
		glyph.GlyphStyle.Color = fill
		glyph.GlyphStyle.Radius = vg.Points(14)
		glyph.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(glyph)
	}

	for _, l := range r.Lines {
		line, err := plotter.NewLine(plotter.XYs{toXY(l.Segment.From), toXY(l.Segment.To)})
		if err != nil {
			return nil, eris.Wrapf(err, "plot: leader %s", l.Region)
		}
		line.LineStyle.Color = leaderColor
		line.LineStyle.Width = vg.Points(1)
		p.Add(line)
	}

	for _, m := range r.Markers {
		marker, err := plotter.NewScatter(plotter.XYs{toXY(m.At)})
		if err != nil {
			return nil, eris.Wrapf(err, "plot: marker %s", m.Region)
		}
		marker.GlyphStyle.Color = markerColor
		marker.GlyphStyle.Radius = vg.Points(m.Radius)
		marker.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(marker)
	}

	if len(r.Labels) > 0 {
		xys := make(plotter.XYs, len(r.Labels))
		texts := make([]string, len(r.Labels))
		for i, t := range r.Labels {
			xys[i] = toXY(t.At)
			texts[i] = t.Text
		}
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
		if err != nil {
			return nil, eris.Wrap(err, "plot: labels")
		}
		for i := range labels.TextStyle {
			labels.TextStyle[i].XAlign = draw.XCenter
			labels.TextStyle[i].YAlign = draw.YCenter
		}
		p.Add(labels)
	}

	if err := rd.addLegend(p, r); err != nil {
		return nil, err
	}
	return p, nil
}

func (rd *Renderer) addLegend(p *gonumplot.Plot, r domain.Render) error {
	colors := make(map[domain.Category]string)
	for _, f := range r.Fills {
		colors[f.Category] = f.Color
	}
	for _, cat := range r.Legend {
		hex, ok := colors[cat]
		if !ok {
			continue
		}
		c, err := parseHex(hex)
		if err != nil {
			return err
		}
		thumb, err := plotter.NewScatter(plotter.XYs{{}})
		if err != nil {
			return eris.Wrap(err, "plot: legend")
		}
		thumb.GlyphStyle.Color = c
		thumb.GlyphStyle.Shape = draw.BoxGlyph{}
		p.Legend.Add(string(cat), thumb)
	}
	p.Legend.Top = true
	return nil
}

// WriteTo encodes r in format ("png" or "svg") to w.
func (rd *Renderer) WriteTo(w io.Writer, r domain.Render, format string) error {
	format = strings.ToLower(format)
	if format != FormatPNG && format != FormatSVG {
		return eris.Errorf("plot: unsupported format %q", format)
	}
	p, err := rd.Plot(r)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(rd.Width, rd.Height, format)
	if err != nil {
		return eris.Wrap(err, "plot: encoder")
	}
	if _, err := wt.WriteTo(w); err != nil {
		return eris.Wrap(err, "plot: write")
	}
	return nil
}

func toXY(g domain.Geo) plotter.XY {
	return plotter.XY{X: g.Lon, Y: g.Lat}
}

func ringsToXYs(rings [][]domain.Geo) []plotter.XYer {
	out := make([]plotter.XYer, 0, len(rings))
	for _, ring := range rings {
		xys := make(plotter.XYs, len(ring))
		for i, g := range ring {
			xys[i] = toXY(g)
		}
		out = append(out, xys)
	}
	return out
}

// parseHex reads "#rrggbb".
func parseHex(s string) (color.RGBA, error) {
	var c color.RGBA
	c.A = 255
	if len(s) != 7 || s[0] != '#' {
		return c, eris.Errorf("plot: bad color %q", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, eris.Wrapf(err, "plot: bad color %q", s)
	}
	return c, nil
}
