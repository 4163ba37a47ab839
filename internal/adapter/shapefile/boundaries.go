// Package shapefile loads region outlines from an ESRI shapefile.
package shapefile

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"

	"github.com/anantsinghal-found/natgas-pricevis/internal/domain"
)

// Attribute names tried, in order, to identify a record's region.
const (
	CodeField = "STUSPS"
	NameField = "NAME"
)

// BoundarySource reads polygon outlines keyed by region. Coordinates are
// expected in WGS-84 longitude/latitude.
type BoundarySource struct {
	Path   string
	logger *slog.Logger
}

// NewBoundarySource creates a BoundarySource for the .shp file at path.
func NewBoundarySource(path string, logger *slog.Logger) *BoundarySource {
	return &BoundarySource{Path: path, logger: logger}
}

// LoadBoundaries returns the rings and area centroid of every record that
// names a known region. Other records are skipped.
func (s *BoundarySource) LoadBoundaries(ctx context.Context) (domain.Boundaries, error) {
	reader, err := shp.Open(s.Path)
	if err != nil {
		return domain.Boundaries{}, eris.Wrapf(err, "shapefile: open %s", s.Path)
	}
	defer func() { _ = reader.Close() }()

	fieldIdx := make(map[string]int)
	for i, f := range reader.Fields() {
		name := strings.TrimRight(f.String(), "\x00")
		fieldIdx[strings.ToUpper(name)] = i
	}
	codeIdx, hasCode := fieldIdx[CodeField]
	nameIdx, hasName := fieldIdx[NameField]
	if !hasCode && !hasName {
		return domain.Boundaries{}, eris.Errorf("shapefile: %s has neither %s nor %s attribute", s.Path, CodeField, NameField)
	}

	b := domain.Boundaries{
		Rings:     make(map[domain.RegionCode][][]domain.Geo),
		Centroids: make(map[domain.RegionCode]domain.Geo),
	}
	var skipped int

	for reader.Next() {
		if err := ctx.Err(); err != nil {
			return domain.Boundaries{}, err
		}
		_, shape := reader.Shape()

		code, ok := regionOf(reader, codeIdx, hasCode, nameIdx, hasName)
		if !ok {
			skipped++
			continue
		}
		poly, ok := shape.(*shp.Polygon)
		if !ok {
			skipped++
			continue
		}
		mp, rings := toMultiPolygon(poly)
		if mp == nil {
			skipped++
			continue
		}

		b.Rings[code] = append(b.Rings[code], rings...)
		c := xy.MultiPolygonCentroid(mp)
		b.Centroids[code] = domain.Geo{Lat: c.Y(), Lon: c.X()}
	}

	if skipped > 0 {
		s.logger.Debug("shapefile records skipped", "path", s.Path, "skipped", skipped)
	}
	return b, nil
}

type attributeReader interface {
	Attribute(n int) string
}

func regionOf(r attributeReader, codeIdx int, hasCode bool, nameIdx int, hasName bool) (domain.RegionCode, bool) {
	if hasCode {
		code := domain.RegionCode(attr(r, codeIdx))
		if domain.IsRegion(code) {
			return code, true
		}
	}
	if hasName {
		return domain.LookupName(attr(r, nameIdx))
	}
	return "", false
}

func attr(r attributeReader, i int) string {
	return strings.TrimSpace(strings.TrimRight(r.Attribute(i), "\x00"))
}

// toMultiPolygon treats every part as its own polygon. Parts with fewer than
// four points are dropped.
func toMultiPolygon(p *shp.Polygon) (*geom.MultiPolygon, [][]domain.Geo) {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil, nil
	}

	mp := geom.NewMultiPolygon(geom.XY)
	var rings [][]domain.Geo

	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		end := int32(len(p.Points))
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		}
		if end-start < 4 {
			continue
		}

		flat := make([]float64, 0, 2*(end-start))
		ring := make([]domain.Geo, 0, end-start)
		for j := start; j < end; j++ {
			pt := p.Points[j]
			flat = append(flat, pt.X, pt.Y)
			ring = append(ring, domain.Geo{Lat: pt.Y, Lon: pt.X})
		}

		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(geom.NewLinearRingFlat(geom.XY, flat)); err != nil {
			continue
		}
		if err := mp.Push(poly); err != nil {
			continue
		}
		rings = append(rings, ring)
	}

	if mp.NumPolygons() == 0 {
		return nil, nil
	}
	return mp, rings
}
