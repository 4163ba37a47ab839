package shapefile

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anantsinghal-found/natgas-pricevis/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// square returns a closed ring around (lon, lat) with half-width d.
func square(lon, lat, d float64) []shp.Point {
	return []shp.Point{
		{X: lon - d, Y: lat - d},
		{X: lon - d, Y: lat + d},
		{X: lon + d, Y: lat + d},
		{X: lon + d, Y: lat - d},
		{X: lon - d, Y: lat - d},
	}
}

type record struct {
	code, name string
	parts      [][]shp.Point
}

// writeShapefile writes states.shp with its index and attribute table.
// go-shp's writer names the attribute table "<base>dbf", so it is moved to
// "<base>.dbf" where the reader looks for it.
func writeShapefile(t *testing.T, fields []shp.Field, records []record) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "states.shp")
	base := strings.TrimSuffix(path, ".shp")
	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)
	require.NoError(t, w.SetFields(fields))

	for _, r := range records {
		poly := shp.Polygon(*shp.NewPolyLine(r.parts))
		row := int(w.Write(&poly))
		for i, f := range fields {
			v := r.code
			if f.String() == NameField {
				v = r.name
			}
			require.NoError(t, w.WriteAttribute(row, i, v))
		}
	}
	w.Close()

	require.NoError(t, os.Rename(base+"dbf", base+".dbf"))
	return path
}

func fieldNames(t *testing.T, path string) []string {
	t.Helper()
	r, err := shp.Open(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	var names []string
	for _, f := range r.Fields() {
		names = append(names, f.String())
	}
	return names
}

func TestLoadBoundaries(t *testing.T) {
	fields := []shp.Field{shp.StringField(CodeField, 2), shp.StringField(NameField, 40)}
	path := writeShapefile(t, fields, []record{
		{code: "TX", name: "Texas", parts: [][]shp.Point{square(-99, 31, 2)}},
		{code: "HI", name: "Hawaii", parts: [][]shp.Point{square(-156, 20, 0.5), square(-155, 19, 0.5)}},
		{code: "PR", name: "Puerto Rico", parts: [][]shp.Point{square(-66, 18, 0.5)}},
		{code: "", name: "Ohio", parts: [][]shp.Point{square(-82.8, 40.3, 1)}},
	})
	require.Equal(t, []string{CodeField, NameField}, fieldNames(t, path))

	b, err := NewBoundarySource(path, discardLogger()).LoadBoundaries(context.Background())

	require.NoError(t, err)
	assert.Len(t, b.Centroids, 3)
	assert.NotContains(t, b.Centroids, domain.RegionCode("PR"))

	tx := b.Centroids["TX"]
	assert.InDelta(t, 31.0, tx.Lat, 1e-9)
	assert.InDelta(t, -99.0, tx.Lon, 1e-9)
	require.Len(t, b.Rings["TX"], 1)
	assert.Len(t, b.Rings["TX"][0], 5)

	hi := b.Centroids["HI"]
	assert.InDelta(t, 19.5, hi.Lat, 1e-9)
	assert.InDelta(t, -155.5, hi.Lon, 1e-9)
	assert.Len(t, b.Rings["HI"], 2)

	assert.InDelta(t, 40.3, b.Centroids["OH"].Lat, 1e-9)
}

func TestLoadBoundaries_NoRegionAttribute(t *testing.T) {
	path := writeShapefile(t, []shp.Field{shp.StringField("GEOID", 2)}, []record{
		{code: "48", parts: [][]shp.Point{square(-99, 31, 2)}},
	})
	require.Equal(t, []string{"GEOID"}, fieldNames(t, path))

	_, err := NewBoundarySource(path, discardLogger()).LoadBoundaries(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), CodeField)
}

func TestLoadBoundaries_MissingFile(t *testing.T) {
	_, err := NewBoundarySource(filepath.Join(t.TempDir(), "none.shp"), discardLogger()).LoadBoundaries(context.Background())
	assert.Error(t, err)
}
