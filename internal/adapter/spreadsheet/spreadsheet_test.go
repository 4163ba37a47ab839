package spreadsheet

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anantsinghal-found/natgas-pricevis/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func gasCol(name string) string { return name + domain.GasLabelSuffix }

func writeGasWorkbook(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gas.xlsx")
	rows := [][]any{
		{"Back to Contents", "Data 1: Natural Gas Industrial Price"},
		{"Sourcekey", "N3035CA3"},
		{"Date", gasCol("California"), "Nevada Natural Gas Indutrial Price (Dollars per Thousand Cubic Feet)", domain.NationalGasColumn},
		{time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC), 12.5, 8.0, 4.1},
		{time.Date(2021, 2, 15, 0, 0, 0, 0, time.UTC), "", "NA", 4.2},
		{nil, 99.0, 99.0, 99.0},
	}
	require.NoError(t, WriteWorkbook(path, "Data 1", rows))
	return path
}

func TestGasSource_Excel(t *testing.T) {
	src := NewGasSource(writeGasWorkbook(t), "Data 1", 3, discardLogger())

	obs, err := src.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, obs, 2)
	assert.Equal(t, gasCol("California"), obs[0].RegionLabel)
	assert.Equal(t, "2021-01-15", obs[0].Timestamp)
	assert.Equal(t, 12.5, obs[0].Value)
	assert.Equal(t, 8.0, obs[1].Value)

	code, ok := domain.DefaultResolver().Resolve(obs[1].RegionLabel)
	assert.True(t, ok)
	assert.Equal(t, domain.RegionCode("NV"), code)
}

func TestGasSource_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gas.csv")
	content := "title\n,\nDate,\"" + gasCol("Ohio") + "\"\n2020-03-01,4.5\nMar-2020,--\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	obs, err := NewGasSource(path, "", 3, discardLogger()).Load(context.Background())

	require.NoError(t, err)
	require.Len(t, obs, 1)
	assert.Equal(t, "2020-03-01", obs[0].Timestamp)
	assert.Equal(t, 4.5, obs[0].Value)
}

func TestGasSource_MissingDateColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gas.csv")
	require.NoError(t, os.WriteFile(path, []byte("Month,Ohio\n2020-01,1\n"), 0o600))

	_, err := NewGasSource(path, "", 1, discardLogger()).Load(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Date")
}

func TestGasSource_MissingFile(t *testing.T) {
	_, err := NewGasSource(filepath.Join(t.TempDir(), "nope.xlsx"), "Data 1", 3, discardLogger()).Load(context.Background())
	assert.Error(t, err)
}

func TestGasSource_HeaderBeyondData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gas.csv")
	require.NoError(t, os.WriteFile(path, []byte("Date\n"), 0o600))

	_, err := NewGasSource(path, "", 3, discardLogger()).Load(context.Background())
	assert.Error(t, err)
}

func TestElectricitySource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elec.xlsx")
	rows := [][]any{
		{"Average Price of Electricity to Ultimate Customers"},
		{},
		{"State", "Average Price (cents/kWh)", "Sector"},
		{"California", 12.0, "Industrial"},
		{"California", 14.0, "Industrial"},
		{"Texas", "NM", "Industrial"},
		{nil, 7.0},
		{"U.S. Total", 8.1},
	}
	require.NoError(t, WriteWorkbook(path, "", rows))

	obs, err := NewElectricitySource(path, "", 3, discardLogger()).Load(context.Background())

	require.NoError(t, err)
	require.Len(t, obs, 3)
	assert.Equal(t, domain.RawObservation{RegionLabel: "California", Value: 12}, obs[0])
	assert.Equal(t, "U.S. Total", obs[2].RegionLabel)
}

func TestElectricitySource_MissingPriceColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elec.csv")
	require.NoError(t, os.WriteFile(path, []byte("State,Price\nOhio,1\n"), 0o600))

	_, err := NewElectricitySource(path, "", 1, discardLogger()).Load(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), AveragePriceColumn)
}

func TestSiteSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sites.csv")
	content := "State,Companies\nTexas,4\nOhio,2.5\nIowa,-1\nUtah,x\nMaine,0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	counts, err := NewSiteSource(path, "", discardLogger()).LoadSites(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.SiteCount{
		{RegionLabel: "Texas", Companies: 4},
		{RegionLabel: "Maine", Companies: 0},
	}, counts)
}

func TestReadTable_UnsupportedExtension(t *testing.T) {
	_, err := readTable("prices.xls", "", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestParseNumber(t *testing.T) {
	for _, s := range []string{"", " ", "NA", "n/a", "--", "W", "text"} {
		_, ok := parseNumber(s)
		assert.False(t, ok, s)
	}
	v, ok := parseNumber(" 1,234.5 ")
	assert.True(t, ok)
	assert.Equal(t, 1234.5, v)
}

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2021-01-01", normalizeDate("44197"))
	assert.Equal(t, "2021-01-01", normalizeDate("2021-01-01"))
	assert.Equal(t, "Jan 2021", normalizeDate("Jan 2021"))
	assert.Equal(t, "", normalizeDate(" "))
}
