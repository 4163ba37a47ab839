// Command genfixtures writes sample gas, electricity, and industrial-site
// workbooks in the layout the pricemap readers expect. Values are drawn from
// a seeded generator so the output is reproducible.
//
// Usage:
//
//	go run ./cmd/genfixtures --out-dir data --seed 42
package main

import (
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/anantsinghal-found/natgas-pricevis/internal/adapter/spreadsheet"
	"github.com/anantsinghal-found/natgas-pricevis/internal/domain"
)

// Fixture file names, matching the config defaults under data/.
const (
	gasFile   = "natural_gas.xlsx"
	elecFile  = "electricity_price_avg.xlsx"
	sitesFile = "industrial_sites.xlsx"
	gasSheet  = "Data 1"
)

func main() {
	var outDir string
	var seed uint64
	var start, end string

	cmd := &cobra.Command{
		Use:   "genfixtures",
		Short: "Generate sample price and site workbooks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := time.Parse(time.DateOnly, start)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}
			to, err := time.Parse(time.DateOnly, end)
			if err != nil {
				return fmt.Errorf("invalid --end: %w", err)
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			return generate(cmd, outDir, seed, from, to)
		},
	}
	cmd.Flags().StringVar(&outDir, "out-dir", "data", "directory to write workbooks into")
	cmd.Flags().Uint64Var(&seed, "seed", 42, "random seed")
	cmd.Flags().StringVar(&start, "start", "2019-01-01", "first monthly gas observation (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "2025-12-01", "last monthly gas observation (YYYY-MM-DD)")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func generate(cmd *cobra.Command, outDir string, seed uint64, from, to time.Time) error {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	codes := domain.RegionCodes()

	files := []struct {
		name  string
		sheet string
		rows  [][]any
	}{
		{gasFile, gasSheet, gasRows(rng, codes, from, to)},
		{elecFile, "", elecRows(rng, codes)},
		{sitesFile, "", siteRows(rng, codes)},
	}
	for _, f := range files {
		path := filepath.Join(outDir, f.name)
		if err := spreadsheet.WriteWorkbook(path, f.sheet, f.rows); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows\n", path, len(f.rows))
	}
	return nil
}

// gasRows builds the wide monthly table: two title rows, a header on row 3,
// then one row per month. Roughly one cell in twenty is left blank.
func gasRows(rng *rand.Rand, codes []domain.RegionCode, from, to time.Time) [][]any {
	header := []any{spreadsheet.DateColumn}
	base := make([]float64, len(codes))
	for i, code := range codes {
		name, _ := domain.RegionName(code)
		header = append(header, name+domain.GasLabelSuffix)
		base[i] = 3 + rng.Float64()*9
	}
	header = append(header, domain.NationalGasColumn)

	rows := [][]any{
		{"Back to Contents"},
		{"Sourcekey"},
		header,
	}
	for month := from; !month.After(to); month = month.AddDate(0, 1, 0) {
		row := []any{month}
		var sum float64
		for i := range codes {
			v := round2(base[i] * (0.8 + rng.Float64()*0.4))
			sum += v
			if rng.IntN(20) == 0 {
				row = append(row, nil)
				continue
			}
			row = append(row, v)
		}
		row = append(row, round2(sum/float64(len(codes))))
		rows = append(rows, row)
	}
	return rows
}

// elecRows builds the per-region average price table with its header on row 3.
func elecRows(rng *rand.Rand, codes []domain.RegionCode) [][]any {
	rows := [][]any{
		{"Average Price of Electricity to Ultimate Customers by State"},
		{},
		{spreadsheet.StateColumn, spreadsheet.AveragePriceColumn},
	}
	for _, code := range codes {
		name, _ := domain.RegionName(code)
		rows = append(rows, []any{name, round2(8 + rng.Float64()*22)})
	}
	return rows
}

// siteRows builds the industrial-site table with its header on row 1.
func siteRows(rng *rand.Rand, codes []domain.RegionCode) [][]any {
	rows := [][]any{{spreadsheet.StateColumn, spreadsheet.CompaniesColumn}}
	for _, code := range codes {
		if rng.IntN(3) == 0 {
			continue
		}
		name, _ := domain.RegionName(code)
		rows = append(rows, []any{name, 1 + rng.IntN(12)})
	}
	return rows
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
