package spreadsheet

import (
	"context"
	"log/slog"

	"github.com/rotisserie/eris"

	"github.com/anantsinghal-found/natgas-pricevis/internal/domain"
)

// Column names of the electricity table.
const (
	StateColumn        = "State"
	AveragePriceColumn = "Average Price (cents/kWh)"
)

// ElectricitySource reads the long electricity table, one row per region
// and period, prices in cents/kWh.
type ElectricitySource struct {
	Path      string
	Sheet     string
	HeaderRow int
	logger    *slog.Logger
}

// NewElectricitySource creates an ElectricitySource.
func NewElectricitySource(path, sheet string, headerRow int, logger *slog.Logger) *ElectricitySource {
	return &ElectricitySource{Path: path, Sheet: sheet, HeaderRow: headerRow, logger: logger}
}

// Load returns one observation per row with a numeric price. Timestamps are
// left empty; the table is averaged without a window.
func (s *ElectricitySource) Load(_ context.Context) ([]domain.RawObservation, error) {
	t, err := readTable(s.Path, s.Sheet, s.HeaderRow)
	if err != nil {
		return nil, err
	}
	stateCol, ok := t.column(StateColumn)
	if !ok {
		return nil, eris.Errorf("spreadsheet: %s has no %q column", s.Path, StateColumn)
	}
	priceCol, ok := t.column(AveragePriceColumn)
	if !ok {
		return nil, eris.Errorf("spreadsheet: %s has no %q column", s.Path, AveragePriceColumn)
	}

	obs := make([]domain.RawObservation, 0, len(t.rows))
	for _, row := range t.rows {
		label := cell(row, stateCol)
		if label == "" {
			continue
		}
		v, ok := parseNumber(cell(row, priceCol))
		if !ok {
			s.logger.Debug("electricity row without price skipped", "state", label)
			continue
		}
		obs = append(obs, domain.RawObservation{RegionLabel: label, Value: v})
	}
	return obs, nil
}
