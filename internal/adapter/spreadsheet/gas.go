package spreadsheet

import (
	"context"
	"log/slog"

	"github.com/rotisserie/eris"

	"github.com/anantsinghal-found/natgas-pricevis/internal/domain"
)

// DateColumn is the timestamp column of the gas workbook.
const DateColumn = "Date"

// GasSource reads the wide gas workbook: one Date column plus one price
// column per region.
type GasSource struct {
	Path      string
	Sheet     string
	HeaderRow int
	logger    *slog.Logger
}

// NewGasSource creates a GasSource.
func NewGasSource(path, sheet string, headerRow int, logger *slog.Logger) *GasSource {
	return &GasSource{Path: path, Sheet: sheet, HeaderRow: headerRow, logger: logger}
}

// Load returns one observation per numeric region cell. The national
// aggregate column is excluded and blank cells are skipped.
func (s *GasSource) Load(ctx context.Context) ([]domain.RawObservation, error) {
	t, err := readTable(s.Path, s.Sheet, s.HeaderRow)
	if err != nil {
		return nil, err
	}
	dateCol, ok := t.column(DateColumn)
	if !ok {
		return nil, eris.Errorf("spreadsheet: %s has no %q column", s.Path, DateColumn)
	}

	var (
		obs     []domain.RawObservation
		skipped int
	)
	for _, row := range t.rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ts := normalizeDate(cell(row, dateCol))
		if ts == "" {
			continue
		}
		for i, label := range t.header {
			if i == dateCol || label == "" || label == domain.NationalGasColumn {
				continue
			}
			v, ok := parseNumber(cell(row, i))
			if !ok {
				skipped++
				continue
			}
			obs = append(obs, domain.RawObservation{RegionLabel: label, Timestamp: ts, Value: v})
		}
	}

	s.logger.Debug("gas source read",
		"path", s.Path,
		"observations", len(obs),
		"blank_cells", skipped,
	)
	return obs, nil
}
