package spreadsheet

import (
	"context"
	"log/slog"

	"github.com/rotisserie/eris"

	"github.com/anantsinghal-found/natgas-pricevis/internal/domain"
)

// CompaniesColumn holds the number of industrial sites per row.
const CompaniesColumn = "Companies"

// SiteSource reads per-region industrial-site counts. The header is on the
// first row.
type SiteSource struct {
	Path   string
	Sheet  string
	logger *slog.Logger
}

// NewSiteSource creates a SiteSource.
func NewSiteSource(path, sheet string, logger *slog.Logger) *SiteSource {
	return &SiteSource{Path: path, Sheet: sheet, logger: logger}
}

// LoadSites returns one count per row. Rows without a whole, non-negative
// count are skipped.
func (s *SiteSource) LoadSites(_ context.Context) ([]domain.SiteCount, error) {
	t, err := readTable(s.Path, s.Sheet, 1)
	if err != nil {
		return nil, err
	}
	stateCol, ok := t.column(StateColumn)
	if !ok {
		return nil, eris.Errorf("spreadsheet: %s has no %q column", s.Path, StateColumn)
	}
	countCol, ok := t.column(CompaniesColumn)
	if !ok {
		return nil, eris.Errorf("spreadsheet: %s has no %q column", s.Path, CompaniesColumn)
	}

	var counts []domain.SiteCount
	for _, row := range t.rows {
		label := cell(row, stateCol)
		v, ok := parseNumber(cell(row, countCol))
		if label == "" || !ok || v < 0 || v != float64(int(v)) {
			continue
		}
		counts = append(counts, domain.SiteCount{RegionLabel: label, Companies: int(v)})
	}
	s.logger.Debug("site source read", "path", s.Path, "rows", len(counts))
	return counts, nil
}
