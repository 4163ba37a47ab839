// Package spreadsheet loads the price and site tables from .xlsx or .csv files.
package spreadsheet

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"
)

// table is a header row plus the data rows below it.
type table struct {
	header []string
	rows   [][]string
}

// column returns the index of the header cell equal to name, ignoring case
// and surrounding space.
func (t table) column(name string) (int, bool) {
	for i, h := range t.header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i, true
		}
	}
	return -1, false
}

// cell returns row[i], or "" when the row is short.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// readTable reads path and splits it at headerRow (1-based). Sheet is ignored
// for CSV files; an empty sheet selects the first one.
func readTable(path, sheet string, headerRow int) (table, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readExcel(path, sheet)
	case ".csv":
		rows, err = readCSV(path)
	default:
		return table{}, eris.Errorf("spreadsheet: unsupported file type %q", filepath.Ext(path))
	}
	if err != nil {
		return table{}, err
	}

	if headerRow < 1 {
		headerRow = 1
	}
	if len(rows) < headerRow {
		return table{}, eris.Errorf("spreadsheet: %s has %d rows, header expected on row %d", path, len(rows), headerRow)
	}

	header := make([]string, len(rows[headerRow-1]))
	for i, h := range rows[headerRow-1] {
		header[i] = strings.TrimSpace(h)
	}
	return table{header: header, rows: rows[headerRow:]}, nil
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "spreadsheet: open %s", path)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, eris.Wrapf(err, "spreadsheet: read sheet %q of %s", sheet, path)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "spreadsheet: open %s", path)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "spreadsheet: read %s", path)
	}
	return rows, nil
}

// missingMarkers are cell contents that mean "no observation".
var missingMarkers = map[string]bool{
	"": true, "NA": true, "N/A": true, "--": true, "NM": true, "W": true,
}

// parseNumber returns the numeric value of a cell. ok is false for blanks,
// missing-data markers and text.
func parseNumber(s string) (v float64, ok bool) {
	s = strings.TrimSpace(s)
	if missingMarkers[strings.ToUpper(s)] {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// normalizeDate turns spreadsheet date serials into ISO dates and leaves
// everything else as written.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "-/ ") {
		return s
	}
	serial, err := strconv.ParseFloat(s, 64)
	if err != nil || serial < 1 {
		return s
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return s
	}
	return t.Format(time.DateOnly)
}
