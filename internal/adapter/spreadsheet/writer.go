package spreadsheet

import (
	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"
)

// WriteWorkbook saves rows to a new single-sheet workbook at path. Row 1 of
// the sheet is rows[0]; nil cells are left empty.
func WriteWorkbook(path, sheet string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return eris.Wrapf(err, "spreadsheet: name sheet %q", sheet)
	}

	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return eris.Wrap(err, "spreadsheet: cell name")
			}
			if err := f.SetCellValue(sheet, name, v); err != nil {
				return eris.Wrapf(err, "spreadsheet: set %s", name)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return eris.Wrapf(err, "spreadsheet: save %s", path)
	}
	return nil
}
