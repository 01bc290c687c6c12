package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet written to .xlsx reports.
const SheetName = "Report"

// Write serializes t to path, replacing any existing file. A .csv
// extension selects CSV; anything else is written as .xlsx. Missing parent
// directories are created.
func Write(path string, t *Table) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
	}
	if isCSV(path) {
		return writeCSV(path, t)
	}
	return writeXLSX(path, t)
}

func isCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}

func writeXLSX(path string, t *Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	for r, rec := range t.Records() {
		for c, value := range rec {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if r > 0 && c == 0 && Linkable(t.Rows[r-1].Path) {
				err = f.SetCellFormula(SheetName, cell, value)
			} else {
				err = f.SetCellStr(SheetName, cell, value)
			}
			if err != nil {
				return fmt.Errorf("%w: set %s: %w", ErrIO, cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

func writeCSV(path string, t *Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	for r, rec := range t.Records() {
		if r > 0 && Linkable(t.Rows[r-1].Path) {
			rec[0] = "=" + rec[0]
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return file.Close()
}

// Read loads a report written by Write. Column A of data rows holds the
// hyperlink expression without a leading "=", or the bare path when it was
// too long to link, as Records returns it.
// Short rows are padded to the header width.
func Read(path string) ([][]string, error) {
	var (
		rows [][]string
		err  error
	)
	if isCSV(path) {
		rows, err = readCSV(path)
	} else {
		rows, err = readXLSX(path)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return rows, nil
	}
	width := len(rows[0])
	for i := 1; i < len(rows); i++ {
		for len(rows[i]) < width {
			rows[i] = append(rows[i], "")
		}
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	// GetRows drops trailing rows without values; a row whose only content
	// is the path formula is still a row.
	for {
		cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
		if err != nil {
			return nil, err
		}
		if formula, _ := f.GetCellFormula(SheetName, cell); formula == "" {
			break
		}
		rows = append(rows, nil)
	}
	for i := 1; i < len(rows); i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		formula, err := f.GetCellFormula(SheetName, cell)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrIO, err)
		}
		if len(rows[i]) == 0 {
			rows[i] = []string{""}
		}
		if formula != "" {
			rows[i][0] = strings.TrimPrefix(formula, "=")
		}
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	for i := 1; i < len(rows); i++ {
		if strings.HasPrefix(rows[i][0], "=HYPERLINK(") {
			rows[i][0] = rows[i][0][1:]
		}
	}
	return rows, nil
}
