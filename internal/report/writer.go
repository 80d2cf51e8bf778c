package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// SheetName is the sheet the report is written to.
const SheetName = "Sheet1"

// Write serialises t to an xlsx workbook at path, replacing any existing file.
func Write(t *Table, path string) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := writeRow(f, 1, toRow(t.Header)); err != nil {
		return err
	}
	for i, r := range t.Rows {
		if err := writeRow(f, i+2, r); err != nil {
			return err
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report %s: %w", path, err)
	}
	return nil
}

func writeRow(f *excelize.File, n int, r []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, cell, &r); err != nil {
		return fmt.Errorf("failed to write row %d: %w", n, err)
	}
	return nil
}

func toRow(header []string) []interface{} {
	r := make([]interface{}, len(header))
	for i, h := range header {
		r[i] = h
	}
	return r
}
