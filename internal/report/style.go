package report

import (
	"fmt"

	"db-compare/internal/engine"

	"github.com/xuri/excelize/v2"
)

// Fill colours of verdict cells.
const (
	MismatchColor = "FF0000"
	MatchColor    = "00FF00"
)

// StyleError wraps a failure of the styling pass. The data file written before it is
// left untouched.
type StyleError struct {
	Path string
	Err  error
}

func (e *StyleError) Error() string {
	return fmt.Sprintf("failed to style report %s: %v", e.Path, e.Err)
}

func (e *StyleError) Unwrap() error {
	return e.Err
}

// StyleStats counts the cells that received a fill.
type StyleStats struct {
	Matched    int
	Mismatched int
}

// Style reopens the workbook at path and fills every data cell holding a verdict
// token: mismatches red, matches green. The header row and all other cells are left
// alone.
func Style(path string) (StyleStats, error) {
	var stats StyleStats

	f, err := excelize.OpenFile(path)
	if err != nil {
		return stats, &StyleError{Path: path, Err: err}
	}
	defer func() {
		_ = f.Close()
	}()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	mismatchStyle, err := solidFill(f, MismatchColor)
	if err != nil {
		return stats, &StyleError{Path: path, Err: err}
	}
	matchStyle, err := solidFill(f, MatchColor)
	if err != nil {
		return stats, &StyleError{Path: path, Err: err}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return stats, &StyleError{Path: path, Err: err}
	}
	for r := 1; r < len(rows); r++ {
		for c, v := range rows[r] {
			var styleID int
			switch v {
			case engine.VerdictMismatch:
				styleID = mismatchStyle
				stats.Mismatched++
			case engine.VerdictMatch:
				styleID = matchStyle
				stats.Matched++
			default:
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return stats, &StyleError{Path: path, Err: err}
			}
			if err := f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
				return stats, &StyleError{Path: path, Err: err}
			}
		}
	}

	if err := f.Save(); err != nil {
		return stats, &StyleError{Path: path, Err: err}
	}
	return stats, nil
}

func solidFill(f *excelize.File, color string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
	})
}
