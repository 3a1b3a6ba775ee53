package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/p-n-ai/pai-roadmap/internal/roadmap"
)

// SheetName is the worksheet written by WriteWorkbook.
const SheetName = "Roadmap"

var workbookHeaders = []string{"#", "Title", "Category", "Weeks", "Status", "Prerequisites", "Resources"}

// WriteWorkbook writes an .xlsx overview of the roadmap: one row per step in
// navigation order followed by a totals row.
func WriteWorkbook(w io.Writer, v roadmap.View) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	for i, h := range workbookHeaders {
		if err := setCell(f, i+1, 1, h); err != nil {
			return err
		}
	}

	titles := make(map[int]string, len(v.Steps))
	for _, s := range v.Steps {
		titles[s.ID] = s.Title
	}

	for i, s := range v.Steps {
		row := i + 2
		prereqs := make([]string, 0, len(s.Prerequisites))
		for _, id := range s.Prerequisites {
			if t, ok := titles[id]; ok {
				prereqs = append(prereqs, t)
			}
		}
		values := []any{
			s.Number,
			s.Title,
			Category(s.Category),
			s.WeeksToFinish,
			string(v.Status(s.ID)),
			strings.Join(prereqs, ", "),
			strings.Join(s.Resources, ", "),
		}
		for col, val := range values {
			if err := setCell(f, col+1, row, val); err != nil {
				return err
			}
		}
	}

	total := len(v.Steps) + 2
	if err := setCell(f, 2, total, "Total"); err != nil {
		return err
	}
	if err := setCell(f, 4, total, v.TotalWeeks); err != nil {
		return err
	}
	if err := setCell(f, 5, total, strconv.FormatFloat(v.ProgressPercent, 'f', 0, 64)+"%"); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(workbookHeaders), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	if err := f.SetColWidth(SheetName, "B", "B", 32); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetCellValue(SheetName, cell, value); err != nil {
		return fmt.Errorf("setting %s: %w", cell, err)
	}
	return nil
}
