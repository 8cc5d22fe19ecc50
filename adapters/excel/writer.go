package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"fenceline/models"
)

// WriteAnalysis exports an analysis to an .xlsx workbook: a summary sheet
// with one row per series, plus a sheet per series listing its
// classification.
func WriteAnalysis(path string, analysis *models.Analysis) error {
	f := excelize.NewFile()

	sheet := "Summary"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	if defaultIdx, err := f.GetSheetIndex("Sheet1"); err == nil && defaultIdx != -1 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
	}

	headers := []string{"series", "values", "dropped_nan", "outliers", "non_outliers", "lower_fence", "upper_fence"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for r, report := range analysis.Reports {
		rowIdx := r + 2
		row := summaryRow(report)
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, rowIdx)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}

		if err := writeSeriesSheet(f, report); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

// summaryRow builds one summary-sheet row for a series report
func summaryRow(report models.SeriesReport) []interface{} {
	row := []interface{}{report.Name, 0, report.DroppedNaN, 0, 0, "", ""}
	if report.Result == nil {
		return row
	}
	row[1] = report.Result.Total()
	row[3] = len(report.Result.Outliers)
	row[4] = len(report.Result.NonOutliers)
	if report.Result.HasFences() {
		row[5] = *report.Result.LowerFence
		row[6] = *report.Result.UpperFence
	}
	return row
}

// writeSeriesSheet lists each classified value of one series
func writeSeriesSheet(f *excelize.File, report models.SeriesReport) error {
	if report.Result == nil {
		return nil
	}

	// Sheet names cap at 31 chars in the xlsx format.
	name := report.Name
	if len(name) > 31 {
		name = name[:31]
	}
	if _, err := f.NewSheet(name); err != nil {
		return err
	}

	for i, h := range []string{"value", "classification"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(name, cell, h); err != nil {
			return err
		}
	}

	rowIdx := 2
	for _, v := range report.Result.NonOutliers {
		if err := writeValueRow(f, name, rowIdx, v, "non_outlier"); err != nil {
			return err
		}
		rowIdx++
	}
	for _, v := range report.Result.Outliers {
		if err := writeValueRow(f, name, rowIdx, v, "outlier"); err != nil {
			return err
		}
		rowIdx++
	}
	return nil
}

func writeValueRow(f *excelize.File, sheet string, row int, value float64, class string) error {
	valueCell, _ := excelize.CoordinatesToCellName(1, row)
	if err := f.SetCellValue(sheet, valueCell, value); err != nil {
		return err
	}
	classCell, _ := excelize.CoordinatesToCellName(2, row)
	if err := f.SetCellValue(sheet, classCell, class); err != nil {
		return fmt.Errorf("failed to write classification: %w", err)
	}
	return nil
}
