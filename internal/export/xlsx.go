package export

import (
	"fmt"

	"github.com/piwi3910/fencecalc/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	bomSheet  = "Materials"
	runsSheet = "Runs"
)

// ExportXLSX writes a bill of quantities workbook: a Materials sheet with
// one row per line item and a formula total, and a Runs sheet listing the
// measured runs. A job without runs still has a hardware-only bill.
func ExportXLSX(path string, job model.FenceJob, result model.EstimationResult, pricing model.PricingConfig) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), bomSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(runsSheet); err != nil {
		return fmt.Errorf("failed to add runs sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeMaterials(f, job, model.LineItems(result, pricing), headerStyle); err != nil {
		return err
	}
	if err := writeRuns(f, job.Input.Runs, headerStyle); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeMaterials(f *excelize.File, job model.FenceJob, items []model.LineItem, headerStyle int) error {
	rows := [][]interface{}{
		{"Job", job.Name},
		{"Customer", job.Customer},
		{"Fence Height (ft)", job.Input.FenceHeight},
		{"Fence Type", job.Input.FenceType.String()},
		{},
		{"Material", "Quantity", "Unit", "Unit Price", "Extended"},
	}
	headerRow := len(rows)
	for _, item := range items {
		rows = append(rows, []interface{}{item.Label, cellNumber(item.Quantity), item.Unit, cellNumber(item.UnitPrice), cellMoney(item.Extended)})
	}
	if err := setRows(f, bomSheet, rows); err != nil {
		return err
	}

	first := headerRow + 1
	last := headerRow + len(items)
	totalRow := last + 1
	if err := f.SetCellValue(bomSheet, fmt.Sprintf("D%d", totalRow), "Total"); err != nil {
		return err
	}
	if err := f.SetCellFormula(bomSheet, fmt.Sprintf("E%d", totalRow), fmt.Sprintf("SUM(E%d:E%d)", first, last)); err != nil {
		return fmt.Errorf("failed to set total formula: %w", err)
	}

	if err := f.SetCellStyle(bomSheet, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("E%d", headerRow), headerStyle); err != nil {
		return err
	}
	return f.SetColWidth(bomSheet, "A", "A", 28)
}

func writeRuns(f *excelize.File, runs []model.FenceRun, headerStyle int) error {
	rows := [][]interface{}{{"Label", "Length"}}
	for _, run := range runs {
		rows = append(rows, []interface{}{run.Label, cellNumber(run.Length)})
	}
	if err := setRows(f, runsSheet, rows); err != nil {
		return err
	}
	return f.SetCellStyle(runsSheet, "A1", "B1", headerStyle)
}

func setRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
