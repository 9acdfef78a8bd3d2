package xlsxexport

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"takeoffs/internal/takeoff"
)

const (
	estimateSheet = "Estimate"
	sectionsSheet = "Sections"
	notesSheet    = "Notes"
)

// Build converts an analysis result into an Excel workbook with an estimate
// sheet, a sections sheet, and a notes sheet.
func Build(r *takeoff.AnalysisResult) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", estimateSheet); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}
	if err := writeEstimate(f, r); err != nil {
		return nil, err
	}
	if err := writeSections(f, r); err != nil {
		return nil, err
	}
	if err := writeNotes(f, r); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeEstimate(f *excelize.File, r *takeoff.AnalysisResult) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E1F2"}},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating bold style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return fmt.Errorf("creating money style: %w", err)
	}

	header := []interface{}{"Category", "Code", "Description", "Quantity", "Unit", "Unit Price", "Total Price"}
	if err := f.SetSheetRow(estimateSheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(estimateSheet, "A1", "G1", headerStyle); err != nil {
		return err
	}

	row := 2
	for _, cat := range r.Categories {
		for i := range cat.Items {
			item := &cat.Items[i]
			cells := []interface{}{
				item.Category, item.Code, item.Description,
				item.Quantity, item.Unit, item.UnitPrice, item.TotalPrice,
			}
			if err := f.SetSheetRow(estimateSheet, fmt.Sprintf("A%d", row), &cells); err != nil {
				return err
			}
			row++
		}

		subtotal := []interface{}{"", "", cat.Category + " subtotal", "", "", "", cat.Subtotal}
		if err := f.SetSheetRow(estimateSheet, fmt.Sprintf("A%d", row), &subtotal); err != nil {
			return err
		}
		if err := f.SetCellStyle(estimateSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), boldStyle); err != nil {
			return err
		}
		row++
	}

	row++ // blank spacer before the roll-up
	totals := []struct {
		label string
		value float64
	}{
		{"Materials", r.Totals.Materials},
		{"Labor", r.Totals.Labor},
		{"Equipment", r.Totals.Equipment},
		{"Subtotal", r.Totals.Subtotal},
		{"Contingency", r.Totals.Contingency},
		{"General Conditions", r.Totals.GeneralConditions},
		{"Overhead & Profit", r.Totals.OverheadProfit},
		{"Total", r.Totals.Total},
	}
	for _, t := range totals {
		cells := []interface{}{"", "", t.label, "", "", "", t.value}
		if err := f.SetSheetRow(estimateSheet, fmt.Sprintf("A%d", row), &cells); err != nil {
			return err
		}
		row++
	}
	if err := f.SetCellStyle(estimateSheet, fmt.Sprintf("A%d", row-1), fmt.Sprintf("G%d", row-1), boldStyle); err != nil {
		return err
	}

	if err := f.SetCellStyle(estimateSheet, "F2", fmt.Sprintf("G%d", row-1), moneyStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(estimateSheet, "C", "C", 42); err != nil {
		return err
	}
	return f.SetColWidth(estimateSheet, "A", "B", 14)
}

func writeSections(f *excelize.File, r *takeoff.AnalysisResult) error {
	if _, err := f.NewSheet(sectionsSheet); err != nil {
		return fmt.Errorf("creating sections sheet: %w", err)
	}

	header := []interface{}{"Name", "Type Code", "Length (ft)", "Height (ft)", "Area (sq ft)", "Openings"}
	if err := f.SetSheetRow(sectionsSheet, "A1", &header); err != nil {
		return err
	}

	for i, s := range r.Sections {
		cells := []interface{}{s.Name, s.TypeCode, s.LengthFt, s.HeightFt, s.AreaSqFt, s.OpeningCount}
		if err := f.SetSheetRow(sectionsSheet, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return err
		}
	}
	return nil
}

func writeNotes(f *excelize.File, r *takeoff.AnalysisResult) error {
	if _, err := f.NewSheet(notesSheet); err != nil {
		return fmt.Errorf("creating notes sheet: %w", err)
	}

	header := []interface{}{"Kind", "Category", "Message"}
	if err := f.SetSheetRow(notesSheet, "A1", &header); err != nil {
		return err
	}

	for i, n := range r.Notes {
		cells := []interface{}{string(n.Kind), n.Category, n.Message}
		if err := f.SetSheetRow(notesSheet, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return err
		}
	}
	return f.SetColWidth(notesSheet, "C", "C", 64)
}
