package xlsxexport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"takeoffs/internal/domain"
	"takeoffs/internal/takeoff"
)

func sampleResult() *takeoff.AnalysisResult {
	return &takeoff.AnalysisResult{
		Trade: domain.TradeFraming,
		Sections: []takeoff.SectionSummary{
			{Name: "Wall A", TypeCode: "S4", LengthFt: 40, HeightFt: 10, AreaSqFt: 400, OpeningCount: 2},
		},
		Categories: []takeoff.CategoryTotal{
			{
				Category: "Framing",
				Items: []takeoff.PricedItem{
					{Category: "Framing", Code: "S4", Description: `3-5/8" metal stud`, Quantity: 46, Unit: "ea", UnitPrice: 4.85, TotalPrice: 223.10},
				},
				Subtotal: 223.10,
			},
		},
		Totals: takeoff.GrandTotals{
			Materials:   223.10,
			Subtotal:    223.10,
			Contingency: 22.31,
			Total:       245.41,
		},
		Notes: []takeoff.Note{
			{Kind: takeoff.NoteClassificationAmbiguous, Category: "Framing", Message: "ambiguous wall type"},
		},
	}
}

func TestBuild_Sheets(t *testing.T) {
	f, err := Build(sampleResult())
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Estimate", "Sections", "Notes"}, f.GetSheetList())
}

func TestBuild_EstimateCells(t *testing.T) {
	f, err := Build(sampleResult())
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	header, err := f.GetCellValue("Estimate", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Category", header)

	desc, err := f.GetCellValue("Estimate", "C2")
	require.NoError(t, err)
	assert.Equal(t, `3-5/8" metal stud`, desc)

	subtotalLabel, err := f.GetCellValue("Estimate", "C3")
	require.NoError(t, err)
	assert.Equal(t, "Framing subtotal", subtotalLabel)

	// roll-up starts after the blank spacer: Materials, Labor, Equipment,
	// Subtotal, Contingency, General Conditions, Overhead & Profit, Total
	totalLabel, err := f.GetCellValue("Estimate", "C12")
	require.NoError(t, err)
	assert.Equal(t, "Total", totalLabel)

	total, err := f.GetCellValue("Estimate", "G12")
	require.NoError(t, err)
	assert.Equal(t, "245.41", total)
}

func TestBuild_SectionsAndNotes(t *testing.T) {
	f, err := Build(sampleResult())
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	name, err := f.GetCellValue("Sections", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Wall A", name)

	area, err := f.GetCellValue("Sections", "E2")
	require.NoError(t, err)
	assert.Equal(t, "400", area)

	kind, err := f.GetCellValue("Notes", "A2")
	require.NoError(t, err)
	assert.Equal(t, string(takeoff.NoteClassificationAmbiguous), kind)

	msg, err := f.GetCellValue("Notes", "C2")
	require.NoError(t, err)
	assert.Equal(t, "ambiguous wall type", msg)
}
