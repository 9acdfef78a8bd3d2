package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"

	"takeoffs/internal/takeoff"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row for estimate line items.
var columns = []string{
	"Category",
	"Code",
	"Description",
	"Quantity",
	"Unit",
	"Unit Price",
	"Total Price",
}

// Writer wraps csv.Writer for exporting takeoff estimates as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteResult writes every priced line item, one row per item, followed by
// the cost roll-up rows.
func (w *Writer) WriteResult(r *takeoff.AnalysisResult) error {
	for _, cat := range r.Categories {
		for i := range cat.Items {
			if err := w.csv.Write(itemToRow(&cat.Items[i])); err != nil {
				return err
			}
		}
	}
	return w.writeTotals(&r.Totals)
}

func (w *Writer) writeTotals(t *takeoff.GrandTotals) error {
	rows := [][]string{
		{"", "", "Subtotal", "", "", "", formatMoney(t.Subtotal)},
		{"", "", "Contingency", "", "", "", formatMoney(t.Contingency)},
		{"", "", "General Conditions", "", "", "", formatMoney(t.GeneralConditions)},
		{"", "", "Overhead & Profit", "", "", "", formatMoney(t.OverheadProfit)},
		{"", "", "Total", "", "", "", formatMoney(t.Total)},
	}
	for _, row := range rows {
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func itemToRow(item *takeoff.PricedItem) []string {
	return []string{
		item.Category,
		item.Code,
		item.Description,
		formatQuantity(item.Quantity),
		item.Unit,
		formatMoney(item.UnitPrice),
		formatMoney(item.TotalPrice),
	}
}

func formatQuantity(q float64) string {
	if q == float64(int64(q)) {
		return fmt.Sprintf("%d", int64(q))
	}
	return fmt.Sprintf("%.2f", q)
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
