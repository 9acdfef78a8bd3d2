package takeoff

import (
	"fmt"
	"strings"
)

// Report renders a plain-text summary of an analysis result, the same layout
// the exporters use for the summary sheet.
func Report(r *AnalysisResult) string {
	var b strings.Builder

	trade := string(r.Trade)
	if trade != "" {
		trade = strings.ToUpper(trade[:1]) + trade[1:]
	}
	fmt.Fprintf(&b, "Takeoff Summary: %s\n", trade)
	fmt.Fprintf(&b, "%s\n\n", strings.Repeat("=", 40))

	if len(r.Sections) > 0 {
		b.WriteString("Sections\n")
		for _, s := range r.Sections {
			switch {
			case s.LengthFt > 0:
				fmt.Fprintf(&b, "  %-24s %8.1f lf x %.1f ft", s.Name, s.LengthFt, s.HeightFt)
				if s.OpeningCount > 0 {
					fmt.Fprintf(&b, ", %d openings", s.OpeningCount)
				}
				b.WriteString("\n")
			case s.AreaSqFt > 0:
				fmt.Fprintf(&b, "  %-24s %8.1f sq ft\n", s.Name, s.AreaSqFt)
			}
		}
		b.WriteString("\n")
	}

	for _, c := range r.Categories {
		fmt.Fprintf(&b, "%s\n", c.Category)
		for _, it := range c.Items {
			fmt.Fprintf(&b, "  %-6s %-34s %10.1f %-6s $%10.2f\n",
				it.Code, it.Description, it.Quantity, it.Unit, it.TotalPrice)
		}
		fmt.Fprintf(&b, "  %-42s subtotal       $%10.2f\n\n", "", c.Subtotal)
	}

	fmt.Fprintf(&b, "Labor hours: %.1f\n", r.LaborHours)
	fmt.Fprintf(&b, "Subtotal:           $%12.2f\n", r.Totals.Subtotal)
	if r.Totals.Contingency > 0 {
		fmt.Fprintf(&b, "Contingency:        $%12.2f\n", r.Totals.Contingency)
	}
	if r.Totals.GeneralConditions > 0 {
		fmt.Fprintf(&b, "General conditions: $%12.2f\n", r.Totals.GeneralConditions)
	}
	if r.Totals.OverheadProfit > 0 {
		fmt.Fprintf(&b, "Overhead & profit:  $%12.2f\n", r.Totals.OverheadProfit)
	}
	fmt.Fprintf(&b, "Total:              $%12.2f\n", r.Totals.Total)

	if len(r.Notes) > 0 {
		b.WriteString("\nNotes\n")
		for _, n := range r.Notes {
			fmt.Fprintf(&b, "  [%s] %s\n", n.Kind, n.Message)
		}
	}
	return b.String()
}
