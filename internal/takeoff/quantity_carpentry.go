package takeoff

import (
	"math"

	"takeoffs/internal/domain"
)

// carpentryQuantities converts trim runs and hardware counts to line items.
// Trim linear feet get the trade waste factor once; finish fasteners are one
// box per 200 LF of trim.
func carpentryQuantities(trims []TrimRun, hardware []Hardware, cat *Catalog, opts Options, notes *noteList) ([]LineItem, error) {
	var (
		items   []LineItem
		totalLF float64
	)

	for _, t := range trims {
		if err := checkNonNegative(t.LengthFt, "length", t.Type); err != nil {
			return nil, err
		}
		if t.LengthFt == 0 {
			continue
		}
		entry, tier := Classify("", t.Type, domain.TradeCarpentry, cat)
		classifyNote(notes, "trim", t.Type, tier)

		lf := applyWaste(t.LengthFt, opts.WasteFactorPct)
		totalLF += t.LengthFt

		item := LineItem{
			Category:    "Trim",
			Code:        entry.Code,
			Description: entry.Description,
			Quantity:    lf,
			Unit:        "lf",
			UnitCost:    entry.UnitCost,
			ItemType:    "trim",
			LaborHours:  lf * entry.LaborRate,
		}
		// a named material selects the price table row instead of the
		// catalog default
		if t.Material != "" {
			item.UnitCost = 0
			item.Material = t.Material
			item.Size = profileSize(entry.Code)
		}
		items = append(items, item)
	}

	for _, h := range hardware {
		if err := checkNonNegative(h.Quantity, "quantity", h.Type); err != nil {
			return nil, err
		}
		if h.Quantity == 0 {
			continue
		}
		desc := h.Description
		if desc == "" {
			desc = h.Type
		}
		items = append(items, LineItem{
			Category:    "Hardware",
			Description: desc,
			Quantity:    h.Quantity,
			Unit:        "ea",
			ItemType:    "hardware",
			LaborHours:  h.Quantity * 0.1,
		})
	}

	if boxes := math.Ceil(totalLF / 200); boxes > 0 {
		items = append(items, LineItem{
			Category:    "Trim",
			Code:        "FAST",
			Description: "finish nails, 1 lb box",
			Quantity:    boxes,
			Unit:        "box",
			ItemType:    "fastener",
		})
	}
	return items, nil
}

// profileSize maps a trim code to its price table size key.
func profileSize(code string) string {
	switch code {
	case "BASE":
		return "base"
	case "CASE":
		return "casing"
	case "CRWN":
		return "crown"
	default:
		return "base"
	}
}
