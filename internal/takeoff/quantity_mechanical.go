package takeoff

import (
	"fmt"
	"sort"
	"strings"

	"takeoffs/internal/domain"
)

// ductMaterial maps a duct type phrase to the labor/price table row.
func ductMaterial(typ, size string) string {
	t := strings.ToLower(typ)
	if strings.Contains(t, "spiral") || strings.Contains(t, "round") {
		return "spiral"
	}
	if strings.Contains(t, "rect") {
		return "rectangular"
	}
	// round sizes carry an inch mark, rectangular are WxH
	if strings.Contains(size, "x") {
		return "rectangular"
	}
	return "spiral"
}

// mechanicalQuantities converts duct segments and equipment to line items.
// Duct linear feet are summed by (type, size) like pipe runs; equipment is
// counted and priced from the catalog.
func mechanicalQuantities(ducts []DuctSegment, equipment []Equipment, cat *Catalog, opts Options, notes *noteList) ([]LineItem, error) {
	type ductKey struct {
		typ, size string
	}
	runs := make(map[ductKey]float64)
	var keys []ductKey

	for _, d := range ducts {
		if err := checkNonNegative(d.LengthFt, "length", d.Type); err != nil {
			return nil, err
		}
		k := ductKey{typ: d.Type, size: normalizeSize(d.Size)}
		if _, seen := runs[k]; !seen {
			keys = append(keys, k)
		}
		runs[k] += d.LengthFt
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].typ != keys[j].typ {
			return keys[i].typ < keys[j].typ
		}
		return keys[i].size < keys[j].size
	})

	var items []LineItem
	for _, k := range keys {
		material := ductMaterial(k.typ, k.size)
		lf := applyWaste(runs[k], opts.WasteFactorPct)
		items = append(items, LineItem{
			Category:    "Ductwork",
			Description: fmt.Sprintf("%s duct, %s", k.typ, k.size),
			Quantity:    lf,
			Unit:        "lf",
			Material:    material,
			Size:        k.size,
			ItemType:    "duct",
			LaborHours:  runs[k] * cat.LaborRate(domain.TradeMechanical, material),
		})
	}

	for _, e := range equipment {
		if err := checkNonNegative(e.Quantity, "quantity", e.Type); err != nil {
			return nil, err
		}
		if e.Quantity == 0 {
			continue
		}
		entry, tier := Classify(e.Type, e.Description, domain.TradeMechanical, cat)
		classifyNote(notes, "equipment", e.Type, tier)
		desc := entry.Description
		if e.Description != "" {
			desc = e.Description
		}
		items = append(items, LineItem{
			Category:    "Equipment",
			Code:        entry.Code,
			Description: desc,
			Quantity:    e.Quantity,
			Unit:        "ea",
			UnitCost:    entry.UnitCost,
			ItemType:    "equipment",
			LaborHours:  e.Quantity * entry.LaborRate,
		})
	}
	return items, nil
}
