package takeoff

import (
	"fmt"
	"sort"

	"takeoffs/internal/domain"
)

const (
	valveLaborHours     = 0.5
	laborOverheadFactor = 1.15
)

// pipeSizeMultiplier scales pipe labor by size bracket. Larger pipe hangs
// slower.
func pipeSizeMultiplier(size string) float64 {
	v, ok := parseSizeValue(size)
	if !ok {
		return 1.0
	}
	switch {
	case v <= 1:
		return 0.8
	case v <= 2:
		return 1.0
	case v <= 4:
		return 1.2
	default:
		return 1.5
	}
}

// plumbingQuantities converts pipe segments, fixtures, and valves to line
// items. Pipe linear feet are summed by (type, size, material) and priced by
// the engine's material/size tables.
//
// Labor: sum of length * materialLaborRate * sizeMultiplier over pipe runs,
// plus fixed hours per fixture and valve, all scaled by a 15% overhead
// factor.
func plumbingQuantities(pipes []PipeSegment, fixtures []Fixture, valves []Valve, cat *Catalog, opts Options, notes *noteList) ([]LineItem, error) {
	type pipeKey struct {
		typ, size, material string
	}
	runs := make(map[pipeKey]float64)
	var keys []pipeKey

	for _, p := range pipes {
		if err := checkNonNegative(p.LengthFt, "length", p.Type); err != nil {
			return nil, err
		}
		k := pipeKey{typ: p.Type, size: normalizeSize(p.Size), material: p.Material}
		if _, seen := runs[k]; !seen {
			keys = append(keys, k)
		}
		runs[k] += p.LengthFt
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].typ != keys[j].typ {
			return keys[i].typ < keys[j].typ
		}
		if keys[i].material != keys[j].material {
			return keys[i].material < keys[j].material
		}
		return keys[i].size < keys[j].size
	})

	var items []LineItem
	for _, k := range keys {
		lf := applyWaste(runs[k], opts.WasteFactorPct)
		hours := runs[k] * cat.LaborRate(domain.TradePlumbing, k.material) * pipeSizeMultiplier(k.size)
		items = append(items, LineItem{
			Category:    "Piping",
			Description: fmt.Sprintf("%s, %s %s", k.typ, k.size, k.material),
			Quantity:    lf,
			Unit:        "lf",
			Material:    k.material,
			Size:        k.size,
			ItemType:    "pipe",
			LaborHours:  hours * laborOverheadFactor,
		})
	}

	for _, f := range fixtures {
		if err := checkNonNegative(f.Quantity, "quantity", f.Type); err != nil {
			return nil, err
		}
		if f.Quantity == 0 {
			continue
		}
		entry, tier := Classify(f.Type, f.Description, domain.TradePlumbing, cat)
		classifyNote(notes, "fixtures", f.Type, tier)
		desc := entry.Description
		if f.Description != "" {
			desc = f.Description
		}
		items = append(items, LineItem{
			Category:    "Fixtures",
			Code:        entry.Code,
			Description: desc,
			Quantity:    f.Quantity,
			Unit:        "ea",
			UnitCost:    entry.UnitCost,
			ItemType:    "fixture",
			LaborHours:  f.Quantity * entry.LaborRate * laborOverheadFactor,
		})
	}

	for _, v := range valves {
		if err := checkNonNegative(v.Quantity, "quantity", v.Type); err != nil {
			return nil, err
		}
		if v.Quantity == 0 {
			continue
		}
		items = append(items, LineItem{
			Category:    "Valves",
			Description: fmt.Sprintf("%s, %s", v.Type, v.Size),
			Quantity:    v.Quantity,
			Unit:        "ea",
			Size:        normalizeSize(v.Size),
			ItemType:    "valve",
			LaborHours:  v.Quantity * valveLaborHours * laborOverheadFactor,
		})
	}
	return items, nil
}
