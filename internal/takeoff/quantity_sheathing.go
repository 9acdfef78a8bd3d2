package takeoff

import (
	"math"
	"sort"
	"strings"

	"takeoffs/internal/domain"
)

// sheathingQuantities converts wall sections to sheet, fastener, and
// house-wrap quantities.
//
// Per sheet group: sheetsNeeded = ceil(area / unitArea), then
// sheetsWithWaste = ceil(sheetsNeeded * (1 + waste/100)). Fastener boxes =
// ceil(sheets / 10). Wrap rolls = ceil(totalArea / 1000), skipped when the
// sheathing is an integrated-barrier system.
func sheathingQuantities(walls []WallSection, cat *Catalog, opts Options, notes *noteList) ([]LineItem, error) {
	if len(walls) == 0 {
		return nil, nil
	}

	type sheetGroup struct {
		entry CatalogEntry
		area  float64
	}
	groups := make(map[string]*sheetGroup)
	var totalArea float64
	integratedBarrier := true

	for _, w := range walls {
		if err := checkNonNegative(w.LengthFt, "length", w.Name); err != nil {
			return nil, err
		}
		if err := checkNonNegative(w.HeightFt, "height", w.Name); err != nil {
			return nil, err
		}

		entry, tier := Classify(w.TypeCode, w.Name, domain.TradeSheathing, cat)
		classifyNote(notes, "sheathing", w.Name, tier)

		area := w.LengthFt * w.HeightFt
		totalArea += area

		g := groups[entry.Code]
		if g == nil {
			g = &sheetGroup{entry: entry}
			groups[entry.Code] = g
		}
		g.area += area
		if entry.Code != "ZIP" && !strings.Contains(strings.ToLower(entry.Description), "integrated") {
			integratedBarrier = false
		}
	}

	codes := make([]string, 0, len(groups))
	for code := range groups {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var (
		items       []LineItem
		totalSheets float64
	)
	for _, code := range codes {
		g := groups[code]
		unitArea := g.entry.UnitSize
		if unitArea <= 0 {
			unitArea = 32
		}
		sheets := math.Ceil(g.area / unitArea)
		qty := applyWaste(sheets, opts.WasteFactorPct)
		totalSheets += qty
		items = append(items, LineItem{
			Category:    "Sheathing",
			Code:        g.entry.Code,
			Description: g.entry.Description,
			Quantity:    qty,
			Unit:        "sheet",
			UnitCost:    g.entry.UnitCost,
			ItemType:    "sheet",
			LaborHours:  qty * g.entry.LaborRate,
		})
	}

	if boxes := math.Ceil(totalSheets / 10); boxes > 0 {
		items = append(items, LineItem{
			Category:    "Sheathing",
			Code:        "FAST",
			Description: "sheathing fasteners, 5 lb box",
			Quantity:    boxes,
			Unit:        "box",
			ItemType:    "fastener",
		})
	}

	if !integratedBarrier && totalArea > 0 {
		wrap, _ := cat.Entry(domain.TradeSheathing, "WRAP")
		rolls := math.Ceil(totalArea / wrap.UnitSize)
		items = append(items, LineItem{
			Category:    "Sheathing",
			Code:        wrap.Code,
			Description: wrap.Description,
			Quantity:    rolls,
			Unit:        "roll",
			UnitCost:    wrap.UnitCost,
			ItemType:    "wrap",
			LaborHours:  rolls * wrap.LaborRate,
		})
	}
	return items, nil
}
