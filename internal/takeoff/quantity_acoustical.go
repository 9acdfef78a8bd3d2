package takeoff

import (
	"math"
	"sort"

	"takeoffs/internal/domain"
)

// acousticalQuantities converts ceiling sections to tile quantities, plus the
// suspension grid when requested.
//
// Tiles follow the sheet rule: tilesNeeded = ceil(area / unitArea), then
// waste once at the tile level. Grid estimate: main tees run 4' o.c. in 12'
// sticks, one cross tee per tile, and wall angle sized from a square-room
// perimeter estimate in 10' sticks.
func acousticalQuantities(ceilings []CeilingSection, cat *Catalog, opts Options, notes *noteList) ([]LineItem, error) {
	if len(ceilings) == 0 {
		return nil, nil
	}

	type tileGroup struct {
		entry CatalogEntry
		area  float64
	}
	groups := make(map[string]*tileGroup)
	var totalArea float64

	for _, c := range ceilings {
		if err := checkNonNegative(c.AreaSqFt, "area", c.Name); err != nil {
			return nil, err
		}

		entry, tier := Classify(c.TypeCode, c.Name, domain.TradeAcoustical, cat)
		classifyNote(notes, "acoustical", c.Name, tier)

		g := groups[entry.Code]
		if g == nil {
			g = &tileGroup{entry: entry}
			groups[entry.Code] = g
		}
		g.area += c.AreaSqFt
		totalArea += c.AreaSqFt
	}

	codes := make([]string, 0, len(groups))
	for code := range groups {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var (
		items      []LineItem
		totalTiles float64
	)
	for _, code := range codes {
		g := groups[code]
		unitArea := g.entry.UnitSize
		if unitArea <= 0 {
			unitArea = 4
		}
		tiles := math.Ceil(g.area / unitArea)
		qty := applyWaste(tiles, opts.WasteFactorPct)
		totalTiles += qty
		items = append(items, LineItem{
			Category:    "Acoustical Ceiling",
			Code:        g.entry.Code,
			Description: g.entry.Description,
			Quantity:    qty,
			Unit:        "tile",
			UnitCost:    g.entry.UnitCost,
			ItemType:    "tile",
			LaborHours:  qty * g.entry.LaborRate,
		})
	}

	if opts.IncludeGridSystem && totalArea > 0 {
		mt, _ := cat.Entry(domain.TradeAcoustical, "MT")
		ct, _ := cat.Entry(domain.TradeAcoustical, "CT")
		wa, _ := cat.Entry(domain.TradeAcoustical, "WA")

		mainTees := math.Ceil(totalArea / 4 / mt.UnitSize)
		crossTees := totalTiles
		perimeter := 4 * math.Sqrt(totalArea)
		wallAngle := math.Ceil(perimeter / wa.UnitSize)

		items = append(items,
			LineItem{
				Category: "Grid System", Code: mt.Code, Description: mt.Description,
				Quantity: mainTees, Unit: "stick", UnitCost: mt.UnitCost,
				ItemType: "grid", LaborHours: mainTees * mt.LaborRate,
			},
			LineItem{
				Category: "Grid System", Code: ct.Code, Description: ct.Description,
				Quantity: crossTees, Unit: "ea", UnitCost: ct.UnitCost,
				ItemType: "grid", LaborHours: crossTees * ct.LaborRate,
			},
			LineItem{
				Category: "Grid System", Code: wa.Code, Description: wa.Description,
				Quantity: wallAngle, Unit: "stick", UnitCost: wa.UnitCost,
				ItemType: "grid", LaborHours: wallAngle * wa.LaborRate,
			},
		)
	}
	return items, nil
}
