package takeoff

import (
	"fmt"
	"math"
	"sort"

	"takeoffs/internal/domain"
)

// framingQuantities converts wall sections to stud, track, header, blocking,
// and fastener quantities.
//
// Per wall: studCount = ceil(length / (spacing/12)) + 1, track = length * 2,
// each opening adds one header, two king studs, and two cripple studs.
// Across all walls: corner backing = ceil(sections/2) * 2 studs, blocking =
// ceil(totalLF * 0.2) LF, fastener boxes = ceil(studs*4/100) for screws or
// ceil(studs*4/50) for nails. Waste applies once, to the stud count.
func framingQuantities(walls []WallSection, cat *Catalog, opts Options, notes *noteList) ([]LineItem, error) {
	if len(walls) == 0 {
		return nil, nil
	}

	spacingFt := opts.StudSpacingIn / 12

	type studGroup struct {
		entry CatalogEntry
		count float64
	}
	groups := make(map[string]*studGroup)
	var (
		totalLF    float64
		totalTrack float64
		headers    float64
		totalStuds float64
	)

	for _, w := range walls {
		if err := checkNonNegative(w.LengthFt, "length", w.Name); err != nil {
			return nil, err
		}
		if err := checkNonNegative(w.HeightFt, "height", w.Name); err != nil {
			return nil, err
		}
		if err := checkNonNegative(float64(w.OpeningCount), "opening count", w.Name); err != nil {
			return nil, err
		}

		entry, tier := Classify(w.TypeCode, w.Name, domain.TradeFraming, cat)
		classifyNote(notes, "framing", w.Name, tier)

		studs := math.Ceil(w.LengthFt/spacingFt) + 1
		studs += float64(w.OpeningCount) * 4 // 2 king + 2 cripple per opening
		headers += float64(w.OpeningCount)

		g := groups[entry.Code]
		if g == nil {
			g = &studGroup{entry: entry}
			groups[entry.Code] = g
		}
		g.count += studs
		totalStuds += studs

		totalLF += w.LengthFt
		totalTrack += w.LengthFt * 2
	}

	// corner backing studs go to the dominant stud group
	backing := math.Ceil(float64(len(walls))/2) * 2
	codes := make([]string, 0, len(groups))
	for code := range groups {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		if groups[codes[i]].count != groups[codes[j]].count {
			return groups[codes[i]].count > groups[codes[j]].count
		}
		return codes[i] < codes[j]
	})
	groups[codes[0]].count += backing
	totalStuds += backing

	var items []LineItem
	for _, code := range codes {
		g := groups[code]
		qty := applyWaste(g.count, opts.WasteFactorPct)
		items = append(items, LineItem{
			Category:    "Framing",
			Code:        g.entry.Code,
			Description: g.entry.Description,
			Quantity:    qty,
			Unit:        "ea",
			UnitCost:    g.entry.UnitCost,
			ItemType:    "stud",
			LaborHours:  qty * g.entry.LaborRate,
		})
	}

	if trk, ok := cat.Entry(domain.TradeFraming, "TRK"); ok {
		qty := applyWaste(totalTrack, opts.WasteFactorPct)
		items = append(items, LineItem{
			Category:    "Framing",
			Code:        trk.Code,
			Description: trk.Description,
			Quantity:    qty,
			Unit:        "lf",
			UnitCost:    trk.UnitCost,
			ItemType:    "track",
			LaborHours:  qty * trk.LaborRate,
		})
	}

	if headers > 0 {
		hdr, _ := cat.Entry(domain.TradeFraming, "HDR")
		items = append(items, LineItem{
			Category:    "Framing",
			Code:        hdr.Code,
			Description: hdr.Description,
			Quantity:    headers,
			Unit:        "ea",
			UnitCost:    hdr.UnitCost,
			ItemType:    "header",
			LaborHours:  headers * hdr.LaborRate,
		})
	}

	if blocking := math.Ceil(totalLF * 0.2); blocking > 0 {
		blk, _ := cat.Entry(domain.TradeFraming, "BLK")
		items = append(items, LineItem{
			Category:    "Framing",
			Code:        blk.Code,
			Description: blk.Description,
			Quantity:    blocking,
			Unit:        "lf",
			UnitCost:    blk.UnitCost,
			ItemType:    "blocking",
			LaborHours:  blocking * blk.LaborRate,
		})
	}

	perBox := 100.0
	label := "framing screws, 1 lb box"
	if opts.FastenerType == FastenerNails {
		perBox = 50
		label = "framing nails, 1 lb box"
	}
	if boxes := math.Ceil(totalStuds * 4 / perBox); boxes > 0 {
		items = append(items, LineItem{
			Category:    "Framing",
			Code:        "FAST",
			Description: fmt.Sprintf("%s (%d studs)", label, int(totalStuds)),
			Quantity:    boxes,
			Unit:        "box",
			ItemType:    "fastener",
			LaborHours:  0,
		})
	}
	return items, nil
}
