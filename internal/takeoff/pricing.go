package takeoff

import (
	"math"
	"sort"
	"strings"

	"takeoffs/internal/domain"
)

// PriceTier records which fallback tier produced a unit cost. Tiers below
// exact are surfaced as audit notes by the pipeline.
type PriceTier string

const (
	TierExact         PriceTier = "exact"
	TierNearestSize   PriceTier = "nearest_size"
	TierTypeDefault   PriceTier = "type_default"
	TierGlobalDefault PriceTier = "global_default"
)

// PricingEngine resolves unit costs against an injected catalog. Every tier
// is deterministic and the engine never fails: the worst case is the global
// default constant.
type PricingEngine struct {
	cat *Catalog
}

// NewPricingEngine creates a PricingEngine over a catalog.
func NewPricingEngine(cat *Catalog) *PricingEngine {
	return &PricingEngine{cat: cat}
}

// Price returns the unit cost for (material, size) within a trade.
//
// Tiers: exact table[material][size] lookup; nearest numeric size within the
// material's row, with equidistant ties resolving to the larger size; the
// per-type default; the global default.
func (p *PricingEngine) Price(trade domain.Trade, material, size, itemType string) (float64, PriceTier) {
	sizes := p.materialSizes(trade, material)
	if sizes != nil {
		if c, ok := sizes[normalizeSize(size)]; ok {
			return c, TierExact
		}
		if c, ok := nearestSize(sizes, size); ok {
			return c, TierNearestSize
		}
	}

	if c, ok := p.cat.TypeDefault(trade, itemType); ok {
		return c, TierTypeDefault
	}
	return p.cat.GlobalDefault(), TierGlobalDefault
}

// materialSizes finds the size row for a material, tolerating case and
// embedding differences ("Copper pipe" matches the "copper" row). Candidate
// keys are scanned in sorted order so the match is deterministic.
func (p *PricingEngine) materialSizes(trade domain.Trade, material string) map[string]float64 {
	table := p.cat.Prices(trade)
	if table == nil {
		return nil
	}
	if sizes, ok := table[material]; ok {
		return sizes
	}

	lower := strings.ToLower(strings.TrimSpace(material))
	if lower == "" {
		return nil
	}
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		kl := strings.ToLower(k)
		if kl == lower || strings.Contains(lower, kl) {
			return table[k]
		}
	}
	return nil
}

// nearestSize picks the catalog size with the minimum absolute numeric
// difference from the requested size. Equidistant ties resolve to the
// larger size: a 5" request against {4", 6"} prices as 6".
func nearestSize(sizes map[string]float64, size string) (float64, bool) {
	want, ok := parseSizeValue(size)
	if !ok {
		return 0, false
	}

	type candidate struct {
		value float64
		cost  float64
	}
	var cands []candidate
	for k, c := range sizes {
		if v, ok := parseSizeValue(k); ok {
			cands = append(cands, candidate{value: v, cost: c})
		}
	}
	if len(cands) == 0 {
		return 0, false
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].value < cands[j].value })

	best := 0
	for i := 1; i < len(cands); i++ {
		if math.Abs(cands[i].value-want) <= math.Abs(cands[best].value-want) {
			best = i
		}
	}
	return cands[best].cost, true
}
