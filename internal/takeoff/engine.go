package takeoff

import (
	"fmt"

	"takeoffs/internal/domain"
)

// Engine runs the full takeoff pipeline: extract, classify, quantify, price,
// aggregate. It is stateless across runs; concurrent Analyze calls need no
// coordination because the catalog is immutable.
type Engine struct {
	extractor *Extractor
	catalog   *Catalog
}

// NewEngine creates an Engine over an immutable catalog.
func NewEngine(cat *Catalog) *Engine {
	return &Engine{extractor: NewExtractor(), catalog: cat}
}

// Analyze transforms one raw analysis text into an AnalysisResult. The only
// errors are contract violations (unknown trade, negative quantities); every
// domain irregularity is absorbed into fallback tiers and reported as notes.
func (e *Engine) Analyze(rawText string, opts Options) (*AnalysisResult, error) {
	if _, ok := defaultWasteFactors[opts.Trade]; !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTrade, string(opts.Trade))
	}
	opts = opts.normalized()

	ext := e.extractor.Extract(rawText, opts.Trade)
	notes := &noteList{notes: ext.Notes}
	cat := e.catalog.withLegend(opts.Trade, ext.Legend)

	items, err := e.quantities(ext.Records, cat, opts, notes)
	if err != nil {
		return nil, err
	}

	priced, laborHours := e.price(items, cat, opts, notes)
	cats, totals := aggregate(priced, opts)

	return &AnalysisResult{
		Trade:      opts.Trade,
		Sections:   sectionSummaries(ext.Records),
		Categories: cats,
		Totals:     totals,
		LaborHours: round2(laborHours),
		Legend:     ext.Legend,
		Notes:      notes.notes,
		Options: AnalysisOptionsEcho{
			Trade:             opts.Trade,
			AnalysisType:      opts.AnalysisType,
			WasteFactorPct:    opts.WasteFactorPct,
			StudSpacingIn:     opts.StudSpacingIn,
			IncludeGridSystem: opts.IncludeGridSystem,
			ContingencyRate:   opts.ContingencyRate,
		},
	}, nil
}

// quantities dispatches the extracted records to the trade's calculator.
func (e *Engine) quantities(records []Record, cat *Catalog, opts Options, notes *noteList) ([]LineItem, error) {
	var (
		pipes     []PipeSegment
		fixtures  []Fixture
		valves    []Valve
		walls     []WallSection
		ceilings  []CeilingSection
		ducts     []DuctSegment
		equipment []Equipment
		trims     []TrimRun
		hardware  []Hardware
	)
	for _, r := range records {
		switch v := r.(type) {
		case PipeSegment:
			pipes = append(pipes, v)
		case Fixture:
			fixtures = append(fixtures, v)
		case Valve:
			valves = append(valves, v)
		case WallSection:
			walls = append(walls, v)
		case CeilingSection:
			ceilings = append(ceilings, v)
		case DuctSegment:
			ducts = append(ducts, v)
		case Equipment:
			equipment = append(equipment, v)
		case TrimRun:
			trims = append(trims, v)
		case Hardware:
			hardware = append(hardware, v)
		}
	}

	switch opts.Trade {
	case domain.TradePlumbing:
		return plumbingQuantities(pipes, fixtures, valves, cat, opts, notes)
	case domain.TradeFraming:
		return framingQuantities(walls, cat, opts, notes)
	case domain.TradeSheathing:
		return sheathingQuantities(walls, cat, opts, notes)
	case domain.TradeAcoustical:
		return acousticalQuantities(ceilings, cat, opts, notes)
	case domain.TradeMechanical:
		return mechanicalQuantities(ducts, equipment, cat, opts, notes)
	case domain.TradeCarpentry:
		return carpentryQuantities(trims, hardware, cat, opts, notes)
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTrade, string(opts.Trade))
}

// price resolves unit costs and appends the labor line. A materials-only run
// keeps quantities and labor hours but zeroes every price.
func (e *Engine) price(items []LineItem, cat *Catalog, opts Options, notes *noteList) ([]PricedItem, float64) {
	pricer := NewPricingEngine(cat)

	var (
		priced     []PricedItem
		laborHours float64
	)
	for _, li := range items {
		laborHours += li.LaborHours

		unitPrice := li.UnitCost
		if opts.AnalysisType == domain.AnalysisTypeMaterials {
			unitPrice = 0
		} else if unitPrice == 0 {
			cost, tier := pricer.Price(opts.Trade, li.Material, li.Size, li.ItemType)
			unitPrice = cost
			// a type-default hit is only a miss when a material row was
			// expected in the first place
			if tier == TierGlobalDefault || (tier == TierTypeDefault && li.Material != "") {
				notes.add(NotePricingLookupMiss, li.Category,
					"no price for %q size %q, used %s tier", li.Material, li.Size, string(tier))
			}
		}

		priced = append(priced, PricedItem{
			Category:    li.Category,
			Code:        li.Code,
			Description: li.Description,
			Quantity:    li.Quantity,
			Unit:        li.Unit,
			UnitPrice:   unitPrice,
			TotalPrice:  round2(li.Quantity * unitPrice),
		})
	}

	if laborHours > 0 && opts.AnalysisType != domain.AnalysisTypeMaterials {
		hours := round2(laborHours)
		priced = append(priced, PricedItem{
			Category:    "Labor",
			Description: "installation labor",
			Quantity:    hours,
			Unit:        "hr",
			UnitPrice:   opts.LaborRatePerHour,
			TotalPrice:  round2(hours * opts.LaborRatePerHour),
		})
	}
	return priced, laborHours
}

// sectionSummaries echoes the geometry records the quantities came from.
func sectionSummaries(records []Record) []SectionSummary {
	var out []SectionSummary
	for _, r := range records {
		switch v := r.(type) {
		case WallSection:
			out = append(out, SectionSummary{
				Name:         v.Name,
				TypeCode:     v.TypeCode,
				LengthFt:     v.LengthFt,
				HeightFt:     v.HeightFt,
				AreaSqFt:     v.LengthFt * v.HeightFt,
				OpeningCount: v.OpeningCount,
			})
		case CeilingSection:
			out = append(out, SectionSummary{
				Name:     v.Name,
				TypeCode: v.TypeCode,
				AreaSqFt: v.AreaSqFt,
			})
		}
	}
	return out
}

// withLegend overlays legend rows onto the catalog's exact-code table for one
// trade. A legend code that shadows a built-in entry replaces its description
// and, when given, its cost; a new code inherits the trade default's unit
// geometry so quantity math stays sane.
func (c *Catalog) withLegend(trade domain.Trade, legend []CatalogEntry) *Catalog {
	if len(legend) == 0 {
		return c
	}

	out := *c
	out.entries = make(map[domain.Trade]map[string]CatalogEntry, len(c.entries))
	for t, m := range c.entries {
		out.entries[t] = m
	}
	entries := make(map[string]CatalogEntry, len(c.entries[trade])+len(legend))
	for k, v := range c.entries[trade] {
		entries[k] = v
	}
	out.entries[trade] = entries

	def := c.TradeDefault(trade)
	for _, le := range legend {
		e, ok := entries[le.Code]
		if !ok {
			e = def
			e.Code = le.Code
		}
		if le.Description != "" {
			e.Description = le.Description
		}
		if le.UnitCost > 0 {
			e.UnitCost = le.UnitCost
		}
		entries[le.Code] = e
	}
	return &out
}
