package takeoff

import (
	"takeoffs/internal/domain"
)

// PriceTable maps material -> size -> unit cost for one trade.
type PriceTable map[string]map[string]float64

// KeywordRule matches a free-text description when every keyword is
// contained in it. Rules are evaluated in slice order, most specific first;
// the first match wins.
type KeywordRule struct {
	Keywords []string
	Entry    CatalogEntry
}

// Catalog is the immutable per-trade material configuration. It is injected
// into the pipeline per run; tests substitute their own instance. All
// accessors return copies, nothing mutates a Catalog after construction.
type Catalog struct {
	entries       map[domain.Trade]map[string]CatalogEntry
	keywordRules  map[domain.Trade][]KeywordRule
	prices        map[domain.Trade]PriceTable
	typeDefaults  map[domain.Trade]map[string]float64
	tradeDefaults map[domain.Trade]CatalogEntry
	laborRates    map[domain.Trade]map[string]float64
	globalDefault float64
}

// Entry looks up a catalog entry by type code.
func (c *Catalog) Entry(trade domain.Trade, code string) (CatalogEntry, bool) {
	e, ok := c.entries[trade][code]
	return e, ok
}

// KeywordRules returns the ordered keyword rules for a trade.
func (c *Catalog) KeywordRules(trade domain.Trade) []KeywordRule {
	return c.keywordRules[trade]
}

// Prices returns the price table for a trade.
func (c *Catalog) Prices(trade domain.Trade) PriceTable {
	return c.prices[trade]
}

// TypeDefault returns the fallback unit cost for an item type within a trade.
func (c *Catalog) TypeDefault(trade domain.Trade, itemType string) (float64, bool) {
	v, ok := c.typeDefaults[trade][itemType]
	return v, ok
}

// TradeDefault returns the classifier's last-resort entry for a trade.
func (c *Catalog) TradeDefault(trade domain.Trade) CatalogEntry {
	return c.tradeDefaults[trade]
}

// LaborRate returns labor hours per unit for a material within a trade,
// falling back to the trade's "default" rate.
func (c *Catalog) LaborRate(trade domain.Trade, material string) float64 {
	rates := c.laborRates[trade]
	if r, ok := rates[material]; ok {
		return r
	}
	return rates["default"]
}

// GlobalDefault is the final pricing fallback.
func (c *Catalog) GlobalDefault() float64 {
	return c.globalDefault
}

// WithOverrides returns a copy of the catalog with price-book rows applied
// on top of the built-in tables. The receiver is not modified.
func (c *Catalog) WithOverrides(rows []domain.CatalogPrice) *Catalog {
	out := &Catalog{
		entries:       make(map[domain.Trade]map[string]CatalogEntry, len(c.entries)),
		keywordRules:  c.keywordRules,
		prices:        make(map[domain.Trade]PriceTable, len(c.prices)),
		typeDefaults:  c.typeDefaults,
		tradeDefaults: c.tradeDefaults,
		laborRates:    c.laborRates,
		globalDefault: c.globalDefault,
	}
	for trade, m := range c.entries {
		cp := make(map[string]CatalogEntry, len(m))
		for k, v := range m {
			cp[k] = v
		}
		out.entries[trade] = cp
	}
	for trade, table := range c.prices {
		cp := make(PriceTable, len(table))
		for mat, sizes := range table {
			sz := make(map[string]float64, len(sizes))
			for k, v := range sizes {
				sz[k] = v
			}
			cp[mat] = sz
		}
		out.prices[trade] = cp
	}

	for _, row := range rows {
		if row.Code != "" {
			entries := out.entries[row.Trade]
			if entries == nil {
				entries = make(map[string]CatalogEntry)
				out.entries[row.Trade] = entries
			}
			e := entries[row.Code]
			e.Code = row.Code
			if row.Description != "" {
				e.Description = row.Description
			}
			if row.UnitCost > 0 {
				e.UnitCost = row.UnitCost
			}
			if row.LaborRate > 0 {
				e.LaborRate = row.LaborRate
			}
			entries[row.Code] = e
		}
		if row.Material != "" && row.Size != "" && row.UnitCost > 0 {
			table := out.prices[row.Trade]
			if table == nil {
				table = make(PriceTable)
				out.prices[row.Trade] = table
			}
			sizes := table[row.Material]
			if sizes == nil {
				sizes = make(map[string]float64)
				table[row.Material] = sizes
			}
			sizes[row.Size] = row.UnitCost
		}
	}
	return out
}

// DefaultCatalog returns the built-in catalog covering all supported trades.
func DefaultCatalog() *Catalog {
	return &Catalog{
		globalDefault: 10.0,

		entries: map[domain.Trade]map[string]CatalogEntry{
			domain.TradeFraming: {
				"S4":  {Code: "S4", Description: `2x4 stud, 8'`, UnitSize: 1, Unit: "ea", UnitCost: 4.25, LaborRate: 0.05},
				"S6":  {Code: "S6", Description: `2x6 stud, 8'`, UnitSize: 1, Unit: "ea", UnitCost: 6.85, LaborRate: 0.06},
				"MS4": {Code: "MS4", Description: `3-5/8" 25ga metal stud`, UnitSize: 1, Unit: "ea", UnitCost: 5.10, LaborRate: 0.05},
				"TRK": {Code: "TRK", Description: `track / plate stock`, UnitSize: 1, Unit: "lf", UnitCost: 1.95, LaborRate: 0.02},
				"HDR": {Code: "HDR", Description: `LVL header`, UnitSize: 1, Unit: "ea", UnitCost: 18.50, LaborRate: 0.4},
				"BLK": {Code: "BLK", Description: `2x blocking`, UnitSize: 1, Unit: "lf", UnitCost: 1.40, LaborRate: 0.03},
			},
			domain.TradeSheathing: {
				"OSB":  {Code: "OSB", Description: `7/16" OSB sheathing, 4x8`, UnitSize: 32, Unit: "sheet", UnitCost: 18.50, LaborRate: 0.25},
				"PLY":  {Code: "PLY", Description: `1/2" CDX plywood, 4x8`, UnitSize: 32, Unit: "sheet", UnitCost: 26.75, LaborRate: 0.25},
				"ZIP":  {Code: "ZIP", Description: `1/2" integrated-barrier sheathing, 4x8`, UnitSize: 32, Unit: "sheet", UnitCost: 38.00, LaborRate: 0.3},
				"GYP":  {Code: "GYP", Description: `5/8" gypsum sheathing, 4x8`, UnitSize: 32, Unit: "sheet", UnitCost: 16.25, LaborRate: 0.22},
				"WRAP": {Code: "WRAP", Description: `house wrap, 1000 sq ft roll`, UnitSize: 1000, Unit: "roll", UnitCost: 155.00, LaborRate: 0.5},
			},
			domain.TradeAcoustical: {
				"ACP":  {Code: "ACP", Description: `2x2 acoustical ceiling tile`, UnitSize: 4, Unit: "tile", UnitCost: 6.50, LaborRate: 0.04},
				"ACP4": {Code: "ACP4", Description: `2x4 acoustical ceiling tile`, UnitSize: 8, Unit: "tile", UnitCost: 9.75, LaborRate: 0.05},
				"TEG":  {Code: "TEG", Description: `2x2 tegular edge tile, 9/16" grid`, UnitSize: 4, Unit: "tile", UnitCost: 11.20, LaborRate: 0.05},
				"MT":   {Code: "MT", Description: `main tee, 12' stick`, UnitSize: 12, Unit: "stick", UnitCost: 8.90, LaborRate: 0.08},
				"CT":   {Code: "CT", Description: `cross tee`, UnitSize: 1, Unit: "ea", UnitCost: 2.10, LaborRate: 0.01},
				"WA":   {Code: "WA", Description: `wall angle, 10' stick`, UnitSize: 10, Unit: "stick", UnitCost: 4.60, LaborRate: 0.05},
			},
			domain.TradePlumbing: {
				"WH":  {Code: "WH", Description: `water heater, 50 gal`, UnitSize: 1, Unit: "ea", UnitCost: 850.00, LaborRate: 3.0},
				"LAV": {Code: "LAV", Description: `lavatory sink`, UnitSize: 1, Unit: "ea", UnitCost: 225.00, LaborRate: 2.0},
				"WC":  {Code: "WC", Description: `water closet`, UnitSize: 1, Unit: "ea", UnitCost: 310.00, LaborRate: 2.0},
				"FD":  {Code: "FD", Description: `floor drain`, UnitSize: 1, Unit: "ea", UnitCost: 95.00, LaborRate: 1.5},
			},
			domain.TradeMechanical: {
				"RTU": {Code: "RTU", Description: `rooftop unit`, UnitSize: 1, Unit: "ea", UnitCost: 4500.00, LaborRate: 8.0},
				"DIF": {Code: "DIF", Description: `supply diffuser, 24x24`, UnitSize: 1, Unit: "ea", UnitCost: 85.00, LaborRate: 0.75},
				"EF":  {Code: "EF", Description: `exhaust fan`, UnitSize: 1, Unit: "ea", UnitCost: 320.00, LaborRate: 2.0},
				"RG":  {Code: "RG", Description: `return grille`, UnitSize: 1, Unit: "ea", UnitCost: 45.00, LaborRate: 0.5},
			},
			domain.TradeCarpentry: {
				"BASE": {Code: "BASE", Description: `base trim, MDF`, UnitSize: 1, Unit: "lf", UnitCost: 1.85, LaborRate: 0.04},
				"CASE": {Code: "CASE", Description: `door/window casing`, UnitSize: 1, Unit: "lf", UnitCost: 2.20, LaborRate: 0.05},
				"CRWN": {Code: "CRWN", Description: `crown molding`, UnitSize: 1, Unit: "lf", UnitCost: 3.60, LaborRate: 0.08},
				"SHLF": {Code: "SHLF", Description: `closet shelving`, UnitSize: 1, Unit: "lf", UnitCost: 4.10, LaborRate: 0.1},
			},
		},

		keywordRules: map[domain.Trade][]KeywordRule{
			domain.TradeAcoustical: {
				{Keywords: []string{"tegular"}, Entry: CatalogEntry{Code: "TEG", Description: `2x2 tegular edge tile, 9/16" grid`, UnitSize: 4, Unit: "tile", UnitCost: 11.20, LaborRate: 0.05}},
				{Keywords: []string{"2x4", "tile"}, Entry: CatalogEntry{Code: "ACP4", Description: `2x4 acoustical ceiling tile`, UnitSize: 8, Unit: "tile", UnitCost: 9.75, LaborRate: 0.05}},
				{Keywords: []string{"2x2"}, Entry: CatalogEntry{Code: "ACP", Description: `2x2 acoustical ceiling tile`, UnitSize: 4, Unit: "tile", UnitCost: 6.50, LaborRate: 0.04}},
				{Keywords: []string{"main tee"}, Entry: CatalogEntry{Code: "MT", Description: `main tee, 12' stick`, UnitSize: 12, Unit: "stick", UnitCost: 8.90, LaborRate: 0.08}},
				{Keywords: []string{"cross tee"}, Entry: CatalogEntry{Code: "CT", Description: `cross tee`, UnitSize: 1, Unit: "ea", UnitCost: 2.10, LaborRate: 0.01}},
				{Keywords: []string{"wall angle"}, Entry: CatalogEntry{Code: "WA", Description: `wall angle, 10' stick`, UnitSize: 10, Unit: "stick", UnitCost: 4.60, LaborRate: 0.05}},
			},
			domain.TradeSheathing: {
				{Keywords: []string{"zip"}, Entry: CatalogEntry{Code: "ZIP", Description: `1/2" integrated-barrier sheathing, 4x8`, UnitSize: 32, Unit: "sheet", UnitCost: 38.00, LaborRate: 0.3}},
				{Keywords: []string{"gypsum"}, Entry: CatalogEntry{Code: "GYP", Description: `5/8" gypsum sheathing, 4x8`, UnitSize: 32, Unit: "sheet", UnitCost: 16.25, LaborRate: 0.22}},
				{Keywords: []string{"plywood"}, Entry: CatalogEntry{Code: "PLY", Description: `1/2" CDX plywood, 4x8`, UnitSize: 32, Unit: "sheet", UnitCost: 26.75, LaborRate: 0.25}},
				{Keywords: []string{"osb"}, Entry: CatalogEntry{Code: "OSB", Description: `7/16" OSB sheathing, 4x8`, UnitSize: 32, Unit: "sheet", UnitCost: 18.50, LaborRate: 0.25}},
				{Keywords: []string{"wrap"}, Entry: CatalogEntry{Code: "WRAP", Description: `house wrap, 1000 sq ft roll`, UnitSize: 1000, Unit: "roll", UnitCost: 155.00, LaborRate: 0.5}},
			},
			domain.TradeFraming: {
				{Keywords: []string{"metal", "stud"}, Entry: CatalogEntry{Code: "MS4", Description: `3-5/8" 25ga metal stud`, UnitSize: 1, Unit: "ea", UnitCost: 5.10, LaborRate: 0.05}},
				{Keywords: []string{"2x6"}, Entry: CatalogEntry{Code: "S6", Description: `2x6 stud, 8'`, UnitSize: 1, Unit: "ea", UnitCost: 6.85, LaborRate: 0.06}},
				{Keywords: []string{"2x4"}, Entry: CatalogEntry{Code: "S4", Description: `2x4 stud, 8'`, UnitSize: 1, Unit: "ea", UnitCost: 4.25, LaborRate: 0.05}},
				{Keywords: []string{"header"}, Entry: CatalogEntry{Code: "HDR", Description: `LVL header`, UnitSize: 1, Unit: "ea", UnitCost: 18.50, LaborRate: 0.4}},
				{Keywords: []string{"track"}, Entry: CatalogEntry{Code: "TRK", Description: `track / plate stock`, UnitSize: 1, Unit: "lf", UnitCost: 1.95, LaborRate: 0.02}},
			},
			domain.TradePlumbing: {
				{Keywords: []string{"water", "heater"}, Entry: CatalogEntry{Code: "WH", Description: `water heater, 50 gal`, UnitSize: 1, Unit: "ea", UnitCost: 850.00, LaborRate: 3.0}},
				{Keywords: []string{"floor", "drain"}, Entry: CatalogEntry{Code: "FD", Description: `floor drain`, UnitSize: 1, Unit: "ea", UnitCost: 95.00, LaborRate: 1.5}},
				{Keywords: []string{"water closet"}, Entry: CatalogEntry{Code: "WC", Description: `water closet`, UnitSize: 1, Unit: "ea", UnitCost: 310.00, LaborRate: 2.0}},
				{Keywords: []string{"toilet"}, Entry: CatalogEntry{Code: "WC", Description: `water closet`, UnitSize: 1, Unit: "ea", UnitCost: 310.00, LaborRate: 2.0}},
				{Keywords: []string{"sink"}, Entry: CatalogEntry{Code: "LAV", Description: `lavatory sink`, UnitSize: 1, Unit: "ea", UnitCost: 225.00, LaborRate: 2.0}},
				{Keywords: []string{"lavatory"}, Entry: CatalogEntry{Code: "LAV", Description: `lavatory sink`, UnitSize: 1, Unit: "ea", UnitCost: 225.00, LaborRate: 2.0}},
			},
			domain.TradeMechanical: {
				{Keywords: []string{"rooftop"}, Entry: CatalogEntry{Code: "RTU", Description: `rooftop unit`, UnitSize: 1, Unit: "ea", UnitCost: 4500.00, LaborRate: 8.0}},
				{Keywords: []string{"exhaust", "fan"}, Entry: CatalogEntry{Code: "EF", Description: `exhaust fan`, UnitSize: 1, Unit: "ea", UnitCost: 320.00, LaborRate: 2.0}},
				{Keywords: []string{"diffuser"}, Entry: CatalogEntry{Code: "DIF", Description: `supply diffuser, 24x24`, UnitSize: 1, Unit: "ea", UnitCost: 85.00, LaborRate: 0.75}},
				{Keywords: []string{"grille"}, Entry: CatalogEntry{Code: "RG", Description: `return grille`, UnitSize: 1, Unit: "ea", UnitCost: 45.00, LaborRate: 0.5}},
			},
			domain.TradeCarpentry: {
				{Keywords: []string{"crown"}, Entry: CatalogEntry{Code: "CRWN", Description: `crown molding`, UnitSize: 1, Unit: "lf", UnitCost: 3.60, LaborRate: 0.08}},
				{Keywords: []string{"casing"}, Entry: CatalogEntry{Code: "CASE", Description: `door/window casing`, UnitSize: 1, Unit: "lf", UnitCost: 2.20, LaborRate: 0.05}},
				{Keywords: []string{"shelv"}, Entry: CatalogEntry{Code: "SHLF", Description: `closet shelving`, UnitSize: 1, Unit: "lf", UnitCost: 4.10, LaborRate: 0.1}},
				{Keywords: []string{"base"}, Entry: CatalogEntry{Code: "BASE", Description: `base trim, MDF`, UnitSize: 1, Unit: "lf", UnitCost: 1.85, LaborRate: 0.04}},
			},
		},

		prices: map[domain.Trade]PriceTable{
			domain.TradePlumbing: {
				"PVC":       {`1/2"`: 0.85, `3/4"`: 1.10, `1"`: 1.55, `2"`: 2.85, `4"`: 8.25, `6"`: 15.50},
				"copper":    {`1/2"`: 3.95, `3/4"`: 5.75, `1"`: 8.40, `2"`: 14.60},
				"PEX":       {`1/2"`: 0.65, `3/4"`: 0.95, `1"`: 1.60},
				"cast iron": {`2"`: 9.80, `4"`: 16.20},
			},
			domain.TradeMechanical: {
				"rectangular": {`8x8`: 9.40, `12x8`: 11.80, `16x10`: 14.90, `24x12`: 21.50},
				"spiral":      {`6"`: 6.20, `8"`: 7.90, `10"`: 9.60, `12"`: 11.80},
			},
			domain.TradeFraming: {
				"wood":  {`2x4`: 4.25, `2x6`: 6.85},
				"metal": {`3-5/8"`: 5.10, `6"`: 7.40},
			},
			domain.TradeCarpentry: {
				"MDF": {`base`: 1.85, `casing`: 2.20, `crown`: 3.60},
				"oak": {`base`: 4.40, `casing`: 4.95, `crown`: 7.80},
			},
		},

		typeDefaults: map[domain.Trade]map[string]float64{
			domain.TradePlumbing: {
				"pipe":    2.50,
				"fixture": 250.00,
				"valve":   35.00,
			},
			domain.TradeMechanical: {
				"duct":      12.00,
				"equipment": 500.00,
			},
			domain.TradeFraming: {
				"stud":     4.25,
				"track":    1.95,
				"header":   18.50,
				"blocking": 1.40,
				"fastener": 28.00,
			},
			domain.TradeSheathing: {
				"sheet":    18.50,
				"fastener": 32.00,
				"wrap":     155.00,
			},
			domain.TradeAcoustical: {
				"tile": 6.50,
				"grid": 5.00,
			},
			domain.TradeCarpentry: {
				"trim":     2.20,
				"hardware": 12.00,
				"fastener": 24.00,
			},
		},

		tradeDefaults: map[domain.Trade]CatalogEntry{
			domain.TradeAcoustical: {Code: "ACP", Description: `2x2 acoustical ceiling tile`, UnitSize: 4, Unit: "tile", UnitCost: 6.50, LaborRate: 0.04},
			domain.TradeSheathing:  {Code: "OSB", Description: `7/16" OSB sheathing, 4x8`, UnitSize: 32, Unit: "sheet", UnitCost: 18.50, LaborRate: 0.25},
			domain.TradeFraming:    {Code: "S4", Description: `2x4 stud, 8'`, UnitSize: 1, Unit: "ea", UnitCost: 4.25, LaborRate: 0.05},
			domain.TradePlumbing:   {Code: "FIX", Description: `plumbing fixture, unspecified`, UnitSize: 1, Unit: "ea", UnitCost: 250.00, LaborRate: 2.0},
			domain.TradeMechanical: {Code: "EQP", Description: `mechanical equipment, unspecified`, UnitSize: 1, Unit: "ea", UnitCost: 500.00, LaborRate: 2.0},
			domain.TradeCarpentry:  {Code: "TRIM", Description: `trim stock, unspecified`, UnitSize: 1, Unit: "lf", UnitCost: 2.20, LaborRate: 0.05},
		},

		laborRates: map[domain.Trade]map[string]float64{
			domain.TradePlumbing: {
				"copper":    0.12,
				"PVC":       0.08,
				"PEX":       0.06,
				"cast iron": 0.15,
				"default":   0.10,
			},
			domain.TradeMechanical: {
				"rectangular": 0.12,
				"spiral":      0.09,
				"default":     0.10,
			},
			domain.TradeFraming:    {"default": 0.05},
			domain.TradeSheathing:  {"default": 0.25},
			domain.TradeAcoustical: {"default": 0.04},
			domain.TradeCarpentry:  {"default": 0.05},
		},
	}
}
