package takeoff

import (
	"takeoffs/internal/domain"
)

// RecordKind discriminates the extracted record variants.
type RecordKind string

const (
	KindPipeSegment    RecordKind = "pipe_segment"
	KindFixture        RecordKind = "fixture"
	KindValve          RecordKind = "valve"
	KindWallSection    RecordKind = "wall_section"
	KindCeilingSection RecordKind = "ceiling_section"
	KindDuctSegment    RecordKind = "duct_segment"
	KindEquipment      RecordKind = "equipment"
	KindTrimRun        RecordKind = "trim_run"
	KindHardware       RecordKind = "hardware"
	KindUnknown        RecordKind = "unknown"
)

// Record is the closed union of candidate records the extractor produces.
// Quantities, lengths, and areas are non-negative; TypeCode may be empty
// pending classification.
type Record interface {
	RecordKind() RecordKind
}

// PipeSegment is a run of pipe of one type, size, and material.
type PipeSegment struct {
	Type     string
	Size     string
	Material string
	LengthFt float64
}

func (PipeSegment) RecordKind() RecordKind { return KindPipeSegment }

// Fixture is a plumbing fixture (sink, toilet, water heater, ...).
type Fixture struct {
	Type        string
	Description string
	Quantity    float64
	Connections int
}

func (Fixture) RecordKind() RecordKind { return KindFixture }

// Valve is a shutoff, check, or mixing valve of one size.
type Valve struct {
	Type     string
	Size     string
	Quantity float64
}

func (Valve) RecordKind() RecordKind { return KindValve }

// WallSection is a run of wall with geometry used by framing and sheathing.
type WallSection struct {
	Name         string
	TypeCode     string
	LengthFt     float64
	HeightFt     float64
	OpeningCount int
}

func (WallSection) RecordKind() RecordKind { return KindWallSection }

// CeilingSection is a ceiling area used by the acoustical trade.
type CeilingSection struct {
	Name     string
	TypeCode string
	AreaSqFt float64
}

func (CeilingSection) RecordKind() RecordKind { return KindCeilingSection }

// DuctSegment is a run of duct of one size.
type DuctSegment struct {
	Type     string
	Size     string
	LengthFt float64
}

func (DuctSegment) RecordKind() RecordKind { return KindDuctSegment }

// Equipment is a mechanical unit (RTU, diffuser, exhaust fan, ...).
type Equipment struct {
	Type        string
	Description string
	Quantity    float64
}

func (Equipment) RecordKind() RecordKind { return KindEquipment }

// TrimRun is a length of finish carpentry trim of one profile.
type TrimRun struct {
	Type     string
	Material string
	LengthFt float64
}

func (TrimRun) RecordKind() RecordKind { return KindTrimRun }

// Hardware is a counted finish hardware item (hinges, pulls, closers, ...).
type Hardware struct {
	Type        string
	Description string
	Quantity    float64
}

func (Hardware) RecordKind() RecordKind { return KindHardware }

// UnknownRecord holds a row no variant could absorb. Kept for audit notes,
// never priced.
type UnknownRecord struct {
	Raw string
}

func (UnknownRecord) RecordKind() RecordKind { return KindUnknown }

// CatalogEntry describes one material in a trade catalog, either built-in,
// overridden from the price book, or synthesized by the classifier from a
// drawing legend.
type CatalogEntry struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	UnitSize    float64 `json:"unit_size"` // coverage per unit, in Unit terms (e.g. sq ft per sheet)
	Unit        string  `json:"unit"`
	UnitCost    float64 `json:"unit_cost"`
	LaborRate   float64 `json:"labor_rate"` // labor hours per unit
}

// FastenerType selects the fastener coverage rule for framing.
type FastenerType string

const (
	FastenerScrews FastenerType = "screws"
	FastenerNails  FastenerType = "nails"
)

// Options is the per-run configuration record. Zero values are filled by
// DefaultOptions; the pipeline never mutates it.
type Options struct {
	Trade                 domain.Trade
	AnalysisType          domain.AnalysisType
	WasteFactorPct        float64
	StudSpacingIn         float64
	FastenerType          FastenerType
	IncludeGridSystem     bool
	ContingencyRate       float64
	GeneralConditionsRate float64
	OverheadProfitRate    float64
	LaborRatePerHour      float64
}

// defaultWasteFactors holds the per-trade default waste percentage.
var defaultWasteFactors = map[domain.Trade]float64{
	domain.TradePlumbing:   10,
	domain.TradeSheathing:  15,
	domain.TradeAcoustical: 10,
	domain.TradeFraming:    10,
	domain.TradeMechanical: 10,
	domain.TradeCarpentry:  15,
}

// DefaultOptions returns the standard options for a trade.
func DefaultOptions(trade domain.Trade) Options {
	return Options{
		Trade:            trade,
		AnalysisType:     domain.AnalysisTypeFull,
		WasteFactorPct:   defaultWasteFactors[trade],
		StudSpacingIn:    16,
		FastenerType:     FastenerScrews,
		ContingencyRate:  0.10,
		LaborRatePerHour: 85,
	}
}

// normalized returns a copy of o with zero values replaced by defaults.
func (o Options) normalized() Options {
	def := DefaultOptions(o.Trade)
	if o.AnalysisType == "" {
		o.AnalysisType = def.AnalysisType
	}
	if o.WasteFactorPct == 0 {
		o.WasteFactorPct = def.WasteFactorPct
	}
	if o.StudSpacingIn == 0 {
		o.StudSpacingIn = def.StudSpacingIn
	}
	if o.FastenerType == "" {
		o.FastenerType = def.FastenerType
	}
	if o.ContingencyRate == 0 {
		o.ContingencyRate = def.ContingencyRate
	}
	if o.LaborRatePerHour == 0 {
		o.LaborRatePerHour = def.LaborRatePerHour
	}
	return o
}

// NoteKind classifies a diagnostic note. Notes are informational; none of
// them is an error.
type NoteKind string

const (
	NoteExtractionEmpty         NoteKind = "extraction_empty"
	NoteClassificationAmbiguous NoteKind = "classification_ambiguous"
	NotePricingLookupMiss       NoteKind = "pricing_lookup_miss"
	NoteMalformedNumericToken   NoteKind = "malformed_numeric_token"
)

// Note records a domain irregularity that was absorbed by a fallback tier.
type Note struct {
	Kind     NoteKind `json:"kind"`
	Category string   `json:"category,omitempty"`
	Message  string   `json:"message"`
}

// PricedItem is a takeoff line item with its extended price.
// TotalPrice == Quantity * UnitPrice.
type PricedItem struct {
	Category    string  `json:"category"`
	Code        string  `json:"code,omitempty"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// CategoryTotal groups priced items under one category with their subtotal.
type CategoryTotal struct {
	Category string       `json:"category"`
	Items    []PricedItem `json:"items"`
	Subtotal float64      `json:"subtotal"`
}

// GrandTotals holds the cost roll-up for one analysis.
type GrandTotals struct {
	Materials         float64 `json:"materials"`
	Labor             float64 `json:"labor"`
	Equipment         float64 `json:"equipment"`
	Subtotal          float64 `json:"subtotal"`
	Contingency       float64 `json:"contingency"`
	GeneralConditions float64 `json:"general_conditions"`
	OverheadProfit    float64 `json:"overhead_profit"`
	Total             float64 `json:"total"`
}

// SectionSummary echoes the geometry the quantities were computed from.
type SectionSummary struct {
	Name         string  `json:"name"`
	TypeCode     string  `json:"type_code,omitempty"`
	LengthFt     float64 `json:"length_ft,omitempty"`
	HeightFt     float64 `json:"height_ft,omitempty"`
	AreaSqFt     float64 `json:"area_sq_ft,omitempty"`
	OpeningCount int     `json:"opening_count,omitempty"`
}

// AnalysisResult is the sole output artifact of the pipeline. It is fully
// determined by the raw analysis text and the options.
type AnalysisResult struct {
	Trade      domain.Trade        `json:"trade"`
	Sections   []SectionSummary    `json:"sections"`
	Categories []CategoryTotal     `json:"categories"`
	Totals     GrandTotals         `json:"totals"`
	LaborHours float64             `json:"labor_hours"`
	Legend     []CatalogEntry      `json:"legend,omitempty"`
	Notes      []Note              `json:"notes"`
	Options    AnalysisOptionsEcho `json:"options"`
}

// AnalysisOptionsEcho records the effective options for audit.
type AnalysisOptionsEcho struct {
	Trade             domain.Trade        `json:"trade"`
	AnalysisType      domain.AnalysisType `json:"analysis_type"`
	WasteFactorPct    float64             `json:"waste_factor_pct"`
	StudSpacingIn     float64             `json:"stud_spacing_in,omitempty"`
	IncludeGridSystem bool                `json:"include_grid_system,omitempty"`
	ContingencyRate   float64             `json:"contingency_rate"`
}
