package takeoff

import (
	"regexp"
	"strings"

	"takeoffs/internal/domain"
)

// Markdown-style table rows by column count. Anchored to whole lines so a
// five-column row never partially matches the four-column pattern.
var (
	tableRow3 = regexp.MustCompile(`(?m)^\s*\|\s*([^|\n]*?)\s*\|\s*([^|\n]*?)\s*\|\s*([^|\n]*?)\s*\|\s*$`)
	tableRow4 = regexp.MustCompile(`(?m)^\s*\|\s*([^|\n]*?)\s*\|\s*([^|\n]*?)\s*\|\s*([^|\n]*?)\s*\|\s*([^|\n]*?)\s*\|\s*$`)
	tableRow5 = regexp.MustCompile(`(?m)^\s*\|\s*([^|\n]*?)\s*\|\s*([^|\n]*?)\s*\|\s*([^|\n]*?)\s*\|\s*([^|\n]*?)\s*\|\s*([^|\n]*?)\s*\|\s*$`)
)

var (
	pipeBulletRe   = regexp.MustCompile(`(?mi)^\s*[-*•]\s*([a-z][^:\n]*?):\s*([0-9][0-9,.]*)\s*(?:linear\s+)?(?:feet|ft\.?|lf)\s*(?:of\s+)?([0-9][0-9/\-]*\s*(?:"|”|in\.?|inch))?\s*([a-z][a-z \-]*)?\s*$`)
	pipeSentenceRe = regexp.MustCompile(`(?i)([0-9][0-9,.]*)\s*(?:linear\s+)?(?:feet|ft\.?|lf)\s+of\s+(?:([0-9][0-9/\-]*\s*(?:"|”|in\.?|inch))\s+)?([a-z][a-z \-]*?)\s+(?:pipe|piping)`)

	fixtureBulletRe   = regexp.MustCompile(`(?mi)^\s*[-*•]\s*([a-z][^:\n]*?(?:sink|lavator|toilet|water closet|urinal|shower|tub|drain|heater|fountain)[^:\n]*):\s*([0-9]+)\s*$`)
	fixtureSentenceRe = regexp.MustCompile(`(?i)\b([0-9]+)\s+([a-z][a-z ]*?(?:sinks?|lavatories|toilets?|water closets?|urinals?|showers?|tubs?|drains?|water heaters?|fountains?))\b`)

	valveBulletRe   = regexp.MustCompile(`(?mi)^\s*[-*•]\s*([a-z][a-z \-]*valves?)(?:\s*[,@]?\s*([0-9][0-9/\-]*\s*(?:"|”)))?\s*:\s*([0-9]+)\s*$`)
	valveSentenceRe = regexp.MustCompile(`(?i)\b([0-9]+)\s+(?:([0-9][0-9/\-]*\s*(?:"|”))\s+)?([a-z][a-z \-]*?)\s+valves?\b`)

	wallBulletRe   = regexp.MustCompile(`(?mi)^\s*[-*•]\s*([a-z0-9][^:\n]*?):\s*([0-9][0-9,.]*)\s*(?:ft|feet|lf|')\s*(?:long)?\s*[x×,]\s*([0-9][0-9,.]*)\s*(?:ft|feet|')\s*(?:high|tall)?(?:[^0-9\n]*([0-9]+)\s*openings?)?[^\n]*$`)
	wallSentenceRe = regexp.MustCompile(`(?i)wall\s+(?:type\s+)?([a-z0-9\-]+)\s+(?:is|runs|measures)\s+([0-9][0-9,.]*)\s*(?:feet|ft\.?)\s*(?:long|in length)?(?:[^.\n]*?([0-9][0-9,.]*)\s*(?:feet|ft\.?)\s*(?:high|tall|ceiling))?`)

	ceilingBulletRe   = regexp.MustCompile(`(?mi)^\s*[-*•]\s*([a-z0-9][^:\n(]*?)\s*(?:\(([A-Z][A-Z0-9\-]*)\))?\s*:\s*([0-9][0-9,.]*)\s*(?:sq\.?\s*ft\.?|sf|square\s+feet)\s*$`)
	ceilingSentenceRe = regexp.MustCompile(`(?i)([0-9][0-9,.]*)\s*(?:sq\.?\s*ft\.?|sf|square\s+feet)\s+of\s+([a-z][a-z0-9 \-]*ceiling[a-z ]*)`)

	ductBulletRe   = regexp.MustCompile(`(?mi)^\s*[-*•]\s*([a-z][^:\n]*?):\s*([0-9][0-9,.]*)\s*(?:linear\s+)?(?:feet|ft\.?|lf)\s*(?:of\s+)?([0-9]+\s*[x×]\s*[0-9]+|[0-9]+\s*(?:"|”))\s*([a-z][a-z ]*)?\s*$`)
	ductSentenceRe = regexp.MustCompile(`(?i)([0-9][0-9,.]*)\s*(?:linear\s+)?(?:feet|ft\.?|lf)\s+of\s+([0-9]+\s*[x×]\s*[0-9]+|[0-9]+\s*(?:"|”))\s*([a-z][a-z ]*?)\s+duct(?:work)?`)

	equipmentBulletRe   = regexp.MustCompile(`(?mi)^\s*[-*•]\s*([a-z][^:\n]*?(?:unit|fan|diffuser|grille|louver|vav|ahu|rtu)[^:\n]*):\s*([0-9]+)\s*$`)
	equipmentSentenceRe = regexp.MustCompile(`(?i)\b([0-9]+)\s+([a-z][a-z \-]*?(?:rooftop units?|exhaust fans?|diffusers?|grilles?|vav boxes?|air handlers?))\b`)

	trimBulletRe   = regexp.MustCompile(`(?mi)^\s*[-*•]\s*([a-z][^:\n]*?):\s*([0-9][0-9,.]*)\s*(?:linear\s+)?(?:feet|ft\.?|lf)\s*(?:of\s+)?([a-z][a-z ]*)?\s*$`)
	trimSentenceRe = regexp.MustCompile(`(?i)([0-9][0-9,.]*)\s*(?:linear\s+)?(?:feet|ft\.?|lf)\s+of\s+([a-z][a-z ]+?)\s+(?:trim|molding|casing)`)

	hardwareBulletRe   = regexp.MustCompile(`(?mi)^\s*[-*•]\s*([a-z][^:\n]*?(?:hinge|pull|knob|closer|stop|bracket|latch|lockset)[^:\n]*):\s*([0-9]+)\s*$`)
	hardwareSentenceRe = regexp.MustCompile(`(?i)\b([0-9]+)\s+([a-z][a-z ]*?(?:hinges?|pulls?|knobs?|closers?|stops?|brackets?|latches|locksets?))\b`)
)

// Cell shapes used to tell apart three-column tables that would otherwise
// collide: duct rows carry a dimension or diameter in the size cell and a
// length unit in the last cell, hardware rows name a hardware item.
var (
	ductSizeCellRe   = regexp.MustCompile(`(?i)^[0-9]+\s*[x×]\s*[0-9]+$|^[0-9]+(?:\.[0-9]+)?\s*(?:"|”|in\.?|inch(?:es)?)$`)
	lengthUnitCellRe = regexp.MustCompile(`(?i)[0-9]\s*(?:linear\s+feet|feet|ft\.?|lf)\s*$`)
	hardwareItemRe   = regexp.MustCompile(`(?i)hinge|pull|knob|closer|stop|bracket|latch|lockset`)
)

func tradeCategories() map[domain.Trade][]category {
	return map[domain.Trade][]category{
		domain.TradePlumbing:   {pipeCategory(), fixtureCategory(), valveCategory()},
		domain.TradeFraming:    {wallCategory()},
		domain.TradeSheathing:  {wallCategory()},
		domain.TradeAcoustical: {ceilingCategory()},
		domain.TradeMechanical: {ductCategory(), equipmentCategory()},
		domain.TradeCarpentry:  {trimCategory(), hardwareCategory()},
	}
}

func pipeCategory() category {
	return category{
		name: "pipes",
		strategies: []strategy{
			{
				name:    "tabular",
				pattern: tableRow4,
				// column order: type, length, size, material
				build: func(m []string, notes *noteList) (Record, bool) {
					length, ok := parseNumber(m[2], "pipes", notes)
					if !ok {
						return nil, false
					}
					return PipeSegment{
						Type:     strings.TrimSpace(m[1]),
						Size:     normalizeSize(m[3]),
						Material: strings.TrimSpace(m[4]),
						LengthFt: length,
					}, true
				},
			},
			{
				name:    "bulleted",
				pattern: pipeBulletRe,
				build: func(m []string, notes *noteList) (Record, bool) {
					length, ok := parseNumber(m[2], "pipes", notes)
					if !ok {
						return nil, false
					}
					return PipeSegment{
						Type:     strings.TrimSpace(m[1]),
						Size:     normalizeSize(m[3]),
						Material: strings.TrimSpace(m[4]),
						LengthFt: length,
					}, true
				},
			},
			{
				name:    "sentence",
				pattern: pipeSentenceRe,
				build: func(m []string, notes *noteList) (Record, bool) {
					length, ok := parseNumber(m[1], "pipes", notes)
					if !ok {
						return nil, false
					}
					return PipeSegment{
						Size:     normalizeSize(m[2]),
						Material: strings.TrimSpace(m[3]),
						LengthFt: length,
					}, true
				},
			},
		},
	}
}

func fixtureCategory() category {
	return category{
		name: "fixtures",
		strategies: []strategy{
			{
				name:    "tabular",
				pattern: tableRow3,
				build: func(m []string, notes *noteList) (Record, bool) {
					// valve tables share the three-column shape
					if strings.Contains(strings.ToLower(m[1]), "valve") {
						return nil, false
					}
					qty, ok := parseNumber(m[3], "fixtures", notes)
					if !ok {
						return nil, false
					}
					return Fixture{
						Type:        strings.TrimSpace(m[1]),
						Description: strings.TrimSpace(m[2]),
						Quantity:    qty,
					}, true
				},
			},
			{
				name:    "bulleted",
				pattern: fixtureBulletRe,
				build: func(m []string, notes *noteList) (Record, bool) {
					qty, ok := parseNumber(m[2], "fixtures", notes)
					if !ok {
						return nil, false
					}
					return Fixture{Description: strings.TrimSpace(m[1]), Quantity: qty}, true
				},
			},
			{
				name:    "sentence",
				pattern: fixtureSentenceRe,
				build: func(m []string, notes *noteList) (Record, bool) {
					qty, ok := parseNumber(m[1], "fixtures", notes)
					if !ok {
						return nil, false
					}
					return Fixture{Description: strings.TrimSpace(m[2]), Quantity: qty}, true
				},
			},
		},
	}
}

func valveCategory() category {
	return category{
		name: "valves",
		strategies: []strategy{
			{
				name:    "tabular",
				pattern: tableRow3,
				build: func(m []string, notes *noteList) (Record, bool) {
					if !strings.Contains(strings.ToLower(m[1]), "valve") {
						return nil, false
					}
					qty, ok := parseNumber(m[3], "valves", notes)
					if !ok {
						return nil, false
					}
					return Valve{
						Type:     strings.TrimSpace(m[1]),
						Size:     normalizeSize(m[2]),
						Quantity: qty,
					}, true
				},
			},
			{
				name:    "bulleted",
				pattern: valveBulletRe,
				build: func(m []string, notes *noteList) (Record, bool) {
					qty, ok := parseNumber(m[3], "valves", notes)
					if !ok {
						return nil, false
					}
					return Valve{
						Type:     strings.TrimSpace(m[1]),
						Size:     normalizeSize(m[2]),
						Quantity: qty,
					}, true
				},
			},
			{
				name:    "sentence",
				pattern: valveSentenceRe,
				build: func(m []string, notes *noteList) (Record, bool) {
					qty, ok := parseNumber(m[1], "valves", notes)
					if !ok {
						return nil, false
					}
					typ := strings.TrimSpace(m[3])
					if typ != "" && !strings.Contains(typ, "valve") {
						typ += " valve"
					}
					return Valve{Type: typ, Size: normalizeSize(m[2]), Quantity: qty}, true
				},
			},
		},
	}
}

func wallCategory() category {
	return category{
		name: "walls",
		strategies: []strategy{
			{
				name:    "tabular",
				pattern: tableRow5,
				build: func(m []string, notes *noteList) (Record, bool) {
					length, ok := parseNumber(m[3], "walls", notes)
					if !ok {
						return nil, false
					}
					height, ok := parseNumber(m[4], "walls", notes)
					if !ok {
						return nil, false
					}
					openings, ok := parseCount(m[5], "walls", notes)
					if !ok {
						return nil, false
					}
					return WallSection{
						Name:         strings.TrimSpace(m[1]),
						TypeCode:     strings.TrimSpace(m[2]),
						LengthFt:     length,
						HeightFt:     height,
						OpeningCount: openings,
					}, true
				},
			},
			{
				name:    "bulleted",
				pattern: wallBulletRe,
				build: func(m []string, notes *noteList) (Record, bool) {
					length, ok := parseNumber(m[2], "walls", notes)
					if !ok {
						return nil, false
					}
					height, ok := parseNumber(m[3], "walls", notes)
					if !ok {
						return nil, false
					}
					openings, ok := parseCount(m[4], "walls", notes)
					if !ok {
						return nil, false
					}
					return WallSection{
						Name:         strings.TrimSpace(m[1]),
						LengthFt:     length,
						HeightFt:     height,
						OpeningCount: openings,
					}, true
				},
			},
			{
				name:    "sentence",
				pattern: wallSentenceRe,
				build: func(m []string, notes *noteList) (Record, bool) {
					length, ok := parseNumber(m[2], "walls", notes)
					if !ok {
						return nil, false
					}
					height := 8.0 // standard wall height when the text omits it
					if strings.TrimSpace(m[3]) != "" {
						if h, ok := parseNumber(m[3], "walls", notes); ok {
							height = h
						}
					}
					return WallSection{
						Name:     "Wall " + strings.TrimSpace(m[1]),
						LengthFt: length,
						HeightFt: height,
					}, true
				},
			},
		},
	}
}

func ceilingCategory() category {
	return category{
		name: "ceilings",
		strategies: []strategy{
			{
				name:    "tabular",
				pattern: tableRow3,
				build: func(m []string, notes *noteList) (Record, bool) {
					area, ok := parseNumber(m[3], "ceilings", notes)
					if !ok {
						return nil, false
					}
					return CeilingSection{
						Name:     strings.TrimSpace(m[1]),
						TypeCode: strings.TrimSpace(m[2]),
						AreaSqFt: area,
					}, true
				},
			},
			{
				name:    "bulleted",
				pattern: ceilingBulletRe,
				build: func(m []string, notes *noteList) (Record, bool) {
					area, ok := parseNumber(m[3], "ceilings", notes)
					if !ok {
						return nil, false
					}
					return CeilingSection{
						Name:     strings.TrimSpace(m[1]),
						TypeCode: strings.TrimSpace(m[2]),
						AreaSqFt: area,
					}, true
				},
			},
			{
				name:    "sentence",
				pattern: ceilingSentenceRe,
				build: func(m []string, notes *noteList) (Record, bool) {
					area, ok := parseNumber(m[1], "ceilings", notes)
					if !ok {
						return nil, false
					}
					return CeilingSection{Name: strings.TrimSpace(m[2]), AreaSqFt: area}, true
				},
			},
		},
	}
}

func ductCategory() category {
	return category{
		name: "ducts",
		strategies: []strategy{
			{
				// column order: type, size, length
				name:    "tabular",
				pattern: tableRow3,
				build: func(m []string, notes *noteList) (Record, bool) {
					// equipment tables share the three-column shape;
					// only rows with a dimension or diameter size cell
					// belong here
					if !ductSizeCellRe.MatchString(m[2]) {
						return nil, false
					}
					length, ok := parseNumber(m[3], "ducts", notes)
					if !ok {
						return nil, false
					}
					return DuctSegment{
						Type:     strings.TrimSpace(m[1]),
						Size:     normalizeSize(m[2]),
						LengthFt: length,
					}, true
				},
			},
			{
				// four-column variant with a trailing shape/material cell
				name:    "tabular-wide",
				pattern: tableRow4,
				build: func(m []string, notes *noteList) (Record, bool) {
					length, ok := parseNumber(m[3], "ducts", notes)
					if !ok {
						return nil, false
					}
					typ := strings.TrimSpace(m[1])
					if strings.TrimSpace(m[4]) != "" {
						typ = strings.TrimSpace(m[4])
					}
					return DuctSegment{
						Type:     typ,
						Size:     normalizeSize(m[2]),
						LengthFt: length,
					}, true
				},
			},
			{
				name:    "bulleted",
				pattern: ductBulletRe,
				build: func(m []string, notes *noteList) (Record, bool) {
					length, ok := parseNumber(m[2], "ducts", notes)
					if !ok {
						return nil, false
					}
					typ := strings.TrimSpace(m[4])
					if typ == "" {
						typ = strings.TrimSpace(m[1])
					}
					return DuctSegment{Type: typ, Size: normalizeSize(m[3]), LengthFt: length}, true
				},
			},
			{
				name:    "sentence",
				pattern: ductSentenceRe,
				build: func(m []string, notes *noteList) (Record, bool) {
					length, ok := parseNumber(m[1], "ducts", notes)
					if !ok {
						return nil, false
					}
					return DuctSegment{
						Type:     strings.TrimSpace(m[3]),
						Size:     normalizeSize(m[2]),
						LengthFt: length,
					}, true
				},
			},
		},
	}
}

func equipmentCategory() category {
	return category{
		name: "equipment",
		strategies: []strategy{
			{
				name:    "tabular",
				pattern: tableRow3,
				build: func(m []string, notes *noteList) (Record, bool) {
					// duct tables share the three-column shape: reject
					// rows named as duct, sized like duct, or measured
					// in linear feet
					if strings.Contains(strings.ToLower(m[1]), "duct") ||
						ductSizeCellRe.MatchString(m[2]) ||
						lengthUnitCellRe.MatchString(m[3]) {
						return nil, false
					}
					qty, ok := parseNumber(m[3], "equipment", notes)
					if !ok {
						return nil, false
					}
					return Equipment{
						Type:        strings.TrimSpace(m[1]),
						Description: strings.TrimSpace(m[2]),
						Quantity:    qty,
					}, true
				},
			},
			{
				name:    "bulleted",
				pattern: equipmentBulletRe,
				build: func(m []string, notes *noteList) (Record, bool) {
					qty, ok := parseNumber(m[2], "equipment", notes)
					if !ok {
						return nil, false
					}
					return Equipment{Description: strings.TrimSpace(m[1]), Quantity: qty}, true
				},
			},
			{
				name:    "sentence",
				pattern: equipmentSentenceRe,
				build: func(m []string, notes *noteList) (Record, bool) {
					qty, ok := parseNumber(m[1], "equipment", notes)
					if !ok {
						return nil, false
					}
					return Equipment{Description: strings.TrimSpace(m[2]), Quantity: qty}, true
				},
			},
		},
	}
}

func trimCategory() category {
	return category{
		name: "trim",
		strategies: []strategy{
			{
				// column order: trim type, material, length
				name:    "tabular",
				pattern: tableRow3,
				build: func(m []string, notes *noteList) (Record, bool) {
					// hardware tables share the three-column shape
					if hardwareItemRe.MatchString(m[1]) {
						return nil, false
					}
					length, ok := parseNumber(m[3], "trim", notes)
					if !ok {
						return nil, false
					}
					return TrimRun{
						Type:     strings.TrimSpace(m[1]),
						Material: strings.TrimSpace(m[2]),
						LengthFt: length,
					}, true
				},
			},
			{
				name:    "bulleted",
				pattern: trimBulletRe,
				build: func(m []string, notes *noteList) (Record, bool) {
					length, ok := parseNumber(m[2], "trim", notes)
					if !ok {
						return nil, false
					}
					return TrimRun{
						Type:     strings.TrimSpace(m[1]),
						Material: strings.TrimSpace(m[3]),
						LengthFt: length,
					}, true
				},
			},
			{
				name:    "sentence",
				pattern: trimSentenceRe,
				build: func(m []string, notes *noteList) (Record, bool) {
					length, ok := parseNumber(m[1], "trim", notes)
					if !ok {
						return nil, false
					}
					return TrimRun{Type: strings.TrimSpace(m[2]), LengthFt: length}, true
				},
			},
		},
	}
}

func hardwareCategory() category {
	return category{
		name: "hardware",
		strategies: []strategy{
			{
				// column order: item, description, quantity
				name:    "tabular",
				pattern: tableRow3,
				build: func(m []string, notes *noteList) (Record, bool) {
					// trim tables share the three-column shape
					if !hardwareItemRe.MatchString(m[1]) {
						return nil, false
					}
					qty, ok := parseNumber(m[3], "hardware", notes)
					if !ok {
						return nil, false
					}
					return Hardware{
						Type:        strings.TrimSpace(m[1]),
						Description: strings.TrimSpace(m[2]),
						Quantity:    qty,
					}, true
				},
			},
			{
				name:    "bulleted",
				pattern: hardwareBulletRe,
				build: func(m []string, notes *noteList) (Record, bool) {
					qty, ok := parseNumber(m[2], "hardware", notes)
					if !ok {
						return nil, false
					}
					return Hardware{Description: strings.TrimSpace(m[1]), Quantity: qty}, true
				},
			},
			{
				name:    "sentence",
				pattern: hardwareSentenceRe,
				build: func(m []string, notes *noteList) (Record, bool) {
					qty, ok := parseNumber(m[1], "hardware", notes)
					if !ok {
						return nil, false
					}
					return Hardware{Description: strings.TrimSpace(m[2]), Quantity: qty}, true
				},
			},
		},
	}
}
