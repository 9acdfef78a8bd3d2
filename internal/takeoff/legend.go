package takeoff

import (
	"regexp"
	"strings"
)

// Legend rows map a drawing's type codes to descriptions, e.g.
// "ACP - Acoustical Ceiling Panel, 2x2" or a two-column table row.
// They are parsed once up front; when absent, classification falls back to
// the trade defaults.
var (
	legendTableRe = regexp.MustCompile(`(?m)^\s*\|\s*([A-Z][A-Z0-9]{1,5}(?:-[A-Z0-9]{1,4})?)\s*\|\s*([^|\n]{3,80}?)\s*\|\s*$`)
	legendLineRe  = regexp.MustCompile(`(?m)^\s*(?:[-*•]\s*)?([A-Z][A-Z0-9]{1,5}(?:-[A-Z0-9]{1,4})?)\s*[-–=:]\s+([A-Za-z0-9][^\n|]{2,79})$`)
	legendCostRe  = regexp.MustCompile(`\$\s*([0-9][0-9,.]*)`)
)

// legendStopCodes are all-caps tokens that look like legend codes but are
// drawing annotations or table headers.
var legendStopCodes = map[string]bool{
	"NOTE": true, "NOTES": true, "NTS": true, "TYP": true, "AFF": true,
	"OC": true, "TYPE": true, "SIZE": true, "QTY": true, "TOTAL": true,
	"LEGEND": true, "CODE": true, "ITEM": true, "LF": true, "SF": true,
}

// parseLegend extracts material-code rows. Codes are unique within one run;
// the first occurrence wins. Order is the encounter order, so identical
// input always yields an identical legend.
func parseLegend(text string) []CatalogEntry {
	seen := make(map[string]bool)
	var out []CatalogEntry

	for _, re := range []*regexp.Regexp{legendTableRe, legendLineRe} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			code := m[1]
			desc := strings.TrimSpace(m[2])
			if legendStopCodes[code] || seen[code] {
				continue
			}
			if !strings.ContainsAny(strings.ToLower(desc), "abcdefghijklmnopqrstuvwxyz") {
				continue
			}

			entry := CatalogEntry{Code: code, Description: desc, UnitSize: 1, Unit: "ea"}
			if cm := legendCostRe.FindStringSubmatch(desc); cm != nil {
				if cost, ok := parseSizeValue(strings.ReplaceAll(cm[1], ",", "")); ok {
					entry.UnitCost = cost
				}
			}

			seen[code] = true
			out = append(out, entry)
		}
	}
	return out
}
