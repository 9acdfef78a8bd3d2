package takeoff

import (
	"regexp"
	"strings"

	"takeoffs/internal/domain"
)

// MatchTier records which tier resolved a classification. Tiers below
// keyword specificity are surfaced as audit notes by the pipeline.
type MatchTier string

const (
	MatchExact       MatchTier = "exact"
	MatchKeyword     MatchTier = "keyword"
	MatchSizePattern MatchTier = "size_pattern"
	MatchDefault     MatchTier = "default"
)

var sizeTokenRe = regexp.MustCompile(`\d+\s*[x×]\s*\d+|\d+-\d+/\d+\s*"|\d+/\d+\s*"|\d+(?:\.\d+)?\s*"`)

// Classify infers a standardized catalog entry from a raw type code and a
// free-text description. It is a pure function with no I/O and no state,
// and it never fails: something usable always comes back.
//
// Resolution order: exact code match, keyword containment in fixed
// specificity order (first match wins, no scoring), size-pattern extraction
// from the description, then the trade's hard-coded default.
func Classify(rawCode, rawDescription string, trade domain.Trade, cat *Catalog) (CatalogEntry, MatchTier) {
	code := strings.ToUpper(strings.TrimSpace(rawCode))

	if code != "" {
		if e, ok := cat.Entry(trade, code); ok {
			return e, MatchExact
		}
	}

	desc := strings.ToLower(rawDescription)
	for _, rule := range cat.KeywordRules(trade) {
		matched := true
		for _, kw := range rule.Keywords {
			if !strings.Contains(desc, kw) {
				matched = false
				break
			}
		}
		if matched {
			e := rule.Entry
			if code != "" {
				e.Code = code
			}
			return e, MatchKeyword
		}
	}

	if token := sizeTokenRe.FindString(rawDescription); token != "" {
		if v, ok := parseSizeValue(normalizeSize(token)); ok {
			e := cat.TradeDefault(trade)
			if code != "" {
				e.Code = code
			}
			if s := strings.TrimSpace(rawDescription); s != "" {
				e.Description = s
			}
			// dimension tokens (2x4, 24x24) give coverage; thickness
			// fractions keep the default unit size
			if dimensionRe.MatchString(normalizeSize(token)) {
				e.UnitSize = v
			}
			return e, MatchSizePattern
		}
	}

	e := cat.TradeDefault(trade)
	if code != "" {
		e.Code = code
	}
	return e, MatchDefault
}
