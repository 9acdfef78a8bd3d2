package takeoff

import (
	"regexp"
	"strconv"
	"strings"
)

var trailingUnitRe = regexp.MustCompile(`(?i)\s*(?:linear\s+)?(?:feet|ft\.?|lf|sq\.?\s*ft\.?|sf|ea\.?|pcs?)\s*$`)

// parseNumber parses a numeric token that may carry comma separators or a
// trailing unit word. A token that fails to parse is dropped, not fatal:
// the caller gets false and a malformed-numeric note is recorded.
func parseNumber(raw, category string, notes *noteList) (float64, bool) {
	s := strings.TrimSpace(raw)
	s = trailingUnitRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// only note tokens that were plausibly numeric to begin with
		if strings.ContainsAny(s, "0123456789") {
			notes.add(NoteMalformedNumericToken, category, "dropped unparseable numeric token %q", strings.TrimSpace(raw))
		}
		return 0, false
	}
	return v, true
}

// parseCount is parseNumber for whole counts; missing tokens default to zero
// without a note.
func parseCount(raw, category string, notes *noteList) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, true
	}
	v, ok := parseNumber(s, category, notes)
	if !ok {
		return 0, false
	}
	return int(v), true
}

var (
	mixedFractionRe = regexp.MustCompile(`^(\d+)-(\d+)/(\d+)$`)
	fractionRe      = regexp.MustCompile(`^(\d+)/(\d+)$`)
	dimensionRe     = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*[x×]\s*(\d+(?:\.\d+)?)$`)
)

// parseSizeValue converts a size token to a comparable numeric value:
// `3/4"` -> 0.75, `3-5/8"` -> 3.625, `2x4` -> 8 (nominal area), `6"` -> 6.
// Used by the pricing engine's nearest-size tier and by the classifier.
func parseSizeValue(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "”", `"`)
	s = strings.TrimSuffix(s, `"`)
	s = strings.TrimSuffix(s, "in")
	s = strings.TrimSuffix(s, "inch")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if m := mixedFractionRe.FindStringSubmatch(s); m != nil {
		whole, _ := strconv.ParseFloat(m[1], 64)
		num, _ := strconv.ParseFloat(m[2], 64)
		den, _ := strconv.ParseFloat(m[3], 64)
		if den == 0 {
			return 0, false
		}
		return whole + num/den, true
	}
	if m := fractionRe.FindStringSubmatch(s); m != nil {
		num, _ := strconv.ParseFloat(m[1], 64)
		den, _ := strconv.ParseFloat(m[2], 64)
		if den == 0 {
			return 0, false
		}
		return num / den, true
	}
	if m := dimensionRe.FindStringSubmatch(s); m != nil {
		w, _ := strconv.ParseFloat(m[1], 64)
		h, _ := strconv.ParseFloat(m[2], 64)
		return w * h, true
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// normalizeSize canonicalizes a size token for table lookups.
func normalizeSize(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "”", `"`)
	s = strings.ReplaceAll(s, " ", "")
	return s
}
