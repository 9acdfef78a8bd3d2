package takeoff

import (
	"fmt"
	"regexp"
	"strings"

	"takeoffs/internal/domain"
)

// Extraction is the extractor's output for one raw analysis text.
type Extraction struct {
	Records []Record
	Legend  []CatalogEntry
	Notes   []Note
}

// rowBuilder converts one regex match into a Record. Returning false drops
// the row without failing the strategy.
type rowBuilder func(m []string, notes *noteList) (Record, bool)

// strategy is one pure text -> records attempt. Strategies are tried in
// slice order per category; the first one that yields at least one
// non-header row wins and later strategies for that category are skipped.
type strategy struct {
	name    string
	pattern *regexp.Regexp
	build   rowBuilder
}

// category is a named group of records (pipes, walls, fixtures, ...) with
// its ordered strategy chain.
type category struct {
	name       string
	strategies []strategy
}

// noteList collects diagnostic notes during extraction.
type noteList struct {
	notes []Note
}

func (n *noteList) add(kind NoteKind, category, format string, args ...interface{}) {
	n.notes = append(n.notes, Note{
		Kind:     kind,
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	})
}

// headerKeywords are first-column tokens that mark a header row rather than
// a data row. A strategy only wins when it produces at least one row whose
// first captured token is not one of these.
var headerKeywords = map[string]bool{
	"type": true, "description": true, "quantity": true, "qty": true,
	"size": true, "length": true, "material": true, "item": true,
	"name": true, "area": true, "count": true, "unit": true,
	"openings": true, "height": true, "no.": true, "#": true,
}

// Extractor scans raw analysis text and produces candidate records per
// trade schema. It never fails: malformed input yields an empty extraction
// with diagnostic notes.
type Extractor struct {
	categories map[domain.Trade][]category
}

// NewExtractor returns an Extractor with the built-in per-trade strategies.
func NewExtractor() *Extractor {
	return &Extractor{categories: tradeCategories()}
}

// Extract runs the legend patterns once, then the category strategy chains,
// first-success-wins per category. Identical text and trade always produce
// an identical record list.
func (x *Extractor) Extract(text string, trade domain.Trade) *Extraction {
	notes := &noteList{}
	out := &Extraction{
		Legend: parseLegend(text),
	}

	for _, cat := range x.categories[trade] {
		records := x.extractCategory(text, cat, notes)
		if len(records) == 0 {
			notes.add(NoteExtractionEmpty, cat.name, "no %s found in analysis text", cat.name)
			continue
		}
		out.Records = append(out.Records, records...)
	}

	out.Notes = notes.notes
	return out
}

func (x *Extractor) extractCategory(text string, cat category, notes *noteList) []Record {
	for _, s := range cat.strategies {
		matches := s.pattern.FindAllStringSubmatch(text, -1)
		if len(matches) == 0 {
			continue
		}

		var records []Record
		accepted := false
		for _, m := range matches {
			if isHeaderRow(m) {
				continue
			}
			noteCount := len(notes.notes)
			rec, ok := s.build(m, notes)
			if !ok {
				// a malformed row (it left a note) counts as a hit for
				// this strategy; a row rejected by a shape guard does
				// not, so later strategies still get a chance
				if len(notes.notes) > noteCount {
					accepted = true
				}
				continue
			}
			accepted = true
			records = append(records, rec)
		}

		// A strategy that matched only header rows or rows belonging to
		// another category did not succeed; a strategy whose data rows
		// were all dropped as malformed did.
		if accepted {
			return records
		}
	}
	return nil
}

// isHeaderRow reports whether the first captured token of a match is a
// known header keyword or a markdown separator.
func isHeaderRow(m []string) bool {
	var first string
	for _, g := range m[1:] {
		if strings.TrimSpace(g) != "" {
			first = strings.TrimSpace(g)
			break
		}
	}
	if first == "" {
		return false
	}
	token := strings.ToLower(strings.Fields(first)[0])
	if headerKeywords[token] {
		return true
	}
	// markdown table separators: |---|:---|
	return strings.Trim(first, "-: ") == ""
}
