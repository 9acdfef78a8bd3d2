package takeoff

import (
	"fmt"
	"math"

	"takeoffs/internal/domain"
)

// LineItem is a computed takeoff quantity before pricing. UnitCost > 0 means
// the cost is already resolved (catalog entry or legend); otherwise the
// pricing engine resolves it from Material, Size, and ItemType.
type LineItem struct {
	Category    string
	Code        string
	Description string
	Quantity    float64
	Unit        string
	UnitCost    float64
	Material    string
	Size        string
	ItemType    string
	LaborHours  float64
}

// applyWaste adds the waste factor to a unit count. Waste is applied exactly
// once, at the rounded unit level, never to the raw measurement.
func applyWaste(units, wastePct float64) float64 {
	return math.Ceil(units * (1 + wastePct/100))
}

// checkNonNegative rejects negative measurements as contract violations.
// Negative input is a hard error, never clamped.
func checkNonNegative(v float64, field, name string) error {
	if v < 0 {
		return fmt.Errorf("%w: %s %q has %s %v", domain.ErrNegativeQuantity, "section", name, field, v)
	}
	return nil
}

// classifyNote records a low-confidence classification for audit.
func classifyNote(notes *noteList, category, what string, tier MatchTier) {
	if tier == MatchSizePattern || tier == MatchDefault {
		notes.add(NoteClassificationAmbiguous, category, "classified %q by %s match", what, string(tier))
	}
}
