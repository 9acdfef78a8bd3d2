package analyzer

import "takeoffs/internal/domain"

// BuildTakeoffPrompt returns the analysis prompt for a trade. The requested
// table shapes line up with the extraction strategies, but the pipeline
// tolerates bullet and sentence formats when the model drifts.
func BuildTakeoffPrompt(trade domain.Trade) string {
	header := `You are a construction estimator's assistant. Analyze the provided blueprint sheet and perform a ` + string(trade) + ` takeoff.

IMPORTANT INSTRUCTIONS:
- Measure or estimate every relevant element on the sheet. Do not skip, summarize, or omit items.
- If the sheet has a legend mapping type codes to materials, reproduce it as lines of the form "CODE - description".
- Use decimal feet for lengths and heights, square feet for areas.
- Report plain markdown tables with one row per element, no merged cells.
`

	switch trade {
	case domain.TradePlumbing:
		return header + `
Report three tables:

Pipe runs:
| Type | Length | Size | Material |
(e.g. | Domestic cold water | 240 LF | 3/4" | copper |)

Fixtures:
| Fixture | Description | Quantity |

Valves:
| Valve type | Size | Quantity |`
	case domain.TradeFraming, domain.TradeSheathing:
		return header + `
Report one table of wall sections:

| Wall | Type | Length | Height | Openings |
(e.g. | Wall A | MS4 | 120 ft | 9 ft | 3 |)

Openings are doors and windows within the section. Use the legend's type code
for each wall when one is defined.`
	case domain.TradeAcoustical:
		return header + `
Report one table of ceiling areas:

| Room | Type | Area |
(e.g. | Open office | ACP | 1200 sq ft |)

Use the reflected ceiling plan's tile type codes when defined.`
	case domain.TradeMechanical:
		return header + `
Report two tables:

Duct runs:
| Type | Size | Length |
(e.g. | Rectangular supply | 24x12 | 85 LF |)

Equipment:
| Equipment | Description | Quantity |`
	case domain.TradeCarpentry:
		return header + `
Report two tables:

Trim runs:
| Trim type | Material | Length |
(e.g. | Base | MDF | 340 LF |)

Hardware:
| Item | Description | Quantity |`
	}
	return header
}
