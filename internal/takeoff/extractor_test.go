package takeoff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"takeoffs/internal/domain"
)

func TestExtract_BulletedPipes(t *testing.T) {
	x := NewExtractor()
	text := `Plumbing takeoff from sheet P-101:
- Domestic cold water: 240 LF of 3/4" copper
- Sanitary waste: 120 feet of 4" PVC
`

	ext := x.Extract(text, domain.TradePlumbing)

	var pipes []PipeSegment
	for _, r := range ext.Records {
		if p, ok := r.(PipeSegment); ok {
			pipes = append(pipes, p)
		}
	}
	require.Len(t, pipes, 2)
	assert.Equal(t, "Domestic cold water", pipes[0].Type)
	assert.Equal(t, `3/4"`, pipes[0].Size)
	assert.Equal(t, "copper", pipes[0].Material)
	assert.Equal(t, 240.0, pipes[0].LengthFt)
	assert.Equal(t, `4"`, pipes[1].Size)
	assert.Equal(t, "PVC", pipes[1].Material)
	assert.Equal(t, 120.0, pipes[1].LengthFt)
}

func TestExtract_TabularWalls(t *testing.T) {
	x := NewExtractor()
	text := `| Name   | Type | Length | Height | Openings |
|--------|------|--------|--------|----------|
| Wall A | S4   | 40     | 10     | 2        |
| Wall B | S6   | 25     | 10     |          |
`

	ext := x.Extract(text, domain.TradeFraming)

	require.Len(t, ext.Records, 2)
	a, ok := ext.Records[0].(WallSection)
	require.True(t, ok)
	assert.Equal(t, "Wall A", a.Name)
	assert.Equal(t, "S4", a.TypeCode)
	assert.Equal(t, 40.0, a.LengthFt)
	assert.Equal(t, 10.0, a.HeightFt)
	assert.Equal(t, 2, a.OpeningCount)

	b := ext.Records[1].(WallSection)
	assert.Equal(t, "S6", b.TypeCode)
	assert.Equal(t, 0, b.OpeningCount)
}

func TestExtract_TabularPipes(t *testing.T) {
	x := NewExtractor()
	text := `| Type | Length | Size | Material |
|------|--------|------|----------|
| Domestic cold water | 240 LF | 3/4" | copper |
| Sanitary waste | 120 LF | 4" | PVC |
`

	ext := x.Extract(text, domain.TradePlumbing)

	var pipes []PipeSegment
	for _, r := range ext.Records {
		if p, ok := r.(PipeSegment); ok {
			pipes = append(pipes, p)
		}
	}
	require.Len(t, pipes, 2)
	assert.Equal(t, "Domestic cold water", pipes[0].Type)
	assert.Equal(t, 240.0, pipes[0].LengthFt)
	assert.Equal(t, `3/4"`, pipes[0].Size)
	assert.Equal(t, "copper", pipes[0].Material)
	assert.Equal(t, 120.0, pipes[1].LengthFt)
	assert.Equal(t, `4"`, pipes[1].Size)

	for _, n := range ext.Notes {
		assert.NotEqual(t, NoteMalformedNumericToken, n.Kind)
	}
}

func TestExtract_TabularDuctsStayOutOfEquipment(t *testing.T) {
	x := NewExtractor()
	text := `| Type | Size | Length |
|------|------|--------|
| Rectangular supply | 24x12 | 85 LF |
| Round exhaust | 10" | 40 LF |

| Equipment | Description | Quantity |
| RTU-1 | Rooftop unit, 5 ton | 2 |
`

	ext := x.Extract(text, domain.TradeMechanical)

	var ducts []DuctSegment
	var equip []Equipment
	for _, r := range ext.Records {
		switch v := r.(type) {
		case DuctSegment:
			ducts = append(ducts, v)
		case Equipment:
			equip = append(equip, v)
		}
	}
	require.Len(t, ducts, 2)
	assert.Equal(t, "Rectangular supply", ducts[0].Type)
	assert.Equal(t, "24x12", ducts[0].Size)
	assert.Equal(t, 85.0, ducts[0].LengthFt)
	assert.Equal(t, `10"`, ducts[1].Size)
	assert.Equal(t, 40.0, ducts[1].LengthFt)

	require.Len(t, equip, 1)
	assert.Equal(t, "RTU-1", equip[0].Type)
	assert.Equal(t, 2.0, equip[0].Quantity)
}

func TestExtract_TabularTrimAndHardware(t *testing.T) {
	x := NewExtractor()
	text := `| Trim type | Material | Length |
|-----------|----------|--------|
| Base | MDF | 340 LF |
| Crown | poplar | 180 LF |

| Item | Description | Quantity |
| Door hinges | 4" ball bearing | 24 |
| Door closers | surface mount | 6 |
`

	ext := x.Extract(text, domain.TradeCarpentry)

	var trims []TrimRun
	var hardware []Hardware
	for _, r := range ext.Records {
		switch v := r.(type) {
		case TrimRun:
			trims = append(trims, v)
		case Hardware:
			hardware = append(hardware, v)
		}
	}
	require.Len(t, trims, 2)
	assert.Equal(t, "Base", trims[0].Type)
	assert.Equal(t, "MDF", trims[0].Material)
	assert.Equal(t, 340.0, trims[0].LengthFt)
	assert.Equal(t, "poplar", trims[1].Material)

	require.Len(t, hardware, 2)
	assert.Equal(t, "Door hinges", hardware[0].Type)
	assert.Equal(t, `4" ball bearing`, hardware[0].Description)
	assert.Equal(t, 24.0, hardware[0].Quantity)
	assert.Equal(t, 6.0, hardware[1].Quantity)
}

func TestExtract_EquipmentTableAloneLeavesDuctsEmpty(t *testing.T) {
	x := NewExtractor()
	text := `| Equipment | Description | Quantity |
| RTU-1 | Rooftop unit, 5 ton | 2 |

Also run 60 feet of 8" spiral ductwork to the mezzanine.
`

	ext := x.Extract(text, domain.TradeMechanical)

	var ducts []DuctSegment
	for _, r := range ext.Records {
		if d, ok := r.(DuctSegment); ok {
			ducts = append(ducts, d)
		}
	}
	// the equipment table must not satisfy the duct table strategies
	require.Len(t, ducts, 1)
	assert.Equal(t, 60.0, ducts[0].LengthFt)
	assert.Equal(t, `8"`, ducts[0].Size)
}

func TestExtract_FirstSuccessfulStrategyWins(t *testing.T) {
	x := NewExtractor()
	// tabular rows exist, so the sentence form of the same run is ignored
	text := `| Supply | 8"  | 50 | spiral |

Also note 999 feet of 8" spiral duct in the mezzanine.
`

	ext := x.Extract(text, domain.TradeMechanical)

	var ducts []DuctSegment
	for _, r := range ext.Records {
		if d, ok := r.(DuctSegment); ok {
			ducts = append(ducts, d)
		}
	}
	require.Len(t, ducts, 1)
	assert.Equal(t, 50.0, ducts[0].LengthFt)
}

func TestExtract_SentenceWallDefaultsHeight(t *testing.T) {
	x := NewExtractor()
	text := `Wall A runs 36 feet along the corridor.`

	ext := x.Extract(text, domain.TradeFraming)

	require.Len(t, ext.Records, 1)
	w := ext.Records[0].(WallSection)
	assert.Equal(t, 36.0, w.LengthFt)
	assert.Equal(t, 8.0, w.HeightFt)
}

func TestExtract_EmptyTextYieldsNotes(t *testing.T) {
	x := NewExtractor()

	ext := x.Extract("", domain.TradePlumbing)

	assert.Empty(t, ext.Records)
	require.Len(t, ext.Notes, 3)
	for _, n := range ext.Notes {
		assert.Equal(t, NoteExtractionEmpty, n.Kind)
	}
}

func TestExtract_MalformedNumericRowIsDroppedWithNote(t *testing.T) {
	x := NewExtractor()
	text := `| Room 101 | ACP | 9oo |
| Room 102 | ACP | 450 |
`

	ext := x.Extract(text, domain.TradeAcoustical)

	require.Len(t, ext.Records, 1)
	c := ext.Records[0].(CeilingSection)
	assert.Equal(t, 450.0, c.AreaSqFt)

	var malformed int
	for _, n := range ext.Notes {
		if n.Kind == NoteMalformedNumericToken {
			malformed++
		}
	}
	assert.Equal(t, 1, malformed)
}

func TestExtract_Deterministic(t *testing.T) {
	x := NewExtractor()
	text := `- Domestic cold water: 240 LF of 3/4" copper
- Lavatory sink: 2
- ball valves, 3/4": 4
`

	first := x.Extract(text, domain.TradePlumbing)
	second := x.Extract(text, domain.TradePlumbing)
	assert.Equal(t, first, second)
}

func TestParseLegend(t *testing.T) {
	text := `LEGEND
ACP - Acoustical Ceiling Panel, 2x2
MT - Main Tee, 12' stick ($9.50)
NOTE - see sheet A-101 for details
`

	legend := parseLegend(text)

	require.Len(t, legend, 2)
	assert.Equal(t, "ACP", legend[0].Code)
	assert.Equal(t, "Acoustical Ceiling Panel, 2x2", legend[0].Description)
	assert.Equal(t, 0.0, legend[0].UnitCost)
	assert.Equal(t, "MT", legend[1].Code)
	assert.Equal(t, 9.5, legend[1].UnitCost)
}

func TestParseLegend_TableRowsAndDuplicates(t *testing.T) {
	text := `| CODE | ITEM |
| OSB | OSB wall sheathing |
| OSB | duplicate row |
`

	legend := parseLegend(text)

	require.Len(t, legend, 1)
	assert.Equal(t, "OSB", legend[0].Code)
	assert.Equal(t, "OSB wall sheathing", legend[0].Description)
}

func TestParseLegend_SkipsNonAlphaDescriptions(t *testing.T) {
	legend := parseLegend("S4 - 2 4 8\n")
	assert.Empty(t, legend)
}
