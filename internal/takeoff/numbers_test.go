package takeoff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		ok       bool
	}{
		{"plain", "240", 240, true},
		{"decimal", "12.5", 12.5, true},
		{"comma separators", "1,250", 1250, true},
		{"trailing feet", "240 feet", 240, true},
		{"trailing lf", "240 LF", 240, true},
		{"trailing linear feet", "240 linear feet", 240, true},
		{"trailing sq ft", "900 sq ft", 900, true},
		{"empty", "", 0, false},
		{"garbage", "n/a", 0, false},
		{"mangled numeric", "24o", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes := &noteList{}
			v, ok := parseNumber(tt.input, "test", notes)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, v)
			}
		})
	}
}

func TestParseNumber_MalformedTokenNote(t *testing.T) {
	notes := &noteList{}
	_, ok := parseNumber("24o5", "pipes", notes)
	assert.False(t, ok)
	assert.Len(t, notes.notes, 1)
	assert.Equal(t, NoteMalformedNumericToken, notes.notes[0].Kind)
	assert.Equal(t, "pipes", notes.notes[0].Category)
}

func TestParseNumber_NonNumericTokenNoNote(t *testing.T) {
	notes := &noteList{}
	_, ok := parseNumber("unknown", "pipes", notes)
	assert.False(t, ok)
	assert.Empty(t, notes.notes)
}

func TestParseCount_EmptyDefaultsToZero(t *testing.T) {
	notes := &noteList{}
	v, ok := parseCount("", "walls", notes)
	assert.True(t, ok)
	assert.Equal(t, 0, v)
}

func TestParseSizeValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		ok       bool
	}{
		{"inches", `6"`, 6, true},
		{"fraction", `3/4"`, 0.75, true},
		{"mixed fraction", `3-5/8"`, 3.625, true},
		{"dimension", "2x4", 8, true},
		{"dimension with unicode x", "24×24", 576, true},
		{"plain number", "12", 12, true},
		{"decimal", "1.5", 1.5, true},
		{"in suffix", "6in", 6, true},
		{"zero denominator", `1/0"`, 0, false},
		{"empty", "", 0, false},
		{"words", "large", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := parseSizeValue(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.expected, v, 1e-9)
			}
		})
	}
}

func TestNormalizeSize(t *testing.T) {
	assert.Equal(t, `3/4"`, normalizeSize(` 3/4" `))
	assert.Equal(t, `3/4"`, normalizeSize(`3/4”`))
	assert.Equal(t, "12x8", normalizeSize("12 x 8"))
}
