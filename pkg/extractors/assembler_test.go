package extractors

import (
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/pdftext-golang/pkg/content"
)

// testResources has /F1, a font where every printable code is 500 units
// wide, so at 10pt each glyph advances 5 and a space is 5 wide
func testResources() *content.Resources {
	widths := make(types.Array, 95)
	for i := range widths {
		widths[i] = types.Integer(500)
	}
	return content.NewResources(types.Dict{
		"Font": types.Dict{
			"F1": types.Dict{
				"Type":      types.Name("Font"),
				"Subtype":   types.Name("Type1"),
				"BaseFont":  types.Name("Test"),
				"FirstChar": types.Integer(32),
				"LastChar":  types.Integer(126),
				"Widths":    widths,
			},
		},
	}, nil)
}

func extract(t *testing.T, src string, opts ...Option) *TextAssembler {
	t.Helper()
	a := NewTextAssembler(opts...)
	p := content.NewProcessor(a)
	require.NoError(t, p.ProcessContent([]byte(src), testResources()))
	return a
}

func TestTextAssembler(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{
			name:     "split word is rejoined",
			src:      "BT /F1 10 Tf 100 700 Td (trun) Tj (ked) Tj ET",
			expected: "trunked",
		},
		{
			name:     "literal space at the join is not doubled",
			src:      "BT /F1 10 Tf 100 700 Td (Phrase begin. ) Tj (Phrase End.) Tj ET",
			expected: "Phrase begin. Phrase End.",
		},
		{
			name: "table cells",
			src: "BT /F1 10 Tf 100 700 Td (One) Tj ET " +
				"BT /F1 10 Tf 200 700 Td (Two) Tj ET " +
				"BT /F1 10 Tf 300 700 Td (Three) Tj ET",
			expected: "One Two Three",
		},
		{
			name:     "new line",
			src:      "BT /F1 10 Tf 100 700 Td (Line one) Tj 0 -14 Td (Line two) Tj ET",
			expected: "Line one\nLine two",
		},
		{
			name:     "rise stays on the line",
			src:      "BT /F1 10 Tf 100 700 Td (x) Tj 2 Ts (2) Tj ET",
			expected: "x2",
		},
		{
			name:     "kerning is not a space",
			src:      "BT /F1 10 Tf [(W) 80 (A) -120 (VE)] TJ ET",
			expected: "WAVE",
		},
		{
			name:     "backward kern wider than a space",
			src:      "BT /F1 10 Tf 100 700 Td [(A) 300 (V)] TJ [(T) 700 (o)] TJ ET",
			expected: "AVTo",
		},
		{
			name:     "gap along a rotated baseline",
			src:      "BT /F1 10 Tf 0 1 -1 0 100 100 Tm [(up) 600 (ward) -1000 (bound)] TJ ET",
			expected: "upward bound",
		},
		{
			name:     "gap in TJ is a space",
			src:      "BT /F1 10 Tf [(Hello) -1000 (World)] TJ ET",
			expected: "Hello World",
		},
		{
			name:     "trailing whitespace trimmed",
			src:      "BT /F1 10 Tf (Hello   ) Tj ET",
			expected: "Hello",
		},
		{
			name:     "empty page",
			src:      "q Q",
			expected: "",
		},
		{
			name:     "rotated text",
			src:      "BT /F1 10 Tf 0 1 -1 0 100 100 Tm (up) Tj (ward) Tj ET",
			expected: "upward",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extract(t, tt.src).Text())
		})
	}
}

func TestTextAssemblerJustification(t *testing.T) {
	source := "The quick brown fox jumps"
	tests := []struct {
		name string
		src  string
	}{
		{"word spacing", "BT /F1 10 Tf 8 Tw (The quick brown fox jumps) Tj ET"},
		{"character spacing", "BT /F1 10 Tf 1.5 Tc 4 Tw (The quick brown fox jumps) Tj ET"},
		{"positioned spaces", "BT /F1 10 Tf [(The ) -600 (quick ) -600 (brown ) -600 (fox ) -600 (jumps)] TJ ET"},
		{"spaces as gaps", "BT /F1 10 Tf [(The) -1500 (quick) -1500 (brown) -1500 (fox) -1500 (jumps)] TJ ET"},
		{"separate space strings", "BT /F1 10 Tf [(The) -300 ( ) -300 (quick) -300 ( ) -300 (brown) ( ) (fox) ( ) (jumps)] TJ ET"},
		{"one string per word", "BT /F1 10 Tf 100 700 Td (The ) Tj 30 0 Td (quick) Tj 40 0 Td ( brown) Tj 50 0 Td (fox ) Tj 40 0 Td (jumps) Tj ET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := extract(t, tt.src).Text()
			assert.NotContains(t, text, "  ")
			assert.Equal(t, source, strings.Join(strings.Fields(text), " "))
		})
	}
}

func TestTextAssemblerThresholds(t *testing.T) {
	// a gap of 1.5 against a space width of 5
	src := "BT /F1 10 Tf [(ab) -150 (cd)] TJ ET"
	assert.Equal(t, "abcd", extract(t, src).Text())
	assert.Equal(t, "ab cd", extract(t, src, WithSpaceThreshold(0.2)).Text())

	// a baseline 5 below the previous one with an ascent of 7.5
	src = "BT /F1 10 Tf (ab) Tj 0 -5 Td (cd) Tj ET"
	assert.Equal(t, "ab\ncd", extract(t, src).Text())
	assert.Equal(t, "ab cd", extract(t, src, WithNewlineFactor(1)).Text())
}

func TestTextAssemblerIdempotent(t *testing.T) {
	src := "BT /F1 10 Tf 100 700 Td (First line) Tj 0 -14 Td [(second) -1000 (line)] TJ ET"
	a := NewTextAssembler()
	p := content.NewProcessor(a)

	require.NoError(t, p.ProcessContent([]byte(src), testResources()))
	first := a.Text()

	p.Reset()
	require.NoError(t, p.ProcessContent([]byte(src), testResources()))
	assert.Equal(t, first, a.Text())
	assert.Equal(t, "First line\nsecond line", first)
	assert.Equal(t, first, extract(t, src).Text())
}

func TestTextAssemblerNormalization(t *testing.T) {
	src := "BT /F1 10 Tf (a) Tj <AE> Tj (x) Tj ET"
	assert.Equal(t, "aﬁx", extract(t, src).Text())
	assert.Equal(t, "afix", extract(t, src, WithUnicodeNormalization(true)).Text())
	assert.Equal(t, "aﬁx", extract(t, src, WithUnicodeNormalization(true), WithUnicodeNormalization(false)).Text())
}

func TestTextAssemblerGlyphs(t *testing.T) {
	a := extract(t, "BT /F1 10 Tf 100 700 Td (ab) Tj ET")

	glyphs := a.Glyphs()
	require.Len(t, glyphs, 2)
	assert.Equal(t, "b", glyphs[1].Text)
	assert.Equal(t, content.Vector{X: 105, Y: 700}, glyphs[1].Start)
	assert.Equal(t, content.Vector{X: 110, Y: 700}, glyphs[1].End)
	assert.Equal(t, [4]float64{105, 697.5, 110, 707.5}, glyphs[1].Bounds)
}
