package content

import (
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/stretchr/testify/assert"
)

func TestMarkedContent(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		filter bool
		texts  []string
	}{
		{
			name:   "artifact suppressed",
			src:    "/Artifact BMC BT /F1 10 Tf (A) Tj ET EMC BT /F1 10 Tf (B) Tj ET",
			filter: true,
			texts:  []string{"B"},
		},
		{
			name:   "nested content of an artifact suppressed",
			src:    "/Artifact <</Type /Pagination>> BDC /Span BMC BT /F1 10 Tf (A) Tj ET EMC EMC BT /F1 10 Tf (B) Tj ET",
			filter: true,
			texts:  []string{"B"},
		},
		{
			name:   "tag match ignores case",
			src:    "/placedPDF BMC BT /F1 10 Tf (A) Tj ET EMC BT /F1 10 Tf (B) Tj ET",
			filter: true,
			texts:  []string{"B"},
		},
		{
			name:   "filter off",
			src:    "/Artifact BMC BT /F1 10 Tf (A) Tj ET EMC BT /F1 10 Tf (B) Tj ET",
			filter: false,
			texts:  []string{"A", "B"},
		},
		{
			name:   "actual text replaces glyphs once",
			src:    "/Span <</ActualText (fi)>> BDC BT /F1 10 Tf (X) Tj (Y) Tj ET EMC BT /F1 10 Tf (Z) Tj ET",
			filter: true,
			texts:  []string{"fi", "Z"},
		},
		{
			name:   "UTF-16 actual text",
			src:    "/Span <</ActualText <FEFF00E9>>> BDC BT /F1 10 Tf (e) Tj ET EMC",
			filter: true,
			texts:  []string{"é"},
		},
		{
			name:   "expansion text",
			src:    "/Span <</E (and)>> BDC BT /F1 10 Tf (&) Tj ET EMC",
			filter: true,
			texts:  []string{"and"},
		},
		{
			name:   "empty actual text hides glyphs",
			src:    "/Span <</ActualText ()>> BDC BT /F1 10 Tf (X) Tj ET EMC BT /F1 10 Tf (Z) Tj ET",
			filter: true,
			texts:  []string{"Z"},
		},
		{
			name:   "named property list",
			src:    "/OC /P1 BDC BT /F1 10 Tf (X) Tj ET EMC",
			filter: true,
			texts:  []string{"Named"},
		},
		{
			name:   "unbalanced EMC",
			src:    "EMC EMC BT /F1 10 Tf (A) Tj ET",
			filter: true,
			texts:  []string{"A"},
		},
	}

	res := testResources(types.Dict{
		"Properties": types.Dict{
			"P1": types.Dict{"ActualText": types.StringLiteral("Named")},
		},
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := run(t, tt.src, res, WithMarkedContentFilter(tt.filter))
			assert.Equal(t, tt.texts, rec.texts())
		})
	}
}

func TestMarkedContentIdentifiers(t *testing.T) {
	src := "/P <</MCID 3>> BDC /Span BMC BT /F1 10 Tf (A) Tj ET EMC EMC BT /F1 10 Tf (B) Tj ET"
	rec, _ := run(t, src, testResources(nil))

	assert.Equal(t, []string{"A", "B"}, rec.texts())
	assert.Equal(t, 3, rec.chunks[0].mcid)
	assert.Equal(t, []string{"P", "Span"}, rec.chunks[0].tags)
	assert.Equal(t, -1, rec.chunks[1].mcid)
	assert.Empty(t, rec.chunks[1].tags)
	assert.Equal(t, []string{"begin P", "begin Span", "end", "end"}, rec.events)
}

func TestDecodeTextString(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{"plain", []byte("Hello"), "Hello"},
		{"latin-1", []byte{'c', 0xE9}, "cé"},
		{"UTF-16BE", []byte{0xFE, 0xFF, 0x00, 0x48, 0x00, 0x69}, "Hi"},
		{"UTF-16BE surrogate pair", []byte{0xFE, 0xFF, 0xD8, 0x3D, 0xDE, 0x00}, "\U0001F600"},
		{"UTF-8", []byte{0xEF, 0xBB, 0xBF, 'o', 'k'}, "ok"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DecodeTextString(tt.input))
		})
	}
}
