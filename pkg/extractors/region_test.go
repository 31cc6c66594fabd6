package extractors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pyhub-apps/pdftext-golang/pkg/content"
)

func TestNewRegion(t *testing.T) {
	assert.Equal(t, Region{X: 10, Y: 20, Width: 30, Height: 40}, NewRegion(10, 20, 30, 40))
	assert.Equal(t, Region{X: 10, Y: 20, Width: 30, Height: 40}, NewRegion(40, 60, -30, -40))
}

func TestRegionContains(t *testing.T) {
	r := NewRegion(0, 0, 10, 10)

	tests := []struct {
		name     string
		point    content.Vector
		expected bool
	}{
		{"inside", content.Vector{X: 5, Y: 5}, true},
		{"lower-left corner", content.Vector{X: 0, Y: 0}, true},
		{"upper-right corner", content.Vector{X: 10, Y: 10}, true},
		{"left of the region", content.Vector{X: -0.1, Y: 5}, false},
		{"above the region", content.Vector{X: 5, Y: 10.1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.Contains(tt.point))
		})
	}

	assert.True(t, r.Intersects([4]float64{8, 8, 20, 20}))
	assert.False(t, r.Intersects([4]float64{11, 0, 20, 10}))
}

func TestRegionText(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		region   Region
		expected string
	}{
		{
			name:     "second word",
			src:      "BT /F1 10 Tf 100 700 Td (Hello World) Tj ET",
			region:   NewRegion(128, 690, 72, 20),
			expected: "World",
		},
		{
			name:     "second line",
			src:      "BT /F1 10 Tf 100 700 Td (Line one) Tj 0 -14 Td (Line two) Tj ET",
			region:   NewRegion(0, 680, 300, 15),
			expected: "Line two",
		},
		{
			name:     "glyphs on both sides of the region",
			src:      "BT /F1 10 Tf 100 700 Td (abcdef) Tj ET",
			region:   NewRegion(108, 690, 10, 20),
			expected: "cd",
		},
		{
			name:     "nothing inside",
			src:      "BT /F1 10 Tf 100 700 Td (Hello) Tj ET",
			region:   NewRegion(0, 0, 50, 50),
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extract(t, tt.src, WithRegion(tt.region)).Text())
		})
	}
}
