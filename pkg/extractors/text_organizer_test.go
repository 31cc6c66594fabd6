package extractors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextOrganizerWords(t *testing.T) {
	a := extract(t, "BT /F1 10 Tf 100 686 Td (Foo bar) Tj 0 14 Td [(Hello) -1000 (World)] TJ ET")

	words := NewTextOrganizer().ExtractWords(a.Glyphs())
	texts := make([]string, len(words))
	for i, w := range words {
		texts[i] = w.Text
	}
	assert.Equal(t, []string{"Hello", "World", "Foo", "bar"}, texts)
	assert.Equal(t, Box{X0: 100, Y0: 697.5, X1: 125, Y1: 707.5}, words[0].BBox)
	assert.Len(t, words[0].Glyphs, 5)
}

func TestTextOrganizerLines(t *testing.T) {
	a := extract(t, "BT /F1 10 Tf 100 700 Td (Line one) Tj 0 -14 Td (Line two) Tj ET")

	lines := NewTextOrganizer().ExtractLines(a.Glyphs())
	require.Len(t, lines, 2)
	assert.Equal(t, "Line one", lines[0].Text)
	assert.Equal(t, "Line two", lines[1].Text)
	assert.Len(t, lines[1].Words, 2)
	assert.Equal(t, Box{X0: 100, Y0: 683.5, X1: 140, Y1: 693.5}, lines[1].BBox)
}

func TestTextOrganizerTolerances(t *testing.T) {
	// a gap of 5 between "ab" and "cd"
	a := extract(t, "BT /F1 10 Tf 100 700 Td [(ab) -500 (cd)] TJ ET")

	to := NewTextOrganizer()
	assert.Len(t, to.ExtractWords(a.Glyphs()), 2)

	to.SetTolerances(6, -1)
	words := to.ExtractWords(a.Glyphs())
	require.Len(t, words, 1)
	assert.Equal(t, "abcd", words[0].Text)

	assert.Empty(t, to.ExtractLines(nil))
}
