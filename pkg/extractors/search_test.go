package extractors

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	a := extract(t, "BT /F1 10 Tf 100 700 Td (Hello World) Tj ET")

	matches := Search(a, 3, regexp.MustCompile(`World`))
	require.Len(t, matches, 1)
	assert.Equal(t, MatchedPattern{
		Page:        3,
		Text:        "World",
		Coordinates: [4]float64{130, 697.5, 155, 707.5},
	}, matches[0])

	matches = Search(a, 1, regexp.MustCompile(`o`))
	require.Len(t, matches, 2)
	assert.Equal(t, [4]float64{120, 697.5, 125, 707.5}, matches[0].Coordinates)
	assert.Equal(t, [4]float64{135, 697.5, 140, 707.5}, matches[1].Coordinates)
}

func TestSearchInsertedSeparators(t *testing.T) {
	// "World" starts 10 after "Hello" ends, so the space is inserted
	a := extract(t, "BT /F1 10 Tf 100 700 Td [(Hello) -1000 (World)] TJ ET")
	require.Equal(t, "Hello World", a.Text())

	matches := Search(a, 1, regexp.MustCompile(`o W`))
	require.Len(t, matches, 1)
	assert.Equal(t, [4]float64{120, 697.5, 140, 707.5}, matches[0].Coordinates)

	matches = Search(a, 1, regexp.MustCompile(` `))
	require.Len(t, matches, 1)
	assert.Equal(t, [4]float64{}, matches[0].Coordinates)
}

func TestSearchEdgeCases(t *testing.T) {
	a := extract(t, "BT /F1 10 Tf 100 700 Td (Hello) Tj ET")

	assert.Empty(t, Search(a, 1, regexp.MustCompile(`x*`)))
	assert.Empty(t, Search(a, 1, regexp.MustCompile(`absent`)))
	assert.Nil(t, Search(nil, 1, regexp.MustCompile(`Hello`)))
	assert.Nil(t, Search(a, 1, nil))
}

func TestSearcher(t *testing.T) {
	_, err := NewSearcher(`(`)
	assert.Error(t, err)

	s, err := NewSearcher(`l+`)
	require.NoError(t, err)
	assert.Equal(t, `l+`, s.Pattern().String())

	matches := s.Find(extract(t, "BT /F1 10 Tf 100 700 Td (Hello) Tj ET"), 2)
	require.Len(t, matches, 1)
	assert.Equal(t, "ll", matches[0].Text)
	assert.Equal(t, 2, matches[0].Page)
	assert.Equal(t, [4]float64{110, 697.5, 120, 707.5}, matches[0].Coordinates)
}
