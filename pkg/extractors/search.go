package extractors

import (
	"math"
	"regexp"
)

// MatchedPattern is one match of a search pattern on a page
type MatchedPattern struct {
	Page int
	Text string
	// Coordinates is llx, lly, urx, ury of the glyphs the match covers
	Coordinates [4]float64
}

// Search finds the non-overlapping matches of pattern in the assembled text.
// The box of a match covers every glyph whose text overlaps it; a match of
// inserted separators alone has a zero box.
func Search(a *TextAssembler, page int, pattern *regexp.Regexp) []MatchedPattern {
	if a == nil || pattern == nil {
		return nil
	}
	text := a.Text()
	var matches []MatchedPattern
	for _, loc := range pattern.FindAllStringIndex(text, -1) {
		if loc[0] == loc[1] {
			continue
		}
		matches = append(matches, MatchedPattern{
			Page:        page,
			Text:        text[loc[0]:loc[1]],
			Coordinates: a.boundsOf(loc[0], loc[1]),
		})
	}
	return matches
}

// boundsOf returns the union box of glyphs overlapping text[start:end]
func (a *TextAssembler) boundsOf(start, end int) [4]float64 {
	box := emptyBounds()
	found := false
	for _, g := range a.glyphs {
		if g.offset >= end {
			break
		}
		if g.length == 0 || g.offset+g.length <= start {
			continue
		}
		box = unionBounds(box, g.Bounds)
		found = true
	}
	if !found || math.IsInf(box[0], 0) {
		return [4]float64{}
	}
	return box
}

// Searcher runs a pattern against assembled pages
type Searcher struct {
	pattern *regexp.Regexp
}

// NewSearcher compiles expr into a searcher
func NewSearcher(expr string) (*Searcher, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &Searcher{pattern: re}, nil
}

// Pattern returns the compiled expression
func (s *Searcher) Pattern() *regexp.Regexp {
	return s.pattern
}

// Find returns the matches on an assembled page
func (s *Searcher) Find(a *TextAssembler, page int) []MatchedPattern {
	return Search(a, page, s.pattern)
}
