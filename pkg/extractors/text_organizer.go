package extractors

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Box is an axis-aligned rectangle in user space
type Box struct {
	X0, Y0, X1, Y1 float64
}

func boxOf(b [4]float64) Box {
	return Box{X0: b[0], Y0: b[1], X1: b[2], Y1: b[3]}
}

func (b Box) union(o Box) Box {
	return Box{
		X0: math.Min(b.X0, o.X0),
		Y0: math.Min(b.Y0, o.Y0),
		X1: math.Max(b.X1, o.X1),
		Y1: math.Max(b.Y1, o.Y1),
	}
}

// Word is a run of glyphs on one line without a gap between them
type Word struct {
	Text   string
	BBox   Box
	Glyphs []Glyph
}

// Line is a group of words sharing a baseline
type Line struct {
	Text  string
	BBox  Box
	Words []Word
}

// TextOrganizer groups assembled glyphs into words and lines by position.
// It reads pages laid out left to right, top to bottom.
type TextOrganizer struct {
	xTolerance float64 // horizontal gap that still joins glyphs into a word
	yTolerance float64 // baseline difference that still counts as one line
}

// NewTextOrganizer creates a new text organizer with default tolerances
func NewTextOrganizer() *TextOrganizer {
	return &TextOrganizer{
		xTolerance: 3.0,
		yTolerance: 3.0,
	}
}

// SetTolerances sets the tolerances for text grouping
func (to *TextOrganizer) SetTolerances(xTol, yTol float64) {
	if xTol >= 0 {
		to.xTolerance = xTol
	}
	if yTol >= 0 {
		to.yTolerance = yTol
	}
}

// ExtractWords groups glyphs into words, line by line
func (to *TextOrganizer) ExtractWords(glyphs []Glyph) []Word {
	var words []Word
	for _, line := range to.groupIntoLines(glyphs) {
		words = append(words, to.splitWords(line)...)
	}
	return words
}

// ExtractLines groups glyphs into lines of words
func (to *TextOrganizer) ExtractLines(glyphs []Glyph) []Line {
	var lines []Line
	for _, lineGlyphs := range to.groupIntoLines(glyphs) {
		words := to.splitWords(lineGlyphs)
		if len(words) == 0 {
			continue
		}

		texts := make([]string, len(words))
		bbox := words[0].BBox
		for i, w := range words {
			texts[i] = w.Text
			bbox = bbox.union(w.BBox)
		}
		lines = append(lines, Line{
			Text:  strings.Join(texts, " "),
			BBox:  bbox,
			Words: words,
		})
	}
	return lines
}

// groupIntoLines sorts glyphs top to bottom and splits them where the
// baseline moves by more than the vertical tolerance
func (to *TextOrganizer) groupIntoLines(glyphs []Glyph) [][]Glyph {
	if len(glyphs) == 0 {
		return nil
	}
	sorted := make([]Glyph, len(glyphs))
	copy(sorted, glyphs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].Start.Y-sorted[j].Start.Y) > to.yTolerance {
			return sorted[i].Start.Y > sorted[j].Start.Y // Y grows upward
		}
		return false
	})

	var lines [][]Glyph
	current := []Glyph{sorted[0]}
	currentY := sorted[0].Start.Y
	for _, g := range sorted[1:] {
		if math.Abs(g.Start.Y-currentY) > to.yTolerance {
			lines = append(lines, current)
			current = []Glyph{g}
			currentY = g.Start.Y
			continue
		}
		current = append(current, g)
	}
	return append(lines, current)
}

// splitWords orders a line left to right and breaks it at whitespace
// glyphs and at gaps wider than the horizontal tolerance
func (to *TextOrganizer) splitWords(line []Glyph) []Word {
	sort.SliceStable(line, func(i, j int) bool {
		return line[i].Start.X < line[j].Start.X
	})

	var words []Word
	var current []Glyph
	flush := func() {
		if len(current) > 0 {
			words = append(words, makeWord(current))
			current = nil
		}
	}

	for i, g := range line {
		if strings.TrimFunc(g.Text, unicode.IsSpace) == "" {
			flush()
			continue
		}
		if len(current) > 0 && g.Start.X-line[i-1].End.X > to.xTolerance {
			flush()
		}
		current = append(current, g)
	}
	flush()
	return words
}

func makeWord(glyphs []Glyph) Word {
	var text strings.Builder
	bbox := boxOf(glyphs[0].Bounds)
	for _, g := range glyphs {
		text.WriteString(g.Text)
		bbox = bbox.union(boxOf(g.Bounds))
	}
	return Word{Text: text.String(), BBox: bbox, Glyphs: glyphs}
}
