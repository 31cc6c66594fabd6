// Package extractors turns the text reported by a content.Processor into
// page text, region text, pattern matches and word/line groupings.
package extractors

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/pyhub-apps/pdftext-golang/pkg/content"
)

// Default assembler thresholds
const (
	DefaultSpaceThreshold = 1 / 2.3
	DefaultNewlineFactor  = 0.5
)

// Glyph is one glyph kept by the assembler, in user space
type Glyph struct {
	Text       string
	Start, End content.Vector
	// Bounds is llx, lly, urx, ury
	Bounds [4]float64

	// offset and length locate the glyph text in the assembled string
	offset, length int
}

type config struct {
	spaceThreshold float64
	newlineFactor  float64
	normalize      *norm.Form
	filter         func(content.GlyphSpan) bool
}

// Option configures a TextAssembler
type Option func(*config)

// WithSpaceThreshold sets the fraction of a space width below which two
// chunks on one line are joined without a space
func WithSpaceThreshold(threshold float64) Option {
	return func(c *config) {
		if threshold > 0 {
			c.spaceThreshold = threshold
		}
	}
}

// WithNewlineFactor sets the fraction of the ascent a chunk may sit off the
// previous baseline and still count as the same line
func WithNewlineFactor(factor float64) Option {
	return func(c *config) {
		if factor > 0 {
			c.newlineFactor = factor
		}
	}
}

// WithUnicodeNormalization applies NFKC to the text of each glyph
func WithUnicodeNormalization(enabled bool) Option {
	return func(c *config) {
		if enabled {
			form := norm.NFKC
			c.normalize = &form
		} else {
			c.normalize = nil
		}
	}
}

// WithRegion keeps only glyphs whose start point lies in r
func WithRegion(r Region) Option {
	return func(c *config) {
		c.filter = r.Accept
	}
}

// chunk is the geometry of the previous run of kept glyphs
type chunk struct {
	start, end content.Vector
	text       string
}

// TextAssembler is a content.RenderListener that joins shown strings into
// page text, inserting a space or a newline between chunks from their
// positions.
type TextAssembler struct {
	cfg config

	buf    strings.Builder
	prev   *chunk
	glyphs []Glyph
}

// NewTextAssembler creates an assembler
func NewTextAssembler(opts ...Option) *TextAssembler {
	cfg := config{
		spaceThreshold: DefaultSpaceThreshold,
		newlineFactor:  DefaultNewlineFactor,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &TextAssembler{cfg: cfg}
}

// Reset implements content.RenderListener
func (a *TextAssembler) Reset() {
	a.buf.Reset()
	a.prev = nil
	a.glyphs = nil
}

// RenderText implements content.RenderListener. Without a region every
// string is one chunk; with a region each run of consecutive kept glyphs
// is a chunk.
func (a *TextAssembler) RenderText(info *content.TextRenderInfo) {
	if a.cfg.filter == nil && a.cfg.normalize == nil {
		a.addChunk(info, info.Glyphs())
		return
	}

	var run []content.GlyphSpan
	for _, g := range info.Glyphs() {
		if a.cfg.filter != nil && !a.cfg.filter(g) {
			if len(run) > 0 {
				a.addChunk(info, run)
				run = nil
			}
			continue
		}
		if a.cfg.normalize != nil {
			g.Text = a.cfg.normalize.String(g.Text)
		}
		run = append(run, g)
	}
	if len(run) > 0 {
		a.addChunk(info, run)
	}
}

func (a *TextAssembler) addChunk(info *content.TextRenderInfo, glyphs []content.GlyphSpan) {
	if len(glyphs) == 0 {
		return
	}
	var sb strings.Builder
	for _, g := range glyphs {
		sb.WriteString(g.Text)
	}
	text := sb.String()
	if text == "" {
		return
	}

	cur := &chunk{start: glyphs[0].Start, end: glyphs[len(glyphs)-1].End, text: text}
	if a.prev != nil {
		ascent := info.AscentLine().Start.Subtract(info.Baseline().Start).Length()
		switch {
		case a.newLine(cur, ascent):
			a.buf.WriteByte('\n')
		case a.needsSpace(cur, info.SingleSpaceWidth()):
			a.buf.WriteByte(' ')
		}
	}

	for _, g := range glyphs {
		a.glyphs = append(a.glyphs, Glyph{
			Text:   g.Text,
			Start:  g.Start,
			End:    g.End,
			Bounds: g.Bounds,
			offset: a.buf.Len(),
			length: len(g.Text),
		})
		a.buf.WriteString(g.Text)
	}
	if cur.start == cur.end && a.prev != nil {
		// zero-width runs keep the previous baseline
		cur.start = a.prev.start
	}
	a.prev = cur
}

// newLine reports whether cur starts more than newlineFactor·ascent off the
// previous baseline, or the distance cannot be computed. A degenerate
// previous baseline borrows the direction of cur.
func (a *TextAssembler) newLine(cur *chunk, ascent float64) bool {
	base := a.prev.end.Subtract(a.prev.start)
	if base.LengthSquared() == 0 {
		base = cur.end.Subtract(cur.start)
	}
	if base.LengthSquared() == 0 {
		return true
	}
	dist := math.Abs(base.Cross(a.prev.start.Subtract(cur.start))) / base.Length()
	if math.IsNaN(dist) {
		return true
	}
	return dist > a.cfg.newlineFactor*ascent
}

// needsSpace reports whether the gap between the chunks, measured along
// the previous baseline, is worth a space. A backward gap never is.
// Literal spaces at the join make it unnecessary.
func (a *TextAssembler) needsSpace(cur *chunk, spaceWidth float64) bool {
	if endsWithSpace(a.prev.text) || startsWithSpace(cur.text) {
		return false
	}
	gap := cur.start.Subtract(a.prev.end)
	dir := a.prev.end.Subtract(a.prev.start)
	if dir.LengthSquared() == 0 {
		dir = cur.end.Subtract(cur.start)
	}
	spacing := gap.Length()
	if dir.LengthSquared() > 0 {
		spacing = gap.Dot(dir.Normalize())
	}
	return spacing >= a.cfg.spaceThreshold*spaceWidth
}

// Text returns the assembled text with trailing whitespace removed
func (a *TextAssembler) Text() string {
	return strings.TrimRightFunc(a.buf.String(), unicode.IsSpace)
}

// Glyphs returns the kept glyphs in assembly order
func (a *TextAssembler) Glyphs() []Glyph {
	return a.glyphs
}

func startsWithSpace(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsSpace(r)
}

func endsWithSpace(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return unicode.IsSpace(r)
}
