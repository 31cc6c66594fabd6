package content

import (
	"math"
	"strings"

	"github.com/pyhub-apps/pdftext-golang/pkg/font"
)

// glyphSpan is one decoded glyph in the text space of its string, measured
// from the string's origin
type glyphSpan struct {
	text       string
	start, end Vector
}

// TextRenderInfo describes one shown string: a Tj, ' or " operand, or one
// string element of a TJ array. Geometry is derived on demand.
type TextRenderInfo struct {
	text       string
	state      GraphicsState
	textToUser Matrix
	glyphs     []glyphSpan
	advance    Vector

	mcid int
	tags []string
}

func newTextRenderInfo(gs GraphicsState, tm Matrix, glyphs []glyphSpan, advance Vector) *TextRenderInfo {
	var sb strings.Builder
	for _, g := range glyphs {
		sb.WriteString(g.text)
	}
	return &TextRenderInfo{
		text:       sb.String(),
		state:      gs.Clone(),
		textToUser: tm.Multiply(gs.CTM),
		glyphs:     glyphs,
		advance:    advance,
		mcid:       -1,
	}
}

// withText returns a copy showing text in place of the decoded glyphs. The
// copy keeps the geometry of the whole string as a single glyph.
func (info *TextRenderInfo) withText(text string) *TextRenderInfo {
	c := *info
	c.text = text
	c.glyphs = []glyphSpan{{text: text, end: info.advance}}
	return &c
}

// Text returns the decoded Unicode text
func (info *TextRenderInfo) Text() string {
	return info.text
}

// Font returns the font the string was shown with
func (info *TextRenderInfo) Font() font.Font {
	return info.state.Font
}

// FontSize returns Tfs
func (info *TextRenderInfo) FontSize() float64 {
	return info.state.FontSize
}

// RenderMode returns Tr
func (info *TextRenderInfo) RenderMode() int {
	return info.state.RenderMode
}

// State returns the graphics state in effect when the string was shown
func (info *TextRenderInfo) State() GraphicsState {
	return info.state
}

// TextToUser returns Tm × CTM at the start of the string
func (info *TextRenderInfo) TextToUser() Matrix {
	return info.textToUser
}

// MCID returns the marked-content identifier of the innermost enclosing
// sequence that has one
func (info *TextRenderInfo) MCID() (int, bool) {
	return info.mcid, info.mcid >= 0
}

// Tags returns the enclosing marked-content tags, outermost first
func (info *TextRenderInfo) Tags() []string {
	return info.tags
}

// line returns the user-space segment from the start to the end of the
// string, raised by offset in text space
func (info *TextRenderInfo) line(offset float64) LineSegment {
	shift := info.shift(offset)
	return LineSegment{
		Start: shift.Transform(info.textToUser),
		End:   info.advance.Add(shift).Transform(info.textToUser),
	}
}

// shift returns the text-space displacement perpendicular to the writing
// direction
func (info *TextRenderInfo) shift(offset float64) Vector {
	if info.vertical() {
		return Vector{X: offset}
	}
	return Vector{Y: offset}
}

func (info *TextRenderInfo) vertical() bool {
	return info.state.Font != nil && info.state.Font.IsVertical()
}

// Baseline returns the baseline of the string in user space, rise included
func (info *TextRenderInfo) Baseline() LineSegment {
	return info.line(info.state.Rise)
}

// StartPoint returns the user-space start of the baseline
func (info *TextRenderInfo) StartPoint() Vector {
	return info.Baseline().Start
}

// EndPoint returns the user-space end of the baseline
func (info *TextRenderInfo) EndPoint() Vector {
	return info.Baseline().End
}

// AscentLine returns the baseline raised to the font ascent
func (info *TextRenderInfo) AscentLine() LineSegment {
	return info.line(info.ascent() + info.state.Rise)
}

// DescentLine returns the baseline lowered to the font descent
func (info *TextRenderInfo) DescentLine() LineSegment {
	return info.line(info.descent() + info.state.Rise)
}

func (info *TextRenderInfo) ascent() float64 {
	a := font.DefaultAscent
	if info.state.Font != nil {
		a = info.state.Font.Ascent()
	}
	return a * info.state.FontSize / 1000
}

func (info *TextRenderInfo) descent() float64 {
	d := font.DefaultDescent
	if info.state.Font != nil {
		d = info.state.Font.Descent()
	}
	return d * info.state.FontSize / 1000
}

// Width returns the user-space length of the baseline
func (info *TextRenderInfo) Width() float64 {
	return info.Baseline().Length()
}

// SingleSpaceWidth returns the user-space width of a space in the current
// font: (w/1000·Tfs + Tc + Tw)·Th
func (info *TextRenderInfo) SingleSpaceWidth() float64 {
	sw := 0.0
	if info.state.Font != nil {
		sw = info.state.Font.SpaceWidth()
	}
	w := (sw/1000*info.state.FontSize + info.state.CharSpacing + info.state.WordSpacing) *
		info.state.HorizontalScaling / 100
	return info.distance(Vector{X: w})
}

// distance returns the user-space length of a text-space displacement
func (info *TextRenderInfo) distance(v Vector) float64 {
	origin := Vector{}.Transform(info.textToUser)
	return v.Transform(info.textToUser).Subtract(origin).Length()
}

// GlyphSpan is one glyph of a shown string in user space
type GlyphSpan struct {
	Text       string
	Start, End Vector
	// Bounds is llx, lly, urx, ury of the glyph box from descent to ascent
	Bounds [4]float64
}

// Glyphs returns the glyphs of the string with their user-space positions
func (info *TextRenderInfo) Glyphs() []GlyphSpan {
	rise := info.shift(info.state.Rise)
	low := info.shift(info.descent() + info.state.Rise)
	high := info.shift(info.ascent() + info.state.Rise)

	out := make([]GlyphSpan, 0, len(info.glyphs))
	for _, g := range info.glyphs {
		out = append(out, GlyphSpan{
			Text:  g.text,
			Start: g.start.Add(rise).Transform(info.textToUser),
			End:   g.end.Add(rise).Transform(info.textToUser),
			Bounds: bounds(info.textToUser,
				g.start.Add(low), g.end.Add(low), g.end.Add(high), g.start.Add(high)),
		})
	}
	return out
}

// Bounds returns the box of the whole string as llx, lly, urx, ury
func (info *TextRenderInfo) Bounds() [4]float64 {
	low := info.shift(info.descent() + info.state.Rise)
	high := info.shift(info.ascent() + info.state.Rise)
	return bounds(info.textToUser, low, info.advance.Add(low), info.advance.Add(high), high)
}

// bounds transforms text-space corners and returns their axis-aligned box
func bounds(m Matrix, corners ...Vector) [4]float64 {
	box := [4]float64{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	for _, c := range corners {
		p := c.Transform(m)
		box[0] = math.Min(box[0], p.X)
		box[1] = math.Min(box[1], p.Y)
		box[2] = math.Max(box[2], p.X)
		box[3] = math.Max(box[3], p.Y)
	}
	return box
}

// ImageRenderInfo describes an image placed with Do or an inline image
type ImageRenderInfo struct {
	// Name is the XObject resource name, empty for inline images
	Name   string
	CTM    Matrix
	Inline bool
	// Width and Height are the sample dimensions declared by the image
	Width, Height int
}

// Bounds returns the image's unit square mapped through the CTM
func (info *ImageRenderInfo) Bounds() [4]float64 {
	return bounds(info.CTM, Vector{}, Vector{X: 1}, Vector{X: 1, Y: 1}, Vector{Y: 1})
}
