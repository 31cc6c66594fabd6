package content

import (
	"github.com/pyhub-apps/pdftext-golang/pkg/font"
)

// Color is a color space name with its components, kept as given
type Color struct {
	Space      string
	Components []float64
	// Pattern names the pattern resource for Pattern color spaces
	Pattern string
}

func (c Color) clone() Color {
	if c.Components != nil {
		c.Components = append([]float64(nil), c.Components...)
	}
	return c
}

// GraphicsState represents the PDF graphics state. It is a value type; the
// state stack holds copies.
type GraphicsState struct {
	CTM Matrix // Current Transformation Matrix

	Font              font.Font
	FontSize          float64
	CharSpacing       float64 // Tc
	WordSpacing       float64 // Tw
	HorizontalScaling float64 // Tz, percent
	Leading           float64 // TL
	Rise              float64 // Ts
	RenderMode        int     // Tr

	StrokeColor Color
	FillColor   Color

	LineWidth       float64
	LineCap         int
	LineJoin        int
	MiterLimit      float64
	DashPattern     []float64
	DashPhase       float64
	RenderingIntent string
	Flatness        float64

	// Clipped is set once W or W* has been used in this state
	Clipped bool
}

// NewGraphicsState creates a new graphics state with defaults
func NewGraphicsState() GraphicsState {
	return GraphicsState{
		CTM:               IdentityMatrix(),
		HorizontalScaling: 100,
		StrokeColor:       Color{Space: "DeviceGray", Components: []float64{0}},
		FillColor:         Color{Space: "DeviceGray", Components: []float64{0}},
		LineWidth:         1,
		MiterLimit:        10,
	}
}

// Clone creates a copy of the graphics state
func (gs GraphicsState) Clone() GraphicsState {
	newState := gs
	if gs.DashPattern != nil {
		newState.DashPattern = append([]float64(nil), gs.DashPattern...)
	}
	newState.StrokeColor = gs.StrokeColor.clone()
	newState.FillColor = gs.FillColor.clone()
	return newState
}

// TextState holds the text matrix and text line matrix. It lives outside
// the graphics state and is reset by BT.
type TextState struct {
	Matrix     Matrix // Tm
	LineMatrix Matrix // Tlm
	InText     bool
}

// Begin enters a text object
func (t *TextState) Begin() {
	t.Matrix = IdentityMatrix()
	t.LineMatrix = IdentityMatrix()
	t.InText = true
}

// MoveLine applies Td: Tlm = T(tx,ty) × Tlm, then Tm = Tlm
func (t *TextState) MoveLine(tx, ty float64) {
	t.LineMatrix = Translate(tx, ty).Multiply(t.LineMatrix)
	t.Matrix = t.LineMatrix
}

// SetMatrix applies Tm
func (t *TextState) SetMatrix(m Matrix) {
	t.Matrix = m
	t.LineMatrix = m
}

// Advance moves Tm along by a text space displacement
func (t *TextState) Advance(tx, ty float64) {
	t.Matrix = Translate(tx, ty).Multiply(t.Matrix)
}

// StateStack manages graphics state stack for save/restore operations
type StateStack struct {
	states []GraphicsState
}

// NewStateStack creates a new state stack
func NewStateStack() *StateStack {
	return &StateStack{
		states: []GraphicsState{NewGraphicsState()},
	}
}

// newStateStackFrom creates a stack whose base state is gs
func newStateStackFrom(gs GraphicsState) *StateStack {
	return &StateStack{states: []GraphicsState{gs}}
}

// Current returns the current graphics state
func (s *StateStack) Current() *GraphicsState {
	if len(s.states) == 0 {
		s.states = append(s.states, NewGraphicsState())
	}
	return &s.states[len(s.states)-1]
}

// Save saves the current graphics state
func (s *StateStack) Save() {
	current := s.Current().Clone()
	s.states = append(s.states, current)
}

// Restore restores the previous graphics state. It reports false, leaving
// the stack alone, when only the base state is left.
func (s *StateStack) Restore() bool {
	if len(s.states) > 1 {
		s.states = s.states[:len(s.states)-1]
		return true
	}
	return false
}

// Depth returns the number of saved states above the base state
func (s *StateStack) Depth() int {
	return len(s.states) - 1
}

// RestoreTo pops states until depth saved states remain
func (s *StateStack) RestoreTo(depth int) {
	for s.Depth() > depth && s.Restore() {
	}
}
