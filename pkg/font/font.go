// Package font resolves the character codes of PDF strings to text and
// glyph widths for simple (Type1, MMType1, TrueType, Type3) and composite
// (Type0) fonts.
package font

import (
	"github.com/pdfcpu/pdfcpu/pkg/log"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/pyhub-apps/pdftext-golang/pkg/objects"
)

// Glyph is one character code decoded from a shown string
type Glyph struct {
	Code []byte
	// Text is the Unicode value of the code, empty when unmapped
	Text string
	// Width is the horizontal displacement in glyph space, 1000 units per
	// text space unit
	Width float64
}

// IsWordSpace reports whether word spacing applies after this glyph: the
// code is the single byte 32.
func (g Glyph) IsWordSpace() bool {
	return len(g.Code) == 1 && g.Code[0] == ' '
}

// Font decodes strings shown with a font resource. Implementations never
// fail; codes they cannot resolve come back with empty text.
type Font interface {
	// Name returns the base font name without a subset tag
	Name() string
	Subtype() string
	Decode(data []byte) []Glyph
	// SpaceWidth is the width of the space glyph in glyph space. Fonts
	// without one report the average of their non-zero widths.
	SpaceWidth() float64
	// Ascent and Descent are in glyph space
	Ascent() float64
	Descent() float64
	IsVertical() bool
}

// Default vertical metrics, used when a font has no descriptor values
const (
	DefaultAscent  = 750.0
	DefaultDescent = -250.0
)

// Load builds a Font from a font dictionary. A broken or missing dictionary
// yields a Helvetica-metric fallback font so text keeps flowing.
func Load(r objects.Resolver, obj types.Object) Font {
	dict, ok := objects.Dict(r, obj)
	if !ok {
		log.Debug.Printf("font: %v is not a dictionary, using fallback\n", obj)
		return Fallback()
	}

	subtype, _ := objects.Name(r, dict["Subtype"])
	switch subtype {
	case "Type0":
		f, err := newComposite(r, dict)
		if err != nil {
			log.Debug.Printf("font: %v, using fallback\n", err)
			return Fallback()
		}
		return f
	case "Type1", "MMType1", "TrueType", "Type3", "":
		return newSimple(r, dict, subtype)
	default:
		log.Debug.Printf("font: unsupported subtype %q, reading as simple font\n", subtype)
		return newSimple(r, dict, subtype)
	}
}

// Fallback returns a Helvetica font with standard encoding
func Fallback() Font {
	return newSimple(objects.NopResolver{}, types.Dict{
		"Type":     types.Name("Font"),
		"Subtype":  types.Name("Type1"),
		"BaseFont": types.Name("Helvetica"),
	}, "Type1")
}

// descriptor holds the FontDescriptor values used for text extraction
type descriptor struct {
	flags        int
	ascent       float64
	descent      float64
	missingWidth float64
}

const flagSymbolic = 1 << 2

func readDescriptor(r objects.Resolver, obj types.Object) (descriptor, bool) {
	var d descriptor
	dict, ok := objects.Dict(r, obj)
	if !ok {
		return d, false
	}
	if v, ok := objects.Number(r, dict["Flags"]); ok {
		d.flags = int(v)
	}
	d.ascent, _ = objects.Number(r, dict["Ascent"])
	d.descent, _ = objects.Number(r, dict["Descent"])
	d.missingWidth, _ = objects.Number(r, dict["MissingWidth"])

	if d.ascent == 0 || d.descent == 0 {
		if bbox, ok := objects.Numbers(r, dict["FontBBox"]); ok && len(bbox) == 4 {
			if d.ascent == 0 {
				d.ascent = bbox[3]
			}
			if d.descent == 0 {
				d.descent = bbox[1]
			}
		}
	}
	return d, true
}

// averageWidth returns the mean of the non-zero widths
func averageWidth(widths []float64) float64 {
	var sum float64
	var n int
	for _, w := range widths {
		if w > 0 {
			sum += w
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
