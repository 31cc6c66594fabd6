package font

import (
	"github.com/pdfcpu/pdfcpu/pkg/log"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/pyhub-apps/pdftext-golang/pkg/cmap"
	"github.com/pyhub-apps/pdftext-golang/pkg/objects"
)

// simpleFont is a single-byte font. Text and width for each of the 256
// codes are resolved once at load time.
type simpleFont struct {
	name    string
	subtype string

	texts  [256]string
	widths [256]float64

	spaceWidth float64
	ascent     float64
	descent    float64
}

func newSimple(r objects.Resolver, dict types.Dict, subtype string) *simpleFont {
	baseFont, _ := objects.Name(r, dict["BaseFont"])
	f := &simpleFont{
		name:    StripSubsetPrefix(baseFont),
		subtype: subtype,
	}

	std, isStandard := lookupStandard(baseFont)
	desc, hasDescriptor := readDescriptor(r, dict["FontDescriptor"])

	// Type3 glyph space is mapped to text space by /FontMatrix instead of
	// the fixed 1/1000
	scaleX, scaleY := 1.0, 1.0
	if subtype == "Type3" {
		if m, ok := objects.Numbers(r, dict["FontMatrix"]); ok && len(m) == 6 {
			scaleX, scaleY = m[0]*1000, m[3]*1000
		}
	}

	f.resolveEncoding(r, dict, baseFont, desc)
	f.applyToUnicode(r, dict["ToUnicode"])
	f.resolveWidths(r, dict, std, isStandard, desc.missingWidth, scaleX)

	switch {
	case hasDescriptor && desc.ascent != 0:
		f.ascent, f.descent = desc.ascent, desc.descent
	case subtype == "Type3":
		f.ascent, f.descent = DefaultAscent, DefaultDescent
		if bbox, ok := objects.Numbers(r, dict["FontBBox"]); ok && len(bbox) == 4 && bbox[3] != bbox[1] {
			f.ascent, f.descent = bbox[3]*scaleY, bbox[1]*scaleY
		}
	case isStandard:
		f.ascent, f.descent = std.ascent, std.descent
	default:
		f.ascent, f.descent = DefaultAscent, DefaultDescent
	}
	if f.descent > 0 {
		f.descent = -f.descent
	}

	f.spaceWidth = f.findSpaceWidth()
	return f
}

// resolveEncoding fills texts from the base encoding and /Differences
func (f *simpleFont) resolveEncoding(r objects.Resolver, dict types.Dict, baseFont string, desc descriptor) {
	base := f.defaultEncoding(baseFont, desc)
	var diffs types.Array

	switch enc := objects.Resolve(r, dict["Encoding"]).(type) {
	case types.Name:
		if e, ok := NamedEncoding(string(enc)); ok {
			base = e
		} else {
			log.Debug.Printf("font %s: unknown encoding %s\n", f.name, enc)
		}
	case types.Dict:
		if name, ok := objects.Name(r, enc["BaseEncoding"]); ok {
			if e, ok := NamedEncoding(name); ok {
				base = e
			}
		}
		diffs, _ = objects.Array(r, enc["Differences"])
	}

	for code := 0; code < 256; code++ {
		if ch, ok := base.Rune(byte(code)); ok {
			f.texts[code] = string(ch)
		}
	}

	code := -1
	for _, item := range diffs {
		switch v := objects.Resolve(r, item).(type) {
		case types.Integer:
			code = int(v)
		case types.Float:
			code = int(v)
		case types.Name:
			if code < 0 || code > 255 {
				code++
				continue
			}
			text, ok := GlyphText(string(v))
			if !ok {
				log.Debug.Printf("font %s: no text for glyph %s\n", f.name, v)
			}
			f.texts[code] = text
			code++
		}
	}
}

// defaultEncoding is the built-in encoding used when /Encoding gives no base
func (f *simpleFont) defaultEncoding(baseFont string, desc descriptor) Encoding {
	switch StripSubsetPrefix(baseFont) {
	case "Symbol":
		return SymbolEncoding
	case "ZapfDingbats":
		return ZapfDingbatsEncoding
	}
	if f.subtype == "TrueType" && desc.flags&flagSymbolic == 0 {
		return WinAnsiEncoding
	}
	return StandardEncoding
}

// applyToUnicode overrides encoding text with ToUnicode entries
func (f *simpleFont) applyToUnicode(r objects.Resolver, obj types.Object) {
	if obj == nil {
		return
	}
	data, err := objects.StreamContent(r, obj)
	if err != nil {
		log.Debug.Printf("font %s: ToUnicode: %v\n", f.name, err)
		return
	}
	cm, err := cmap.NewParser(cmap.WithNameResolver(GlyphText)).Parse(data)
	if err != nil {
		log.Debug.Printf("font %s: ToUnicode: %v\n", f.name, err)
		return
	}
	for code := 0; code < 256; code++ {
		if text, ok := cm.Unicode([]byte{byte(code)}); ok {
			f.texts[code] = text
		} else if text, ok := cm.Unicode([]byte{0, byte(code)}); ok {
			f.texts[code] = text
		}
	}
}

// resolveWidths reads /FirstChar and /Widths. Without a /Widths array the
// standard 14 metrics are used, with Helvetica standing in for unknown fonts.
func (f *simpleFont) resolveWidths(r objects.Resolver, dict types.Dict, std *standardMetrics, isStandard bool, missingWidth, scale float64) {
	widths, hasWidths := objects.Numbers(r, dict["Widths"])
	if hasWidths && len(widths) > 0 {
		first := 0
		if v, ok := objects.Number(r, dict["FirstChar"]); ok {
			first = int(v)
		}
		for code := 0; code < 256; code++ {
			i := code - first
			if i >= 0 && i < len(widths) {
				f.widths[code] = widths[i] * scale
			} else {
				f.widths[code] = missingWidth * scale
			}
		}
		return
	}

	if !isStandard {
		std = helvetica
	}
	for code := 0; code < 256; code++ {
		if f.texts[code] == "" {
			f.widths[code] = missingWidth
			continue
		}
		ch := []rune(f.texts[code])[0]
		f.widths[code] = std.width(ch)
	}
}

func (f *simpleFont) findSpaceWidth() float64 {
	if f.texts[' '] == " " && f.widths[' '] > 0 {
		return f.widths[' ']
	}
	for _, space := range []string{" ", "\u00a0"} {
		for code := 0; code < 256; code++ {
			if f.texts[code] == space && f.widths[code] > 0 {
				return f.widths[code]
			}
		}
	}
	return averageWidth(f.widths[:])
}

func (f *simpleFont) Name() string        { return f.name }
func (f *simpleFont) Subtype() string     { return f.subtype }
func (f *simpleFont) SpaceWidth() float64 { return f.spaceWidth }
func (f *simpleFont) Ascent() float64     { return f.ascent }
func (f *simpleFont) Descent() float64    { return f.descent }
func (f *simpleFont) IsVertical() bool    { return false }

// Decode maps every byte to one glyph
func (f *simpleFont) Decode(data []byte) []Glyph {
	glyphs := make([]Glyph, len(data))
	for i, b := range data {
		glyphs[i] = Glyph{
			Code:  data[i : i+1],
			Text:  f.texts[b],
			Width: f.widths[b],
		}
	}
	return glyphs
}
