package font

import (
	"unicode/utf8"

	"github.com/pdfcpu/pdfcpu/pkg/log"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/pkg/errors"

	"github.com/pyhub-apps/pdftext-golang/pkg/cmap"
	"github.com/pyhub-apps/pdftext-golang/pkg/objects"
)

const (
	defaultCIDWidth   = 1000.0
	defaultCIDAdvance = 1000.0
)

// widthRange is one cfirst clast w entry of a /W array
type widthRange struct {
	first, last int
	width       float64
}

// compositeFont is a Type0 font with a single CIDFont descendant
type compositeFont struct {
	name string

	encoding  *cmap.CMap
	toUnicode *cmap.CMap

	defaultWidth float64
	widths       map[int]float64
	ranges       []widthRange

	vertical        bool
	verticalAdvance float64

	spaceWidth float64
	ascent     float64
	descent    float64
}

func newComposite(r objects.Resolver, dict types.Dict) (*compositeFont, error) {
	baseFont, _ := objects.Name(r, dict["BaseFont"])
	f := &compositeFont{
		name:            StripSubsetPrefix(baseFont),
		defaultWidth:    defaultCIDWidth,
		widths:          make(map[int]float64),
		verticalAdvance: defaultCIDAdvance,
		ascent:          DefaultAscent,
		descent:         DefaultDescent,
	}

	descendants, ok := objects.Array(r, dict["DescendantFonts"])
	if !ok || len(descendants) == 0 {
		return nil, errors.Errorf("Type0 font %s has no descendant font", f.name)
	}
	cidFont, ok := objects.Dict(r, descendants[0])
	if !ok {
		return nil, errors.Errorf("Type0 font %s: descendant is not a dictionary", f.name)
	}

	f.encoding = loadEncodingCMap(r, dict["Encoding"], f.name)
	f.vertical = f.encoding.WMode == 1
	f.toUnicode = loadToUnicode(r, dict["ToUnicode"], f.name)

	if dw, ok := objects.Number(r, cidFont["DW"]); ok {
		f.defaultWidth = dw
	}
	f.readWidths(r, cidFont["W"])
	if dw2, ok := objects.Numbers(r, cidFont["DW2"]); ok && len(dw2) == 2 && dw2[1] != 0 {
		f.verticalAdvance = -dw2[1]
	}

	if desc, ok := readDescriptor(r, cidFont["FontDescriptor"]); ok && desc.ascent != 0 {
		f.ascent, f.descent = desc.ascent, desc.descent
		if f.descent > 0 {
			f.descent = -f.descent
		}
	}

	f.spaceWidth = f.findSpaceWidth()
	return f, nil
}

// loadEncodingCMap resolves /Encoding to a predefined or embedded CMap.
// Unknown names and corrupt streams fall back to Identity-H.
func loadEncodingCMap(r objects.Resolver, obj types.Object, fontName string) *cmap.CMap {
	if name, ok := objects.Name(r, obj); ok {
		if cm, ok := cmap.Predefined(name); ok {
			return cm
		}
		log.Debug.Printf("font %s: unknown CMap %s, using Identity-H\n", fontName, name)
		return cmap.Identity()
	}

	if _, ok := objects.Stream(r, obj); ok {
		data, err := objects.StreamContent(r, obj)
		if err == nil {
			var cm *cmap.CMap
			if cm, err = cmap.Parse(data); err == nil {
				if len(cm.Codespaces()) == 0 {
					cm.AddCodespaceRange([]byte{0x00, 0x00}, []byte{0xFF, 0xFF})
				}
				return cm
			}
		}
		log.Debug.Printf("font %s: embedded CMap: %v, using Identity-H\n", fontName, err)
		return cmap.Identity()
	}

	log.Debug.Printf("font %s: missing encoding, using Identity-H\n", fontName)
	return cmap.Identity()
}

func loadToUnicode(r objects.Resolver, obj types.Object, fontName string) *cmap.CMap {
	if obj == nil {
		return nil
	}
	if name, ok := objects.Name(r, obj); ok {
		if cm, ok := cmap.Predefined(name); ok && cm.IsUnicodeCoded() {
			return cm
		}
		return nil
	}
	data, err := objects.StreamContent(r, obj)
	if err != nil {
		log.Debug.Printf("font %s: ToUnicode: %v\n", fontName, err)
		return nil
	}
	cm, err := cmap.NewParser(cmap.WithNameResolver(GlyphText)).Parse(data)
	if err != nil {
		log.Debug.Printf("font %s: ToUnicode: %v\n", fontName, err)
		return nil
	}
	return cm
}

// readWidths parses the two /W forms: c [w1 w2 ...] and cfirst clast w
func (f *compositeFont) readWidths(r objects.Resolver, obj types.Object) {
	w, ok := objects.Array(r, obj)
	if !ok {
		return
	}
	for i := 0; i+1 < len(w); {
		first, ok := objects.Number(r, w[i])
		if !ok {
			i++
			continue
		}
		if list, ok := objects.Array(r, w[i+1]); ok {
			for j, item := range list {
				if width, ok := objects.Number(r, item); ok {
					f.widths[int(first)+j] = width
				}
			}
			i += 2
			continue
		}
		if i+2 >= len(w) {
			break
		}
		last, ok1 := objects.Number(r, w[i+1])
		width, ok2 := objects.Number(r, w[i+2])
		if ok1 && ok2 && last >= first {
			f.ranges = append(f.ranges, widthRange{first: int(first), last: int(last), width: width})
		}
		i += 3
	}
}

func (f *compositeFont) cidWidth(cid int) float64 {
	if w, ok := f.widths[cid]; ok {
		return w
	}
	for _, rg := range f.ranges {
		if cid >= rg.first && cid <= rg.last {
			return rg.width
		}
	}
	return f.defaultWidth
}

// text resolves a code through ToUnicode. Without ToUnicode, identity and
// Unicode-coded CMaps pass the CID through as the character.
func (f *compositeFont) text(code []byte, cid int) string {
	if f.toUnicode != nil {
		if text, ok := f.toUnicode.Unicode(code); ok {
			return text
		}
		return ""
	}
	if f.encoding.IsUnicodeCoded() {
		text, _ := f.encoding.Unicode(code)
		return text
	}
	if f.encoding.IsIdentity() && cid > 0 && utf8.ValidRune(rune(cid)) {
		return string(rune(cid))
	}
	return ""
}

func (f *compositeFont) findSpaceWidth() float64 {
	if f.toUnicode != nil {
		if code, ok := f.toUnicode.CodeFor(" "); ok {
			if cid, ok := f.encoding.CID(code); ok && f.cidWidth(cid) > 0 {
				return f.cidWidth(cid)
			}
		}
	} else if f.encoding.IsIdentity() && f.cidWidth(' ') > 0 {
		return f.cidWidth(' ')
	}
	var widths []float64
	for _, w := range f.widths {
		widths = append(widths, w)
	}
	for _, rg := range f.ranges {
		widths = append(widths, rg.width)
	}
	if avg := averageWidth(widths); avg > 0 {
		return avg
	}
	return f.defaultWidth
}

func (f *compositeFont) Name() string        { return f.name }
func (f *compositeFont) Subtype() string     { return "Type0" }
func (f *compositeFont) SpaceWidth() float64 { return f.spaceWidth }
func (f *compositeFont) Ascent() float64     { return f.ascent }
func (f *compositeFont) Descent() float64    { return f.descent }
func (f *compositeFont) IsVertical() bool    { return f.vertical }

// Decode splits data into codes using the encoding CMap's codespace ranges.
// Codes without a CID mapping use CID 0. Vertical fonts report the vertical
// advance as the glyph width.
func (f *compositeFont) Decode(data []byte) []Glyph {
	var glyphs []Glyph
	for len(data) > 0 {
		code, n := f.encoding.NextCode(data)
		if n == 0 {
			break
		}
		cid, ok := f.encoding.CID(code)
		if !ok {
			cid = 0
		}

		width := f.cidWidth(cid)
		if f.vertical {
			width = f.verticalAdvance
		}
		glyphs = append(glyphs, Glyph{
			Code:  code,
			Text:  f.text(code, cid),
			Width: width,
		})
		data = data[n:]
	}
	return glyphs
}
