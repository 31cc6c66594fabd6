package content

import (
	"bytes"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/pyhub-apps/pdftext-golang/pkg/objects"
	"github.com/pyhub-apps/pdftext-golang/pkg/parser"
)

// markedContent is one open BMC or BDC sequence
type markedContent struct {
	tag  string
	mcid int

	suppressed bool

	// replacement is the /ActualText or /E text shown instead of the
	// glyphs of the sequence
	replacement    string
	hasReplacement bool
	replaced       bool
}

// suppressedTags hold content that is not part of the page text
var suppressedTags = map[string]bool{
	"artifact":  true,
	"placedpdf": true,
}

func opBeginMarkedContent(p *Processor, op *parser.Operation) {
	tag, ok := nameOperand(op, 0)
	if !ok {
		p.debugf("content: BMC needs a tag, got %v\n", op)
	}
	p.beginMarkedContent(tag, nil)
}

func opBeginMarkedContentProps(p *Processor, op *parser.Operation) {
	tag, ok := nameOperand(op, 0)
	if !ok {
		p.debugf("content: BDC needs a tag, got %v\n", op)
	}

	var props map[string]interface{}
	if len(op.Operands) > 1 {
		switch v := op.Operands[1].(type) {
		case parser.PDFDict:
			props = inlineProperties(v)
		case parser.PDFName:
			if dict, ok := p.resources.Properties(string(v)); ok {
				props = resourceProperties(p.resources.resolver(), dict, 0)
			} else {
				p.debugf("content: property list /%s not in resources\n", v)
			}
		}
	}
	p.beginMarkedContent(tag, props)
}

func opEndMarkedContent(p *Processor, _ *parser.Operation) {
	if len(p.marked) <= p.markedBase {
		p.debugf("content: EMC without matching BMC/BDC\n")
		return
	}
	p.marked = p.marked[:len(p.marked)-1]
	if l, ok := p.listener.(MarkedContentListener); ok {
		l.EndMarkedContent()
	}
}

func (p *Processor) beginMarkedContent(tag string, props map[string]interface{}) {
	mc := markedContent{tag: tag, mcid: -1}

	if p.cfg.filterMarked {
		parentSuppressed := len(p.marked) > 0 && p.marked[len(p.marked)-1].suppressed
		mc.suppressed = parentSuppressed || suppressedTags[strings.ToLower(tag)]
	}
	if v, ok := props["MCID"].(int); ok {
		mc.mcid = v
	}
	for _, key := range []string{"E", "ActualText"} {
		if text, ok := props[key].(string); ok {
			mc.replacement = text
			mc.hasReplacement = true
			break
		}
	}

	p.marked = append(p.marked, mc)
	if l, ok := p.listener.(MarkedContentListener); ok {
		l.BeginMarkedContent(tag, props)
	}
}

// emitText reports a shown string, applying marked-content suppression and
// replacement text. A replaced sequence reports its text once, at the
// position of its first string.
func (p *Processor) emitText(info *TextRenderInfo) {
	if p.listener == nil {
		return
	}
	if n := len(p.marked); n > 0 {
		if p.marked[n-1].suppressed {
			return
		}
		tags := make([]string, n)
		for i := range p.marked {
			tags[i] = p.marked[i].tag
			if p.marked[i].mcid >= 0 {
				info.mcid = p.marked[i].mcid
			}
		}
		info.tags = tags

		for i := range p.marked {
			mc := &p.marked[i]
			if !mc.hasReplacement {
				continue
			}
			if mc.replaced || mc.replacement == "" {
				mc.replaced = true
				return
			}
			mc.replaced = true
			info = info.withText(mc.replacement)
			break
		}
	}
	p.listener.RenderText(info)
}

// inlineProperties converts a BDC property dictionary
func inlineProperties(dict parser.PDFDict) map[string]interface{} {
	out := make(map[string]interface{}, len(dict))
	for k, v := range dict {
		out[string(k)] = inlineValue(v)
	}
	return out
}

func inlineValue(obj parser.PDFObject) interface{} {
	switch v := obj.(type) {
	case parser.PDFInt:
		return int(v)
	case parser.PDFFloat:
		return float64(v)
	case parser.PDFBool:
		return bool(v)
	case parser.PDFName:
		return string(v)
	case parser.PDFString:
		return DecodeTextString(v)
	case parser.PDFHexString:
		return DecodeTextString(v)
	case parser.PDFArray:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = inlineValue(item)
		}
		return out
	case parser.PDFDict:
		return inlineProperties(v)
	}
	return nil
}

// resourceProperties converts a property list from the resources. Nesting
// is bounded so reference cycles terminate.
func resourceProperties(r Resolver, dict types.Dict, depth int) map[string]interface{} {
	out := make(map[string]interface{}, len(dict))
	for k, v := range dict {
		out[k] = resourceValue(r, v, depth+1)
	}
	return out
}

func resourceValue(r Resolver, obj types.Object, depth int) interface{} {
	if depth > 8 {
		return nil
	}
	switch v := objects.Resolve(r, obj).(type) {
	case types.Integer:
		return v.Value()
	case types.Float:
		return float64(v)
	case types.Boolean:
		return bool(v)
	case types.Name:
		return string(v)
	case types.StringLiteral, types.HexLiteral:
		b, _ := objects.StringBytes(r, v)
		return DecodeTextString(b)
	case types.Array:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = resourceValue(r, item, depth+1)
		}
		return out
	case types.Dict:
		return resourceProperties(r, v, depth)
	}
	return nil
}

var (
	utf16BOM = []byte{0xFE, 0xFF}
	utf8BOM  = []byte{0xEF, 0xBB, 0xBF}
)

// DecodeTextString decodes a PDF text string: UTF-16BE or UTF-8 with a byte
// order mark, otherwise a single-byte encoding read as Latin-1.
func DecodeTextString(b []byte) string {
	switch {
	case bytes.HasPrefix(b, utf16BOM):
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		if out, err := dec.Bytes(b); err == nil {
			return string(out)
		}
	case bytes.HasPrefix(b, utf8BOM):
		return string(b[len(utf8BOM):])
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}
