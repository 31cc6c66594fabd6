package content

import (
	"github.com/pyhub-apps/pdftext-golang/pkg/font"
	"github.com/pyhub-apps/pdftext-golang/pkg/parser"
)

func opBeginText(p *Processor, _ *parser.Operation) {
	if p.text.InText {
		p.debugf("content: BT inside a text object\n")
	}
	p.text.Begin()
}

func opEndText(p *Processor, _ *parser.Operation) {
	if !p.text.InText {
		p.debugf("content: ET outside a text object\n")
	}
	p.text.InText = false
}

func opCharSpacing(p *Processor, op *parser.Operation) {
	if v, ok := number(op); ok {
		p.stack.Current().CharSpacing = v
	}
}

func opWordSpacing(p *Processor, op *parser.Operation) {
	if v, ok := number(op); ok {
		p.stack.Current().WordSpacing = v
	}
}

func opHorizontalScaling(p *Processor, op *parser.Operation) {
	if v, ok := number(op); ok {
		p.stack.Current().HorizontalScaling = v
	}
}

func opLeading(p *Processor, op *parser.Operation) {
	if v, ok := number(op); ok {
		p.stack.Current().Leading = v
	}
}

func opRenderMode(p *Processor, op *parser.Operation) {
	if v, ok := number(op); ok {
		p.stack.Current().RenderMode = int(v)
	}
}

func opRise(p *Processor, op *parser.Operation) {
	if v, ok := number(op); ok {
		p.stack.Current().Rise = v
	}
}

func opFont(p *Processor, op *parser.Operation) {
	if len(op.Operands) < 2 {
		p.debugf("content: Tf needs a font and a size, got %v\n", op)
		return
	}
	fontName, ok := nameOperand(op, len(op.Operands)-2)
	if !ok {
		return
	}
	size, ok := number(op)
	if !ok {
		return
	}
	gs := p.stack.Current()
	gs.Font = p.loadFont(fontName)
	gs.FontSize = size
}

func opMoveText(p *Processor, op *parser.Operation) {
	if v, ok := numbers(op, 2); ok {
		p.text.MoveLine(v[0], v[1])
	}
}

func opMoveTextSetLeading(p *Processor, op *parser.Operation) {
	if v, ok := numbers(op, 2); ok {
		p.stack.Current().Leading = -v[1]
		p.text.MoveLine(v[0], v[1])
	}
}

func opTextMatrix(p *Processor, op *parser.Operation) {
	if v, ok := numbers(op, 6); ok {
		p.text.SetMatrix(matrixOf(v))
	}
}

func opNextLine(p *Processor, _ *parser.Operation) {
	p.text.MoveLine(0, -p.stack.Current().Leading)
}

func opShowText(p *Processor, op *parser.Operation) {
	if len(op.Operands) == 0 {
		return
	}
	if data, ok := parser.Bytes(op.Operands[len(op.Operands)-1]); ok {
		p.showText(data)
	}
}

func opNextLineShowText(p *Processor, op *parser.Operation) {
	opNextLine(p, op)
	opShowText(p, op)
}

func opSpacingNextLineShowText(p *Processor, op *parser.Operation) {
	if len(op.Operands) < 3 {
		p.debugf("content: \" needs 3 operands, got %v\n", op)
		return
	}
	aw, ok1 := parser.Number(op.Operands[len(op.Operands)-3])
	ac, ok2 := parser.Number(op.Operands[len(op.Operands)-2])
	if ok1 && ok2 {
		gs := p.stack.Current()
		gs.WordSpacing = aw
		gs.CharSpacing = ac
	}
	opNextLineShowText(p, op)
}

// opShowTextArray shows each string of a TJ array in order. Numbers move
// the text position back by n/1000 of the font size.
func opShowTextArray(p *Processor, op *parser.Operation) {
	if len(op.Operands) == 0 {
		return
	}
	arr, ok := op.Operands[len(op.Operands)-1].(parser.PDFArray)
	if !ok {
		p.debugf("content: TJ needs an array, got %v\n", op)
		return
	}
	for _, item := range arr {
		if data, ok := parser.Bytes(item); ok {
			p.showText(data)
			continue
		}
		if n, ok := parser.Number(item); ok {
			p.adjustText(n)
		}
	}
}

func (p *Processor) adjustText(n float64) {
	if !p.text.InText {
		return
	}
	gs := p.stack.Current()
	if gs.Font != nil && gs.Font.IsVertical() {
		p.text.Advance(0, -n/1000*gs.FontSize)
		return
	}
	p.text.Advance(-n/1000*gs.FontSize*gs.HorizontalScaling/100, 0)
}

// showText decodes a string with the current font, advances Tm past each
// glyph and reports the string. Horizontal glyphs advance by
// ((w0/1000)·Tfs + Tc + Tw)·Th; vertical ones by (−w1/1000)·Tfs + Tc + Tw.
// Tw applies only after a single-byte code 32.
func (p *Processor) showText(data []byte) {
	if !p.text.InText {
		p.debugf("content: text shown outside BT/ET\n")
		return
	}
	gs := p.stack.Current()
	if gs.Font == nil {
		p.debugf("content: text shown without a font, using fallback\n")
		gs.Font = font.Fallback()
	}

	th := gs.HorizontalScaling / 100
	vertical := gs.Font.IsVertical()
	glyphs := gs.Font.Decode(data)
	spans := make([]glyphSpan, 0, len(glyphs))

	var pos Vector
	for _, g := range glyphs {
		wordSpacing := 0.0
		if g.IsWordSpace() {
			wordSpacing = gs.WordSpacing
		}
		var adv Vector
		if vertical {
			adv.Y = -g.Width/1000*gs.FontSize + gs.CharSpacing + wordSpacing
		} else {
			adv.X = (g.Width/1000*gs.FontSize + gs.CharSpacing + wordSpacing) * th
		}
		spans = append(spans, glyphSpan{text: g.Text, start: pos, end: pos.Add(adv)})
		pos = pos.Add(adv)
	}

	info := newTextRenderInfo(*gs, p.text.Matrix, spans, pos)
	p.text.Advance(pos.X, pos.Y)
	p.emitText(info)
}
