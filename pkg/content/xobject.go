package content

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/pyhub-apps/pdftext-golang/pkg/objects"
	"github.com/pyhub-apps/pdftext-golang/pkg/parser"
)

func opXObject(p *Processor, op *parser.Operation) {
	n, ok := lastName(op)
	if !ok {
		return
	}
	obj, ok := p.resources.XObject(n)
	if !ok {
		p.debugf("content: XObject /%s not in resources\n", n)
		return
	}
	r := p.resources.resolver()
	sd, ok := objects.Stream(r, obj)
	if !ok {
		p.debugf("content: XObject /%s is not a stream\n", n)
		return
	}

	subtype, _ := objects.Name(r, sd.Dict["Subtype"])
	switch subtype {
	case "Form":
		p.processForm(n, obj, sd)
	case "Image":
		w, _ := objects.Number(r, sd.Dict["Width"])
		h, _ := objects.Number(r, sd.Dict["Height"])
		p.renderImage(&ImageRenderInfo{
			Name:   n,
			CTM:    p.stack.Current().CTM,
			Width:  int(w),
			Height: int(h),
		})
	default:
		p.debugf("content: XObject /%s has unsupported subtype %q\n", n, subtype)
	}
}

// processForm runs a Form XObject inside its own save/restore. The form
// matrix is concatenated to the CTM and the form's resources replace the
// current ones when present. Graphics, text and marked-content state are
// the caller's again once the form returns. Recursion is bounded and
// cycles are skipped.
func (p *Processor) processForm(n string, obj types.Object, sd *types.StreamDict) {
	if p.formDepth >= p.cfg.maxFormDepth {
		p.debugf("content: form /%s exceeds depth %d, skipped\n", n, p.cfg.maxFormDepth)
		return
	}
	key, keyed := objects.Key(obj)
	if keyed && p.visiting[key] {
		p.debugf("content: form /%s draws itself, skipped\n", n)
		return
	}

	r := p.resources.resolver()
	data, err := objects.StreamContent(r, sd)
	if err != nil {
		p.debugf("content: form /%s: %v\n", n, err)
		return
	}

	res := p.resources
	if dict, ok := objects.Dict(r, sd.Dict["Resources"]); ok {
		res = NewResources(dict, r)
	}

	// the form draws on its own stack seeded from the current state, so an
	// unbalanced Q or EMC inside it cannot reach the caller's entries
	gs := p.stack.Current().Clone()
	if m, ok := objects.Numbers(r, sd.Dict["Matrix"]); ok && len(m) == 6 {
		gs.CTM = matrixOf(m).Multiply(gs.CTM)
	}

	savedStack, savedText, savedRes := p.stack, p.text, p.resources
	savedMarked, savedBase := p.marked, p.markedBase
	p.stack = newStateStackFrom(gs)
	p.marked = append([]markedContent(nil), savedMarked...)
	p.markedBase = len(p.marked)
	p.resources = res
	if keyed {
		p.visiting[key] = true
	}
	p.formDepth++

	// errors are recorded by process; the page goes on
	_ = p.process(data)

	p.formDepth--
	if keyed {
		delete(p.visiting, key)
	}
	if l, ok := p.listener.(MarkedContentListener); ok {
		for i := len(p.marked); i > p.markedBase; i-- {
			l.EndMarkedContent()
		}
	}
	for i := range savedMarked {
		savedMarked[i].replaced = p.marked[i].replaced
	}
	p.marked, p.markedBase = savedMarked, savedBase
	p.stack, p.text, p.resources = savedStack, savedText, savedRes
}

func opInlineImage(p *Processor, op *parser.Operation) {
	info := &ImageRenderInfo{CTM: p.stack.Current().CTM, Inline: true}
	if len(op.Operands) > 0 {
		if img, ok := op.Operands[0].(parser.InlineImage); ok {
			info.Width = inlineDimension(img.Dict, "W", "Width")
			info.Height = inlineDimension(img.Dict, "H", "Height")
		}
	}
	p.renderImage(info)
}

func inlineDimension(dict parser.PDFDict, keys ...parser.PDFName) int {
	for _, k := range keys {
		if v, ok := dict.GetNumber(k); ok {
			return int(v)
		}
	}
	return 0
}

func (p *Processor) renderImage(info *ImageRenderInfo) {
	if len(p.marked) > 0 && p.marked[len(p.marked)-1].suppressed {
		return
	}
	if l, ok := p.listener.(ImageListener); ok {
		l.RenderImage(info)
	}
}
