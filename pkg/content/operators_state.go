package content

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/pyhub-apps/pdftext-golang/pkg/objects"
	"github.com/pyhub-apps/pdftext-golang/pkg/parser"
)

func opSave(p *Processor, _ *parser.Operation) {
	p.stack.Save()
}

func opRestore(p *Processor, _ *parser.Operation) {
	if !p.stack.Restore() {
		p.debugf("content: Q without matching q\n")
	}
}

func opConcat(p *Processor, op *parser.Operation) {
	v, ok := numbers(op, 6)
	if !ok {
		p.debugf("content: cm needs 6 numbers, got %v\n", op)
		return
	}
	gs := p.stack.Current()
	gs.CTM = matrixOf(v).Multiply(gs.CTM)
}

func opLineWidth(p *Processor, op *parser.Operation) {
	if v, ok := number(op); ok {
		p.stack.Current().LineWidth = v
	}
}

func opLineCap(p *Processor, op *parser.Operation) {
	if v, ok := number(op); ok {
		p.stack.Current().LineCap = int(v)
	}
}

func opLineJoin(p *Processor, op *parser.Operation) {
	if v, ok := number(op); ok {
		p.stack.Current().LineJoin = int(v)
	}
}

func opMiterLimit(p *Processor, op *parser.Operation) {
	if v, ok := number(op); ok {
		p.stack.Current().MiterLimit = v
	}
}

func opDash(p *Processor, op *parser.Operation) {
	if len(op.Operands) < 2 {
		return
	}
	arr, ok := op.Operands[len(op.Operands)-2].(parser.PDFArray)
	if !ok {
		return
	}
	phase, ok := parser.Number(op.Operands[len(op.Operands)-1])
	if !ok {
		return
	}
	dash := make([]float64, 0, len(arr))
	for _, item := range arr {
		if v, ok := parser.Number(item); ok {
			dash = append(dash, v)
		}
	}
	gs := p.stack.Current()
	gs.DashPattern = dash
	gs.DashPhase = phase
}

func opRenderingIntent(p *Processor, op *parser.Operation) {
	if n, ok := lastName(op); ok {
		p.stack.Current().RenderingIntent = n
	}
}

func opFlatness(p *Processor, op *parser.Operation) {
	if v, ok := number(op); ok {
		p.stack.Current().Flatness = v
	}
}

func opExtGState(p *Processor, op *parser.Operation) {
	n, ok := lastName(op)
	if !ok {
		return
	}
	dict, ok := p.resources.ExtGState(n)
	if !ok {
		p.debugf("content: ExtGState /%s not in resources\n", n)
		return
	}
	p.applyExtGState(dict)
}

// applyExtGState copies the entries of a graphics state parameter
// dictionary that affect text and line state
func (p *Processor) applyExtGState(dict types.Dict) {
	r := p.resources.resolver()
	gs := p.stack.Current()
	for key, val := range dict {
		switch key {
		case "LW":
			if v, ok := objects.Number(r, val); ok {
				gs.LineWidth = v
			}
		case "LC":
			if v, ok := objects.Number(r, val); ok {
				gs.LineCap = int(v)
			}
		case "LJ":
			if v, ok := objects.Number(r, val); ok {
				gs.LineJoin = int(v)
			}
		case "ML":
			if v, ok := objects.Number(r, val); ok {
				gs.MiterLimit = v
			}
		case "FL":
			if v, ok := objects.Number(r, val); ok {
				gs.Flatness = v
			}
		case "RI":
			if v, ok := objects.Name(r, val); ok {
				gs.RenderingIntent = v
			}
		case "D":
			arr, ok := objects.Array(r, val)
			if !ok || len(arr) != 2 {
				continue
			}
			if dash, ok := objects.Numbers(r, arr[0]); ok {
				gs.DashPattern = dash
			}
			gs.DashPhase, _ = objects.Number(r, arr[1])
		case "Font":
			arr, ok := objects.Array(r, val)
			if !ok || len(arr) != 2 {
				continue
			}
			size, ok := objects.Number(r, arr[1])
			if !ok {
				continue
			}
			gs.Font = p.cfg.fonts.Load(r, arr[0])
			gs.FontSize = size
		}
	}
}

func matrixOf(v []float64) Matrix {
	return NewMatrix(v[0], v[1], v[2], v[3], v[4], v[5])
}
