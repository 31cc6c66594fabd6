package content

import "github.com/pyhub-apps/pdftext-golang/pkg/parser"

func opFillGray(p *Processor, op *parser.Operation)   { p.setDeviceColor(op, "DeviceGray", 1, false) }
func opStrokeGray(p *Processor, op *parser.Operation) { p.setDeviceColor(op, "DeviceGray", 1, true) }
func opFillRGB(p *Processor, op *parser.Operation)    { p.setDeviceColor(op, "DeviceRGB", 3, false) }
func opStrokeRGB(p *Processor, op *parser.Operation)  { p.setDeviceColor(op, "DeviceRGB", 3, true) }
func opFillCMYK(p *Processor, op *parser.Operation)   { p.setDeviceColor(op, "DeviceCMYK", 4, false) }
func opStrokeCMYK(p *Processor, op *parser.Operation) { p.setDeviceColor(op, "DeviceCMYK", 4, true) }

func opFillColorSpace(p *Processor, op *parser.Operation)   { p.setColorSpace(op, false) }
func opStrokeColorSpace(p *Processor, op *parser.Operation) { p.setColorSpace(op, true) }

func opFillColor(p *Processor, op *parser.Operation)   { p.setColor(op, false) }
func opStrokeColor(p *Processor, op *parser.Operation) { p.setColor(op, true) }

func (p *Processor) color(stroke bool) *Color {
	gs := p.stack.Current()
	if stroke {
		return &gs.StrokeColor
	}
	return &gs.FillColor
}

func (p *Processor) setDeviceColor(op *parser.Operation, space string, n int, stroke bool) {
	v, ok := numbers(op, n)
	if !ok {
		p.debugf("content: %s needs %d numbers\n", op.Operator, n)
		return
	}
	*p.color(stroke) = Color{Space: space, Components: v}
}

// setColorSpace selects a color space and resets the color to its initial
// value
func (p *Processor) setColorSpace(op *parser.Operation, stroke bool) {
	space, ok := lastName(op)
	if !ok {
		return
	}
	c := Color{Space: space}
	switch space {
	case "DeviceGray", "CalGray", "G":
		c.Components = []float64{0}
	case "DeviceRGB", "CalRGB", "RGB", "Lab":
		c.Components = []float64{0, 0, 0}
	case "DeviceCMYK", "CMYK":
		c.Components = []float64{0, 0, 0, 1}
	}
	*p.color(stroke) = c
}

// setColor handles sc, SC, scn and SCN. A trailing name selects a pattern,
// whose dictionary is validated.
func (p *Processor) setColor(op *parser.Operation, stroke bool) {
	c := p.color(stroke)
	var components []float64
	for _, operand := range op.Operands {
		if v, ok := parser.Number(operand); ok {
			components = append(components, v)
		}
	}
	c.Components = components
	c.Pattern = ""

	if pattern, ok := lastName(op); ok {
		c.Pattern = pattern
		p.checkPattern(pattern)
	}
}

func (p *Processor) checkPattern(name string) {
	obj, ok := p.resources.Pattern(name)
	if !ok {
		p.debugf("content: pattern /%s not in resources\n", name)
		return
	}
	if _, err := ParsePattern(p.resources.resolver(), obj); err != nil {
		p.record(err)
	}
}

func opShading(p *Processor, op *parser.Operation) {
	n, ok := lastName(op)
	if !ok {
		return
	}
	obj, ok := p.resources.Shading(n)
	if !ok {
		p.debugf("content: shading /%s not in resources\n", n)
		return
	}
	if _, err := ParseShading(p.resources.resolver(), obj); err != nil {
		p.record(err)
	}
}
