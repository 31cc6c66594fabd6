package cmap

import (
	"io"

	"github.com/pkg/errors"

	"github.com/pyhub-apps/pdftext-golang/pkg/parser"
)

// ErrEmptyCMap is returned when a stream yields neither codespace ranges nor
// mappings
var ErrEmptyCMap = errors.New("cmap: no codespace ranges or mappings found")

// NameResolver maps a glyph name used as a bfchar destination to text
type NameResolver func(name string) (string, bool)

// Parser reads CMap streams
type Parser struct {
	names NameResolver
}

// ParserOption configures a Parser
type ParserOption func(*Parser)

// WithNameResolver sets the glyph-name lookup for name destinations
func WithNameResolver(resolver NameResolver) ParserOption {
	return func(p *Parser) {
		p.names = resolver
	}
}

// NewParser creates a CMap parser
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses a CMap stream with default options
func Parse(data []byte) (*CMap, error) {
	return NewParser().Parse(data)
}

// Parse parses a CMap stream. Entries that do not fit the expected pattern
// are skipped; an error is returned only when nothing usable was found or the
// operands nest too deeply.
func (p *Parser) Parse(data []byte) (*CMap, error) {
	cm := New()
	content := parser.NewContentParser(data)

	for {
		op, err := content.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "cmap")
		}

		switch op.Operator {
		case "endcodespacerange":
			p.codespaceRanges(cm, op.Operands)
		case "endbfchar":
			p.bfChars(cm, op.Operands)
		case "endbfrange":
			p.bfRanges(cm, op.Operands)
		case "endcidchar":
			p.cidChars(cm, op.Operands)
		case "endcidrange":
			p.cidRanges(cm, op.Operands)
		case "usecmap":
			p.useCMap(cm, op.Operands)
		case "def":
			p.definition(cm, op.Operands)
		}
	}

	if len(cm.Codespaces()) == 0 && cm.MappingCount() == 0 && cm.parent == nil {
		return nil, ErrEmptyCMap
	}
	return cm, nil
}

// codespaceRanges reads <low> <high> pairs
func (p *Parser) codespaceRanges(cm *CMap, operands []parser.PDFObject) {
	for i := 0; i+1 < len(operands); i += 2 {
		low, ok1 := parser.Bytes(operands[i])
		high, ok2 := parser.Bytes(operands[i+1])
		if !ok1 || !ok2 {
			continue
		}
		cm.AddCodespaceRange(low, high)
	}
}

// bfChars reads <src> <dst> pairs where dst is a hex string or a glyph name
func (p *Parser) bfChars(cm *CMap, operands []parser.PDFObject) {
	for i := 0; i+1 < len(operands); i += 2 {
		src, ok := parser.Bytes(operands[i])
		if !ok {
			continue
		}
		if text, ok := p.destination(operands[i+1]); ok {
			cm.AddUnicodeMapping(src, text)
		}
	}
}

// bfRanges reads <start> <end> dst triples where dst is a hex string to be
// incremented or an array of per-code destinations
func (p *Parser) bfRanges(cm *CMap, operands []parser.PDFObject) {
	for i := 0; i+2 < len(operands); i += 3 {
		start, ok1 := parser.Bytes(operands[i])
		end, ok2 := parser.Bytes(operands[i+1])
		if !ok1 || !ok2 {
			continue
		}

		switch dst := operands[i+2].(type) {
		case parser.PDFArray:
			values := make([]string, 0, len(dst))
			for _, item := range dst {
				text, _ := p.destination(item)
				values = append(values, text)
			}
			cm.AddUnicodeArray(start, end, values)
		default:
			if b, ok := parser.Bytes(dst); ok {
				cm.AddUnicodeRange(start, end, b)
			}
		}
	}
}

// cidChars reads <src> cid pairs
func (p *Parser) cidChars(cm *CMap, operands []parser.PDFObject) {
	for i := 0; i+1 < len(operands); i += 2 {
		src, ok := parser.Bytes(operands[i])
		cid, ok2 := parser.Number(operands[i+1])
		if !ok || !ok2 {
			continue
		}
		cm.AddCIDMapping(src, int(cid))
	}
}

// cidRanges reads <start> <end> cid triples
func (p *Parser) cidRanges(cm *CMap, operands []parser.PDFObject) {
	for i := 0; i+2 < len(operands); i += 3 {
		start, ok1 := parser.Bytes(operands[i])
		end, ok2 := parser.Bytes(operands[i+1])
		cid, ok3 := parser.Number(operands[i+2])
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		cm.AddCIDRange(start, end, int(cid))
	}
}

// useCMap links a predefined parent CMap
func (p *Parser) useCMap(cm *CMap, operands []parser.PDFObject) {
	if len(operands) == 0 {
		return
	}
	name, ok := operands[len(operands)-1].(parser.PDFName)
	if !ok {
		return
	}
	if parent, ok := Predefined(string(name)); ok {
		cm.parent = parent
	}
}

// definition picks up /CMapName and /WMode
func (p *Parser) definition(cm *CMap, operands []parser.PDFObject) {
	if len(operands) < 2 {
		return
	}
	key, ok := operands[len(operands)-2].(parser.PDFName)
	if !ok {
		return
	}
	value := operands[len(operands)-1]
	switch key {
	case "CMapName":
		if name, ok := value.(parser.PDFName); ok {
			cm.Name = string(name)
		}
	case "WMode":
		if n, ok := parser.Number(value); ok {
			cm.WMode = int(n)
		}
	}
}

func (p *Parser) destination(obj parser.PDFObject) (string, bool) {
	switch v := obj.(type) {
	case parser.PDFName:
		if p.names != nil {
			return p.names(string(v))
		}
		return "", false
	default:
		if b, ok := parser.Bytes(obj); ok {
			return DecodeDestination(b), true
		}
		return "", false
	}
}
