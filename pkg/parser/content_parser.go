package parser

import (
	"io"

	"github.com/pkg/errors"
)

// MaxNestingDepth bounds array and dictionary nesting in operands
const MaxNestingDepth = 256

// ErrNestingTooDeep is returned when operand arrays or dictionaries nest deeper
// than the configured bound.
var ErrNestingTooDeep = errors.New("parser: operand nesting too deep")

// ContentParser groups content-stream tokens into operations
type ContentParser struct {
	lexer    *Lexer
	maxDepth int
	operands []PDFObject
}

// NewContentParser creates a parser over a decoded content stream
func NewContentParser(data []byte) *ContentParser {
	return &ContentParser{
		lexer:    NewLexer(data),
		maxDepth: MaxNestingDepth,
	}
}

// SetMaxDepth overrides the nesting bound
func (p *ContentParser) SetMaxDepth(depth int) {
	if depth > 0 {
		p.maxDepth = depth
	}
}

// Next returns the next operation. It returns io.EOF once the stream is
// exhausted; operands left without an operator at the end are dropped.
func (p *ContentParser) Next() (*Operation, error) {
	p.operands = p.operands[:0]

	for {
		token := p.lexer.NextToken()

		switch token.Type {
		case TokenEOF:
			return nil, io.EOF

		case TokenKeyword:
			if obj, ok := token.Value.(PDFObject); ok {
				p.operands = append(p.operands, obj)
				continue
			}
			keyword := token.Keyword()
			if keyword == "BI" {
				return p.parseInlineImage()
			}
			return &Operation{Operator: keyword, Operands: p.takeOperands()}, nil

		case TokenInlineImage:
			// ID without BI: keep the data, the dictionary is lost
			data, _ := token.Value.([]byte)
			return &Operation{Operator: "BI", Operands: []PDFObject{InlineImage{Dict: PDFDict{}, Data: data}}}, nil

		default:
			obj, err := p.parseObject(token, 0)
			if err != nil {
				return nil, err
			}
			if obj != nil {
				p.operands = append(p.operands, obj)
			}
		}
	}
}

// ParseAll returns every operation in the stream. On a nesting error the
// operations read so far are returned together with the error.
func (p *ContentParser) ParseAll() ([]Operation, error) {
	var ops []Operation
	for {
		op, err := p.Next()
		if err == io.EOF {
			return ops, nil
		}
		if err != nil {
			return ops, err
		}
		ops = append(ops, *op)
	}
}

func (p *ContentParser) takeOperands() []PDFObject {
	if len(p.operands) == 0 {
		return nil
	}
	out := make([]PDFObject, len(p.operands))
	copy(out, p.operands)
	return out
}

// parseObject builds an operand starting at token
func (p *ContentParser) parseObject(token *Token, depth int) (PDFObject, error) {
	switch token.Type {
	case TokenNumber, TokenName:
		obj, _ := token.Value.(PDFObject)
		return obj, nil
	case TokenString:
		return token.Value.(PDFString), nil
	case TokenHexString:
		return token.Value.(PDFHexString), nil
	case TokenArrayStart:
		return p.parseArray(depth + 1)
	case TokenDictStart:
		return p.parseDict(depth + 1)
	case TokenKeyword:
		if obj, ok := token.Value.(PDFObject); ok {
			return obj, nil
		}
		return nil, nil
	default:
		// stray ']' or '>>'
		return nil, nil
	}
}

// parseArray parses an array after its opening bracket
func (p *ContentParser) parseArray(depth int) (PDFArray, error) {
	if depth > p.maxDepth {
		return nil, ErrNestingTooDeep
	}

	array := PDFArray{}
	for {
		token := p.lexer.NextToken()
		switch token.Type {
		case TokenArrayEnd:
			return array, nil
		case TokenEOF:
			return array, nil
		case TokenKeyword:
			if _, ok := token.Value.(PDFObject); !ok {
				// an operator inside an array means the ']' is missing
				p.lexer.UnreadToken(token)
				return array, nil
			}
		}

		obj, err := p.parseObject(token, depth)
		if err != nil {
			return nil, err
		}
		if obj != nil {
			array = append(array, obj)
		}
	}
}

// parseDict parses a dictionary after its opening <<
func (p *ContentParser) parseDict(depth int) (PDFDict, error) {
	if depth > p.maxDepth {
		return nil, ErrNestingTooDeep
	}

	dict := PDFDict{}
	for {
		token := p.lexer.NextToken()
		switch token.Type {
		case TokenDictEnd, TokenEOF:
			return dict, nil
		case TokenName:
		case TokenKeyword:
			if _, ok := token.Value.(PDFObject); !ok {
				p.lexer.UnreadToken(token)
				return dict, nil
			}
			continue
		default:
			// keys must be names; skip anything else
			continue
		}

		key := token.Value.(PDFName)
		valueToken := p.lexer.NextToken()
		if valueToken.Type == TokenDictEnd || valueToken.Type == TokenEOF {
			return dict, nil
		}
		value, err := p.parseObject(valueToken, depth)
		if err != nil {
			return nil, err
		}
		if value != nil {
			dict[key] = value
		}
	}
}

// parseInlineImage reads the key/value pairs between BI and ID and the image
// data the lexer returns for ID.
func (p *ContentParser) parseInlineImage() (*Operation, error) {
	dict := PDFDict{}
	for {
		token := p.lexer.NextToken()
		switch token.Type {
		case TokenInlineImage:
			data, _ := token.Value.([]byte)
			return &Operation{
				Operator: "BI",
				Operands: []PDFObject{InlineImage{Dict: dict, Data: data}},
			}, nil
		case TokenEOF:
			return &Operation{Operator: "BI", Operands: []PDFObject{InlineImage{Dict: dict}}}, nil
		case TokenName:
			key := token.Value.(PDFName)
			valueToken := p.lexer.NextToken()
			if valueToken.Type == TokenInlineImage || valueToken.Type == TokenEOF {
				p.lexer.UnreadToken(valueToken)
				continue
			}
			value, err := p.parseObject(valueToken, 0)
			if err != nil {
				return nil, errors.Wrap(err, "inline image dictionary")
			}
			if value != nil {
				dict[key] = value
			}
		}
	}
}
