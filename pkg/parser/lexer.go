package parser

import (
	"bytes"
	"strconv"
)

// TokenType represents the type of a content-stream token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenNumber
	TokenString
	TokenHexString
	TokenName
	TokenKeyword
	TokenArrayStart
	TokenArrayEnd
	TokenDictStart
	TokenDictEnd
	TokenInlineImage
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenNumber:
		return "Number"
	case TokenString:
		return "String"
	case TokenHexString:
		return "HexString"
	case TokenName:
		return "Name"
	case TokenKeyword:
		return "Keyword"
	case TokenArrayStart:
		return "ArrayStart"
	case TokenArrayEnd:
		return "ArrayEnd"
	case TokenDictStart:
		return "DictStart"
	case TokenDictEnd:
		return "DictEnd"
	case TokenInlineImage:
		return "InlineImage"
	default:
		return "Unknown"
	}
}

// Token represents a content-stream token.
//
// Value holds a PDFObject for numbers, strings, names and the true/false/null
// keywords, the operator text for other keywords, and the raw sample bytes for
// an inline image.
type Token struct {
	Type  TokenType
	Value interface{}
}

// Keyword returns the operator text of a keyword token
func (t *Token) Keyword() string {
	if s, ok := t.Value.(string); ok {
		return s
	}
	return ""
}

// Lexer tokenizes a decoded content stream held in memory.
//
// The lexer never fails: malformed input ends the current token at the first
// byte that cannot belong to it and scanning resumes from there.
type Lexer struct {
	data         []byte
	pos          int
	buffer       []byte
	pushedTokens []*Token
}

// NewLexer creates a new lexer over data
func NewLexer(data []byte) *Lexer {
	return &Lexer{
		data:   data,
		buffer: make([]byte, 0, 64),
	}
}

// UnreadToken pushes a token back to be read again
func (l *Lexer) UnreadToken(token *Token) {
	l.pushedTokens = append(l.pushedTokens, token)
}

// Position returns the current offset in the stream
func (l *Lexer) Position() int {
	return l.pos
}

// NextToken returns the next token from the stream
func (l *Lexer) NextToken() *Token {
	if len(l.pushedTokens) > 0 {
		token := l.pushedTokens[len(l.pushedTokens)-1]
		l.pushedTokens = l.pushedTokens[:len(l.pushedTokens)-1]
		return token
	}

	for {
		l.skipWhitespaceAndComments()
		if l.pos >= len(l.data) {
			return &Token{Type: TokenEOF}
		}

		ch := l.data[l.pos]
		switch ch {
		case '[':
			l.pos++
			return &Token{Type: TokenArrayStart}
		case ']':
			l.pos++
			return &Token{Type: TokenArrayEnd}
		case '<':
			if l.peekAt(1) == '<' {
				l.pos += 2
				return &Token{Type: TokenDictStart}
			}
			return l.readHexString()
		case '>':
			if l.peekAt(1) == '>' {
				l.pos += 2
				return &Token{Type: TokenDictEnd}
			}
			// stray '>'
			l.pos++
			continue
		case ')', '{', '}':
			l.pos++
			continue
		case '(':
			return l.readString()
		case '/':
			return l.readName()
		case '+', '-', '.', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			return l.readNumber()
		default:
			return l.readKeyword()
		}
	}
}

// skipWhitespaceAndComments skips whitespace and comments
func (l *Lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.data) {
		ch := l.data[l.pos]
		if isWhitespace(ch) {
			l.pos++
			continue
		}
		if ch == '%' {
			for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
			continue
		}
		return
	}
}

// peekAt returns the byte at offset n from the current position, or 0 past the end
func (l *Lexer) peekAt(n int) byte {
	if l.pos+n < len(l.data) {
		return l.data[l.pos+n]
	}
	return 0
}

// readNumber reads a number token. Malformed numbers such as "1.2.3" or "--4"
// become zero rather than aborting the stream.
func (l *Lexer) readNumber() *Token {
	start := l.pos
	for l.pos < len(l.data) {
		ch := l.data[l.pos]
		if ch == '+' || ch == '-' || ch == '.' || (ch >= '0' && ch <= '9') {
			l.pos++
			continue
		}
		break
	}

	raw := l.data[start:l.pos]
	if bytes.IndexByte(raw, '.') >= 0 {
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return &Token{Type: TokenNumber, Value: PDFFloat(0)}
		}
		return &Token{Type: TokenNumber, Value: PDFFloat(f)}
	}

	i, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		// out of int64 range still has a useful float value
		if f, ferr := strconv.ParseFloat(string(raw), 64); ferr == nil {
			return &Token{Type: TokenNumber, Value: PDFFloat(f)}
		}
		return &Token{Type: TokenNumber, Value: PDFInt(0)}
	}
	return &Token{Type: TokenNumber, Value: PDFInt(i)}
}

// readString reads a literal string token. An unterminated string ends at EOF.
func (l *Lexer) readString() *Token {
	l.buffer = l.buffer[:0]
	l.pos++ // consume opening (

	parenCount := 1
	for parenCount > 0 && l.pos < len(l.data) {
		ch := l.data[l.pos]
		l.pos++

		switch ch {
		case '\\':
			if l.pos >= len(l.data) {
				break
			}
			esc := l.data[l.pos]
			l.pos++
			switch esc {
			case 'n':
				l.buffer = append(l.buffer, '\n')
			case 'r':
				l.buffer = append(l.buffer, '\r')
			case 't':
				l.buffer = append(l.buffer, '\t')
			case 'b':
				l.buffer = append(l.buffer, '\b')
			case 'f':
				l.buffer = append(l.buffer, '\f')
			case '\r':
				// line continuation
				if l.pos < len(l.data) && l.data[l.pos] == '\n' {
					l.pos++
				}
			case '\n':
			default:
				if esc >= '0' && esc <= '7' {
					val := int(esc - '0')
					for i := 0; i < 2 && l.pos < len(l.data); i++ {
						d := l.data[l.pos]
						if d < '0' || d > '7' {
							break
						}
						val = val*8 + int(d-'0')
						l.pos++
					}
					l.buffer = append(l.buffer, byte(val))
				} else {
					l.buffer = append(l.buffer, esc)
				}
			}
		case '(':
			parenCount++
			l.buffer = append(l.buffer, ch)
		case ')':
			parenCount--
			if parenCount > 0 {
				l.buffer = append(l.buffer, ch)
			}
		case '\r':
			// EOL markers inside a string are read as a single newline
			if l.pos < len(l.data) && l.data[l.pos] == '\n' {
				l.pos++
			}
			l.buffer = append(l.buffer, '\n')
		default:
			l.buffer = append(l.buffer, ch)
		}
	}

	return &Token{Type: TokenString, Value: PDFString(append([]byte(nil), l.buffer...))}
}

// readHexString reads a hexadecimal string token. The token ends at '>' or at
// the first byte that is neither a hex digit nor whitespace.
func (l *Lexer) readHexString() *Token {
	l.buffer = l.buffer[:0]
	l.pos++ // consume <

	for l.pos < len(l.data) {
		ch := l.data[l.pos]
		if ch == '>' {
			l.pos++
			break
		}
		if isWhitespace(ch) {
			l.pos++
			continue
		}
		if !isHexDigit(ch) {
			break
		}
		l.buffer = append(l.buffer, ch)
		l.pos++
	}

	if len(l.buffer)%2 != 0 {
		l.buffer = append(l.buffer, '0')
	}

	result := make([]byte, len(l.buffer)/2)
	for i := range result {
		result[i] = hexValue(l.buffer[2*i])<<4 | hexValue(l.buffer[2*i+1])
	}

	return &Token{Type: TokenHexString, Value: PDFHexString(result)}
}

// readName reads a name token
func (l *Lexer) readName() *Token {
	l.buffer = l.buffer[:0]
	l.pos++ // consume /

	for l.pos < len(l.data) {
		ch := l.data[l.pos]
		if isDelimiter(ch) || isWhitespace(ch) {
			break
		}
		l.pos++

		if ch == '#' && isHexDigit(l.peekAt(0)) && isHexDigit(l.peekAt(1)) {
			l.buffer = append(l.buffer, hexValue(l.data[l.pos])<<4|hexValue(l.data[l.pos+1]))
			l.pos += 2
			continue
		}
		l.buffer = append(l.buffer, ch)
	}

	return &Token{Type: TokenName, Value: PDFName(l.buffer)}
}

// readKeyword reads a keyword token
func (l *Lexer) readKeyword() *Token {
	start := l.pos
	for l.pos < len(l.data) {
		ch := l.data[l.pos]
		if isDelimiter(ch) || isWhitespace(ch) {
			break
		}
		l.pos++
	}

	keyword := string(l.data[start:l.pos])

	switch keyword {
	case "true":
		return &Token{Type: TokenKeyword, Value: PDFBool(true)}
	case "false":
		return &Token{Type: TokenKeyword, Value: PDFBool(false)}
	case "null":
		return &Token{Type: TokenKeyword, Value: PDFNull{}}
	case "ID":
		return l.readInlineImageData()
	default:
		return &Token{Type: TokenKeyword, Value: keyword}
	}
}

// readInlineImageData consumes the binary samples following an ID keyword up to
// and including the terminating EI keyword.
func (l *Lexer) readInlineImageData() *Token {
	// exactly one whitespace byte separates ID from the data
	if l.pos < len(l.data) && isWhitespace(l.data[l.pos]) {
		l.pos++
	}

	start := l.pos
	for i := start; i+1 < len(l.data); i++ {
		if l.data[i] != 'E' || l.data[i+1] != 'I' {
			continue
		}
		if i > start && !isWhitespace(l.data[i-1]) {
			continue
		}
		if i+2 < len(l.data) && !isWhitespace(l.data[i+2]) && !isDelimiter(l.data[i+2]) {
			continue
		}
		end := i
		if end > start && isWhitespace(l.data[end-1]) {
			end--
		}
		l.pos = i + 2
		return &Token{Type: TokenInlineImage, Value: append([]byte(nil), l.data[start:end]...)}
	}

	// no EI: the rest of the stream is image data
	l.pos = len(l.data)
	return &Token{Type: TokenInlineImage, Value: append([]byte(nil), l.data[start:]...)}
}

// Helper functions
func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f' || ch == 0
}

func isDelimiter(ch byte) bool {
	return ch == '(' || ch == ')' || ch == '<' || ch == '>' ||
		ch == '[' || ch == ']' || ch == '{' || ch == '}' ||
		ch == '/' || ch == '%'
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'A' && ch <= 'F') || (ch >= 'a' && ch <= 'f')
}

func hexValue(ch byte) byte {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0'
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10
	case ch >= 'A' && ch <= 'F':
		return ch - 'A' + 10
	}
	return 0
}
