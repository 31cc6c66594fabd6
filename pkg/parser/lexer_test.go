package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectTokens(data string) []*Token {
	lexer := NewLexer([]byte(data))
	var tokens []*Token
	for {
		token := lexer.NextToken()
		if token.Type == TokenEOF {
			return tokens
		}
		tokens = append(tokens, token)
	}
}

func TestLexerTokenTypes(t *testing.T) {
	tokens := collectTokens(`BT /F1 12 Tf 1.5 -.5 (Hi) <4869> [ ] << >> true null ET % comment`)

	expected := []TokenType{
		TokenKeyword, TokenName, TokenNumber, TokenKeyword,
		TokenNumber, TokenNumber, TokenString, TokenHexString,
		TokenArrayStart, TokenArrayEnd, TokenDictStart, TokenDictEnd,
		TokenKeyword, TokenKeyword, TokenKeyword,
	}
	require.Len(t, tokens, len(expected))
	for i, tt := range expected {
		assert.Equal(t, tt, tokens[i].Type, "token %d", i)
	}

	assert.Equal(t, PDFName("F1"), tokens[1].Value)
	assert.Equal(t, PDFInt(12), tokens[2].Value)
	assert.Equal(t, PDFFloat(1.5), tokens[4].Value)
	assert.Equal(t, PDFFloat(-0.5), tokens[5].Value)
	assert.Equal(t, PDFString("Hi"), tokens[6].Value)
	assert.Equal(t, PDFHexString("Hi"), tokens[7].Value)
	assert.Equal(t, PDFBool(true), tokens[12].Value)
	assert.Equal(t, PDFNull{}, tokens[13].Value)
	assert.Equal(t, "ET", tokens[14].Keyword())
}

func TestLexerLiteralStrings(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Plain", `(Hello)`, "Hello"},
		{"Nested parens", `(a (b) c)`, "a (b) c"},
		{"Escapes", `(\n\r\t\(\)\\)`, "\n\r\t()\\"},
		{"Octal", `(\101\102\7)`, "AB\a"},
		{"Line continuation", "(ab\\\ncd)", "abcd"},
		{"Unknown escape kept", `(\q)`, "q"},
		{"Unterminated", `(abc`, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := collectTokens(tt.input)
			require.Len(t, tokens, 1)
			assert.Equal(t, TokenString, tokens[0].Type)
			assert.Equal(t, PDFString(tt.expected), tokens[0].Value)
		})
	}
}

func TestLexerHexStrings(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []byte
	}{
		{"Even", `<0041>`, []byte{0x00, 0x41}},
		{"Odd digit count pads zero", `<414>`, []byte{0x41, 0x40}},
		{"Whitespace", `<00 4 1>`, []byte{0x00, 0x41}},
		{"Lower case", `<ff>`, []byte{0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := collectTokens(tt.input)
			require.Len(t, tokens, 1)
			assert.Equal(t, PDFHexString(tt.expected), tokens[0].Value)
		})
	}
}

func TestLexerMalformedInput(t *testing.T) {
	t.Run("Malformed numbers become zero", func(t *testing.T) {
		tokens := collectTokens(`1.2.3 --4 - 7`)
		require.Len(t, tokens, 4)
		assert.Equal(t, PDFFloat(0), tokens[0].Value)
		assert.Equal(t, PDFInt(0), tokens[1].Value)
		assert.Equal(t, PDFInt(0), tokens[2].Value)
		assert.Equal(t, PDFInt(7), tokens[3].Value)
	})

	t.Run("Stray delimiters are skipped", func(t *testing.T) {
		tokens := collectTokens(`> ) } q`)
		require.Len(t, tokens, 1)
		assert.Equal(t, "q", tokens[0].Keyword())
	})

	t.Run("Invalid byte ends hex string", func(t *testing.T) {
		tokens := collectTokens(`<41zz> Tj`)
		require.NotEmpty(t, tokens)
		assert.Equal(t, PDFHexString("A"), tokens[0].Value)
		assert.Equal(t, "Tj", tokens[len(tokens)-1].Keyword())
	})

	t.Run("Missing whitespace", func(t *testing.T) {
		tokens := collectTokens(`/F1 12Tf(a)Tj`)
		require.Len(t, tokens, 5)
		assert.Equal(t, PDFInt(12), tokens[1].Value)
		assert.Equal(t, "Tf", tokens[2].Keyword())
		assert.Equal(t, "Tj", tokens[4].Keyword())
	})

	t.Run("Name escapes", func(t *testing.T) {
		tokens := collectTokens(`/A#20B /C#zz`)
		require.Len(t, tokens, 2)
		assert.Equal(t, PDFName("A B"), tokens[0].Value)
		assert.Equal(t, PDFName("C#zz"), tokens[1].Value)
	})
}

func TestLexerInlineImage(t *testing.T) {
	data := "BI /W 2 /H 1 /BPC 8 /CS /G ID \x00EI\xff EI Q"
	tokens := collectTokens(data)

	var image *Token
	for _, token := range tokens {
		if token.Type == TokenInlineImage {
			image = token
		}
	}
	require.NotNil(t, image)
	assert.Equal(t, []byte("\x00EI\xff"), image.Value)
	assert.Equal(t, "Q", tokens[len(tokens)-1].Keyword())
}

func TestLexerUnread(t *testing.T) {
	lexer := NewLexer([]byte("a b"))
	first := lexer.NextToken()
	lexer.UnreadToken(first)
	assert.Same(t, first, lexer.NextToken())
	assert.Equal(t, "b", lexer.NextToken().Keyword())
	assert.Equal(t, TokenEOF, lexer.NextToken().Type)
}
