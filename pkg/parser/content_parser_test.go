package parser

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentParserOperations(t *testing.T) {
	stream := `q 1 0 0 1 72 720 cm BT /F1 12 Tf [(A) -250 (B)] TJ ET Q`

	ops, err := NewContentParser([]byte(stream)).ParseAll()
	require.NoError(t, err)

	operators := make([]string, len(ops))
	for i, op := range ops {
		operators[i] = op.Operator
	}
	assert.Equal(t, []string{"q", "cm", "BT", "Tf", "TJ", "ET", "Q"}, operators)

	assert.Len(t, ops[1].Operands, 6)
	assert.Equal(t, []PDFObject{PDFName("F1"), PDFInt(12)}, ops[3].Operands)

	array, ok := ops[4].Operands[0].(PDFArray)
	require.True(t, ok)
	assert.Equal(t, PDFArray{PDFString("A"), PDFInt(-250), PDFString("B")}, array)
}

func TestContentParserDictionaryOperands(t *testing.T) {
	stream := `/Span << /ActualText (Hello) /MCID 3 /Nested << /K [1 2] >> >> BDC EMC`

	ops, err := NewContentParser([]byte(stream)).ParseAll()
	require.NoError(t, err)
	require.Len(t, ops, 2)

	bdc := ops[0]
	assert.Equal(t, "BDC", bdc.Operator)
	require.Len(t, bdc.Operands, 2)

	props, ok := bdc.Operands[1].(PDFDict)
	require.True(t, ok)
	text, ok := props.GetString("ActualText")
	require.True(t, ok)
	assert.Equal(t, "Hello", string(text))
	mcid, ok := props.GetNumber("MCID")
	require.True(t, ok)
	assert.Equal(t, 3.0, mcid)
	nested, ok := props.GetDict("Nested")
	require.True(t, ok)
	k, ok := nested.GetArray("K")
	require.True(t, ok)
	assert.Len(t, k, 2)
}

func TestContentParserInlineImage(t *testing.T) {
	stream := "q BI /W 4 /H 1 /F [/AHx] ID \x01\x02Tj\x03 EI Q"

	ops, err := NewContentParser([]byte(stream)).ParseAll()
	require.NoError(t, err)
	require.Len(t, ops, 3)

	assert.Equal(t, "BI", ops[1].Operator)
	image, ok := ops[1].Operands[0].(InlineImage)
	require.True(t, ok)
	assert.Equal(t, []byte("\x01\x02Tj\x03"), image.Data)
	w, _ := image.Dict.GetNumber("W")
	assert.Equal(t, 4.0, w)
	assert.Equal(t, "Q", ops[2].Operator)
}

func TestContentParserNestingBound(t *testing.T) {
	deep := strings.Repeat("[", MaxNestingDepth+10) + strings.Repeat("]", MaxNestingDepth+10) + " Tj"

	ops, err := NewContentParser([]byte("BT "+deep)).ParseAll()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNestingTooDeep))
	require.Len(t, ops, 1)
	assert.Equal(t, "BT", ops[0].Operator)

	parser := NewContentParser([]byte("[[[1]]] Tj"))
	parser.SetMaxDepth(2)
	_, err = parser.Next()
	assert.True(t, errors.Is(err, ErrNestingTooDeep))
}

func TestContentParserRecovery(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		operators []string
	}{
		{"Unclosed array", `[(a) (b) TJ q`, []string{"TJ", "q"}},
		{"Unclosed dict", `/P << /A 1 BDC EMC`, []string{"BDC", "EMC"}},
		{"Trailing operands dropped", `BT 1 2`, []string{"BT"}},
		{"Stray closers", `] >> Q`, []string{"Q"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops, err := NewContentParser([]byte(tt.input)).ParseAll()
			require.NoError(t, err)
			var operators []string
			for _, op := range ops {
				operators = append(operators, op.Operator)
			}
			assert.Equal(t, tt.operators, operators)
		})
	}
}

func TestOperationString(t *testing.T) {
	op := Operation{Operator: "Tf", Operands: []PDFObject{PDFName("F1"), PDFFloat(9.5)}}
	assert.Equal(t, "/F1 9.5 Tf", op.String())
}
