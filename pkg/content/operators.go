package content

import "github.com/pyhub-apps/pdftext-golang/pkg/parser"

// defaultOperators is the dispatch table every Processor starts from
var defaultOperators = map[string]OperatorFunc{
	// Graphics state
	"q":  opSave,
	"Q":  opRestore,
	"cm": opConcat,
	"w":  opLineWidth,
	"J":  opLineCap,
	"j":  opLineJoin,
	"M":  opMiterLimit,
	"d":  opDash,
	"ri": opRenderingIntent,
	"i":  opFlatness,
	"gs": opExtGState,

	// Color
	"g":   opFillGray,
	"G":   opStrokeGray,
	"rg":  opFillRGB,
	"RG":  opStrokeRGB,
	"k":   opFillCMYK,
	"K":   opStrokeCMYK,
	"cs":  opFillColorSpace,
	"CS":  opStrokeColorSpace,
	"sc":  opFillColor,
	"SC":  opStrokeColor,
	"scn": opFillColor,
	"SCN": opStrokeColor,

	// Text object
	"BT": opBeginText,
	"ET": opEndText,

	// Text state
	"Tc": opCharSpacing,
	"Tw": opWordSpacing,
	"Tz": opHorizontalScaling,
	"TL": opLeading,
	"Tf": opFont,
	"Tr": opRenderMode,
	"Ts": opRise,

	// Text positioning
	"Td": opMoveText,
	"TD": opMoveTextSetLeading,
	"Tm": opTextMatrix,
	"T*": opNextLine,

	// Text showing
	"Tj": opShowText,
	"TJ": opShowTextArray,
	"'":  opNextLineShowText,
	`"`:  opSpacingNextLineShowText,

	// Marked content
	"BMC": opBeginMarkedContent,
	"BDC": opBeginMarkedContentProps,
	"EMC": opEndMarkedContent,
	"MP":  opNop,
	"DP":  opNop,

	// XObjects, images and shadings
	"Do": opXObject,
	"BI": opInlineImage,
	"sh": opShading,

	// Clipping paths
	"W":  opClip,
	"W*": opClip,

	// Path construction and painting produce no text
	"m":  opNop,
	"l":  opNop,
	"c":  opNop,
	"v":  opNop,
	"y":  opNop,
	"h":  opNop,
	"re": opNop,
	"S":  opNop,
	"s":  opNop,
	"f":  opNop,
	"F":  opNop,
	"f*": opNop,
	"B":  opNop,
	"B*": opNop,
	"b":  opNop,
	"b*": opNop,
	"n":  opNop,

	// Type3 glyph metrics and compatibility sections
	"d0": opNop,
	"d1": opNop,
	"BX": opNop,
	"EX": opNop,
}

func opNop(*Processor, *parser.Operation) {}

func opClip(p *Processor, _ *parser.Operation) {
	p.stack.Current().Clipped = true
}
