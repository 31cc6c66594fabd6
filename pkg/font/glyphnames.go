package font

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// glyphList is the subset of the Adobe Glyph List that shows up in the
// /Differences arrays of real documents. Single letters, uniXXXX/uXXXX names
// and accented letters are handled by GlyphText without a table entry.
var glyphList = map[string]rune{
	"space": ' ', "exclam": '!', "quotedbl": '"', "numbersign": '#',
	"dollar": '$', "percent": '%', "ampersand": '&', "quotesingle": '\'',
	"quoteright": '’', "parenleft": '(', "parenright": ')', "asterisk": '*',
	"plus": '+', "comma": ',', "hyphen": '-', "period": '.', "slash": '/',
	"zero": '0', "one": '1', "two": '2', "three": '3', "four": '4',
	"five": '5', "six": '6', "seven": '7', "eight": '8', "nine": '9',
	"colon": ':', "semicolon": ';', "less": '<', "equal": '=', "greater": '>',
	"question": '?', "at": '@', "bracketleft": '[', "backslash": '\\',
	"bracketright": ']', "asciicircum": '^', "underscore": '_', "grave": '`',
	"quoteleft": '‘', "braceleft": '{', "bar": '|', "braceright": '}',
	"asciitilde": '~',

	"exclamdown": '¡', "cent": '¢', "sterling": '£', "fraction": '⁄',
	"yen": '¥', "florin": 'ƒ', "section": '§', "currency": '¤',
	"quotedblleft": '“', "guillemotleft": '«', "guilsinglleft": '‹',
	"guilsinglright": '›', "fi": 'ﬁ', "fl": 'ﬂ', "ff": 'ﬀ',
	"ffi": 'ﬃ', "ffl": 'ﬄ', "endash": '–', "emdash": '—',
	"dagger": '†', "daggerdbl": '‡', "periodcentered": '·',
	"paragraph": '¶', "bullet": '•', "quotesinglbase": '‚',
	"quotedblbase": '„', "quotedblright": '”', "guillemotright": '»',
	"ellipsis": '…', "perthousand": '‰', "questiondown": '¿',
	"acute": '´', "circumflex": 'ˆ', "tilde": '˜', "macron": '¯', "breve": '˘',
	"dotaccent": '˙', "dieresis": '¨', "ring": '˚', "cedilla": '¸',
	"hungarumlaut": '˝', "ogonek": '˛', "caron": 'ˇ',
	"AE": 'Æ', "ae": 'æ', "OE": 'Œ', "oe": 'œ', "Oslash": 'Ø', "oslash": 'ø',
	"Lslash": 'Ł', "lslash": 'ł', "dotlessi": 'ı', "germandbls": 'ß',
	"ordfeminine": 'ª', "ordmasculine": 'º', "Eth": 'Ð', "eth": 'ð',
	"Thorn": 'Þ', "thorn": 'þ',
	"trademark": '™', "copyright": '©', "registered": '®', "degree": '°',
	"brokenbar": '¦', "logicalnot": '¬', "plusminus": '±', "multiply": '×',
	"divide": '÷', "mu": 'µ', "onehalf": '½', "onequarter": '¼',
	"threequarters": '¾', "onesuperior": '¹', "twosuperior": '²',
	"threesuperior": '³', "minus": '−', "Euro": '€', "euro": '€',
	"nbspace": '\u00A0', "nonbreakingspace": '\u00A0', "sfthyphen": '\u00AD',
	"softhyphen": '\u00AD', "middot": '·',

	"arrowleft": '←', "arrowup": '↑', "arrowright": '→',
	"arrowdown": '↓', "arrowboth": '↔', "arrowupdn": '↕',
	"checkmark": '✓', "lozenge": '◊', "circle": '○',
	"filledbox": '■', "openbullet": '◦', "spade": '♠',
	"club": '♣', "heart": '♥', "diamond": '♦',
	"infinity": '∞', "notequal": '≠', "lessequal": '≤',
	"greaterequal": '≥', "approxequal": '≈', "summation": '∑',
	"product": '∏', "radical": '√', "integral": '∫',
	"partialdiff": '∂', "Delta": 'Δ', "Omega": 'Ω', "pi": 'π',
}

// accents maps glyph name suffixes to combining marks. "Eacute" is E followed
// by U+0301, composed to É with NFC.
var accents = map[string]rune{
	"acute":        '\u0301',
	"grave":        '\u0300',
	"circumflex":   '\u0302',
	"tilde":        '\u0303',
	"macron":       '\u0304',
	"breve":        '\u0306',
	"dotaccent":    '\u0307',
	"dieresis":     '\u0308',
	"ring":         '\u030A',
	"hungarumlaut": '\u030B',
	"caron":        '\u030C',
	"commaaccent":  '\u0326',
	"cedilla":      '\u0327',
	"ogonek":       '\u0328',
}

// GlyphText resolves a glyph name to text. Ligature names joined with '_'
// resolve component by component and variant suffixes after '.' are dropped.
func GlyphText(name string) (string, bool) {
	if name == "" || name == ".notdef" {
		return "", false
	}
	if r, ok := glyphList[name]; ok {
		return string(r), true
	}

	if i := strings.IndexByte(name, '.'); i > 0 {
		return GlyphText(name[:i])
	}
	if strings.Contains(name, "_") {
		var sb strings.Builder
		for _, part := range strings.Split(name, "_") {
			text, ok := GlyphText(part)
			if !ok {
				return "", false
			}
			sb.WriteString(text)
		}
		return sb.String(), true
	}

	if len(name) == 1 && isASCIILetter(name[0]) {
		return name, true
	}
	if text, ok := unicodeName(name); ok {
		return text, true
	}
	return composeAccented(name)
}

// unicodeName handles uniXXXX[XXXX...] and uXXXX[XX]
func unicodeName(name string) (string, bool) {
	switch {
	case strings.HasPrefix(name, "uni") && len(name) >= 7 && (len(name)-3)%4 == 0:
		var sb strings.Builder
		for i := 3; i < len(name); i += 4 {
			v, err := strconv.ParseUint(name[i:i+4], 16, 32)
			if err != nil {
				return "", false
			}
			sb.WriteRune(rune(v))
		}
		return sb.String(), true
	case strings.HasPrefix(name, "u") && len(name) >= 5 && len(name) <= 7:
		v, err := strconv.ParseUint(name[1:], 16, 32)
		if err != nil || v == 0 || !utf8.ValidRune(rune(v)) {
			return "", false
		}
		return string(rune(v)), true
	}
	return "", false
}

func composeAccented(name string) (string, bool) {
	if len(name) < 2 || !isASCIILetter(name[0]) {
		return "", false
	}
	base := name[:1]
	mark, ok := accents[name[1:]]
	if !ok {
		return "", false
	}
	composed := norm.NFC.String(base + string(mark))
	if utf8.RuneCountInString(composed) != 1 {
		return "", false
	}
	return composed, true
}

func isASCIILetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
