package font

import "strings"

// standardMetrics holds the built-in metrics of a standard 14 font family.
// Widths cover the printable ASCII range and are looked up by character.
type standardMetrics struct {
	ascii        *[95]float64
	defaultWidth float64
	ascent       float64
	descent      float64
}

func (m *standardMetrics) width(r rune) float64 {
	switch r {
	case '’':
		r = '\''
	case '‘':
		r = '`'
	}
	if m.ascii != nil && r >= 32 && r <= 126 {
		return m.ascii[r-32]
	}
	return m.defaultWidth
}

var (
	helvetica     = &standardMetrics{&helveticaWidths, 556, 718, -207}
	helveticaBold = &standardMetrics{&helveticaBoldWidths, 556, 718, -207}
	times         = &standardMetrics{&timesWidths, 500, 683, -217}
	timesBold     = &standardMetrics{&timesBoldWidths, 500, 683, -217}
	courier       = &standardMetrics{nil, 600, 629, -157}
	symbol        = &standardMetrics{nil, 500, 1010, -293}
	dingbats      = &standardMetrics{nil, 788, 820, -143}
)

// lookupStandard finds metrics for a base font name. Subset prefixes and
// common aliases (Arial, TimesNewRoman, CourierNew) are recognised.
func lookupStandard(baseFont string) (*standardMetrics, bool) {
	name := StripSubsetPrefix(baseFont)
	bold := strings.Contains(name, "Bold")
	name = strings.ToLower(name)

	switch {
	case strings.HasPrefix(name, "helvetica"), strings.HasPrefix(name, "arial"):
		if bold {
			return helveticaBold, true
		}
		return helvetica, true
	case strings.HasPrefix(name, "times"):
		if bold {
			return timesBold, true
		}
		return times, true
	case strings.HasPrefix(name, "courier"):
		return courier, true
	case name == "symbol":
		return symbol, true
	case name == "zapfdingbats":
		return dingbats, true
	}
	return nil, false
}

// StripSubsetPrefix removes a six-letter subset tag such as "ABCDEF+"
func StripSubsetPrefix(name string) string {
	if len(name) > 7 && name[6] == '+' {
		for i := 0; i < 6; i++ {
			if name[i] < 'A' || name[i] > 'Z' {
				return name
			}
		}
		return name[7:]
	}
	return name
}

var helveticaWidths = [95]float64{
	278, 278, 355, 556, 556, 889, 667, 222, 333, 333, 389, 584, 278, 333, 278, 278,
	556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 278, 278, 584, 584, 584, 556,
	1015, 667, 667, 722, 722, 667, 611, 778, 722, 278, 500, 667, 556, 833, 722, 778,
	667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 278, 278, 278, 469, 556,
	222, 556, 556, 500, 556, 556, 278, 556, 556, 222, 222, 500, 222, 833, 556, 556,
	556, 556, 333, 500, 278, 556, 500, 722, 500, 500, 500, 334, 260, 334, 584,
}

var helveticaBoldWidths = [95]float64{
	278, 333, 474, 556, 556, 889, 722, 278, 333, 333, 389, 584, 278, 333, 278, 278,
	556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 333, 333, 584, 584, 584, 611,
	975, 722, 722, 722, 722, 667, 611, 778, 722, 278, 556, 722, 611, 833, 722, 778,
	667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 333, 278, 333, 584, 556,
	278, 556, 611, 556, 611, 556, 333, 611, 611, 278, 278, 556, 278, 889, 611, 611,
	611, 611, 389, 556, 333, 611, 556, 778, 556, 556, 500, 389, 280, 389, 584,
}

var timesWidths = [95]float64{
	250, 333, 408, 500, 500, 833, 778, 333, 333, 333, 500, 564, 250, 333, 250, 278,
	500, 500, 500, 500, 500, 500, 500, 500, 500, 500, 278, 278, 564, 564, 564, 444,
	921, 722, 667, 667, 722, 611, 556, 722, 722, 333, 389, 722, 611, 889, 722, 722,
	556, 722, 667, 556, 611, 722, 722, 944, 722, 722, 611, 333, 278, 333, 469, 500,
	333, 444, 500, 444, 500, 444, 333, 500, 500, 278, 278, 500, 278, 778, 500, 500,
	500, 500, 333, 389, 278, 500, 500, 722, 500, 500, 444, 480, 200, 480, 541,
}

var timesBoldWidths = [95]float64{
	250, 333, 555, 500, 500, 1000, 833, 333, 333, 333, 500, 570, 250, 333, 250, 278,
	500, 500, 500, 500, 500, 500, 500, 500, 500, 500, 333, 333, 570, 570, 570, 500,
	930, 722, 667, 722, 722, 667, 611, 778, 778, 389, 500, 778, 667, 944, 722, 778,
	611, 778, 722, 556, 667, 722, 722, 1000, 722, 722, 667, 333, 278, 333, 581, 500,
	333, 500, 556, 444, 556, 444, 333, 500, 556, 278, 333, 556, 278, 833, 556, 500,
	556, 556, 444, 389, 333, 556, 500, 722, 500, 500, 444, 394, 220, 394, 520,
}
