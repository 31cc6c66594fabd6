package cmap

import "strings"

// Predefined returns a predefined CMap by name. Identity-H and Identity-V are
// built in. Unicode-coded CMaps (Uni*-UCS2-* and Uni*-UTF16-*) are modelled
// as 2-byte codes whose value is the UTF-16BE text. Other names are not known
// and report false; callers fall back to Identity-H.
func Predefined(name string) (*CMap, bool) {
	switch {
	case name == "Identity-H" || name == "Identity-V":
		return identity(name), true
	case strings.HasPrefix(name, "Uni") && (strings.Contains(name, "-UCS2-") || strings.Contains(name, "-UTF16-")):
		cm := New()
		cm.Name = name
		cm.ucs2 = true
		cm.AddCodespaceRange([]byte{0x00, 0x00}, []byte{0xFF, 0xFF})
		if strings.HasSuffix(name, "-V") {
			cm.WMode = 1
		}
		return cm, true
	}
	return nil, false
}

// Identity returns a fresh Identity-H CMap
func Identity() *CMap {
	return identity("Identity-H")
}

func identity(name string) *CMap {
	cm := New()
	cm.Name = name
	cm.identity = true
	cm.AddCodespaceRange([]byte{0x00, 0x00}, []byte{0xFF, 0xFF})
	if name == "Identity-V" {
		cm.WMode = 1
	}
	return cm
}
