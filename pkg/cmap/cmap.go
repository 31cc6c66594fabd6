// Package cmap parses PDF character maps: embedded and predefined encoding
// CMaps (code to CID) and ToUnicode CMaps (code to text).
package cmap

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// CodespaceRange defines a class of codes that share a byte length
type CodespaceRange struct {
	Low  []byte
	High []byte
}

// Len returns the number of bytes of a code in this range
func (r CodespaceRange) Len() int {
	return len(r.Low)
}

// Matches reports whether code lies in the range. Each byte is checked
// against its own low/high bound, bytes compared unsigned.
func (r CodespaceRange) Matches(code []byte) bool {
	if len(code) != len(r.Low) || len(r.Low) != len(r.High) {
		return false
	}
	for i, b := range code {
		if b < r.Low[i] || b > r.High[i] {
			return false
		}
	}
	return true
}

// bfRange maps src..end to text computed from dst by incrementing its
// trailing bytes
type bfRange struct {
	start []byte
	end   []byte
	dst   []byte
}

// cidRange maps start..end to consecutive CIDs starting at cid
type cidRange struct {
	start []byte
	end   []byte
	cid   int
}

// maxExpandedRange is the largest range expanded into the lookup map up front.
// Bigger ranges are resolved arithmetically at lookup time.
const maxExpandedRange = 1 << 16

// CMap maps character codes to CIDs and/or Unicode text
type CMap struct {
	Name  string
	WMode int

	codespaces []CodespaceRange

	unicode       map[string]string
	unicodeRanges []bfRange

	cids      map[string]int
	cidRanges []cidRange

	// identity marks Identity-H/V: every 2-byte code is its own CID
	identity bool
	// ucs2 marks predefined Uni*-UCS2/UTF16 CMaps whose codes are UTF-16BE text
	ucs2 bool

	parent *CMap
}

// New creates an empty CMap
func New() *CMap {
	return &CMap{
		unicode: make(map[string]string),
		cids:    make(map[string]int),
	}
}

// IsIdentity reports whether the CMap is Identity-H or Identity-V, directly or
// through usecmap
func (c *CMap) IsIdentity() bool {
	if c.identity {
		return true
	}
	return c.parent != nil && c.parent.IsIdentity()
}

// IsUnicodeCoded reports whether codes are UTF-16BE encoded text
func (c *CMap) IsUnicodeCoded() bool {
	if c.ucs2 {
		return true
	}
	return c.parent != nil && c.parent.IsUnicodeCoded()
}

// Codespaces returns the codespace ranges, including inherited ones
func (c *CMap) Codespaces() []CodespaceRange {
	if c.parent == nil {
		return c.codespaces
	}
	out := append([]CodespaceRange{}, c.codespaces...)
	return append(out, c.parent.Codespaces()...)
}

// AddCodespaceRange registers a codespace range. Ranges whose bounds differ in
// length are ignored.
func (c *CMap) AddCodespaceRange(low, high []byte) {
	if len(low) == 0 || len(low) != len(high) || len(low) > 4 {
		return
	}
	c.codespaces = append(c.codespaces, CodespaceRange{Low: clone(low), High: clone(high)})
}

// AddUnicodeMapping maps a single code to text
func (c *CMap) AddUnicodeMapping(code []byte, text string) {
	c.unicode[string(code)] = text
}

// AddUnicodeRange maps start..end (inclusive) to text derived from dst. The
// last byte of dst is incremented, with carry, once per code.
func (c *CMap) AddUnicodeRange(start, end, dst []byte) {
	if len(start) != len(end) || len(start) == 0 || bytes.Compare(start, end) > 0 {
		return
	}
	if span(start, end) > maxExpandedRange {
		c.unicodeRanges = append(c.unicodeRanges, bfRange{start: clone(start), end: clone(end), dst: clone(dst)})
		return
	}

	code := clone(start)
	value := clone(dst)
	for {
		c.unicode[string(code)] = DecodeDestination(value)
		if bytes.Equal(code, end) {
			return
		}
		code = Increment(code)
		value = Increment(value)
	}
}

// AddUnicodeArray maps start..end to the entries of values in order. Extra
// codes without a value are left unmapped.
func (c *CMap) AddUnicodeArray(start, end []byte, values []string) {
	if len(start) != len(end) || len(start) == 0 || bytes.Compare(start, end) > 0 {
		return
	}
	code := clone(start)
	for _, v := range values {
		c.unicode[string(code)] = v
		if bytes.Equal(code, end) {
			return
		}
		code = Increment(code)
	}
}

// AddCIDMapping maps a single code to a CID
func (c *CMap) AddCIDMapping(code []byte, cid int) {
	c.cids[string(code)] = cid
}

// AddCIDRange maps start..end (inclusive) to consecutive CIDs
func (c *CMap) AddCIDRange(start, end []byte, cid int) {
	if len(start) != len(end) || len(start) == 0 || bytes.Compare(start, end) > 0 {
		return
	}
	c.cidRanges = append(c.cidRanges, cidRange{start: clone(start), end: clone(end), cid: cid})
}

// Unicode returns the text mapped to code
func (c *CMap) Unicode(code []byte) (string, bool) {
	if text, ok := c.unicode[string(code)]; ok {
		return text, true
	}
	for _, r := range c.unicodeRanges {
		if inRange(code, r.start, r.end) {
			offset := span(r.start, code) - 1
			return DecodeDestination(addOffset(r.dst, offset)), true
		}
	}
	if c.ucs2 && len(code) >= 2 {
		return DecodeDestination(code), true
	}
	if c.parent != nil {
		return c.parent.Unicode(code)
	}
	return "", false
}

// CID returns the CID mapped to code
func (c *CMap) CID(code []byte) (int, bool) {
	if cid, ok := c.cids[string(code)]; ok {
		return cid, true
	}
	for _, r := range c.cidRanges {
		if inRange(code, r.start, r.end) {
			return r.cid + int(span(r.start, code)-1), true
		}
	}
	if (c.identity || c.ucs2) && len(code) == 2 {
		return int(codeValue(code)), true
	}
	if c.parent != nil {
		return c.parent.CID(code)
	}
	return 0, false
}

// CodeFor returns a code explicitly mapped to text. When several codes map
// to it the lowest is returned.
func (c *CMap) CodeFor(text string) ([]byte, bool) {
	var best []byte
	for code, t := range c.unicode {
		if t == text && (best == nil || code < string(best)) {
			best = []byte(code)
		}
	}
	return best, best != nil
}

// HasUnicodeMappings reports whether any code-to-text mapping is defined
func (c *CMap) HasUnicodeMappings() bool {
	return len(c.unicode) > 0 || len(c.unicodeRanges) > 0 || c.ucs2
}

// MappingCount returns the number of explicit mappings, for diagnostics
func (c *CMap) MappingCount() int {
	count := len(c.unicode) + len(c.cids)
	for _, r := range c.unicodeRanges {
		count += int(span(r.start, r.end))
	}
	for _, r := range c.cidRanges {
		count += int(span(r.start, r.end))
	}
	return count
}

// NextCode splits the next character code off data and returns it with the
// number of bytes consumed. The code length comes from the first codespace
// range that matches; without a match the shortest partially matching range
// decides, and 1 byte is used as the last resort. Codes never run past data.
func (c *CMap) NextCode(data []byte) ([]byte, int) {
	if len(data) == 0 {
		return nil, 0
	}

	ranges := c.Codespaces()
	if len(ranges) == 0 {
		if c.mappedLength(data, 2) {
			return data[:2], 2
		}
		return data[:1], 1
	}

	for n := 1; n <= 4 && n <= len(data); n++ {
		for _, r := range ranges {
			if r.Len() == n && r.Matches(data[:n]) {
				return data[:n], n
			}
		}
	}

	shortest := 0
	for _, r := range ranges {
		if data[0] >= r.Low[0] && data[0] <= r.High[0] && (shortest == 0 || r.Len() < shortest) {
			shortest = r.Len()
		}
	}
	if shortest == 0 {
		shortest = 1
	}
	if shortest > len(data) {
		shortest = len(data)
	}
	return data[:shortest], shortest
}

// mappedLength reports whether the first n bytes of data form a mapped code.
// Used when a ToUnicode CMap omits its codespace ranges.
func (c *CMap) mappedLength(data []byte, n int) bool {
	if len(data) < n {
		return false
	}
	if _, ok := c.Unicode(data[:n]); ok {
		if _, one := c.Unicode(data[:1]); !one {
			return true
		}
	}
	return false
}

// String returns a summary for debugging
func (c *CMap) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "CMap %q: %d codespace ranges, %d mappings", c.Name, len(c.Codespaces()), c.MappingCount())
	if c.IsIdentity() {
		sb.WriteString(", identity")
	}
	return sb.String()
}

// Increment returns b plus one, treating b as an unsigned big-endian number.
// A carry out of the first byte wraps around to zero.
func Increment(b []byte) []byte {
	out := clone(b)
	for i := len(out) - 1; i >= 0; i-- {
		out[i]++
		if out[i] != 0 {
			break
		}
	}
	return out
}

// addOffset adds offset to b as an unsigned big-endian number with wraparound
func addOffset(b []byte, offset uint64) []byte {
	out := clone(b)
	carry := offset
	for i := len(out) - 1; i >= 0 && carry > 0; i-- {
		sum := uint64(out[i]) + (carry & 0xFF)
		out[i] = byte(sum)
		carry = (carry >> 8) + (sum >> 8)
	}
	return out
}

// DecodeDestination converts a bf destination to text: one byte is taken as
// a character code, longer values as UTF-16BE with an optional byte order mark.
func DecodeDestination(b []byte) string {
	switch len(b) {
	case 0:
		return ""
	case 1:
		return string(rune(b[0]))
	}
	if len(b) >= 4 && b[0] == 0xFE && b[1] == 0xFF {
		b = b[2:]
	}
	text, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	return string(text)
}

func inRange(code, start, end []byte) bool {
	return len(code) == len(start) && bytes.Compare(code, start) >= 0 && bytes.Compare(code, end) <= 0
}

// span returns the number of codes from a to b inclusive
func span(a, b []byte) uint64 {
	return codeValue(b) - codeValue(a) + 1
}

func codeValue(b []byte) uint64 {
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
