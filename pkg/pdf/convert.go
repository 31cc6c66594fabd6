package pdf

import (
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/log"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/pkg/errors"

	"github.com/pyhub-apps/pdftext-golang/pkg/content"
	"github.com/pyhub-apps/pdftext-golang/pkg/font"
	"github.com/pyhub-apps/pdftext-golang/pkg/objects"
)

// Limits on converting one page's object graph
const (
	maxConvertDepth   = 24
	maxConvertObjects = 1 << 16
)

// sourceKind is the kind of a sourceValue
type sourceKind int

const (
	kindNull sourceKind = iota
	kindBool
	kindInteger
	kindReal
	kindString
	kindName
	kindDict
	kindArray
	kindStream
)

// sourceValue is the object model of the ledongthuc and dslipak readers.
// Both resolve indirect references transparently, so converted graphs are
// trees without object identity.
type sourceValue interface {
	kind() sourceKind
	key(name string) sourceValue
	keys() []string
	index(i int) sourceValue
	size() int
	boolean() bool
	integer() int64
	real() float64
	name() string
	raw() string
	reader() io.ReadCloser
}

// Keys never followed while converting
var skippedKeys = map[string]bool{
	"Parent":    true,
	"P":         true,
	"FontFile":  true,
	"FontFile2": true,
	"FontFile3": true,
	"Annots":    true,
	"Thumb":     true,
}

// converter turns a sourceValue graph into pdfcpu objects the content
// interpreter reads through a NopResolver
type converter struct {
	objects int
}

func (c *converter) convert(v sourceValue, depth int) types.Object {
	if v == nil || depth > maxConvertDepth || c.objects >= maxConvertObjects {
		return nil
	}
	c.objects++

	switch v.kind() {
	case kindBool:
		return types.Boolean(v.boolean())
	case kindInteger:
		return types.Integer(int(v.integer()))
	case kindReal:
		return types.Float(v.real())
	case kindString:
		return types.NewHexLiteral([]byte(v.raw()))
	case kindName:
		return types.Name(v.name())
	case kindDict:
		return c.convertDict(v, depth)
	case kindArray:
		arr := make(types.Array, 0, v.size())
		for i := 0; i < v.size(); i++ {
			arr = append(arr, c.convert(v.index(i), depth+1))
		}
		return arr
	case kindStream:
		return c.convertStream(v, depth)
	}
	return nil
}

func (c *converter) convertDict(v sourceValue, depth int) types.Dict {
	d := types.Dict{}
	for _, k := range v.keys() {
		if skippedKeys[k] {
			continue
		}
		if obj := c.convert(v.key(k), depth+1); obj != nil {
			d[k] = obj
		}
	}
	return d
}

// convertStream reads the decoded stream data. Image samples are never
// interpreted and are left out.
func (c *converter) convertStream(v sourceValue, depth int) types.Object {
	d := c.convertDict(v, depth)
	delete(d, "Filter")
	delete(d, "DecodeParms")
	delete(d, "Length")

	sd := types.StreamDict{Dict: d}
	if subtype, _ := d["Subtype"].(types.Name); subtype == "Image" {
		return sd
	}
	data, err := readStream(v)
	if err != nil {
		log.Debug.Printf("pdftext: %v", err)
		return sd
	}
	sd.Content = data
	return sd
}

// readStream returns the decoded data of a stream. The readers panic on
// unsupported filters, which is reported as an error.
func readStream(v sourceValue) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("read stream: %v", r)
		}
	}()

	rc := v.reader()
	if rc == nil {
		return nil, errors.New("read stream: no data")
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// inheritedValue looks key up on a page and then its ancestors
func inheritedValue(page sourceValue, key string) sourceValue {
	v := page
	for depth := 0; v != nil && v.kind() == kindDict && depth < 32; depth++ {
		if found := v.key(key); found.kind() != kindNull {
			return found
		}
		v = v.key("Parent")
	}
	return nil
}

// newConvertedPage builds a page from a reader's page dictionary. The
// conversion happens once, up front, because neither reader is safe for
// concurrent use.
func newConvertedPage(page sourceValue, pageNumber int, fonts *font.Cache) (p basePage, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("convert page %d: %v", pageNumber, r)
		}
	}()

	p = basePage{
		number:   pageNumber,
		mediaBox: defaultMediaBox,
		fonts:    fonts,
	}

	var r objects.NopResolver
	c := &converter{}

	if box, ok := objects.Numbers(r, c.convert(inheritedValue(page, "MediaBox"), 0)); ok {
		p.mediaBox = mediaBoxOf(box)
	}
	if rot, ok := objects.Number(r, c.convert(inheritedValue(page, "Rotate"), 0)); ok {
		p.rotation = normalizeRotation(int(rot))
	}

	res, _ := c.convert(inheritedValue(page, "Resources"), 0).(types.Dict)
	p.resources = content.NewResources(res, r)

	contents := page.key("Contents")
	var streams [][]byte
	switch contents.kind() {
	case kindStream:
		streams = appendStream(streams, contents, pageNumber, 0)
	case kindArray:
		for i := 0; i < contents.size(); i++ {
			streams = appendStream(streams, contents.index(i), pageNumber, i)
		}
	}
	p.data = combineContentStreams(streams)

	if c.objects >= maxConvertObjects {
		log.Debug.Printf("pdftext: page %d: object graph truncated at %d objects", pageNumber, maxConvertObjects)
	}
	return p, nil
}

func appendStream(streams [][]byte, v sourceValue, pageNumber, i int) [][]byte {
	if v.kind() != kindStream {
		return streams
	}
	data, err := readStream(v)
	if err != nil {
		log.Debug.Printf("pdftext: page %d content stream %d: %v", pageNumber, i, err)
		return streams
	}
	return append(streams, data)
}

// metadataOf reads a document information dictionary
func metadataOf(info sourceValue) (m Metadata) {
	defer func() {
		if r := recover(); r != nil {
			m = Metadata{}
		}
	}()
	if info.kind() != kindDict {
		return Metadata{}
	}

	text := func(key string) string {
		v := info.key(key)
		if v.kind() != kindString {
			return ""
		}
		return content.DecodeTextString([]byte(v.raw()))
	}

	m = Metadata{
		Title:        text("Title"),
		Author:       text("Author"),
		Subject:      text("Subject"),
		Keywords:     text("Keywords"),
		Creator:      text("Creator"),
		Producer:     text("Producer"),
		CreationDate: parsePDFDate(text("CreationDate")),
		ModDate:      parsePDFDate(text("ModDate")),
	}
	if trapped := info.key("Trapped"); trapped.kind() == kindName {
		m.Trapped = trapped.name()
	}
	return m
}

// passwordOnce offers password to a reader's retry loop a single time
func passwordOnce(password string) func() string {
	tried := false
	return func() string {
		if tried {
			return ""
		}
		tried = true
		return password
	}
}
