package pdf

import (
	"io"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/pdftext-golang/pkg/font"
)

// fakeValue is an in-memory sourceValue
type fakeValue struct {
	k      sourceKind
	b      bool
	i      int64
	f      float64
	s      string
	dict   map[string]*fakeValue
	order  []string
	arr    []*fakeValue
	data   string
	broken bool
}

func fdict(kv ...interface{}) *fakeValue {
	v := &fakeValue{k: kindDict, dict: map[string]*fakeValue{}}
	for i := 0; i+1 < len(kv); i += 2 {
		key := kv[i].(string)
		v.dict[key] = kv[i+1].(*fakeValue)
		v.order = append(v.order, key)
	}
	return v
}

func fstream(data string, kv ...interface{}) *fakeValue {
	v := fdict(kv...)
	v.k = kindStream
	v.data = data
	return v
}

func farr(items ...*fakeValue) *fakeValue { return &fakeValue{k: kindArray, arr: items} }
func fint(i int64) *fakeValue             { return &fakeValue{k: kindInteger, i: i} }
func freal(f float64) *fakeValue          { return &fakeValue{k: kindReal, f: f} }
func fname(s string) *fakeValue           { return &fakeValue{k: kindName, s: s} }
func fstr(s string) *fakeValue            { return &fakeValue{k: kindString, s: s} }

func (v *fakeValue) kind() sourceKind {
	if v == nil {
		return kindNull
	}
	return v.k
}

func (v *fakeValue) key(name string) sourceValue {
	if v == nil || v.dict[name] == nil {
		return (*fakeValue)(nil)
	}
	return v.dict[name]
}

func (v *fakeValue) keys() []string { return v.order }

func (v *fakeValue) index(i int) sourceValue {
	if i < 0 || i >= len(v.arr) {
		return (*fakeValue)(nil)
	}
	return v.arr[i]
}

func (v *fakeValue) size() int      { return len(v.arr) }
func (v *fakeValue) boolean() bool  { return v.b }
func (v *fakeValue) integer() int64 { return v.i }
func (v *fakeValue) real() float64  { return v.f }
func (v *fakeValue) name() string   { return v.s }
func (v *fakeValue) raw() string    { return v.s }

func (v *fakeValue) reader() io.ReadCloser {
	if v.broken {
		panic("unsupported filter")
	}
	return io.NopCloser(strings.NewReader(v.data))
}

func TestConverter(t *testing.T) {
	src := fdict(
		"Type", fname("Font"),
		"Widths", farr(fint(500), freal(250.5)),
		"Parent", fdict("Type", fname("Pages")),
		"ToUnicode", fstream("cmap data", "Filter", fname("FlateDecode"), "Length", fint(9)),
		"Title", fstr("a(b)"),
		"Img", fstream("samples", "Subtype", fname("Image")),
	)

	c := &converter{}
	d, ok := c.convert(src, 0).(types.Dict)
	require.True(t, ok)

	assert.Equal(t, types.Name("Font"), d["Type"])
	assert.Equal(t, types.Array{types.Integer(500), types.Float(250.5)}, d["Widths"])
	assert.NotContains(t, d, "Parent")
	assert.Equal(t, types.NewHexLiteral([]byte("a(b)")), d["Title"])

	sd, ok := d["ToUnicode"].(types.StreamDict)
	require.True(t, ok)
	assert.Equal(t, []byte("cmap data"), sd.Content)
	assert.NotContains(t, sd.Dict, "Filter", "content is already decoded")
	assert.NotContains(t, sd.Dict, "Length")

	img, ok := d["Img"].(types.StreamDict)
	require.True(t, ok)
	assert.Nil(t, img.Content)
}

func TestConverterLimits(t *testing.T) {
	// a chain deeper than the conversion limit
	v := fint(1)
	for i := 0; i < maxConvertDepth+5; i++ {
		v = farr(v)
	}
	c := &converter{}
	obj := c.convert(v, 0)
	depth := 0
	for {
		arr, ok := obj.(types.Array)
		if !ok || len(arr) == 0 {
			break
		}
		obj = arr[0]
		depth++
	}
	assert.Nil(t, obj)
	assert.Equal(t, maxConvertDepth+1, depth)

	c = &converter{objects: maxConvertObjects}
	assert.Nil(t, c.convert(fint(1), 0))
}

func TestReadStreamRecoversPanics(t *testing.T) {
	_, err := readStream(&fakeValue{k: kindStream, broken: true})
	assert.Error(t, err)

	data, err := readStream(fstream("BT ET"))
	require.NoError(t, err)
	assert.Equal(t, []byte("BT ET"), data)
}

func TestNewConvertedPage(t *testing.T) {
	widths := make([]*fakeValue, 95)
	for i := range widths {
		widths[i] = fint(500)
	}
	pages := fdict(
		"Type", fname("Pages"),
		"MediaBox", farr(fint(0), fint(0), fint(300), fint(400)),
		"Rotate", fint(-90),
		"Resources", fdict("Font", fdict("F1", fdict(
			"Type", fname("Font"),
			"Subtype", fname("Type1"),
			"BaseFont", fname("Test"),
			"FirstChar", fint(32),
			"Widths", farr(widths...),
		))),
	)
	page := fdict(
		"Type", fname("Page"),
		"Parent", pages,
		"Contents", farr(
			fstream("BT /F1 10 Tf 10 10 Td (con) Tj"),
			&fakeValue{k: kindStream, broken: true},
			fstream("(verted) Tj ET"),
		),
	)

	p, err := newConvertedPage(page, 4, font.NewCache())
	require.NoError(t, err)

	assert.Equal(t, 4, p.GetPageNumber())
	assert.Equal(t, BoundingBox{X0: 0, Y0: 0, X1: 300, Y1: 400}, p.GetBBox())
	assert.Equal(t, 270, p.GetRotation())
	assert.Equal(t, "BT /F1 10 Tf 10 10 Td (con) Tj\n(verted) Tj ET", string(p.Content()))
	assert.Equal(t, "converted", p.ExtractText())
}

func TestMetadataOf(t *testing.T) {
	info := fdict(
		"Title", fstr("\xfe\xff\x00H\x00i"),
		"Producer", fstr("pdftext"),
		"ModDate", fstr("D:20230102"),
		"Trapped", fname("True"),
	)
	m := metadataOf(info)
	assert.Equal(t, "Hi", m.Title)
	assert.Equal(t, "pdftext", m.Producer)
	assert.Equal(t, "True", m.Trapped)
	assert.Equal(t, 2023, m.ModDate.Year())

	assert.Equal(t, Metadata{}, metadataOf((*fakeValue)(nil)))
}

func TestPasswordOnce(t *testing.T) {
	pw := passwordOnce("secret")
	assert.Equal(t, "secret", pw())
	assert.Equal(t, "", pw())
}
