package pdf

import (
	"io"
	"os"

	lpdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/log"
	"github.com/pkg/errors"
)

// LedongthucDocument implements the Document interface using ledongthuc/pdf library
type LedongthucDocument struct {
	baseDocument
	file     io.Closer
	filepath string
}

// LedongthucPage implements the Page interface using ledongthuc/pdf
type LedongthucPage struct {
	basePage
}

// OpenWithLedongthuc opens a PDF file using the ledongthuc/pdf library
func OpenWithLedongthuc(filepath string, opts ...OpenOption) (Document, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "failed to stat file")
	}

	doc, err := openLedongthuc(f, fi.Size(), newOpenConfig(opts))
	if err != nil {
		f.Close()
		return nil, err
	}
	doc.file = f
	doc.filepath = filepath
	return doc, nil
}

// OpenLedongthucReader reads a PDF of the given size from ra using the
// ledongthuc/pdf library. All pages are converted before it returns.
func OpenLedongthucReader(ra io.ReaderAt, size int64, opts ...OpenOption) (Document, error) {
	return openLedongthuc(ra, size, newOpenConfig(opts))
}

func openLedongthuc(ra io.ReaderAt, size int64, cfg *openConfig) (doc *LedongthucDocument, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("failed to open PDF with ledongthuc: %v", r)
		}
	}()

	var reader *lpdf.Reader
	if cfg.Password != "" {
		reader, err = lpdf.NewReaderEncrypted(ra, size, passwordOnce(cfg.Password))
	} else {
		reader, err = lpdf.NewReader(ra, size)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PDF with ledongthuc")
	}

	doc = &LedongthucDocument{baseDocument: newBaseDocument(cfg)}
	doc.metadata = metadataOf(ledongthucValue{reader.Trailer().Key("Info")})

	// Initialize pages
	pageCount := reader.NumPage()
	doc.pages = make([]Page, pageCount)
	for i := 1; i <= pageCount; i++ {
		page, err := newConvertedPage(ledongthucValue{reader.Page(i).V}, i, doc.fonts)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to initialize page %d", i)
		}
		doc.pages[i-1] = &LedongthucPage{basePage: page}
	}

	log.Info.Printf("pdftext: opened %d pages with ledongthuc", pageCount)
	return doc, nil
}

// Close releases resources associated with the document
func (d *LedongthucDocument) Close() error {
	d.pages = nil
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}

// ledongthucValue adapts lpdf.Value to sourceValue
type ledongthucValue struct {
	v lpdf.Value
}

func (s ledongthucValue) kind() sourceKind {
	switch s.v.Kind() {
	case lpdf.Bool:
		return kindBool
	case lpdf.Integer:
		return kindInteger
	case lpdf.Real:
		return kindReal
	case lpdf.String:
		return kindString
	case lpdf.Name:
		return kindName
	case lpdf.Dict:
		return kindDict
	case lpdf.Array:
		return kindArray
	case lpdf.Stream:
		return kindStream
	}
	return kindNull
}

func (s ledongthucValue) key(name string) sourceValue { return ledongthucValue{s.v.Key(name)} }
func (s ledongthucValue) keys() []string              { return s.v.Keys() }
func (s ledongthucValue) index(i int) sourceValue     { return ledongthucValue{s.v.Index(i)} }
func (s ledongthucValue) size() int                   { return s.v.Len() }
func (s ledongthucValue) boolean() bool               { return s.v.Bool() }
func (s ledongthucValue) integer() int64              { return s.v.Int64() }
func (s ledongthucValue) real() float64               { return s.v.Float64() }
func (s ledongthucValue) name() string                { return s.v.Name() }
func (s ledongthucValue) raw() string                 { return s.v.RawString() }
func (s ledongthucValue) reader() io.ReadCloser       { return s.v.Reader() }
