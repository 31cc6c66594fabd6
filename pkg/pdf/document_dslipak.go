package pdf

import (
	"io"
	"os"

	gopdf "github.com/dslipak/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/log"
	"github.com/pkg/errors"
)

// DsliPakDocument implements the Document interface using dslipak/pdf library
type DsliPakDocument struct {
	baseDocument
	file     io.Closer
	filepath string
}

// DsliPakPage implements the Page interface using dslipak/pdf
type DsliPakPage struct {
	basePage
}

// OpenWithDslipak opens a PDF file using the dslipak/pdf library
func OpenWithDslipak(filepath string, opts ...OpenOption) (Document, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "failed to stat file")
	}

	doc, err := openDslipak(f, fi.Size(), newOpenConfig(opts))
	if err != nil {
		f.Close()
		return nil, err
	}
	doc.file = f
	doc.filepath = filepath
	return doc, nil
}

// OpenDslipakReader reads a PDF of the given size from ra using the
// dslipak/pdf library. All pages are converted before it returns.
func OpenDslipakReader(ra io.ReaderAt, size int64, opts ...OpenOption) (Document, error) {
	return openDslipak(ra, size, newOpenConfig(opts))
}

func openDslipak(ra io.ReaderAt, size int64, cfg *openConfig) (doc *DsliPakDocument, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("failed to open PDF with dslipak: %v", r)
		}
	}()

	var reader *gopdf.Reader
	if cfg.Password != "" {
		reader, err = gopdf.NewReaderEncrypted(ra, size, passwordOnce(cfg.Password))
	} else {
		reader, err = gopdf.NewReader(ra, size)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PDF with dslipak")
	}

	doc = &DsliPakDocument{baseDocument: newBaseDocument(cfg)}
	doc.metadata = metadataOf(dslipakValue{reader.Trailer().Key("Info")})

	// Initialize pages
	pageCount := reader.NumPage()
	doc.pages = make([]Page, pageCount)
	for i := 1; i <= pageCount; i++ {
		page, err := newConvertedPage(dslipakValue{reader.Page(i).V}, i, doc.fonts)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to initialize page %d", i)
		}
		doc.pages[i-1] = &DsliPakPage{basePage: page}
	}

	log.Info.Printf("pdftext: opened %d pages with dslipak", pageCount)
	return doc, nil
}

// Close releases resources associated with the document
func (d *DsliPakDocument) Close() error {
	d.pages = nil
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}

// dslipakValue adapts gopdf.Value to sourceValue
type dslipakValue struct {
	v gopdf.Value
}

func (s dslipakValue) kind() sourceKind {
	switch s.v.Kind() {
	case gopdf.Bool:
		return kindBool
	case gopdf.Integer:
		return kindInteger
	case gopdf.Real:
		return kindReal
	case gopdf.String:
		return kindString
	case gopdf.Name:
		return kindName
	case gopdf.Dict:
		return kindDict
	case gopdf.Array:
		return kindArray
	case gopdf.Stream:
		return kindStream
	}
	return kindNull
}

func (s dslipakValue) key(name string) sourceValue { return dslipakValue{s.v.Key(name)} }
func (s dslipakValue) keys() []string              { return s.v.Keys() }
func (s dslipakValue) index(i int) sourceValue     { return dslipakValue{s.v.Index(i)} }
func (s dslipakValue) size() int                   { return s.v.Len() }
func (s dslipakValue) boolean() bool               { return s.v.Bool() }
func (s dslipakValue) integer() int64              { return s.v.Int64() }
func (s dslipakValue) real() float64               { return s.v.Float64() }
func (s dslipakValue) name() string                { return s.v.Name() }
func (s dslipakValue) raw() string                 { return s.v.RawString() }
func (s dslipakValue) reader() io.ReadCloser       { return s.v.Reader() }
