package pdf

import (
	"io"
	"os"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/log"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/pkg/errors"

	"github.com/pyhub-apps/pdftext-golang/pkg/content"
	"github.com/pyhub-apps/pdftext-golang/pkg/font"
	"github.com/pyhub-apps/pdftext-golang/pkg/objects"
)

// ErrPageOutOfRange is returned for a page index outside the document
var ErrPageOutOfRange = errors.New("page out of range")

// baseDocument is the page list shared by every backend. Pages share one
// font cache so a font is parsed once per document.
type baseDocument struct {
	pages    []Page
	metadata Metadata
	fonts    *font.Cache
	workers  int
}

func newBaseDocument(cfg *openConfig) baseDocument {
	return baseDocument{
		fonts:   font.NewCache(),
		workers: cfg.Workers,
	}
}

// GetMetadata returns the PDF metadata
func (d *baseDocument) GetMetadata() Metadata {
	return d.metadata
}

// GetPages returns all pages in the document
func (d *baseDocument) GetPages() []Page {
	return d.pages
}

// GetPage returns a specific page by index (0-based)
func (d *baseDocument) GetPage(index int) (Page, error) {
	if index < 0 || index >= len(d.pages) {
		return nil, errors.Wrapf(ErrPageOutOfRange, "page index %d not in [0, %d)", index, len(d.pages))
	}
	return d.pages[index], nil
}

// PageCount returns the total number of pages
func (d *baseDocument) PageCount() int {
	return len(d.pages)
}

// page returns the page with a 1-based number
func (d *baseDocument) page(pageNumber int) (Page, bool) {
	if pageNumber < 1 || pageNumber > len(d.pages) {
		return nil, false
	}
	return d.pages[pageNumber-1], true
}

// PDFDocument implements the Document interface using pdfcpu
type PDFDocument struct {
	baseDocument
	ctx      *model.Context
	filepath string
}

// Open opens a PDF file and returns a Document
func Open(filepath string, opts ...OpenOption) (Document, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer f.Close()

	doc, err := openReader(f, newOpenConfig(opts))
	if err != nil {
		return nil, err
	}
	doc.filepath = filepath
	return doc, nil
}

// OpenWithPassword opens a password-protected PDF file
func OpenWithPassword(filepath string, password string, opts ...OpenOption) (Document, error) {
	return Open(filepath, append(opts, WithPassword(password))...)
}

// OpenReader reads a PDF from rs. The document does not retain rs.
func OpenReader(rs io.ReadSeeker, opts ...OpenOption) (Document, error) {
	return openReader(rs, newOpenConfig(opts))
}

func openReader(rs io.ReadSeeker, cfg *openConfig) (*PDFDocument, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if cfg.Password != "" {
		conf.UserPW = cfg.Password
		conf.OwnerPW = cfg.Password
	}

	ctx, err := api.ReadContext(rs, conf)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read PDF context")
	}

	if cfg.Validate {
		if err := api.ValidateContext(ctx); err != nil {
			return nil, errors.Wrap(err, "invalid PDF")
		}
	}

	doc := &PDFDocument{
		baseDocument: newBaseDocument(cfg),
		ctx:          ctx,
	}
	resolver := objects.NewLocked(ctx)

	doc.extractMetadata(resolver)

	if err := doc.initializePages(resolver); err != nil {
		return nil, errors.Wrap(err, "failed to initialize pages")
	}

	log.Info.Printf("pdftext: opened %d pages with pdfcpu", len(doc.pages))
	return doc, nil
}

// extractMetadata reads the document information dictionary
func (d *PDFDocument) extractMetadata(r objects.Resolver) {
	if d.ctx.Info == nil {
		return
	}
	info, ok := objects.Dict(r, *d.ctx.Info)
	if !ok {
		return
	}

	text := func(key string) string {
		b, ok := objects.StringBytes(r, info[key])
		if !ok {
			return ""
		}
		return content.DecodeTextString(b)
	}

	d.metadata = Metadata{
		Title:        text("Title"),
		Author:       text("Author"),
		Subject:      text("Subject"),
		Keywords:     text("Keywords"),
		Creator:      text("Creator"),
		Producer:     text("Producer"),
		CreationDate: parsePDFDate(text("CreationDate")),
		ModDate:      parsePDFDate(text("ModDate")),
	}
	if trapped, ok := objects.Name(r, info["Trapped"]); ok {
		d.metadata.Trapped = trapped
	}
}

// initializePages initializes all pages in the document
func (d *PDFDocument) initializePages(r objects.Resolver) error {
	pageCount := d.ctx.PageCount
	d.pages = make([]Page, pageCount)

	for i := 1; i <= pageCount; i++ {
		page, err := NewPDFCPUPage(d.ctx, r, d.fonts, i)
		if err != nil {
			return errors.Wrapf(err, "failed to create page %d", i)
		}
		d.pages[i-1] = page
	}

	return nil
}

// Close releases resources associated with the document
func (d *PDFDocument) Close() error {
	d.ctx = nil
	d.pages = nil
	return nil
}

// parsePDFDate parses the D:YYYYMMDDHHmmSSOHH'mm' date format, leniently.
// Missing trailing fields take their lowest value; a missing offset means
// UTC. Unparseable dates yield the zero time.
func parsePDFDate(dateStr string) time.Time {
	t, ok := types.DateTime(dateStr, true)
	if !ok {
		return time.Time{}
	}
	return t
}

// inheritedAttr looks key up on the page dictionary and then its ancestors
func inheritedAttr(r objects.Resolver, pageDict types.Dict, key string) types.Object {
	d := pageDict
	for depth := 0; d != nil && depth < 32; depth++ {
		if v, ok := d[key]; ok {
			return v
		}
		parent, ok := objects.Dict(r, d["Parent"])
		if !ok {
			break
		}
		d = parent
	}
	return nil
}
