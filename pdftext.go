// Package pdftext extracts text from PDF pages by interpreting their content
// streams, with positional heuristics for spaces and line breaks
package pdftext

import (
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/log"
	"github.com/pkg/errors"

	"github.com/pyhub-apps/pdftext-golang/pkg/content"
	"github.com/pyhub-apps/pdftext-golang/pkg/pdf"
)

// Re-export types from pdf package for public API
type (
	Document             = pdf.Document
	Page                 = pdf.Page
	Metadata             = pdf.Metadata
	BoundingBox          = pdf.BoundingBox
	MatchedPattern       = pdf.MatchedPattern
	Word                 = pdf.Word
	Line                 = pdf.Line
	TextExtractionOption = pdf.TextExtractionOption
	OpenOption           = pdf.OpenOption
	RenderListener       = content.RenderListener
	TextRenderInfo       = content.TextRenderInfo
)

// Re-export option functions
var (
	WithSpaceThreshold       = pdf.WithSpaceThreshold
	WithNewlineFactor        = pdf.WithNewlineFactor
	WithMarkedContentFilter  = pdf.WithMarkedContentFilter
	WithUnicodeNormalization = pdf.WithUnicodeNormalization
	WithLogger               = pdf.WithLogger
	WithMaxFormDepth         = pdf.WithMaxFormDepth
	WithXTolerance           = pdf.WithXTolerance
	WithYTolerance           = pdf.WithYTolerance

	WithPassword   = pdf.WithPassword
	WithValidation = pdf.WithValidation
	WithWorkers    = pdf.WithWorkers

	ErrPageOutOfRange = pdf.ErrPageOutOfRange
)

// Open opens a PDF file and returns a Document
func Open(filepath string, opts ...OpenOption) (Document, error) {
	// pdfcpu resolves objects on demand and validates structure
	doc, err := pdf.Open(filepath, opts...)
	if err == nil {
		return doc, nil
	}
	log.Info.Printf("pdftext: pdfcpu could not open %s: %v", filepath, err)

	// Fallback to ledongthuc implementation
	doc, lerr := pdf.OpenWithLedongthuc(filepath, opts...)
	if lerr == nil {
		return doc, nil
	}
	log.Info.Printf("pdftext: ledongthuc could not open %s: %v", filepath, lerr)

	// Final fallback to dslipak implementation
	doc, derr := pdf.OpenWithDslipak(filepath, opts...)
	if derr == nil {
		return doc, nil
	}
	return nil, errors.Wrapf(err, "no backend could open %s (ledongthuc: %v; dslipak: %v)", filepath, lerr, derr)
}

// OpenReader reads a PDF through the same backend chain as Open. The
// fallback backends need r to be an io.ReaderAt as well.
func OpenReader(r io.ReadSeeker, opts ...OpenOption) (Document, error) {
	doc, err := pdf.OpenReader(r, opts...)
	if err == nil {
		return doc, nil
	}

	ra, ok := r.(io.ReaderAt)
	if !ok {
		return nil, err
	}
	size, serr := r.Seek(0, io.SeekEnd)
	if serr != nil {
		return nil, errors.Wrap(serr, "size reader")
	}

	doc, lerr := pdf.OpenLedongthucReader(ra, size, opts...)
	if lerr == nil {
		return doc, nil
	}
	doc, derr := pdf.OpenDslipakReader(ra, size, opts...)
	if derr == nil {
		return doc, nil
	}
	return nil, errors.Wrapf(err, "no backend could read the PDF (ledongthuc: %v; dslipak: %v)", lerr, derr)
}

// OpenWithPassword opens a password-protected PDF file
func OpenWithPassword(filepath string, password string, opts ...OpenOption) (Document, error) {
	return Open(filepath, append(opts, WithPassword(password))...)
}

// OpenWithPDFCPU opens a PDF file using pdfcpu only
func OpenWithPDFCPU(filepath string, opts ...OpenOption) (Document, error) {
	return pdf.Open(filepath, opts...)
}

// OpenWithLedongthuc opens a PDF file using the ledongthuc/pdf library
func OpenWithLedongthuc(filepath string, opts ...OpenOption) (Document, error) {
	return pdf.OpenWithLedongthuc(filepath, opts...)
}

// OpenWithDslipak opens a PDF file using the dslipak/pdf library
func OpenWithDslipak(filepath string, opts ...OpenOption) (Document, error) {
	return pdf.OpenWithDslipak(filepath, opts...)
}

// ExtractPageText opens filepath and returns the text of one page
func ExtractPageText(filepath string, pageNumber int, opts ...TextExtractionOption) (string, error) {
	doc, err := Open(filepath)
	if err != nil {
		return "", err
	}
	defer doc.Close()
	return doc.ExtractPageText(pageNumber, opts...), nil
}
