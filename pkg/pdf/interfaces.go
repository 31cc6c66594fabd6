package pdf

import (
	"context"
	"regexp"

	"github.com/pyhub-apps/pdftext-golang/pkg/content"
)

// Document represents an opened PDF whose pages can be interpreted for text
type Document interface {
	// GetMetadata returns the PDF metadata
	GetMetadata() Metadata

	// GetPages returns all pages in the document
	GetPages() []Page

	// GetPage returns a specific page by index (0-based)
	GetPage(index int) (Page, error)

	// PageCount returns the total number of pages
	PageCount() int

	// ExtractPageText returns the text of a page (1-based). A page outside
	// the document yields "".
	ExtractPageText(pageNumber int, opts ...TextExtractionOption) string

	// ExtractRegionText returns the text whose glyphs start inside the
	// rectangle with lower-left corner x, y
	ExtractRegionText(pageNumber int, x, y, width, height float64, opts ...TextExtractionOption) string

	// SearchPage returns the matches of pattern in the text of a page
	SearchPage(pageNumber int, pattern *regexp.Regexp, opts ...TextExtractionOption) []MatchedPattern

	// ExtractAll returns the text of every page, in page order
	ExtractAll(ctx context.Context, opts ...TextExtractionOption) ([]string, error)

	// Close releases resources associated with the document
	Close() error
}

// Page represents a single page in a PDF document
type Page interface {
	// GetPageNumber returns the page number (1-based)
	GetPageNumber() int

	// GetWidth returns the page width
	GetWidth() float64

	// GetHeight returns the page height
	GetHeight() float64

	// GetRotation returns the page rotation in degrees
	GetRotation() int

	// GetBBox returns the page media box
	GetBBox() BoundingBox

	// Content returns the decoded content streams joined by newlines
	Content() []byte

	// Resources returns the page resources, inherited ones included
	Resources() *content.Resources

	// Process interprets the page, reporting to listener
	Process(listener content.RenderListener, opts ...TextExtractionOption) error

	// ExtractText extracts text from the page
	ExtractText(opts ...TextExtractionOption) string

	// ExtractRegionText extracts the text inside a rectangle
	ExtractRegionText(x, y, width, height float64, opts ...TextExtractionOption) string

	// Search finds pattern in the page text
	Search(pattern *regexp.Regexp, opts ...TextExtractionOption) []MatchedPattern

	// ExtractWords groups the page glyphs into words
	ExtractWords(opts ...TextExtractionOption) []Word

	// ExtractLines groups the page glyphs into lines
	ExtractLines(opts ...TextExtractionOption) []Line
}
