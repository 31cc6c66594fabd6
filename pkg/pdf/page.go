package pdf

import (
	"bytes"

	"github.com/pyhub-apps/pdftext-golang/pkg/content"
	"github.com/pyhub-apps/pdftext-golang/pkg/font"
)

// Default US Letter media box
var defaultMediaBox = BoundingBox{X0: 0, Y0: 0, X1: 612, Y1: 792}

// basePage holds what every backend hands the interpreter: decoded content,
// resources and page geometry
type basePage struct {
	number    int
	mediaBox  BoundingBox
	rotation  int
	data      []byte
	resources *content.Resources
	fonts     *font.Cache
}

// GetPageNumber returns the page number (1-based)
func (p *basePage) GetPageNumber() int {
	return p.number
}

// GetWidth returns the page width
func (p *basePage) GetWidth() float64 {
	return p.mediaBox.Width()
}

// GetHeight returns the page height
func (p *basePage) GetHeight() float64 {
	return p.mediaBox.Height()
}

// GetRotation returns the page rotation in degrees
func (p *basePage) GetRotation() int {
	return p.rotation
}

// GetBBox returns the page media box
func (p *basePage) GetBBox() BoundingBox {
	return p.mediaBox
}

// Content returns the decoded content streams joined by newlines
func (p *basePage) Content() []byte {
	return p.data
}

// Resources returns the page resources
func (p *basePage) Resources() *content.Resources {
	return p.resources
}

// combineContentStreams joins the streams of an array /Contents. The
// newline keeps a token split across two streams from merging.
func combineContentStreams(streams [][]byte) []byte {
	return bytes.Join(streams, []byte{'\n'})
}

// normalizeRotation maps /Rotate onto 0, 90, 180 or 270
func normalizeRotation(r int) int {
	r %= 360
	if r < 0 {
		r += 360
	}
	return r - r%90
}

func mediaBoxOf(v []float64) BoundingBox {
	if len(v) != 4 {
		return defaultMediaBox
	}
	return BoundingBox{
		X0: min(v[0], v[2]),
		Y0: min(v[1], v[3]),
		X1: max(v[0], v[2]),
		Y1: max(v[1], v[3]),
	}
}
