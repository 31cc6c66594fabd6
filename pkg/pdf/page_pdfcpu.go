package pdf

import (
	"github.com/pdfcpu/pdfcpu/pkg/log"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/pkg/errors"

	"github.com/pyhub-apps/pdftext-golang/pkg/content"
	"github.com/pyhub-apps/pdftext-golang/pkg/font"
	"github.com/pyhub-apps/pdftext-golang/pkg/objects"
)

// PDFCPUPage implements the Page interface using pdfcpu
type PDFCPUPage struct {
	basePage
	pageDict types.Dict
}

// NewPDFCPUPage creates a page from a pdfcpu context. Indirect objects are
// resolved through r, which must be safe for concurrent use if pages are
// extracted in parallel.
func NewPDFCPUPage(ctx *model.Context, r objects.Resolver, fonts *font.Cache, pageNumber int) (*PDFCPUPage, error) {
	if ctx == nil {
		return nil, errors.New("context is nil")
	}
	if r == nil {
		r = ctx
	}

	if pageNumber < 1 || pageNumber > ctx.PageCount {
		return nil, errors.Wrapf(ErrPageOutOfRange, "page number %d not in [1, %d]", pageNumber, ctx.PageCount)
	}

	// Get page dictionary and inherited attributes
	pageDict, _, attrs, err := ctx.PageDict(pageNumber, false)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page dict")
	}
	if pageDict == nil {
		return nil, errors.Errorf("page %d has no dictionary", pageNumber)
	}

	page := &PDFCPUPage{
		basePage: basePage{
			number:   pageNumber,
			mediaBox: defaultMediaBox,
			fonts:    fonts,
		},
		pageDict: pageDict,
	}

	if attrs != nil && attrs.MediaBox != nil {
		mb := attrs.MediaBox
		page.mediaBox = mediaBoxOf([]float64{mb.LL.X, mb.LL.Y, mb.UR.X, mb.UR.Y})
	} else if box, ok := objects.Numbers(r, inheritedAttr(r, pageDict, "MediaBox")); ok {
		page.mediaBox = mediaBoxOf(box)
	}

	// Inherited attributes first, then the page tree
	if attrs != nil {
		page.rotation = normalizeRotation(attrs.Rotate)
	} else if rot, ok := objects.Number(r, inheritedAttr(r, pageDict, "Rotate")); ok {
		page.rotation = normalizeRotation(int(rot))
	}

	res, _ := objects.Dict(r, inheritedAttr(r, pageDict, "Resources"))
	page.resources = content.NewResources(res, r)

	page.data = extractContent(r, pageDict["Contents"], pageNumber)
	return page, nil
}

// extractContent decodes a page's content streams. A stream that fails to
// decode is skipped so the rest of the page still extracts.
func extractContent(r objects.Resolver, contents types.Object, pageNumber int) []byte {
	if contents == nil {
		return nil
	}

	var streams []types.Object
	if arr, ok := objects.Array(r, contents); ok {
		streams = arr
	} else {
		streams = []types.Object{contents}
	}

	var contentStreams [][]byte
	for i, item := range streams {
		decoded, err := objects.StreamContent(r, item)
		if err != nil {
			log.Debug.Printf("pdftext: page %d content stream %d: %v", pageNumber, i, err)
			continue
		}
		contentStreams = append(contentStreams, decoded)
	}
	return combineContentStreams(contentStreams)
}

// PageDict returns the page dictionary
func (p *PDFCPUPage) PageDict() types.Dict {
	return p.pageDict
}
