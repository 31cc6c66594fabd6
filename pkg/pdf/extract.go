package pdf

import (
	"context"
	"regexp"
	"runtime"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/log"
	"github.com/pkg/errors"

	"github.com/pyhub-apps/pdftext-golang/pkg/content"
	"github.com/pyhub-apps/pdftext-golang/pkg/extractors"
)

// Process interprets the page, reporting every shown string to listener.
// Recoverable problems such as malformed shading dictionaries are logged;
// the error is only set when the stream could not be interpreted to the end.
func (p *basePage) Process(listener content.RenderListener, opts ...TextExtractionOption) error {
	return p.process(listener, newTextExtractionConfig(opts))
}

func (p *basePage) process(listener content.RenderListener, cfg *textExtractionConfig) error {
	proc := content.NewProcessor(listener, cfg.processorOptions(p.fonts)...)
	err := proc.ProcessContent(p.data, p.resources)
	for _, e := range proc.Errors() {
		log.Debug.Printf("pdftext: page %d: %v", p.number, e)
	}
	return errors.Wrapf(err, "page %d", p.number)
}

// assemble runs the page through a text assembler
func (p *basePage) assemble(cfg *textExtractionConfig, extra ...extractors.Option) *extractors.TextAssembler {
	a := extractors.NewTextAssembler(append(cfg.assemblerOptions(), extra...)...)
	if err := p.process(a, cfg); err != nil {
		log.Debug.Printf("pdftext: %v", err)
	}
	return a
}

// ExtractText extracts text from the page
func (p *basePage) ExtractText(opts ...TextExtractionOption) string {
	return p.assemble(newTextExtractionConfig(opts)).Text()
}

// ExtractRegionText extracts the text of glyphs starting inside the
// rectangle with lower-left corner x, y
func (p *basePage) ExtractRegionText(x, y, width, height float64, opts ...TextExtractionOption) string {
	region := extractors.NewRegion(x, y, width, height)
	return p.assemble(newTextExtractionConfig(opts), extractors.WithRegion(region)).Text()
}

// Search finds the matches of pattern in the page text
func (p *basePage) Search(pattern *regexp.Regexp, opts ...TextExtractionOption) []MatchedPattern {
	if pattern == nil {
		return nil
	}
	return extractors.Search(p.assemble(newTextExtractionConfig(opts)), p.number, pattern)
}

// ExtractWords groups the page glyphs into words
func (p *basePage) ExtractWords(opts ...TextExtractionOption) []Word {
	cfg := newTextExtractionConfig(opts)
	return cfg.organizer().ExtractWords(p.assemble(cfg).Glyphs())
}

// ExtractLines groups the page glyphs into lines
func (p *basePage) ExtractLines(opts ...TextExtractionOption) []Line {
	cfg := newTextExtractionConfig(opts)
	return cfg.organizer().ExtractLines(p.assemble(cfg).Glyphs())
}

// ExtractPageText returns the text of a page (1-based), or "" for a page
// outside the document
func (d *baseDocument) ExtractPageText(pageNumber int, opts ...TextExtractionOption) string {
	page, ok := d.page(pageNumber)
	if !ok {
		log.Debug.Printf("pdftext: page %d not in [1, %d]", pageNumber, len(d.pages))
		return ""
	}
	return page.ExtractText(opts...)
}

// ExtractRegionText returns the text of a page inside a rectangle, or ""
// for a page outside the document
func (d *baseDocument) ExtractRegionText(pageNumber int, x, y, width, height float64, opts ...TextExtractionOption) string {
	page, ok := d.page(pageNumber)
	if !ok {
		return ""
	}
	return page.ExtractRegionText(x, y, width, height, opts...)
}

// SearchPage returns the matches of pattern on a page, or nil for a page
// outside the document
func (d *baseDocument) SearchPage(pageNumber int, pattern *regexp.Regexp, opts ...TextExtractionOption) []MatchedPattern {
	page, ok := d.page(pageNumber)
	if !ok {
		return nil
	}
	return page.Search(pattern, opts...)
}

// ExtractAll extracts every page on a bounded pool of workers. Pages share
// the document font cache. Cancelling ctx stops pages that have not
// started yet.
func (d *baseDocument) ExtractAll(ctx context.Context, opts ...TextExtractionOption) ([]string, error) {
	workers := d.workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	texts := make([]string, len(d.pages))
	sem := make(chan struct{}, workers)
	errs := make(chan error, len(d.pages))

	var wg sync.WaitGroup
	for i, page := range d.pages {
		wg.Add(1)
		go func(i int, page Page) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
			defer func() { <-sem }()

			select {
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			default:
			}

			texts[i] = page.ExtractText(opts...)
		}(i, page)
	}

	wg.Wait()
	close(errs)

	if err := <-errs; err != nil {
		return nil, errors.Wrap(err, "extract pages")
	}
	return texts, nil
}
