package content

// RenderListener receives text as the processor shows it. Listeners must not
// keep a TextRenderInfo after the call returns; derived values may be copied.
type RenderListener interface {
	RenderText(info *TextRenderInfo)
	// Reset clears per-page state
	Reset()
}

// MarkedContentListener is implemented by listeners that track marked
// content sequences
type MarkedContentListener interface {
	BeginMarkedContent(tag string, props map[string]interface{})
	EndMarkedContent()
}

// ImageListener is implemented by listeners that want image placements
type ImageListener interface {
	RenderImage(info *ImageRenderInfo)
}

// TextCollector is a RenderListener that keeps the text of every render
// call in order
type TextCollector struct {
	Chunks []string
}

// RenderText implements RenderListener
func (c *TextCollector) RenderText(info *TextRenderInfo) {
	c.Chunks = append(c.Chunks, info.Text())
}

// Reset implements RenderListener
func (c *TextCollector) Reset() {
	c.Chunks = nil
}
