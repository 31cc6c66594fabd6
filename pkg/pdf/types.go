package pdf

import (
	"time"

	"github.com/pyhub-apps/pdftext-golang/pkg/content"
	"github.com/pyhub-apps/pdftext-golang/pkg/extractors"
	"github.com/pyhub-apps/pdftext-golang/pkg/font"
)

// BoundingBox represents a rectangular area in default user space
type BoundingBox struct {
	X0 float64 // Left
	Y0 float64 // Bottom
	X1 float64 // Right
	Y1 float64 // Top
}

// Width returns the width of the bounding box
func (b BoundingBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the height of the bounding box
func (b BoundingBox) Height() float64 {
	return b.Y1 - b.Y0
}

// Contains checks if a point is within the bounding box
func (b BoundingBox) Contains(x, y float64) bool {
	return x >= b.X0 && x <= b.X1 && y >= b.Y0 && y <= b.Y1
}

// Intersects checks if two bounding boxes intersect
func (b BoundingBox) Intersects(other BoundingBox) bool {
	return !(b.X1 < other.X0 || b.X0 > other.X1 || b.Y1 < other.Y0 || b.Y0 > other.Y1)
}

// Metadata represents PDF document metadata
type Metadata struct {
	Title        string
	Author       string
	Subject      string
	Keywords     string
	Creator      string
	Producer     string
	CreationDate time.Time
	ModDate      time.Time
	Trapped      string
}

// Extraction results
type (
	MatchedPattern = extractors.MatchedPattern
	Word           = extractors.Word
	Line           = extractors.Line
	Box            = extractors.Box
)

// TextExtractionOption is a function that modifies text extraction behavior
type TextExtractionOption func(*textExtractionConfig)

type textExtractionConfig struct {
	SpaceThreshold float64
	NewlineFactor  float64
	FilterMarked   bool
	UnicodeNorm    bool
	Logger         content.Logger
	MaxFormDepth   int
	XTolerance     float64
	YTolerance     float64
}

func newTextExtractionConfig(opts []TextExtractionOption) *textExtractionConfig {
	c := &textExtractionConfig{
		SpaceThreshold: extractors.DefaultSpaceThreshold,
		NewlineFactor:  extractors.DefaultNewlineFactor,
		FilterMarked:   true,
		MaxFormDepth:   content.DefaultMaxFormDepth,
		XTolerance:     3,
		YTolerance:     3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithSpaceThreshold sets the fraction of a space width a gap must reach
// before a space is inserted
func WithSpaceThreshold(threshold float64) TextExtractionOption {
	return func(c *textExtractionConfig) {
		c.SpaceThreshold = threshold
	}
}

// WithNewlineFactor sets the fraction of the ascent a chunk may sit off
// the previous baseline before a newline is inserted
func WithNewlineFactor(factor float64) TextExtractionOption {
	return func(c *textExtractionConfig) {
		c.NewlineFactor = factor
	}
}

// WithMarkedContentFilter controls suppression of Artifact marked content
func WithMarkedContentFilter(enabled bool) TextExtractionOption {
	return func(c *textExtractionConfig) {
		c.FilterMarked = enabled
	}
}

// WithUnicodeNormalization applies NFKC to extracted glyphs
func WithUnicodeNormalization(enabled bool) TextExtractionOption {
	return func(c *textExtractionConfig) {
		c.UnicodeNorm = enabled
	}
}

// WithLogger sends interpreter diagnostics to l
func WithLogger(l content.Logger) TextExtractionOption {
	return func(c *textExtractionConfig) {
		c.Logger = l
	}
}

// WithMaxFormDepth bounds Form XObject recursion
func WithMaxFormDepth(depth int) TextExtractionOption {
	return func(c *textExtractionConfig) {
		c.MaxFormDepth = depth
	}
}

// WithXTolerance sets the horizontal gap that still joins glyphs into a word
func WithXTolerance(tolerance float64) TextExtractionOption {
	return func(c *textExtractionConfig) {
		c.XTolerance = tolerance
	}
}

// WithYTolerance sets the baseline difference that still counts as one line
func WithYTolerance(tolerance float64) TextExtractionOption {
	return func(c *textExtractionConfig) {
		c.YTolerance = tolerance
	}
}

func (c *textExtractionConfig) processorOptions(fonts *font.Cache) []content.Option {
	opts := []content.Option{
		content.WithFontCache(fonts),
		content.WithMarkedContentFilter(c.FilterMarked),
		content.WithMaxFormDepth(c.MaxFormDepth),
	}
	if c.Logger != nil {
		opts = append(opts, content.WithLogger(c.Logger))
	}
	return opts
}

func (c *textExtractionConfig) assemblerOptions() []extractors.Option {
	return []extractors.Option{
		extractors.WithSpaceThreshold(c.SpaceThreshold),
		extractors.WithNewlineFactor(c.NewlineFactor),
		extractors.WithUnicodeNormalization(c.UnicodeNorm),
	}
}

func (c *textExtractionConfig) organizer() *extractors.TextOrganizer {
	to := extractors.NewTextOrganizer()
	to.SetTolerances(c.XTolerance, c.YTolerance)
	return to
}

// OpenOption is a function that modifies how a document is opened
type OpenOption func(*openConfig)

type openConfig struct {
	Password string
	Validate bool
	Workers  int
}

func newOpenConfig(opts []OpenOption) *openConfig {
	c := &openConfig{Validate: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithPassword sets the user and owner password of an encrypted document
func WithPassword(password string) OpenOption {
	return func(c *openConfig) {
		c.Password = password
	}
}

// WithValidation controls pdfcpu validation on open. It is on by default
// and only applies to the pdfcpu backend.
func WithValidation(enabled bool) OpenOption {
	return func(c *openConfig) {
		c.Validate = enabled
	}
}

// WithWorkers bounds the pages ExtractAll interprets at once. Zero or less
// means GOMAXPROCS.
func WithWorkers(n int) OpenOption {
	return func(c *openConfig) {
		c.Workers = n
	}
}
