// Package content interprets PDF content streams. A Processor walks the
// operators of a page, maintains the graphics and text state, resolves
// fonts and reports every shown string to a RenderListener.
package content

import (
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/log"
	"github.com/pkg/errors"

	"github.com/pyhub-apps/pdftext-golang/pkg/font"
	"github.com/pyhub-apps/pdftext-golang/pkg/parser"
)

// DefaultMaxFormDepth bounds Form XObject recursion
const DefaultMaxFormDepth = 32

// Logger receives interpreter diagnostics
type Logger interface {
	Printf(format string, args ...interface{})
}

// OperatorFunc handles one operator. Operands are cleared after it returns.
type OperatorFunc func(p *Processor, op *parser.Operation)

type config struct {
	fonts        *font.Cache
	maxFormDepth int
	filterMarked bool
	logger       Logger
	maxNestDepth int
}

// Option configures a Processor
type Option func(*config)

// WithFontCache shares a document font cache between processors
func WithFontCache(c *font.Cache) Option {
	return func(cfg *config) {
		cfg.fonts = c
	}
}

// WithMaxFormDepth bounds Form XObject recursion
func WithMaxFormDepth(depth int) Option {
	return func(cfg *config) {
		if depth > 0 {
			cfg.maxFormDepth = depth
		}
	}
}

// WithMarkedContentFilter controls suppression of Artifact and PlacedPDF
// marked content. It is on by default.
func WithMarkedContentFilter(enabled bool) Option {
	return func(cfg *config) {
		cfg.filterMarked = enabled
	}
}

// WithLogger sends diagnostics to l instead of pdfcpu's debug logger
func WithLogger(l Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithMaxNestingDepth bounds operand array and dictionary nesting
func WithMaxNestingDepth(depth int) Option {
	return func(cfg *config) {
		if depth > 0 {
			cfg.maxNestDepth = depth
		}
	}
}

// Processor interprets content streams for one page at a time. It is not
// safe for concurrent use; create one per goroutine.
type Processor struct {
	listener RenderListener
	cfg      config
	ops      map[string]OperatorFunc

	stack     *StateStack
	text      TextState
	resources *Resources

	marked     []markedContent
	markedBase int // entries below this belong to an enclosing stream
	formDepth  int
	visiting   map[string]bool

	errs []error
}

// NewProcessor creates a processor reporting to listener
func NewProcessor(listener RenderListener, opts ...Option) *Processor {
	cfg := config{
		maxFormDepth: DefaultMaxFormDepth,
		filterMarked: true,
		logger:       log.Debug,
		maxNestDepth: parser.MaxNestingDepth,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Processor{
		listener: listener,
		cfg:      cfg,
		ops:      make(map[string]OperatorFunc, len(defaultOperators)),
		visiting: make(map[string]bool),
	}
	for name, fn := range defaultOperators {
		p.ops[name] = fn
	}
	p.resetState()
	return p
}

// RegisterOperator installs or replaces the handler for an operator. A nil
// handler removes it.
func (p *Processor) RegisterOperator(name string, fn OperatorFunc) {
	if fn == nil {
		delete(p.ops, name)
		return
	}
	p.ops[name] = fn
}

// Reset clears processor state and resets the listener
func (p *Processor) Reset() {
	p.resetState()
	p.errs = nil
	if p.listener != nil {
		p.listener.Reset()
	}
}

func (p *Processor) resetState() {
	p.stack = NewStateStack()
	p.text = TextState{Matrix: IdentityMatrix(), LineMatrix: IdentityMatrix()}
	p.resources = nil
	p.marked = nil
	p.markedBase = 0
	p.formDepth = 0
	p.visiting = make(map[string]bool)
}

// ProcessContent interprets a page content stream with the given resources.
// Graphics state starts fresh; the listener is not reset. A stream that
// cannot be read to the end stops early, keeping what was reported, and
// its error is returned.
func (p *Processor) ProcessContent(data []byte, res *Resources) error {
	p.resetState()
	p.resources = res
	return p.process(data)
}

// Errors returns the structure and stream errors recorded since the last
// Reset
func (p *Processor) Errors() []error {
	return p.errs
}

// State returns the current graphics state
func (p *Processor) State() *GraphicsState {
	return p.stack.Current()
}

// TextState returns the current text matrices
func (p *Processor) TextState() TextState {
	return p.text
}

// Resources returns the resources in effect
func (p *Processor) Resources() *Resources {
	return p.resources
}

func (p *Processor) process(data []byte) error {
	cp := parser.NewContentParser(data)
	cp.SetMaxDepth(p.cfg.maxNestDepth)

	for {
		op, err := cp.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			err = errors.Wrap(err, "content stream")
			p.record(err)
			return err
		}
		p.invoke(op)
	}
}

func (p *Processor) invoke(op *parser.Operation) {
	fn, ok := p.ops[op.Operator]
	if !ok {
		p.debugf("content: unknown operator %q\n", op.Operator)
		return
	}
	fn(p, op)
}

func (p *Processor) record(err error) {
	p.errs = append(p.errs, err)
	p.debugf("content: %v\n", err)
}

func (p *Processor) debugf(format string, args ...interface{}) {
	p.cfg.logger.Printf(format, args...)
}

// loadFont resolves a font resource through the cache
func (p *Processor) loadFont(name string) font.Font {
	obj, ok := p.resources.Font(name)
	if !ok {
		p.debugf("content: font /%s not in resources, using fallback\n", name)
		return font.Fallback()
	}
	return p.cfg.fonts.Load(p.resources.resolver(), obj)
}

// operands helpers

func numbers(op *parser.Operation, n int) ([]float64, bool) {
	if len(op.Operands) < n {
		return nil, false
	}
	args := op.Operands[len(op.Operands)-n:]
	out := make([]float64, n)
	for i, arg := range args {
		v, ok := parser.Number(arg)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func number(op *parser.Operation) (float64, bool) {
	v, ok := numbers(op, 1)
	if !ok {
		return 0, false
	}
	return v[0], true
}

func nameOperand(op *parser.Operation, i int) (string, bool) {
	if i >= len(op.Operands) {
		return "", false
	}
	n, ok := op.Operands[i].(parser.PDFName)
	return string(n), ok
}

// lastName returns the final operand as a name
func lastName(op *parser.Operation) (string, bool) {
	if len(op.Operands) == 0 {
		return "", false
	}
	return nameOperand(op, len(op.Operands)-1)
}
