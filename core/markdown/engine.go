package markdown

import "github.com/gaurav-prasanna/mdconvert/core/doc"

// Engine converts Markdown documents into document nodes. It keeps no
// per-document state and may be used from several goroutines.
type Engine struct {
	opts Options
}

// New creates an Engine.
func New(opts Options) *Engine {
	return &Engine{opts: opts.withDefaults()}
}

// Options returns the effective options.
func (e *Engine) Options() Options {
	return e.opts
}

// Result is the outcome of one conversion.
type Result struct {
	// Nodes is the header followed by the converted body.
	Nodes []doc.Node
	// Diagnostics lists degradations absorbed while parsing.
	Diagnostics []Diagnostic
	// Tokens is the number of block tokens found; zero means empty input.
	Tokens int
}

// Empty reports whether the input produced no block tokens.
func (r Result) Empty() bool {
	return r.Tokens == 0
}

// Convert parses text and assembles nodes behind the given header nodes,
// which are copied through untouched.
func (e *Engine) Convert(text string, header []doc.Node) Result {
	return e.ConvertFunc(text, func([]Diagnostic) []doc.Node { return header })
}

// ConvertFunc is Convert with the header built after parsing, so the
// header can report the diagnostics of the body it precedes. A nil
// header func means no header.
func (e *Engine) ConvertFunc(text string, header func([]Diagnostic) []doc.Node) Result {
	tokens, diags := Tokenize(text, e.opts)
	var head []doc.Node
	if header != nil {
		head = header(diags)
	}
	return Result{
		Nodes:       Assemble(tokens, head),
		Diagnostics: diags,
		Tokens:      len(tokens),
	}
}
