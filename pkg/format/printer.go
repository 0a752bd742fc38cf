// Package format renders query trees back into text.
//
// Render produces the canonical single-line form: uppercase keywords,
// single spaces, AS always written before aliases and strings re-quoted
// with backslash escapes. Pretty produces an indented multi-line layout of
// the same query. Both re-parse to the same tree.
package format

import (
	"bytes"
	"strings"

	"github.com/leapstack-labs/leapsoql/pkg/token"
)

// DefaultIndent is the number of spaces per level in Pretty output.
const DefaultIndent = 2

// Printer accumulates rendered text. In canonical mode line breaks collapse
// to single spaces and indentation is ignored.
type Printer struct {
	output      *bytes.Buffer
	pretty      bool
	indentSize  int
	depth       int
	atLineStart bool
}

func newPrinter(pretty bool, indentSize int) *Printer {
	return &Printer{
		output:      &bytes.Buffer{},
		pretty:      pretty,
		indentSize:  indentSize,
		atLineStart: true,
	}
}

// String returns the rendered output.
func (p *Printer) String() string {
	return strings.TrimRight(p.output.String(), " \n")
}

func (p *Printer) write(s string) {
	if p.atLineStart && len(s) > 0 {
		p.writeIndent()
	}
	p.output.WriteString(s)
	p.atLineStart = false
}

// br breaks the line in pretty mode and writes a space otherwise.
func (p *Printer) br() {
	if !p.pretty {
		p.space()
		return
	}
	p.output.WriteByte('\n')
	p.atLineStart = true
}

// brTight breaks the line in pretty mode and writes nothing otherwise.
func (p *Printer) brTight() {
	if p.pretty {
		p.output.WriteByte('\n')
		p.atLineStart = true
	}
}

func (p *Printer) writeIndent() {
	if p.pretty {
		p.output.WriteString(strings.Repeat(" ", p.depth*p.indentSize))
	}
	p.atLineStart = false
}

func (p *Printer) indent() {
	p.depth++
}

func (p *Printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

func (p *Printer) space() {
	p.output.WriteByte(' ')
}

// kw prints keywords separated by single spaces.
func (p *Printer) kw(tokens ...token.TokenType) {
	for i, t := range tokens {
		if i > 0 {
			p.space()
		}
		p.write(t.String())
	}
}

// formatList prints count items separated by sep. When multiline is set,
// a line break follows every separator.
func (p *Printer) formatList(count int, format func(i int), sep string, multiline bool) {
	for i := 0; i < count; i++ {
		format(i)
		if i < count-1 {
			p.write(sep)
			if multiline {
				p.br()
			} else {
				p.space()
			}
		}
	}
}
