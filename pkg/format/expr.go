package format

import (
	"strings"

	"github.com/leapstack-labs/leapsoql/pkg/core"
	"github.com/leapstack-labs/leapsoql/pkg/token"
)

// formatChain renders junctions in order. Only a clause's top-level chain
// is broken across lines; nested groups stay on one line.
func (p *Printer) formatChain(g *core.LogicalGroup, top bool) {
	for i, j := range g.Junctions {
		if i > 0 {
			if top {
				p.br()
			} else {
				p.space()
			}
			p.write(j.Op.String())
			p.space()
		}
		p.formatJunction(j)
	}
}

func (p *Printer) formatJunction(j *core.LogicalJunction) {
	if j.Not {
		p.kw(token.NOT)
		p.space()
	}
	switch c := j.Condition.(type) {
	case *core.LogicalGroup:
		p.write("(")
		p.formatChain(c, false)
		p.write(")")
	case *core.LogicalCondition:
		p.formatCondition(c)
	}
}

func (p *Printer) formatCondition(c *core.LogicalCondition) {
	p.formatFuncArg(c.Left.(core.FuncArg))
	p.space()
	p.write(string(c.Operator))
	p.space()
	p.formatValue(c.Right)
}

func (p *Printer) formatFunc(f *core.FuncCall) {
	p.write(f.Name)
	p.write("(")
	p.formatList(len(f.Args), func(i int) {
		p.formatFuncArg(f.Args[i])
	}, ",", false)
	p.write(")")
}

func (p *Printer) formatFuncArg(a core.FuncArg) {
	switch v := a.(type) {
	case *core.FuncCall:
		p.formatFunc(v)
	case core.Value:
		p.formatValue(v)
	}
}

func (p *Printer) formatValue(v core.Value) {
	switch val := v.(type) {
	case *core.FieldRef:
		p.write(val.Name)
	case *core.StringLiteral:
		p.write(QuoteString(val.Value))
	case *core.NumberLiteral:
		p.write(val.Text)
	case *core.DateLiteral:
		p.write(val.Text)
	case *core.DateTimeLiteral:
		p.write(val.Text)
	case *core.BooleanLiteral:
		if val.Value {
			p.write("TRUE")
		} else {
			p.write("FALSE")
		}
	case *core.NullLiteral:
		p.write("NULL")
	case *core.DateConstant:
		p.write(val.Name)
	case *core.DateFormula:
		p.write(val.Name + ":" + val.N)
	case *core.CurrencyLiteral:
		p.write(val.Code + val.Amount)
	case *core.NamedVariable:
		p.write(":" + val.Name)
	case *core.PositionalVariable:
		p.write("?")
	case *core.ValueCollection:
		p.write("(")
		p.formatList(len(val.Values), func(i int) {
			p.formatValue(val.Values[i])
		}, ",", false)
		p.write(")")
	case *core.Subquery:
		p.formatSubquery(val)
	}
}

// QuoteString returns s as a single-quoted literal. It is the inverse of
// string decoding: the escapes \\, \_ and \% pass through as written and
// any other backslash is escaped.
func QuoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			if i+1 < len(s) && (s[i+1] == '\\' || s[i+1] == '_' || s[i+1] == '%') {
				b.WriteByte('\\')
				b.WriteByte(s[i+1])
				i++
			} else {
				b.WriteString(`\\`)
			}
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
