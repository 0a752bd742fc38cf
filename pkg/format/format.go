package format

import (
	"github.com/leapstack-labs/leapsoql/pkg/core"
)

// Option configures Pretty.
type Option func(*Printer)

// WithIndent sets the number of spaces per nesting level.
func WithIndent(n int) Option {
	return func(p *Printer) {
		if n > 0 {
			p.indentSize = n
		}
	}
}

// Render returns the canonical single-line text of q.
func Render(q *core.Query) string {
	p := newPrinter(false, 0)
	p.formatQuery(q)
	return p.String()
}

// Pretty returns an indented multi-line rendering of q.
func Pretty(q *core.Query, opts ...Option) string {
	p := newPrinter(true, DefaultIndent)
	for _, opt := range opts {
		opt(p)
	}
	p.formatQuery(q)
	return p.String()
}

// Node renders any node in canonical form. Clause parts render with their
// leading keyword; logical groups render without one.
func Node(n core.Node) string {
	p := newPrinter(false, 0)
	switch v := n.(type) {
	case *core.Query:
		p.formatQuery(v)
	case *core.SelectPart:
		p.formatSelect(v)
	case *core.FromPart:
		p.formatFrom(v)
	case *core.WherePart:
		p.formatWhere(v)
	case *core.WithPart:
		p.formatWith(v)
	case *core.GroupPart:
		p.formatGroupBy(v)
	case *core.HavingPart:
		p.formatHaving(v)
	case *core.OrderPart:
		p.formatOrderBy(v)
	case *core.OrderItem:
		p.formatOrderItem(v)
	case *core.LogicalGroup:
		p.formatChain(v, false)
	case *core.LogicalJunction:
		p.formatJunction(v)
	case *core.LogicalCondition:
		p.formatCondition(v)
	case core.SelectItem:
		p.formatSelectItem(v)
	case core.Value:
		p.formatValue(v)
	case core.FuncArg:
		p.formatFuncArg(v)
	}
	return p.String()
}
