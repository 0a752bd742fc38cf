package format

import (
	"strconv"

	"github.com/leapstack-labs/leapsoql/pkg/core"
	"github.com/leapstack-labs/leapsoql/pkg/token"
)

// formatQuery emits clauses in fixed order: SELECT, FROM, WHERE, WITH,
// GROUP BY, HAVING, ORDER BY, LIMIT, OFFSET.
func (p *Printer) formatQuery(q *core.Query) {
	if q == nil {
		return
	}

	first := true
	clause := func(fn func()) {
		if !first {
			p.br()
		}
		first = false
		fn()
	}

	if q.Select != nil {
		clause(func() { p.formatSelect(q.Select) })
	}
	if q.From != nil {
		clause(func() { p.formatFrom(q.From) })
	}
	if q.Where != nil {
		clause(func() { p.formatWhere(q.Where) })
	}
	if q.With != nil {
		clause(func() { p.formatWith(q.With) })
	}
	if q.Group != nil {
		clause(func() { p.formatGroupBy(q.Group) })
	}
	if q.Having != nil {
		clause(func() { p.formatHaving(q.Having) })
	}
	if q.Order != nil {
		clause(func() { p.formatOrderBy(q.Order) })
	}
	if q.Limit != nil {
		clause(func() {
			p.kw(token.LIMIT)
			p.space()
			p.write(strconv.Itoa(*q.Limit))
		})
	}
	if q.Offset != nil {
		clause(func() {
			p.kw(token.OFFSET)
			p.space()
			p.write(strconv.Itoa(*q.Offset))
		})
	}
}

func (p *Printer) formatSelect(sel *core.SelectPart) {
	p.kw(token.SELECT)
	p.br()
	p.indent()
	p.formatList(len(sel.Items), func(i int) {
		p.formatSelectItem(sel.Items[i])
	}, ",", true)
	p.dedent()
}

func (p *Printer) formatSelectItem(item core.SelectItem) {
	switch v := item.(type) {
	case *core.SelectField:
		p.write(v.Name)
		p.formatAlias(v.Alias)
	case *core.SelectFunction:
		p.formatFunc(v.Call)
		p.formatAlias(v.Alias)
	case *core.Subquery:
		p.formatSubquery(v)
	case *core.TypeofSelect:
		p.formatTypeof(v)
	}
}

func (p *Printer) formatAlias(alias string) {
	if alias == "" {
		return
	}
	p.space()
	p.kw(token.AS)
	p.space()
	p.write(alias)
}

// formatTypeof always renders on one line.
func (p *Printer) formatTypeof(ts *core.TypeofSelect) {
	p.kw(token.TYPEOF)
	p.space()
	p.write(ts.Object)
	for _, b := range ts.Branches {
		p.space()
		p.kw(token.WHEN)
		p.space()
		p.write(b.Type)
		p.space()
		p.kw(token.THEN)
		p.space()
		p.formatFieldList(b.Fields)
	}
	if ts.Else != nil {
		p.space()
		p.kw(token.ELSE)
		p.space()
		p.formatFieldList(ts.Else)
	}
	p.space()
	p.kw(token.END)
}

func (p *Printer) formatFieldList(sel *core.SelectPart) {
	p.formatList(len(sel.Items), func(i int) {
		p.formatSelectItem(sel.Items[i])
	}, ",", false)
}

func (p *Printer) formatSubquery(sq *core.Subquery) {
	p.write("(")
	p.brTight()
	p.indent()
	p.formatQuery(sq.Query)
	p.dedent()
	p.brTight()
	p.write(")")
}

func (p *Printer) formatFrom(from *core.FromPart) {
	p.kw(token.FROM)
	p.space()
	p.write(from.Object)
	p.formatAlias(from.Alias)
}

func (p *Printer) formatWhere(w *core.WherePart) {
	p.kw(token.WHERE)
	p.formatClauseChain(w.Group)
}

func (p *Printer) formatHaving(h *core.HavingPart) {
	p.kw(token.HAVING)
	p.formatClauseChain(h.Group)
}

func (p *Printer) formatWith(w *core.WithPart) {
	p.kw(token.WITH)
	switch w.Type {
	case core.WithFlag:
		p.space()
		p.write(w.Flag)
	case core.WithDataCategory:
		p.space()
		p.kw(token.DATA, token.CATEGORY)
		p.formatClauseChain(w.Group)
	default:
		p.formatClauseChain(w.Group)
	}
}

// formatClauseChain renders the top-level chain of a clause, one junction
// per line in pretty mode.
func (p *Printer) formatClauseChain(g *core.LogicalGroup) {
	p.br()
	p.indent()
	p.formatChain(g, true)
	p.dedent()
}

func (p *Printer) formatGroupBy(g *core.GroupPart) {
	p.kw(token.GROUP, token.BY)
	p.space()
	if g.Mode != core.GroupPlain {
		p.write(g.Mode.String())
		p.write("(")
	}
	p.formatList(len(g.Items), func(i int) {
		p.formatFuncArg(g.Items[i].(core.FuncArg))
	}, ",", false)
	if g.Mode != core.GroupPlain {
		p.write(")")
	}
}

func (p *Printer) formatOrderBy(o *core.OrderPart) {
	p.kw(token.ORDER, token.BY)
	p.space()
	p.formatList(len(o.Items), func(i int) {
		p.formatOrderItem(o.Items[i])
	}, ",", false)
}

func (p *Printer) formatOrderItem(item *core.OrderItem) {
	p.formatFuncArg(item.Expr.(core.FuncArg))
	if item.Direction == core.Descending {
		p.space()
		p.kw(token.DESC)
	}
	switch item.Nulls {
	case core.NullsFirst:
		p.space()
		p.kw(token.NULLS, token.FIRST)
	case core.NullsLast:
		p.space()
		p.kw(token.NULLS, token.LAST)
	}
}
