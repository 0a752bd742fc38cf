package parser

import (
	"github.com/leapstack-labs/leapsoql/pkg/core"
	"github.com/leapstack-labs/leapsoql/pkg/token"
)

// FROM, WITH, GROUP BY and ORDER BY parsing.
//
// Grammar:
//
//	from        → object_name [[AS] alias]
//	with        → DATA CATEGORY category_chain | FLAG | chain
//	group       → [ROLLUP|CUBE] "(" group_list ")" | group_list
//	group_list  → group_item ("," group_item)*
//	group_item  → aggregate "(" [args] ")" | name
//	order_list  → order_item ("," order_item)*
//	order_item  → (name "(" [args] ")" | name) [ASC|DESC] [NULLS (FIRST|LAST)]

func (p *Parser) parseFrom() (*core.FromPart, error) {
	obj, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	alias, err := p.parseAlias()
	if err != nil {
		return nil, err
	}
	return &core.FromPart{Object: obj.Literal, Alias: alias}, nil
}

// parseWith parses the body of WITH. A lone identifier that cannot start a
// condition is a flag such as SECURITY_ENFORCED. DATA opens a data category
// filter only when CATEGORY follows; otherwise it is a field name.
func (p *Parser) parseWith() (*core.WithPart, error) {
	dataCategory := false
	if p.check(token.DATA) {
		next, err := p.tok.Peek()
		if err != nil {
			return nil, err
		}
		dataCategory = next.Type == token.CATEGORY
	}
	if dataCategory {
		if err := p.next(); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.CATEGORY); err != nil {
			return nil, err
		}
		g, err := p.parseChain(modeDataCategory)
		if err != nil {
			return nil, err
		}
		return &core.WithPart{Type: core.WithDataCategory, Group: g}, nil
	}

	if p.check(token.IDENT) {
		next, err := p.tok.Peek()
		if err != nil {
			return nil, err
		}
		if !continuesCondition(next.Type) {
			flag := p.cur().Literal
			return &core.WithPart{Type: core.WithFlag, Flag: flag}, p.next()
		}
	}

	g, err := p.parseChain(modeWhere)
	if err != nil {
		return nil, err
	}
	return &core.WithPart{Type: core.WithFilter, Group: g}, nil
}

// continuesCondition reports whether t may follow the left operand of a
// condition.
func continuesCondition(t token.TokenType) bool {
	switch t {
	case token.LPAREN, token.LIKE, token.IN, token.NOT, token.INCLUDES, token.EXCLUDES:
		return true
	}
	return token.IsComparison(t)
}

func (p *Parser) parseGroupBy() (*core.GroupPart, error) {
	g := &core.GroupPart{}
	switch p.cur().Type {
	case token.ROLLUP:
		g.Mode = core.GroupRollup
	case token.CUBE:
		g.Mode = core.GroupCube
	}
	if g.Mode != core.GroupPlain {
		if err := p.next(); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.LPAREN); err != nil {
			return nil, err
		}
	}

	for {
		nameTok, err := p.parseName()
		if err != nil {
			return nil, err
		}
		if p.check(token.LPAREN) {
			call, err := p.parseFuncCall(nameTok, core.ClauseGroupBy)
			if err != nil {
				return nil, err
			}
			g.Items = append(g.Items, call)
		} else {
			g.Items = append(g.Items, &core.FieldRef{Name: nameTok.Literal})
		}

		if ok, err := p.match(token.COMMA); err != nil {
			return nil, err
		} else if !ok {
			break
		}
	}

	if g.Mode != core.GroupPlain {
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (p *Parser) parseOrderBy() (*core.OrderPart, error) {
	o := &core.OrderPart{}
	for {
		item, err := p.parseOrderItem()
		if err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)

		if ok, err := p.match(token.COMMA); err != nil {
			return nil, err
		} else if !ok {
			return o, nil
		}
	}
}

func (p *Parser) parseOrderItem() (*core.OrderItem, error) {
	nameTok, err := p.parseName()
	if err != nil {
		return nil, err
	}
	item := &core.OrderItem{}
	if p.check(token.LPAREN) {
		call, err := p.parseFuncCall(nameTok, core.ClauseOrderBy)
		if err != nil {
			return nil, err
		}
		item.Expr = call
	} else {
		item.Expr = &core.FieldRef{Name: nameTok.Literal}
	}

	switch p.cur().Type {
	case token.ASC:
		if err := p.next(); err != nil {
			return nil, err
		}
	case token.DESC:
		item.Direction = core.Descending
		if err := p.next(); err != nil {
			return nil, err
		}
	}

	if ok, err := p.match(token.NULLS); err != nil {
		return nil, err
	} else if ok {
		switch p.cur().Type {
		case token.FIRST:
			item.Nulls = core.NullsFirst
		case token.LAST:
			item.Nulls = core.NullsLast
		default:
			return nil, p.unexpected("FIRST or LAST")
		}
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	return item, nil
}
