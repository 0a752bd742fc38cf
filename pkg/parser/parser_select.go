package parser

import (
	"fmt"

	"github.com/leapstack-labs/leapsoql/pkg/core"
	"github.com/leapstack-labs/leapsoql/pkg/token"
)

// Query and select list parsing.
//
// Grammar:
//
//	query        → SELECT select_list FROM from [WHERE chain] [WITH with]
//	               [GROUP BY group] [HAVING chain] [ORDER BY order_list]
//	               [LIMIT int] [OFFSET int]
//	select_list  → select_item ("," select_item)*
//	select_item  → "(" query ")"
//	             | typeof
//	             | name "(" [args] ")" [[AS] alias]
//	             | name [[AS] alias]
//	typeof       → TYPEOF name (WHEN name THEN field_list)+ [ELSE field_list] END
//	args         → arg ("," arg)*
//	arg          → literal | name "(" [args] ")" | name

// parseQuery parses a statement starting at SELECT. It stops at the first
// token that cannot continue the statement, which is EOF for a top-level
// statement and ")" for a subquery.
func (p *Parser) parseQuery() (*core.Query, error) {
	if _, err := p.expect(token.SELECT); err != nil {
		return nil, err
	}
	q := &core.Query{}

	var err error
	if q.Select, err = p.parseSelectList(); err != nil {
		return nil, err
	}
	if _, err = p.expect(token.FROM); err != nil {
		return nil, err
	}
	if q.From, err = p.parseFrom(); err != nil {
		return nil, err
	}

	if ok, err := p.match(token.WHERE); err != nil {
		return nil, err
	} else if ok {
		g, err := p.parseChain(modeWhere)
		if err != nil {
			return nil, err
		}
		q.Where = &core.WherePart{Group: g}
	}

	if ok, err := p.match(token.WITH); err != nil {
		return nil, err
	} else if ok {
		if q.With, err = p.parseWith(); err != nil {
			return nil, err
		}
	}

	if p.check(token.GROUP) {
		if err := p.matchPair(token.GROUP, token.BY); err != nil {
			return nil, err
		}
		if q.Group, err = p.parseGroupBy(); err != nil {
			return nil, err
		}
	}

	if ok, err := p.match(token.HAVING); err != nil {
		return nil, err
	} else if ok {
		g, err := p.parseChain(modeHaving)
		if err != nil {
			return nil, err
		}
		q.Having = &core.HavingPart{Group: g}
	}

	if p.check(token.ORDER) {
		if err := p.matchPair(token.ORDER, token.BY); err != nil {
			return nil, err
		}
		if q.Order, err = p.parseOrderBy(); err != nil {
			return nil, err
		}
	}

	if ok, err := p.match(token.LIMIT); err != nil {
		return nil, err
	} else if ok {
		n, err := p.parseNonNegativeInt("LIMIT")
		if err != nil {
			return nil, err
		}
		q.Limit = &n
	}

	if ok, err := p.match(token.OFFSET); err != nil {
		return nil, err
	} else if ok {
		n, err := p.parseNonNegativeInt("OFFSET")
		if err != nil {
			return nil, err
		}
		q.Offset = &n
	}

	return q, nil
}

// parseSubquery parses "(" query ")" with the current token on "(".
func (p *Parser) parseSubquery() (*core.Subquery, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	q, err := p.parseQuery()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return &core.Subquery{Query: q}, nil
}

// atSubquery reports whether the cursor sits on "(" followed by SELECT.
func (p *Parser) atSubquery() (bool, error) {
	if !p.check(token.LPAREN) {
		return false, nil
	}
	next, err := p.tok.Peek()
	if err != nil {
		return false, err
	}
	return next.Type == token.SELECT, nil
}

// parseSelectList parses comma separated select items.
func (p *Parser) parseSelectList() (*core.SelectPart, error) {
	sel := &core.SelectPart{}
	for {
		item, err := p.parseSelectItem()
		if err != nil {
			return nil, err
		}
		sel.Items = append(sel.Items, item)

		if ok, err := p.match(token.COMMA); err != nil {
			return nil, err
		} else if !ok {
			break
		}
	}
	return sel, nil
}

func (p *Parser) parseSelectItem() (core.SelectItem, error) {
	if p.check(token.LPAREN) {
		sub, err := p.atSubquery()
		if err != nil {
			return nil, err
		}
		if !sub {
			return nil, p.errorf(ErrUnexpectedToken, p.cur(), "subquery")
		}
		return p.parseSubquery()
	}
	if p.check(token.TYPEOF) {
		return p.parseTypeof()
	}

	nameTok, err := p.parseName()
	if err != nil {
		return nil, err
	}

	var item core.Aliasable
	if p.check(token.LPAREN) {
		call, err := p.parseFuncCall(nameTok, core.ClauseSelect)
		if err != nil {
			return nil, err
		}
		item = &core.SelectFunction{Call: call}
	} else {
		item = &core.SelectField{Name: nameTok.Literal}
	}

	alias, err := p.parseAlias()
	if err != nil {
		return nil, err
	}
	if alias != "" {
		item = item.WithAlias(alias)
	}
	return item.(core.SelectItem), nil
}

// parseTypeof parses TYPEOF ... END.
func (p *Parser) parseTypeof() (*core.TypeofSelect, error) {
	start := p.cur()
	if _, err := p.expect(token.TYPEOF); err != nil {
		return nil, err
	}
	obj, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	ts := &core.TypeofSelect{Object: obj.Literal}

	for p.check(token.WHEN) {
		if err := p.next(); err != nil {
			return nil, err
		}
		typ, err := p.parseObjectName()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.THEN); err != nil {
			return nil, err
		}
		fields, err := p.parseFieldList()
		if err != nil {
			return nil, err
		}
		ts.Branches = append(ts.Branches, &core.TypeofBranch{Type: typ.Literal, Fields: fields})
	}
	if len(ts.Branches) == 0 {
		if p.check(token.ELSE) || p.check(token.END) {
			return nil, p.errorAt(start, ErrTypeofBranch)
		}
		return nil, p.unexpected(token.WHEN.String())
	}

	if ok, err := p.match(token.ELSE); err != nil {
		return nil, err
	} else if ok {
		if ts.Else, err = p.parseFieldList(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.END); err != nil {
		return nil, err
	}
	return ts, nil
}

// parseFieldList parses comma separated plain field names.
func (p *Parser) parseFieldList() (*core.SelectPart, error) {
	sel := &core.SelectPart{}
	for {
		tok, err := p.parseName()
		if err != nil {
			return nil, err
		}
		sel.Items = append(sel.Items, &core.SelectField{Name: tok.Literal})

		if ok, err := p.match(token.COMMA); err != nil {
			return nil, err
		} else if !ok {
			return sel, nil
		}
	}
}

// parseFuncCall parses the argument list of a call whose name has already
// been consumed. The name must be whitelisted for clause.
func (p *Parser) parseFuncCall(nameTok token.Token, clause core.Clause) (*core.FuncCall, error) {
	fn, err := p.checkFunction(nameTok, clause)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	call := &core.FuncCall{Name: nameTok.Literal, Start: nameTok.Pos}
	if !p.check(token.RPAREN) {
		argClause := fn.ArgClause(clause)
		for {
			arg, err := p.parseFuncArg(argClause)
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)

			if ok, err := p.match(token.COMMA); err != nil {
				return nil, err
			} else if !ok {
				break
			}
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	if n := len(call.Args); n < fn.MinArgs || n > fn.MaxArgs {
		return nil, p.errorAt(nameTok, ErrFunctionArity, nameTok.Literal, arity(fn), n)
	}
	return call, nil
}

// checkFunction resolves a function name against the whitelist of clause.
func (p *Parser) checkFunction(nameTok token.Token, clause core.Clause) (core.Function, error) {
	fn, ok := core.LookupFunction(nameTok.Literal)
	if ok && fn.Allowed(clause) {
		return fn, nil
	}
	msg := fmt.Sprintf(ErrUnknownFunction, nameTok.Literal)
	if ok {
		msg = fmt.Sprintf(ErrFunctionNotAllowed, nameTok.Literal, clause)
	}
	return core.Function{}, &WhitelistError{
		ParseError: ParseError{Pos: nameTok.Pos, Token: nameTok, Message: msg, Input: p.tok.Input()},
		Function:   nameTok.Literal,
		Clause:     clause,
		Suggestion: suggestFunction(nameTok.Literal, clause),
	}
}

func arity(fn core.Function) string {
	switch {
	case fn.MinArgs == fn.MaxArgs && fn.MinArgs == 1:
		return "1 argument"
	case fn.MinArgs == fn.MaxArgs:
		return fmt.Sprintf("%d arguments", fn.MinArgs)
	}
	return fmt.Sprintf("%d to %d arguments", fn.MinArgs, fn.MaxArgs)
}

// parseFuncArg parses a literal, a nested call or a field reference.
func (p *Parser) parseFuncArg(clause core.Clause) (core.FuncArg, error) {
	tok := p.cur()
	if isName(tok) {
		next, err := p.tok.Peek()
		if err != nil {
			return nil, err
		}
		if next.Type == token.LPAREN {
			if err := p.next(); err != nil {
				return nil, err
			}
			return p.parseFuncCall(tok, clause)
		}
		if tok.Type != token.IDENT || !isBareLiteral(tok.Literal) {
			return &core.FieldRef{Name: tok.Literal}, p.next()
		}
	}
	v, err := p.parsePrimitive()
	if err != nil {
		return nil, err
	}
	return v.(core.FuncArg), nil
}
