package parser

import (
	"strings"

	"github.com/leapstack-labs/leapsoql/pkg/core"
	"github.com/leapstack-labs/leapsoql/pkg/token"
)

// Value parsing.
//
// Grammar:
//
//	where_value  → "(" query ")" | "(" element ("," element)* ")" | element
//	element      → ":" name | "?" | literal
//	literal      → DATE | DATETIME | NUMBER | STRING
//	             | TRUE | FALSE | NULL
//	             | date_constant | date_formula ":" NUMBER | currency
//
// Bare words are tried in that order; a currency is three uppercase letters
// followed by an amount, e.g. USD49.99.

// parseWhereValue parses the right side of a WHERE condition.
func (p *Parser) parseWhereValue() (core.Value, error) {
	if p.check(token.LPAREN) {
		sub, err := p.atSubquery()
		if err != nil {
			return nil, err
		}
		if sub {
			return p.parseSubquery()
		}
		return p.parseCollection()
	}
	return p.parseElement()
}

// parseCollection parses a parenthesized value list.
func (p *Parser) parseCollection() (*core.ValueCollection, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	if p.check(token.RPAREN) {
		return nil, p.errorf(ErrEmptyCollection)
	}
	coll := &core.ValueCollection{}
	for {
		v, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		coll.Values = append(coll.Values, v)

		if ok, err := p.match(token.COMMA); err != nil {
			return nil, err
		} else if !ok {
			break
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return coll, nil
}

// parseElement parses a variable or a primitive literal.
func (p *Parser) parseElement() (core.Value, error) {
	switch p.cur().Type {
	case token.COLON:
		return p.parseNamedVariable()
	case token.QUESTION:
		v := &core.PositionalVariable{Index: p.tok.NextPositional(), Start: p.cur().Pos}
		return v, p.next()
	}
	return p.parsePrimitive()
}

func (p *Parser) parseNamedVariable() (*core.NamedVariable, error) {
	colon, err := p.expect(token.COLON)
	if err != nil {
		return nil, err
	}
	name := p.cur()
	if name.Type != token.IDENT && !token.IsKeyword(name.Type) {
		return nil, p.unexpected("parameter name")
	}
	return &core.NamedVariable{Name: name.Literal, Start: colon.Pos}, p.next()
}

// parsePrimitive parses a single literal value.
func (p *Parser) parsePrimitive() (core.Value, error) {
	tok := p.cur()
	var v core.Value

	switch tok.Type {
	case token.DATE:
		v = &core.DateLiteral{Text: tok.Literal}
	case token.DATETIME:
		v = &core.DateTimeLiteral{Text: tok.Literal}
	case token.NUMBER:
		v = &core.NumberLiteral{Text: tok.Literal}
	case token.STRING:
		v = &core.StringLiteral{Value: tok.Literal}
	case token.IDENT:
		return p.parseBareLiteral()
	default:
		return nil, p.errorf(ErrUnexpectedExpression, tok)
	}
	return v, p.next()
}

// parseBareLiteral classifies an unquoted word as boolean, null, date
// constant, date formula or currency.
func (p *Parser) parseBareLiteral() (core.Value, error) {
	tok := p.cur()
	upper := strings.ToUpper(tok.Literal)

	switch {
	case upper == "TRUE" || upper == "FALSE":
		return &core.BooleanLiteral{Value: upper == "TRUE"}, p.next()
	case upper == "NULL":
		return &core.NullLiteral{}, p.next()
	case core.IsDateConstant(upper):
		return &core.DateConstant{Name: upper}, p.next()
	case core.IsDateFormula(upper):
		if err := p.next(); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		n := p.cur()
		if n.Type != token.NUMBER && n.Type != token.IDENT {
			return nil, p.unexpected("date formula count")
		}
		return &core.DateFormula{Name: upper, N: n.Literal}, p.next()
	}

	if code, amount, ok := core.SplitCurrency(tok.Literal); ok {
		return &core.CurrencyLiteral{Code: code, Amount: amount}, p.next()
	}
	return nil, p.errorf(ErrUnexpectedExpression, tok)
}

// isBareLiteral reports whether an unquoted word reads as a literal rather
// than a field name.
func isBareLiteral(word string) bool {
	upper := strings.ToUpper(word)
	if upper == "TRUE" || upper == "FALSE" || upper == "NULL" {
		return true
	}
	if core.IsDateConstant(upper) || core.IsDateFormula(upper) {
		return true
	}
	_, _, ok := core.SplitCurrency(word)
	return ok
}
