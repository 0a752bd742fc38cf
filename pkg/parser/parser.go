// Package parser turns query text into the tree defined in pkg/core.
//
// # Usage
//
//	q, err := parser.Parse("SELECT Id, Name FROM Account WHERE Name = :name")
//	if err != nil {
//	    // handle error
//	}
//
// Clause fragments can be parsed in isolation, which is how the query
// builder grafts text into a tree:
//
//	p := parser.New()
//	where, err := p.ParseWhere("Amount > 100 AND StageName = 'Won'")
//
// # Grammar Overview
//
//	query      → SELECT select_list FROM from [WHERE chain] [WITH with]
//	             [GROUP BY group] [HAVING chain] [ORDER BY order_list]
//	             [LIMIT int] [OFFSET int]
//	chain      → junction ((AND|OR) junction)*
//	junction   → [NOT] ( "(" chain ")" | condition )
//	condition  → operand operator value
//
// Chains are flat and evaluated in written order: AND does not bind tighter
// than OR. See each file for the grammar of the clauses it handles.
//
// There is no error recovery. The first error aborts the parse and is one
// of *LexError, *ParseError or *WhitelistError.
package parser

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/leapsoql/pkg/core"
	"github.com/leapstack-labs/leapsoql/pkg/token"
)

// Parser is a recursive-descent parser. A Parser may be reused for
// successive inputs but must not be used from several goroutines at once.
type Parser struct {
	tok *Tokenizer
}

// New creates a Parser.
func New() *Parser {
	return &Parser{tok: NewTokenizer("")}
}

// Parse parses a complete statement.
func Parse(input string) (*core.Query, error) {
	return New().Parse(input)
}

// Parse parses a complete statement.
func (p *Parser) Parse(input string) (*core.Query, error) {
	return parseAll(p, input, func() (*core.Query, error) { return p.parseQuery() })
}

// ParseSelect parses a select list, with or without the SELECT keyword.
func (p *Parser) ParseSelect(input string) (*core.SelectPart, error) {
	return parseAll(p, input, func() (*core.SelectPart, error) {
		if _, err := p.match(token.SELECT); err != nil {
			return nil, err
		}
		return p.parseSelectList()
	})
}

// ParseFrom parses an object name with an optional alias.
func (p *Parser) ParseFrom(input string) (*core.FromPart, error) {
	return parseAll(p, input, func() (*core.FromPart, error) {
		if _, err := p.match(token.FROM); err != nil {
			return nil, err
		}
		return p.parseFrom()
	})
}

// ParseWhere parses a WHERE condition chain.
func (p *Parser) ParseWhere(input string) (*core.LogicalGroup, error) {
	return parseAll(p, input, func() (*core.LogicalGroup, error) {
		if _, err := p.match(token.WHERE); err != nil {
			return nil, err
		}
		return p.parseChain(modeWhere)
	})
}

// ParseWith parses the body of a WITH clause.
func (p *Parser) ParseWith(input string) (*core.WithPart, error) {
	return parseAll(p, input, func() (*core.WithPart, error) {
		if _, err := p.match(token.WITH); err != nil {
			return nil, err
		}
		return p.parseWith()
	})
}

// ParseGroup parses a GROUP BY list, with or without the leading keywords.
func (p *Parser) ParseGroup(input string) (*core.GroupPart, error) {
	return parseAll(p, input, func() (*core.GroupPart, error) {
		if err := p.matchPair(token.GROUP, token.BY); err != nil {
			return nil, err
		}
		return p.parseGroupBy()
	})
}

// ParseHaving parses a HAVING condition chain.
func (p *Parser) ParseHaving(input string) (*core.LogicalGroup, error) {
	return parseAll(p, input, func() (*core.LogicalGroup, error) {
		if _, err := p.match(token.HAVING); err != nil {
			return nil, err
		}
		return p.parseChain(modeHaving)
	})
}

// ParseOrder parses an ORDER BY list, with or without the leading keywords.
func (p *Parser) ParseOrder(input string) (*core.OrderPart, error) {
	return parseAll(p, input, func() (*core.OrderPart, error) {
		if err := p.matchPair(token.ORDER, token.BY); err != nil {
			return nil, err
		}
		return p.parseOrderBy()
	})
}

// ParseLeftWhere parses the left side of a WHERE condition.
func (p *Parser) ParseLeftWhere(input string) (core.Operand, error) {
	return parseAll(p, input, func() (core.Operand, error) { return p.parseOperand(core.ClauseWhere) })
}

// ParseRightWhere parses the right side of a WHERE condition.
func (p *Parser) ParseRightWhere(input string) (core.Value, error) {
	return parseAll(p, input, func() (core.Value, error) { return p.parseWhereValue() })
}

// ParseLeftHaving parses the aggregate call on the left of a HAVING
// condition.
func (p *Parser) ParseLeftHaving(input string) (*core.FuncCall, error) {
	return parseAll(p, input, func() (*core.FuncCall, error) { return p.parseHavingOperand() })
}

// ParseRightHaving parses the right side of a HAVING condition.
func (p *Parser) ParseRightHaving(input string) (core.Value, error) {
	return parseAll(p, input, func() (core.Value, error) { return p.parseHavingValue() })
}

// parseAll resets the tokenizer to input, runs fn and requires that the
// whole input was consumed.
func parseAll[T any](p *Parser, input string, fn func() (T, error)) (T, error) {
	var zero T
	p.tok.SetInput(input)
	if err := p.next(); err != nil {
		return zero, err
	}
	out, err := fn()
	if err != nil {
		return zero, err
	}
	if _, err := p.tok.Expect(token.EOF); err != nil {
		return zero, err
	}
	return out, nil
}

// ---------- Token Helpers ----------

func (p *Parser) cur() token.Token {
	return p.tok.Current()
}

func (p *Parser) next() error {
	return p.tok.Next()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.tok.Current().Type == t
}

// match consumes the current token if it matches and reports whether it did.
func (p *Parser) match(t token.TokenType) (bool, error) {
	if !p.check(t) {
		return false, nil
	}
	return true, p.next()
}

// matchPair consumes a two keyword prefix such as GROUP BY when present.
func (p *Parser) matchPair(first, second token.TokenType) error {
	ok, err := p.match(first)
	if err != nil || !ok {
		return err
	}
	_, err = p.tok.Expect(second)
	return err
}

// expect consumes a token of type t or fails.
func (p *Parser) expect(t token.TokenType) (token.Token, error) {
	return p.tok.Expect(t)
}

// errorf builds a *ParseError at the current token.
func (p *Parser) errorf(format string, args ...any) error {
	return p.errorAt(p.cur(), format, args...)
}

func (p *Parser) errorAt(tok token.Token, format string, args ...any) error {
	return &ParseError{Pos: tok.Pos, Token: tok, Message: fmt.Sprintf(format, args...), Input: p.tok.Input()}
}

func (p *Parser) unexpected(expected string) error {
	return p.errorf(ErrUnexpectedToken, p.cur(), expected)
}

// ---------- Name Helpers ----------

// isName reports whether tok can be used as a field or alias name.
func isName(tok token.Token) bool {
	return tok.Type == token.IDENT || token.IsSoftKeyword(tok.Type)
}

// parseName consumes a field name or dotted path.
func (p *Parser) parseName() (token.Token, error) {
	tok := p.cur()
	if !isName(tok) {
		return tok, p.unexpected("name")
	}
	return tok, p.next()
}

// parseObjectName consumes an object or type name. Any keyword spelling is
// accepted so that objects such as Group or Order can be named.
func (p *Parser) parseObjectName() (token.Token, error) {
	tok := p.cur()
	if tok.Type != token.IDENT && !token.IsKeyword(tok.Type) {
		return tok, p.unexpected("object name")
	}
	return tok, p.next()
}

// parseAlias consumes an optional alias, with or without AS.
func (p *Parser) parseAlias() (string, error) {
	hasAS, err := p.match(token.AS)
	if err != nil {
		return "", err
	}
	if hasAS {
		tok, err := p.parseName()
		if err != nil {
			return "", err
		}
		return tok.Literal, nil
	}
	if p.check(token.IDENT) {
		alias := p.cur().Literal
		return alias, p.next()
	}
	return "", nil
}

// parseNonNegativeInt consumes an integer literal >= 0 after keyword.
func (p *Parser) parseNonNegativeInt(keyword string) (int, error) {
	tok := p.cur()
	if tok.Type != token.NUMBER {
		return 0, p.errorf(ErrNonNegativeInt, keyword, tok)
	}
	n, err := strconv.Atoi(tok.Literal)
	if err != nil || n < 0 {
		return 0, p.errorf(ErrNonNegativeInt, keyword, tok.Literal)
	}
	return n, p.next()
}
