package parser

import (
	"strings"

	"github.com/leapstack-labs/leapsoql/pkg/core"
	"github.com/leapstack-labs/leapsoql/pkg/token"
)

// Logical chain parsing for WHERE, WITH and HAVING.
//
// Grammar:
//
//	chain        → junction ((AND|OR) junction)*
//	junction     → [NOT] ( "(" chain ")" | condition )
//	where_cond   → operand where_op where_value
//	where_op     → "=" | "!=" | "<" | "<=" | ">" | ">=" | LIKE
//	             | IN | NOT IN | INCLUDES | EXCLUDES
//	having_cond  → aggregate "(" [args] ")" compare_op element
//	category     → name (AT|ABOVE|BELOW|ABOVE_OR_BELOW) (name | "(" name ("," name)* ")")
//
// A chain is read iteratively into a flat list of junctions; only
// parentheses introduce nesting. Category chains accept AND only and
// allow neither NOT nor parentheses.

type chainMode int

const (
	modeWhere chainMode = iota
	modeHaving
	modeDataCategory
)

func (m chainMode) String() string {
	switch m {
	case modeHaving:
		return "HAVING"
	case modeDataCategory:
		return "WITH DATA CATEGORY"
	}
	return "WHERE"
}

// parseChain parses junctions until a token that is neither AND nor OR.
func (p *Parser) parseChain(mode chainMode) (*core.LogicalGroup, error) {
	g := &core.LogicalGroup{}
	op := core.OpNone

	for {
		j := &core.LogicalJunction{Op: op}

		if p.check(token.NOT) {
			if mode == modeDataCategory {
				return nil, p.errorf(ErrDataCategoryNot)
			}
			j.Not = true
			if err := p.next(); err != nil {
				return nil, err
			}
		}

		if p.check(token.LPAREN) {
			if mode == modeDataCategory {
				return nil, p.errorf(ErrDataCategoryNot)
			}
			if err := p.next(); err != nil {
				return nil, err
			}
			sub, err := p.parseChain(mode)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RPAREN); err != nil {
				return nil, err
			}
			j.Condition = sub
		} else {
			cond, err := p.parseCondition(mode)
			if err != nil {
				return nil, err
			}
			j.Condition = cond
		}
		g.Junctions = append(g.Junctions, j)

		switch p.cur().Type {
		case token.AND:
			op = core.OpAnd
		case token.OR:
			if mode == modeDataCategory {
				return nil, p.errorf(ErrDataCategoryJunction)
			}
			op = core.OpOr
		default:
			return g, nil
		}
		if err := p.next(); err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseCondition(mode chainMode) (*core.LogicalCondition, error) {
	switch mode {
	case modeHaving:
		return p.parseHavingCondition()
	case modeDataCategory:
		return p.parseCategoryCondition()
	}
	return p.parseWhereCondition()
}

// ---------- WHERE ----------

func (p *Parser) parseWhereCondition() (*core.LogicalCondition, error) {
	start := p.cur().Pos
	left, err := p.parseOperand(core.ClauseWhere)
	if err != nil {
		return nil, err
	}
	opTok := p.cur()
	op, err := p.parseOperator()
	if err != nil {
		return nil, err
	}
	right, err := p.parseWhereValue()
	if err != nil {
		return nil, err
	}

	switch right.(type) {
	case *core.ValueCollection, *core.Subquery:
		if !op.IsSet() {
			return nil, p.errorAt(opTok, ErrScalarOperand, op)
		}
	case *core.NamedVariable, *core.PositionalVariable:
	default:
		if op.IsSet() {
			return nil, p.errorAt(opTok, ErrSetOperand, op)
		}
	}
	return &core.LogicalCondition{Left: left, Operator: op, Right: right, Start: start}, nil
}

// parseOperand parses a field reference or a function call legal in clause.
func (p *Parser) parseOperand(clause core.Clause) (core.Operand, error) {
	nameTok, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if p.check(token.LPAREN) {
		return p.parseFuncCall(nameTok, clause)
	}
	return &core.FieldRef{Name: nameTok.Literal}, nil
}

// parseOperator parses a comparison or set operator.
func (p *Parser) parseOperator() (core.Operator, error) {
	var op core.Operator
	switch p.cur().Type {
	case token.EQ:
		op = core.OpEq
	case token.NE:
		op = core.OpNe
	case token.LT:
		op = core.OpLt
	case token.LE:
		op = core.OpLe
	case token.GT:
		op = core.OpGt
	case token.GE:
		op = core.OpGe
	case token.LIKE:
		op = core.OpLike
	case token.IN:
		op = core.OpIn
	case token.INCLUDES:
		op = core.OpIncludes
	case token.EXCLUDES:
		op = core.OpExcludes
	case token.NOT:
		if err := p.next(); err != nil {
			return "", err
		}
		if !p.check(token.IN) {
			return "", p.errorf(ErrNotIn)
		}
		op = core.OpNotIn
	default:
		return "", p.unexpected("operator")
	}
	return op, p.next()
}

// ---------- HAVING ----------

func (p *Parser) parseHavingCondition() (*core.LogicalCondition, error) {
	start := p.cur().Pos
	left, err := p.parseHavingOperand()
	if err != nil {
		return nil, err
	}
	opTok := p.cur()
	op, err := p.parseOperator()
	if err != nil {
		return nil, err
	}
	if !op.IsComparison() {
		return nil, p.errorAt(opTok, ErrOperatorNotAllowed, op, modeHaving)
	}
	right, err := p.parseHavingValue()
	if err != nil {
		return nil, err
	}
	return &core.LogicalCondition{Left: left, Operator: op, Right: right, Start: start}, nil
}

// parseHavingOperand parses the aggregate call on the left of a HAVING
// condition. Plain fields are rejected.
func (p *Parser) parseHavingOperand() (*core.FuncCall, error) {
	nameTok := p.cur()
	if !isName(nameTok) {
		return nil, p.unexpected("aggregate function")
	}
	next, err := p.tok.Peek()
	if err != nil {
		return nil, err
	}
	if next.Type != token.LPAREN {
		return nil, p.errorf(ErrHavingAggregate, nameTok.Literal)
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	return p.parseFuncCall(nameTok, core.ClauseHaving)
}

// parseHavingValue parses a variable or primitive literal.
func (p *Parser) parseHavingValue() (core.Value, error) {
	if p.check(token.LPAREN) {
		return nil, p.errorf(ErrUnexpectedExpression, p.cur())
	}
	return p.parseElement()
}

// ---------- WITH DATA CATEGORY ----------

func (p *Parser) parseCategoryCondition() (*core.LogicalCondition, error) {
	start := p.cur().Pos
	group, err := p.parseName()
	if err != nil {
		return nil, err
	}

	opTok := p.cur()
	if opTok.Type != token.IDENT {
		return nil, p.unexpected("AT, ABOVE, BELOW or ABOVE_OR_BELOW")
	}
	op := core.Operator(strings.ToUpper(opTok.Literal))
	if !op.IsDataCategory() {
		return nil, p.errorf(ErrOperatorNotAllowed, opTok.Literal, modeDataCategory)
	}
	if err := p.next(); err != nil {
		return nil, err
	}

	var right core.Value
	if p.check(token.LPAREN) {
		if err := p.next(); err != nil {
			return nil, err
		}
		coll := &core.ValueCollection{}
		for {
			tok, err := p.parseName()
			if err != nil {
				return nil, err
			}
			coll.Values = append(coll.Values, &core.FieldRef{Name: tok.Literal})
			if ok, err := p.match(token.COMMA); err != nil {
				return nil, err
			} else if !ok {
				break
			}
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		right = coll
	} else {
		tok, err := p.parseName()
		if err != nil {
			return nil, err
		}
		right = &core.FieldRef{Name: tok.Literal}
	}

	return &core.LogicalCondition{
		Left:     &core.FieldRef{Name: group.Literal},
		Operator: op,
		Right:    right,
		Start:    start,
	}, nil
}
