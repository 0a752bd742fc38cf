package builder

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapsoql/pkg/core"
	"github.com/leapstack-labs/leapsoql/pkg/format"
	"github.com/leapstack-labs/leapsoql/pkg/parser"
	"github.com/leapstack-labs/leapsoql/pkg/soqltype"
)

// ExprBuilder composes a WHERE condition chain programmatically. Junctions
// are appended in call order and keep the flat, left-to-right evaluation
// of parsed chains.
//
//	e := b.WhereExpr().
//	    Xpr("Id", "=", ":id").
//	    AndGroup(b.WhereExpr().
//	        Xpr("Name", "=", "'Supercompany'").
//	        OrXpr("AccountNumber", "=", "'12345'"))
type ExprBuilder struct {
	parser  *parser.Parser
	group   *core.LogicalGroup
	negated bool
	err     error
}

// NewExpr creates a standalone expression builder.
func NewExpr() *ExprBuilder {
	return newExpr(parser.New())
}

func newExpr(p *parser.Parser) *ExprBuilder {
	return &ExprBuilder{parser: p, group: &core.LogicalGroup{}}
}

var operators = map[string]core.Operator{
	"=":        core.OpEq,
	"!=":       core.OpNe,
	"<>":       core.OpNe,
	"<":        core.OpLt,
	"<=":       core.OpLe,
	">":        core.OpGt,
	">=":       core.OpGe,
	"LIKE":     core.OpLike,
	"IN":       core.OpIn,
	"NOT IN":   core.OpNotIn,
	"INCLUDES": core.OpIncludes,
	"EXCLUDES": core.OpExcludes,
}

// Xpr appends the condition "left op right". On an empty builder it starts
// the chain; otherwise it is joined with AND.
//
// left is a field or function call. A string right is parsed as condition
// text, e.g. ":id", "'Acme'", "NULL" or "('a', 'b')". Any other right is
// converted with soqltype.Literal.
func (e *ExprBuilder) Xpr(left, op string, right any) *ExprBuilder {
	return e.add(core.OpAnd, left, op, right)
}

// AndXpr appends a condition joined with AND.
func (e *ExprBuilder) AndXpr(left, op string, right any) *ExprBuilder {
	return e.add(core.OpAnd, left, op, right)
}

// OrXpr appends a condition joined with OR.
func (e *ExprBuilder) OrXpr(left, op string, right any) *ExprBuilder {
	return e.add(core.OpOr, left, op, right)
}

// AndGroup appends the chain of sub, parenthesized, joined with AND.
func (e *ExprBuilder) AndGroup(sub *ExprBuilder) *ExprBuilder {
	return e.addGroup(core.OpAnd, sub)
}

// OrGroup appends the chain of sub, parenthesized, joined with OR.
func (e *ExprBuilder) OrGroup(sub *ExprBuilder) *ExprBuilder {
	return e.addGroup(core.OpOr, sub)
}

// Not negates the next appended junction.
func (e *ExprBuilder) Not() *ExprBuilder {
	e.negated = true
	return e
}

// Group returns a copy of the composed chain.
func (e *ExprBuilder) Group() (*core.LogicalGroup, error) {
	if e.err != nil {
		return nil, e.err
	}
	if len(e.group.Junctions) == 0 {
		return nil, ErrEmptyFragment
	}
	return core.CloneGroup(e.group), nil
}

// String renders the composed chain, or the recorded error.
func (e *ExprBuilder) String() string {
	if e.err != nil {
		return "error: " + e.err.Error()
	}
	return format.Node(e.group)
}

func (e *ExprBuilder) add(op core.JunctionOp, left, opText string, right any) *ExprBuilder {
	if e.err != nil {
		return e
	}
	cond, err := e.condition(left, opText, right)
	if err != nil {
		e.err = &CompositionError{Clause: "WHERE", Fragment: fmt.Sprintf("%s %s %v", left, opText, right), Err: err}
		return e
	}
	e.append(op, cond)
	return e
}

func (e *ExprBuilder) addGroup(op core.JunctionOp, sub *ExprBuilder) *ExprBuilder {
	if e.err != nil {
		return e
	}
	g, err := sub.Group()
	if err != nil {
		e.err = err
		return e
	}
	e.append(op, g)
	return e
}

func (e *ExprBuilder) append(op core.JunctionOp, c core.Condition) {
	if len(e.group.Junctions) == 0 {
		op = core.OpNone
	}
	e.group.Junctions = append(e.group.Junctions, &core.LogicalJunction{Op: op, Not: e.negated, Condition: c})
	e.negated = false
}

func (e *ExprBuilder) condition(left, opText string, right any) (*core.LogicalCondition, error) {
	operand, err := e.parser.ParseLeftWhere(left)
	if err != nil {
		return nil, err
	}
	op, ok := operators[strings.ToUpper(strings.Join(strings.Fields(opText), " "))]
	if !ok {
		return nil, fmt.Errorf("%w: unknown operator %q", ErrBadCondition, opText)
	}

	var value core.Value
	if text, isText := right.(string); isText {
		value, err = e.parser.ParseRightWhere(text)
	} else {
		value, err = soqltype.Literal(right)
	}
	if err != nil {
		return nil, err
	}

	switch value.(type) {
	case *core.ValueCollection, *core.Subquery:
		if !op.IsSet() {
			return nil, fmt.Errorf("%w: operator %s cannot take a value list or subquery", ErrBadCondition, op)
		}
	case *core.NamedVariable, *core.PositionalVariable:
	default:
		if op.IsSet() {
			return nil, fmt.Errorf("%w: operator %s requires a value list, subquery or variable", ErrBadCondition, op)
		}
	}
	return &core.LogicalCondition{Left: operand, Operator: op, Right: value}, nil
}
