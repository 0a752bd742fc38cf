package core

import "github.com/leapstack-labs/leapsoql/pkg/token"

// ---------- Logical Chains ----------

// JunctionOp is the operator preceding a junction in a chain.
type JunctionOp int

// JunctionOp constants. The first junction of a group always uses OpNone.
const (
	OpNone JunctionOp = iota
	OpAnd
	OpOr
)

func (o JunctionOp) String() string {
	switch o {
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	}
	return ""
}

// LogicalGroup is a flat chain of junctions evaluated in written order.
// AND does not bind tighter than OR.
type LogicalGroup struct {
	Junctions []*LogicalJunction
}

// Kind implements Node.
func (*LogicalGroup) Kind() NodeKind { return KindLogicalGroup }

func (*LogicalGroup) conditionNode() {}

// LogicalJunction is one link of a chain.
type LogicalJunction struct {
	Op        JunctionOp
	Not       bool
	Condition Condition
}

// Kind implements Node.
func (*LogicalJunction) Kind() NodeKind { return KindLogicalJunction }

// Operator is a comparison, set or data category operator.
type Operator string

// Operator constants.
const (
	OpEq       Operator = "="
	OpNe       Operator = "!="
	OpLt       Operator = "<"
	OpLe       Operator = "<="
	OpGt       Operator = ">"
	OpGe       Operator = ">="
	OpLike     Operator = "LIKE"
	OpIn       Operator = "IN"
	OpNotIn    Operator = "NOT IN"
	OpIncludes Operator = "INCLUDES"
	OpExcludes Operator = "EXCLUDES"

	OpAt           Operator = "AT"
	OpAbove        Operator = "ABOVE"
	OpBelow        Operator = "BELOW"
	OpAboveOrBelow Operator = "ABOVE_OR_BELOW"
)

// IsComparison reports whether o is one of the six comparison operators.
func (o Operator) IsComparison() bool {
	switch o {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		return true
	}
	return false
}

// IsSet reports whether o expects a collection, subquery or variable.
func (o Operator) IsSet() bool {
	switch o {
	case OpIn, OpNotIn, OpIncludes, OpExcludes:
		return true
	}
	return false
}

// IsDataCategory reports whether o is legal in WITH DATA CATEGORY.
func (o Operator) IsDataCategory() bool {
	switch o {
	case OpAt, OpAbove, OpBelow, OpAboveOrBelow:
		return true
	}
	return false
}

// LogicalCondition is a single left-operator-right comparison.
type LogicalCondition struct {
	Left     Operand
	Operator Operator
	Right    Value
	Start    token.Position
}

// Kind implements Node.
func (*LogicalCondition) Kind() NodeKind { return KindLogicalCondition }

func (*LogicalCondition) conditionNode() {}

// NewGroup builds a chain from conditions joined by op. Used by callers that
// assemble filters without going through the parser.
func NewGroup(op JunctionOp, conds ...Condition) *LogicalGroup {
	g := &LogicalGroup{}
	for i, c := range conds {
		j := &LogicalJunction{Op: op, Condition: c}
		if i == 0 {
			j.Op = OpNone
		}
		g.Junctions = append(g.Junctions, j)
	}
	return g
}
