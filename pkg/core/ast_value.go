package core

import "github.com/leapstack-labs/leapsoql/pkg/token"

// ---------- Comparable Values ----------

// StringLiteral holds the decoded string contents. The escapes \\, \_ and
// \% stay as written, so Value distinguishes a literal backslash before a
// wildcard from an escaped wildcard.
type StringLiteral struct {
	Value string
}

// NumberLiteral keeps the numeric text as written.
type NumberLiteral struct {
	Text string
}

// DateLiteral is a YYYY-MM-DD date.
type DateLiteral struct {
	Text string
}

// DateTimeLiteral is an ISO-8601 datetime with offset or Z.
type DateTimeLiteral struct {
	Text string
}

// BooleanLiteral is TRUE or FALSE.
type BooleanLiteral struct {
	Value bool
}

// NullLiteral is NULL.
type NullLiteral struct{}

// DateConstant is one of the fixed relative date names, e.g. TODAY.
type DateConstant struct {
	Name string
}

// DateFormula is a relative date range with a count, e.g. LAST_N_DAYS:5.
type DateFormula struct {
	Name string
	N    string
}

// CurrencyLiteral is an ISO currency code prefixed amount, e.g. USD49.99.
type CurrencyLiteral struct {
	Code   string
	Amount string
}

// NamedVariable is a :name placeholder.
type NamedVariable struct {
	Name  string
	Start token.Position
}

// PositionalVariable is a ? placeholder. Index is assigned by the parser,
// starting at 0 for every top-level parse.
type PositionalVariable struct {
	Index int
	Start token.Position
}

// ValueCollection is a parenthesized, comma separated list of values.
type ValueCollection struct {
	Values []Value
}

// Kind implementations.

func (*StringLiteral) Kind() NodeKind      { return KindString }
func (*NumberLiteral) Kind() NodeKind      { return KindNumber }
func (*DateLiteral) Kind() NodeKind        { return KindDate }
func (*DateTimeLiteral) Kind() NodeKind    { return KindDateTime }
func (*BooleanLiteral) Kind() NodeKind     { return KindBoolean }
func (*NullLiteral) Kind() NodeKind        { return KindNull }
func (*DateConstant) Kind() NodeKind       { return KindDateConstant }
func (*DateFormula) Kind() NodeKind        { return KindDateFormula }
func (*CurrencyLiteral) Kind() NodeKind    { return KindCurrency }
func (*NamedVariable) Kind() NodeKind      { return KindNamedVariable }
func (*PositionalVariable) Kind() NodeKind { return KindPositionalVariable }
func (*ValueCollection) Kind() NodeKind    { return KindCollection }

func (*StringLiteral) valueNode()      {}
func (*NumberLiteral) valueNode()      {}
func (*DateLiteral) valueNode()        {}
func (*DateTimeLiteral) valueNode()    {}
func (*BooleanLiteral) valueNode()     {}
func (*NullLiteral) valueNode()        {}
func (*DateConstant) valueNode()       {}
func (*DateFormula) valueNode()        {}
func (*CurrencyLiteral) valueNode()    {}
func (*NamedVariable) valueNode()      {}
func (*PositionalVariable) valueNode() {}
func (*ValueCollection) valueNode()    {}

func (*StringLiteral) funcArg()   {}
func (*NumberLiteral) funcArg()   {}
func (*DateLiteral) funcArg()     {}
func (*DateTimeLiteral) funcArg() {}
func (*BooleanLiteral) funcArg()  {}
func (*NullLiteral) funcArg()     {}
func (*DateConstant) funcArg()    {}
func (*DateFormula) funcArg()     {}
func (*CurrencyLiteral) funcArg() {}

// IsPrimitive reports whether v is a single literal, as opposed to a
// variable, collection, subquery or field reference.
func IsPrimitive(v Node) bool {
	switch v.(type) {
	case *StringLiteral, *NumberLiteral, *DateLiteral, *DateTimeLiteral,
		*BooleanLiteral, *NullLiteral, *DateConstant, *DateFormula, *CurrencyLiteral:
		return true
	}
	return false
}

// IsVariable reports whether v is a named or positional placeholder.
func IsVariable(v Node) bool {
	switch v.(type) {
	case *NamedVariable, *PositionalVariable:
		return true
	}
	return false
}
