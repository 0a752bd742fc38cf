package core

import "github.com/leapstack-labs/leapsoql/pkg/token"

// ---------- Select Items and References ----------

// FieldRef is a field name or dotted relationship path.
type FieldRef struct {
	Name string
}

// Kind implements Node.
func (*FieldRef) Kind() NodeKind { return KindFieldRef }

func (*FieldRef) operandNode()   {}
func (*FieldRef) funcArg()       {}
func (*FieldRef) groupableNode() {}
func (*FieldRef) orderableNode() {}
func (*FieldRef) valueNode()     {}

// FuncCall is a whitelisted function invocation. Name keeps the spelling
// used in the source text.
type FuncCall struct {
	Name  string
	Args  []FuncArg
	Start token.Position
}

// Kind implements Node.
func (*FuncCall) Kind() NodeKind { return KindFuncCall }

func (*FuncCall) operandNode()   {}
func (*FuncCall) funcArg()       {}
func (*FuncCall) groupableNode() {}
func (*FuncCall) orderableNode() {}

// SelectField is a plain field in a SELECT list.
type SelectField struct {
	Name  string
	Alias string
}

// Kind implements Node.
func (*SelectField) Kind() NodeKind { return KindSelectField }

func (*SelectField) selectItem() {}

// AliasName implements Aliasable.
func (s *SelectField) AliasName() string { return s.Alias }

// WithAlias implements Aliasable.
func (s *SelectField) WithAlias(alias string) Aliasable {
	c := *s
	c.Alias = alias
	return &c
}

// SelectFunction is a function call in a SELECT list.
type SelectFunction struct {
	Call  *FuncCall
	Alias string
}

// Kind implements Node.
func (*SelectFunction) Kind() NodeKind { return KindSelectFunction }

func (*SelectFunction) selectItem() {}

// AliasName implements Aliasable.
func (s *SelectFunction) AliasName() string { return s.Alias }

// WithAlias implements Aliasable.
func (s *SelectFunction) WithAlias(alias string) Aliasable {
	c := *s
	c.Alias = alias
	return &c
}

// Subquery is a parenthesized nested query, used both as a select item
// and as a comparable value.
type Subquery struct {
	Query *Query
}

// Kind implements Node.
func (*Subquery) Kind() NodeKind { return KindSubquery }

func (*Subquery) selectItem() {}
func (*Subquery) valueNode()  {}

// TypeofSelect is a polymorphic TYPEOF ... END select item.
type TypeofSelect struct {
	Object   string
	Branches []*TypeofBranch // at least one
	Else     *SelectPart
}

// Kind implements Node.
func (*TypeofSelect) Kind() NodeKind { return KindTypeofSelect }

func (*TypeofSelect) selectItem() {}

// TypeofBranch is one WHEN <type> THEN <fields> arm.
type TypeofBranch struct {
	Type   string
	Fields *SelectPart
}
