package core

// Node is the base interface for all AST nodes.
type Node interface {
	// Kind identifies the concrete variant for exhaustive switches.
	Kind() NodeKind
}

// NodeKind enumerates every node variant.
type NodeKind int

// NodeKind constants.
const (
	KindQuery NodeKind = iota
	KindSelectPart
	KindFromPart
	KindWherePart
	KindWithPart
	KindGroupPart
	KindHavingPart
	KindOrderPart
	KindOrderItem

	KindSelectField
	KindSelectFunction
	KindTypeofSelect
	KindFieldRef
	KindFuncCall

	KindLogicalGroup
	KindLogicalJunction
	KindLogicalCondition

	KindString
	KindNumber
	KindDate
	KindDateTime
	KindBoolean
	KindNull
	KindDateConstant
	KindDateFormula
	KindCurrency
	KindNamedVariable
	KindPositionalVariable
	KindCollection
	KindSubquery
)

var kindNames = [...]string{
	KindQuery:              "Query",
	KindSelectPart:         "SelectPart",
	KindFromPart:           "FromPart",
	KindWherePart:          "WherePart",
	KindWithPart:           "WithPart",
	KindGroupPart:          "GroupPart",
	KindHavingPart:         "HavingPart",
	KindOrderPart:          "OrderPart",
	KindOrderItem:          "OrderItem",
	KindSelectField:        "SelectField",
	KindSelectFunction:     "SelectFunction",
	KindTypeofSelect:       "TypeofSelect",
	KindFieldRef:           "FieldRef",
	KindFuncCall:           "FuncCall",
	KindLogicalGroup:       "LogicalGroup",
	KindLogicalJunction:    "LogicalJunction",
	KindLogicalCondition:   "LogicalCondition",
	KindString:             "String",
	KindNumber:             "Number",
	KindDate:               "Date",
	KindDateTime:           "DateTime",
	KindBoolean:            "Boolean",
	KindNull:               "Null",
	KindDateConstant:       "DateConstant",
	KindDateFormula:        "DateFormula",
	KindCurrency:           "Currency",
	KindNamedVariable:      "NamedVariable",
	KindPositionalVariable: "PositionalVariable",
	KindCollection:         "Collection",
	KindSubquery:           "Subquery",
}

func (k NodeKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// ---------- Capabilities ----------

// Aliasable is implemented by nodes that can carry an alias.
type Aliasable interface {
	Node
	AliasName() string
	// WithAlias returns a copy of the node carrying alias.
	WithAlias(alias string) Aliasable
}

// SelectItem is a node that may appear in a SELECT list.
type SelectItem interface {
	Node
	selectItem()
}

// Value is a node usable on the right side of a condition.
type Value interface {
	Node
	valueNode()
}

// Operand is a node usable on the left side of a condition.
type Operand interface {
	Node
	operandNode()
}

// FuncArg is a node usable as a function argument.
type FuncArg interface {
	Node
	funcArg()
}

// Groupable is a node usable as a GROUP BY item.
type Groupable interface {
	Node
	groupableNode()
}

// Orderable is a node usable as an ORDER BY item.
type Orderable interface {
	Node
	orderableNode()
}

// Condition is either a single comparison or a nested group.
type Condition interface {
	Node
	conditionNode()
}
